package mail

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// FileNotifier writes the latest notification to a local file.
type FileNotifier struct {
	Path string
}
