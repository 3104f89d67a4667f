package mail

import (
	"context"
	"fmt"
	"os"
)

func NewFileNotifier(path string) *FileNotifier {
	return &FileNotifier{Path: path}
}

// Notify overwrites Path with the notification.
func (n *FileNotifier) Notify(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	content := fmt.Sprintf("To: %s\nSubject: %s\nMessage: %s", to, subject, body)
	if err := os.WriteFile(n.Path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write notification file: %w", err)
	}
	return nil
}
