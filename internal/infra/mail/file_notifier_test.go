package mail

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileNotifierWritesMessage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "email_notification.txt")
	n := NewFileNotifier(path)

	err := n.Notify(context.Background(), "sales@test.com", "Lead Accepted", "Lead 2 has been accepted.")
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "To: sales@test.com\nSubject: Lead Accepted\nMessage: Lead 2 has been accepted.", string(content))
}

func TestFileNotifierReportsWriteFailure(t *testing.T) {
	n := NewFileNotifier(filepath.Join(t.TempDir(), "missing", "dir", "out.txt"))

	err := n.Notify(context.Background(), "sales@test.com", "Lead Accepted", "body")
	assert.Error(t, err)
}

func TestNotifiersRespectCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "out.txt")
	assert.ErrorIs(t, NewFileNotifier(path).Notify(ctx, "a@b.c", "s", "b"), context.Canceled)
	assert.NoFileExists(t, path)

	sender := NewEmailSender("localhost", 25, "", "", "noreply@example.com")
	assert.ErrorIs(t, sender.Notify(ctx, "a@b.c", "s", "b"), context.Canceled)
}
