package cli

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/Veraticus/money-tracker/internal/pages"
)

// Notifier prints page notices as single styled lines.
type Notifier struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewNotifier creates a notifier writing to w.
func NewNotifier(w io.Writer) *Notifier {
	return &Notifier{writer: w}
}

// Notify implements pages.Notifier.
func (n *Notifier) Notify(notice pages.Notice) {
	var line string
	switch notice.Level {
	case pages.LevelSuccess:
		line = FormatSuccess(notice.Message)
	case pages.LevelError:
		line = FormatError(notice.Message)
	default:
		line = FormatInfo(notice.Message)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if _, err := fmt.Fprintln(n.writer, line); err != nil {
		slog.Debug("failed to write notice", "error", err)
	}
}
