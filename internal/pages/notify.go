// Package pages holds the page controllers shared by the CLI and the TUI.
// Each page fetches its own data, reports outcomes through a Notifier and
// re-fetches after every successful mutation.
package pages

import (
	"errors"
	"fmt"
)

// Level is the severity of a notice.
type Level int

const (
	// LevelInfo is a neutral message.
	LevelInfo Level = iota
	// LevelSuccess confirms a completed action.
	LevelSuccess
	// LevelError reports a failure.
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a transient message for the user.
type Notice struct {
	Message string
	Level   Level
}

// Notifier shows notices. Implementations must be safe for concurrent use.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

// Notify implements Notifier.
func (f NotifierFunc) Notify(n Notice) { f(n) }

// Discard drops every notice.
var Discard Notifier = NotifierFunc(func(Notice) {})

var (
	// ErrNotified marks errors that were already shown to the user as a notice.
	ErrNotified = errors.New("already reported")
	// ErrBusy is returned when a submission is already in flight.
	ErrBusy = errors.New("another submission is in progress")
	// ErrInvalidForm is returned when form input cannot be sent.
	ErrInvalidForm = errors.New("invalid form")
	// ErrRefetchFailed means the write went through but the list could not
	// be fetched again. The mutation must not be repeated.
	ErrRefetchFailed = errors.New("saved, but reloading failed")
)

// FormError is a validation failure carrying a message for the user.
type FormError struct {
	Message string
}

func (e *FormError) Error() string {
	return "invalid form: " + e.Message
}

// Is makes FormError match ErrInvalidForm.
func (e *FormError) Is(target error) bool {
	return target == ErrInvalidForm
}

func invalid(msg string) error {
	return &FormError{Message: msg}
}

func notified(err error) error {
	return fmt.Errorf("%w: %w", ErrNotified, err)
}

func succeed(n Notifier, msg string) {
	n.Notify(Notice{Level: LevelSuccess, Message: msg})
}

func fail(n Notifier, msg string, err error) error {
	n.Notify(Notice{Level: LevelError, Message: msg})
	return notified(err)
}

// refetchErr marks a failed reload that followed a successful write.
func refetchErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrRefetchFailed, err)
}

func orDiscard(n Notifier) Notifier {
	if n == nil {
		return Discard
	}
	return n
}
