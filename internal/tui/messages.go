package tui

import (
	"log/slog"
	"time"

	"github.com/Veraticus/money-tracker/internal/guard"
	"github.com/Veraticus/money-tracker/internal/model"
	"github.com/Veraticus/money-tracker/internal/pages"
	"github.com/Veraticus/money-tracker/internal/session"
)

// Session messages.
type bootstrapDoneMsg struct {
	status session.Status
}

type loginResultMsg struct {
	err  error
	user *model.User
}

type navigateMsg struct {
	route guard.Route
}

// Data loading messages.
type dashboardLoadedMsg struct {
	err  error
	data pages.DashboardData
}

type transactionsLoadedMsg struct {
	err  error
	data pages.TransactionsData
}

type categoriesLoadedMsg struct {
	err        error
	categories []model.Category
}

type usersLoadedMsg struct {
	err   error
	users []model.User
}

// Mutation messages. Each carries the list fetched again after the write.
type transactionSavedMsg struct {
	err  error
	data pages.TransactionsData
}

type transactionDeletedMsg struct {
	err  error
	data pages.TransactionsData
}

type categoryCreatedMsg struct {
	err        error
	categories []model.Category
}

type userCreatedMsg struct {
	err   error
	users []model.User
}

type tickMsg time.Time

// toast is a notice shown until it expires.
type toast struct {
	expires time.Time
	notice  pages.Notice
}

// noticeQueue is the pages.Notifier of the TUI. Pages notify from command
// goroutines; the model drains the queue on its own goroutine.
type noticeQueue chan pages.Notice

func newNoticeQueue() noticeQueue {
	return make(noticeQueue, 32)
}

// Notify implements pages.Notifier. A full queue drops the notice.
func (q noticeQueue) Notify(n pages.Notice) {
	select {
	case q <- n:
	default:
		slog.Warn("Dropping notice, queue full", "message", n.Message)
	}
}
