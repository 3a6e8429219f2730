package components

import "github.com/Veraticus/money-tracker/internal/model"

// FormSubmittedMsg is sent when the user presses Enter in a form.
type FormSubmittedMsg struct {
	Values map[string]string
	Form   string
}

// FormCancelledMsg is sent when the user leaves a form with Esc.
type FormCancelledMsg struct {
	Form string
}

// ConfirmedMsg carries the answer of a confirmation dialog.
type ConfirmedMsg struct {
	Confirmed bool
}

// TransactionSelectedMsg is sent when a transaction is picked from the list.
type TransactionSelectedMsg struct {
	Transaction model.Transaction
	Index       int
}
