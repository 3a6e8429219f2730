// Package ofx reads bank and credit card statements in OFX/QFX format.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/money-tracker/internal/model"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Entry is a statement line ready to become a transaction.
type Entry struct {
	Date        model.Date
	Amount      decimal.Decimal
	FITID       string
	Description string
	Type        model.TransactionType
}

// Draft converts the entry into a transaction draft filed under categoryID.
func (e Entry) Draft(categoryID string) model.TransactionDraft {
	var desc *string
	if e.Description != "" {
		d := e.Description
		desc = &d
	}
	return model.TransactionDraft{
		Type:        e.Type,
		CategoryID:  categoryID,
		Amount:      e.Amount,
		Description: desc,
		Date:        e.Date,
	}
}

// Parser implements OFX/QFX file parsing.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{logger: slog.Default()}
}

// preprocess fixes common formatting issues in exported statements.
func preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	// SGML files sometimes leave an opening tag without its closing bracket.
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// Parse reads every bank and credit card statement in r. Entries with a
// FITID seen earlier in the same file are skipped.
func (p *Parser) Parse(ctx context.Context, r io.Reader) ([]Entry, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var lists []*ofxgo.TransactionList
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			lists = append(lists, stmt.BankTranList)
		}
	}
	bankStmts := len(lists)
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			lists = append(lists, stmt.BankTranList)
		}
	}

	seen := make(map[string]bool)
	var entries []Entry
	for _, list := range lists {
		for _, tx := range list.Transactions {
			entry, err := convert(tx)
			if err != nil {
				p.logger.Warn("skipping statement line", "fitid", string(tx.FiTID), "error", err)
				continue
			}
			if entry.FITID != "" && seen[entry.FITID] {
				continue
			}
			seen[entry.FITID] = true
			entries = append(entries, entry)
		}
	}

	p.logger.Info("parsed OFX file",
		"entries", len(entries),
		"bank_statements", bankStmts,
		"cc_statements", len(lists)-bankStmts)

	return entries, nil
}

// convert maps an OFX transaction. OFX signs debits negative.
func convert(tx ofxgo.Transaction) (Entry, error) {
	amount, err := decimal.NewFromString(tx.TrnAmt.FloatString(2))
	if err != nil {
		return Entry{}, fmt.Errorf("invalid amount: %w", err)
	}
	if amount.IsZero() {
		return Entry{}, fmt.Errorf("zero amount")
	}

	t := model.TypeIncome
	if amount.IsNegative() {
		t = model.TypeExpense
	}

	return Entry{
		FITID:       string(tx.FiTID),
		Date:        model.NewDate(tx.DtPosted.Time),
		Type:        t,
		Amount:      amount.Abs(),
		Description: description(tx),
	}, nil
}

var cardPrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"ACH DEBIT ",
	"CHECK CARD ",
	"VISA PURCHASE ",
	"MC PURCHASE ",
	"DEBIT PURCHASE ",
}

var genericNames = map[string]bool{
	"DEBIT":           true,
	"CREDIT":          true,
	"PURCHASE":        true,
	"PAYMENT":         true,
	"TRANSFER":        true,
	"POS TRANSACTION": true,
	"CARD PURCHASE":   true,
}

// description picks the most specific text for the statement line.
func description(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := strings.TrimSpace(string(tx.Name))
	if tx.Memo != "" && (name == "" || genericNames[strings.ToUpper(name)]) {
		name = strings.TrimSpace(string(tx.Memo))
	}

	upper := strings.ToUpper(name)
	for _, prefix := range cardPrefixes {
		if strings.HasPrefix(upper, prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Drop a leading "MM/DD " date.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}
	return name
}
