// Package testutil provides test utilities shared across packages,
// chiefly an in-memory MoneyTracker backend served over httptest.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/money-tracker/internal/model"
	"github.com/Veraticus/money-tracker/internal/testutil/categories"
)

// Seeded superadmin credentials.
const (
	AdminUsername = "admin"
	AdminPassword = "admin123"
)

// Request is a request received by the Backend.
type Request struct {
	Method string
	Path   string
	Auth   string
	Body   []byte
}

type account struct {
	password string
	user     model.User
}

type failure struct {
	detail string
	status int
}

// Backend is a fake MoneyTracker API. It keeps one shared set of categories
// and transactions, which is enough for client tests.
type Backend struct {
	server       *httptest.Server
	accounts     map[string]*account
	tokens       map[string]string
	failures     map[string]failure
	categories   []model.Category
	transactions []model.Transaction
	requests     []Request
	nextID       int
	mu           sync.Mutex
}

// NewBackend starts a backend seeded with the admin account and the default categories.
// The server is closed when the test ends.
func NewBackend(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{
		accounts:   map[string]*account{},
		tokens:     map[string]string{},
		failures:   map[string]failure{},
		categories: categories.Defaults(),
	}
	b.AddUser(AdminUsername, AdminPassword, model.RoleSuperadmin)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", b.login)
	mux.HandleFunc("POST /api/auth/register", b.requireAdmin(b.register))
	mux.HandleFunc("GET /api/users/me", b.requireUser(b.me))
	mux.HandleFunc("GET /api/users", b.requireAdmin(b.listUsers))
	mux.HandleFunc("GET /api/categories", b.requireUser(b.listCategories))
	mux.HandleFunc("POST /api/categories", b.requireUser(b.createCategory))
	mux.HandleFunc("GET /api/transactions", b.requireUser(b.listTransactions))
	mux.HandleFunc("POST /api/transactions", b.requireUser(b.createTransaction))
	mux.HandleFunc("GET /api/transactions/stats", b.requireUser(b.stats))
	mux.HandleFunc("PUT /api/transactions/{id}", b.requireUser(b.updateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", b.requireUser(b.deleteTransaction))
	mux.HandleFunc("GET /api/download/source-code", b.requireUser(b.download))
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	b.server = httptest.NewServer(b.record(mux))
	t.Cleanup(b.server.Close)
	return b
}

// URL is the API base URL, including the /api prefix.
func (b *Backend) URL() string {
	return b.server.URL + "/api"
}

// BackendURL is the server origin without the /api prefix.
func (b *Backend) BackendURL() string {
	return b.server.URL
}

// AddUser creates an account.
func (b *Backend) AddUser(username, password string, role model.Role) model.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addUserLocked(username, password, role)
}

func (b *Backend) addUserLocked(username, password string, role model.Role) model.User {
	b.nextID++
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	u := model.User{ID: fmt.Sprintf("user-%d", b.nextID), Username: username, Role: role, CreatedAt: &created}
	b.accounts[username] = &account{user: u, password: password}
	return u
}

// IssueToken returns a valid token for username.
func (b *Backend) IssueToken(username string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.issueTokenLocked(username)
}

func (b *Backend) issueTokenLocked(username string) string {
	b.nextID++
	token := fmt.Sprintf("token-%s-%d", username, b.nextID)
	b.tokens[token] = username
	return token
}

// RevokeTokens invalidates every issued token.
func (b *Backend) RevokeTokens() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens = map[string]string{}
}

// AddTransaction stores tx as if it had been created through the API.
func (b *Backend) AddTransaction(tx model.Transaction) model.Transaction {
	b.mu.Lock()
	defer b.mu.Unlock()
	if tx.ID == "" {
		b.nextID++
		tx.ID = fmt.Sprintf("tx-%d", b.nextID)
	}
	if tx.CategoryName == nil {
		if cat := b.findCategoryLocked(tx.CategoryID); cat != nil {
			name := cat.Name
			tx.CategoryName = &name
		}
	}
	b.transactions = append(b.transactions, tx)
	return tx
}

// Transactions returns a copy of the stored transactions.
func (b *Backend) Transactions() []model.Transaction {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.Transaction, len(b.transactions))
	copy(out, b.transactions)
	return out
}

// Categories returns a copy of the stored categories.
func (b *Backend) Categories() categories.Categories {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(categories.Categories, len(b.categories))
	copy(out, b.categories)
	return out
}

// Fail makes every request to route ("GET /api/transactions") fail with status and detail.
// An empty detail produces a body without a detail field.
func (b *Backend) Fail(route string, status int, detail string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[route] = failure{status: status, detail: detail}
}

// Recover clears a failure set with Fail.
func (b *Backend) Recover(route string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.failures, route)
}

// Requests returns every request received so far.
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Request, len(b.requests))
	copy(out, b.requests)
	return out
}

// Count returns how many requests matched method and path.
func (b *Backend) Count(method, path string) int {
	n := 0
	for _, r := range b.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		b.mu.Lock()
		b.requests = append(b.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Auth:   r.Header.Get("Authorization"),
			Body:   body,
		})
		f, failing := b.failures[r.Method+" "+r.URL.Path]
		b.mu.Unlock()

		if failing {
			if f.detail == "" {
				writeJSON(w, f.status, map[string]string{})
				return
			}
			writeDetail(w, f.status, f.detail)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type handlerWithUser func(w http.ResponseWriter, r *http.Request, user model.User)

func (b *Backend) requireUser(h handlerWithUser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || token == "" {
			writeDetail(w, http.StatusForbidden, "Not authenticated")
			return
		}

		b.mu.Lock()
		username, valid := b.tokens[token]
		acct := b.accounts[username]
		b.mu.Unlock()

		if !valid || acct == nil {
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		h(w, r, acct.user)
	}
}

func (b *Backend) requireAdmin(h handlerWithUser) http.HandlerFunc {
	return b.requireUser(func(w http.ResponseWriter, r *http.Request, user model.User) {
		if user.Role != model.RoleSuperadmin {
			writeDetail(w, http.StatusForbidden, "Not authorized. Superadmin access required")
			return
		}
		h(w, r, user)
	})
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	acct, ok := b.accounts[req.Username]
	if !ok || acct.password != req.Password {
		writeDetail(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": b.issueTokenLocked(req.Username),
		"token_type":   "bearer",
		"user":         map[string]any{"id": acct.user.ID, "username": acct.user.Username, "role": acct.user.Role},
	})
}

func (b *Backend) register(w http.ResponseWriter, r *http.Request, _ model.User) {
	var req struct {
		Username string     `json:"username"`
		Password string     `json:"password"`
		Role     model.Role `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}
	if req.Role == "" {
		req.Role = model.RoleUser
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.accounts[req.Username]; exists {
		writeDetail(w, http.StatusBadRequest, "Username already exists")
		return
	}
	u := b.addUserLocked(req.Username, req.Password, req.Role)
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "User created successfully",
		"user":    map[string]any{"id": u.ID, "username": u.Username, "role": u.Role},
	})
}

func (b *Backend) me(w http.ResponseWriter, _ *http.Request, user model.User) {
	writeJSON(w, http.StatusOK, map[string]any{"id": user.ID, "username": user.Username, "role": user.Role})
}

func (b *Backend) listUsers(w http.ResponseWriter, _ *http.Request, _ model.User) {
	b.mu.Lock()
	users := make([]model.User, 0, len(b.accounts))
	for _, a := range b.accounts {
		users = append(users, a.user)
	}
	b.mu.Unlock()

	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	writeJSON(w, http.StatusOK, users)
}

func (b *Backend) listCategories(w http.ResponseWriter, _ *http.Request, _ model.User) {
	writeJSON(w, http.StatusOK, b.Categories())
}

func (b *Backend) createCategory(w http.ResponseWriter, r *http.Request, user model.User) {
	var draft model.CategoryDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range b.categories {
		if c.Name == draft.Name && c.Type == draft.Type {
			writeDetail(w, http.StatusBadRequest, "Category already exists")
			return
		}
	}
	b.nextID++
	userID := user.ID
	cat := model.Category{
		ID:       fmt.Sprintf("cat-%d", b.nextID),
		Name:     draft.Name,
		Type:     draft.Type,
		IsCustom: true,
		UserID:   &userID,
	}
	b.categories = append(b.categories, cat)
	writeJSON(w, http.StatusOK, cat)
}

func (b *Backend) listTransactions(w http.ResponseWriter, _ *http.Request, _ model.User) {
	txs := b.Transactions()
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.After(txs[j].Date.Time) })
	writeJSON(w, http.StatusOK, txs)
}

type transactionBody struct {
	Type        *model.TransactionType `json:"type"`
	CategoryID  *string                `json:"category_id"`
	Amount      *decimal.Decimal       `json:"amount"`
	Description *string                `json:"description"`
	Date        *model.Date            `json:"date"`
}

func (b *Backend) createTransaction(w http.ResponseWriter, r *http.Request, user model.User) {
	var body transactionBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}
	if body.Type == nil || body.CategoryID == nil || body.Amount == nil || body.Date == nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{{"loc": []string{"body"}, "msg": "field required"}},
		})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	cat := b.findCategoryLocked(*body.CategoryID)
	if cat == nil {
		writeDetail(w, http.StatusNotFound, "Category not found")
		return
	}
	b.nextID++
	name := cat.Name
	tx := model.Transaction{
		ID:           fmt.Sprintf("tx-%d", b.nextID),
		UserID:       user.ID,
		Type:         *body.Type,
		CategoryID:   cat.ID,
		CategoryName: &name,
		Amount:       *body.Amount,
		Description:  body.Description,
		Date:         *body.Date,
	}
	b.transactions = append(b.transactions, tx)
	writeJSON(w, http.StatusOK, tx)
}

func (b *Backend) updateTransaction(w http.ResponseWriter, r *http.Request, _ model.User) {
	var body transactionBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	idx := b.indexLocked(r.PathValue("id"))
	if idx < 0 {
		writeDetail(w, http.StatusNotFound, "Transaction not found")
		return
	}
	tx := b.transactions[idx]
	if body.CategoryID != nil {
		cat := b.findCategoryLocked(*body.CategoryID)
		if cat == nil {
			writeDetail(w, http.StatusNotFound, "Category not found")
			return
		}
		name := cat.Name
		tx.CategoryID = cat.ID
		tx.CategoryName = &name
	}
	if body.Type != nil {
		tx.Type = *body.Type
	}
	if body.Amount != nil {
		tx.Amount = *body.Amount
	}
	if body.Description != nil {
		tx.Description = body.Description
	}
	if body.Date != nil {
		tx.Date = *body.Date
	}
	b.transactions[idx] = tx
	writeJSON(w, http.StatusOK, tx)
}

func (b *Backend) deleteTransaction(w http.ResponseWriter, r *http.Request, _ model.User) {
	b.mu.Lock()
	defer b.mu.Unlock()
	idx := b.indexLocked(r.PathValue("id"))
	if idx < 0 {
		writeDetail(w, http.StatusNotFound, "Transaction not found")
		return
	}
	b.transactions = append(b.transactions[:idx], b.transactions[idx+1:]...)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted successfully"})
}

func (b *Backend) stats(w http.ResponseWriter, _ *http.Request, _ model.User) {
	txs := b.Transactions()
	income, expense := decimal.Zero, decimal.Zero
	breakdown := map[string]model.CategoryAmounts{}
	for _, tx := range txs {
		name := tx.CategoryLabel()
		if name == "" {
			name = "Unknown"
		}
		amounts := breakdown[name]
		if tx.Type == model.TypeIncome {
			income = income.Add(tx.Amount)
			amounts.Income = amounts.Income.Add(tx.Amount)
		} else {
			expense = expense.Add(tx.Amount)
			amounts.Expense = amounts.Expense.Add(tx.Amount)
		}
		breakdown[name] = amounts
	}
	writeJSON(w, http.StatusOK, model.Stats{
		TotalIncome:       income,
		TotalExpense:      expense,
		Balance:           income.Sub(expense),
		TransactionCount:  len(txs),
		CategoryBreakdown: breakdown,
	})
}

// SourceArchive is the body served by the download endpoint.
var SourceArchive = []byte("PK\x03\x04money-tracker-source")

func (b *Backend) download(w http.ResponseWriter, _ *http.Request, _ model.User) {
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="money-tracker-source-code.zip"`)
	w.Header().Set("Content-Length", fmt.Sprint(len(SourceArchive)))
	_, _ = w.Write(SourceArchive)
}

func (b *Backend) findCategoryLocked(id string) *model.Category {
	for i := range b.categories {
		if b.categories[i].ID == id {
			return &b.categories[i]
		}
	}
	return nil
}

func (b *Backend) indexLocked(id string) int {
	for i, tx := range b.transactions {
		if tx.ID == id {
			return i
		}
	}
	return -1
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
