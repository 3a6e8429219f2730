package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/Veraticus/money-tracker/internal/common"
	"github.com/Veraticus/money-tracker/internal/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestConfig_Validate(t *testing.T) {
	base := DefaultConfig()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"oauth with refresh token", func(c *Config) { c.ClientID, c.ClientSecret, c.RefreshToken = "id", "secret", "refresh" }, nil},
		{"oauth with token file", func(c *Config) { c.ClientID, c.ClientSecret, c.TokenFile = "id", "secret", "/tmp/t.json" }, nil},
		{"service account", func(c *Config) { c.ServiceAccountPath = "/path/key.json" }, nil},
		{"no auth", func(*Config) {}, common.ErrMissingConfig},
		{"client id only", func(c *Config) { c.ClientID = "id" }, common.ErrMissingConfig},
		{"both methods", func(c *Config) {
			c.ClientID, c.ClientSecret, c.RefreshToken = "id", "secret", "refresh"
			c.ServiceAccountPath = "/path/key.json"
		}, common.ErrInvalidConfig},
		{"zero batch", func(c *Config) { c.ServiceAccountPath = "k"; c.BatchSize = 0 }, common.ErrInvalidConfig},
		{"negative retries", func(c *Config) { c.ServiceAccountPath = "k"; c.RetryAttempts = -1 }, common.ErrInvalidConfig},
		{"negative delay", func(c *Config) { c.ServiceAccountPath = "k"; c.RetryDelay = -time.Second }, common.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func sampleReport(t *testing.T) Report {
	t.Helper()
	d1, err := model.ParseDate("2024-03-01")
	require.NoError(t, err)
	d2, err := model.ParseDate("2024-03-05")
	require.NoError(t, err)
	gaji, makanan, lunch := "Gaji", "Makanan", "lunch"

	return Report{
		GeneratedAt: time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC),
		Stats: &model.Stats{
			TotalIncome:      decimal.NewFromInt(5000000),
			TotalExpense:     decimal.NewFromInt(35000),
			Balance:          decimal.NewFromInt(4965000),
			TransactionCount: 2,
			CategoryBreakdown: map[string]model.CategoryAmounts{
				"Makanan": {Expense: decimal.NewFromInt(35000)},
				"Gaji":    {Income: decimal.NewFromInt(5000000)},
			},
		},
		Transactions: []model.Transaction{
			{ID: "1", Type: model.TypeIncome, CategoryName: &gaji, Amount: decimal.NewFromInt(5000000), Date: d1},
			{ID: "2", Type: model.TypeExpense, CategoryName: &makanan, Description: &lunch, Amount: decimal.NewFromInt(35000), Date: d2},
		},
	}
}

func TestReport_Values(t *testing.T) {
	report := sampleReport(t)
	values, l := report.build()

	assert.Equal(t, []any{titleReport, "6 Maret 2024"}, values[0])
	assert.Equal(t, []any{"Saldo", "4965000"}, values[l.summaryRow+2])
	assert.Equal(t, []any{"Kategori", "Pemasukan", "Pengeluaran"}, values[l.breakdownHeader])
	assert.Equal(t, []any{"Gaji", "5000000", "0"}, values[l.breakdownHeader+1], "breakdown sorted by name")
	assert.Equal(t, []any{"Makanan", "0", "35000"}, values[l.breakdownHeader+2])

	require.Equal(t, l.txHeader+3, len(values))
	assert.Equal(t, []any{"2024-03-05", "Pengeluaran", "Makanan", "lunch", "-35000"}, values[l.txHeader+1], "newest first, expense negative")
	assert.Equal(t, []any{"2024-03-01", "Pemasukan", "Gaji", "", "5000000"}, values[l.txHeader+2])
	assert.Equal(t, "1", report.Transactions[0].ID, "input order untouched")
}

func TestReport_ValuesWithoutStats(t *testing.T) {
	values, l := Report{}.build()
	assert.Equal(t, []any{"Total Pemasukan", "0"}, values[l.summaryRow])
	assert.Equal(t, l.txHeader+1, len(values))
	assert.Equal(t, l.breakdownHeader+3, l.txHeader, "no breakdown rows")
}

func TestClassify(t *testing.T) {
	assert.NoError(t, classify(nil))

	var retryable *common.RetryableError
	permanent := classify(&googleapi.Error{Code: http.StatusForbidden})
	require.ErrorAs(t, permanent, &retryable)
	assert.False(t, retryable.Retryable)

	assert.ErrorIs(t, classify(&googleapi.Error{Code: http.StatusTooManyRequests}), common.ErrRateLimit)

	transient := errors.New("connection reset")
	assert.Equal(t, transient, classify(transient))
	assert.False(t, errors.As(classify(&googleapi.Error{Code: 503}), &retryable))
}

type fakeSheets struct {
	updates     []sheets.ValueRange
	calls       []string
	failUpdates int
	failStatus  int
	mu          sync.Mutex
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, r.Method+" "+r.URL.Path)
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodPut && strings.Contains(r.URL.Path, "/values/"):
		if f.failUpdates > 0 {
			f.failUpdates--
			w.WriteHeader(f.failStatus)
			_, _ = fmt.Fprintf(w, `{"error":{"code":%d,"message":"try later"}}`, f.failStatus)
			return
		}
		var vr sheets.ValueRange
		_ = json.NewDecoder(r.Body).Decode(&vr)
		f.updates = append(f.updates, vr)
		_, _ = io.WriteString(w, `{}`)
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/v4/spreadsheets"):
		_, _ = io.WriteString(w, `{"spreadsheetId":"new-sheet","spreadsheetUrl":"https://example.test/new-sheet"}`)
	case r.Method == http.MethodGet:
		_, _ = io.WriteString(w, `{"spreadsheetId":"sheet-1"}`)
	default:
		_, _ = io.WriteString(w, `{}`)
	}
}

func (f *fakeSheets) count(substr string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if strings.Contains(c, substr) {
			n++
		}
	}
	return n
}

func newTestWriter(t *testing.T, fake *fakeSheets, cfg Config) *Writer {
	t.Helper()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	srv, err := sheets.NewService(context.Background(),
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()))
	require.NoError(t, err)
	return NewWriterWithService(cfg, srv, testLogger())
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.SpreadsheetID = "sheet-1"
	cfg.RetryDelay = time.Millisecond
	return cfg
}

func TestWriter_Export(t *testing.T) {
	fake := &fakeSheets{}
	w := newTestWriter(t, fake, testConfig())

	id, err := w.Export(context.Background(), sampleReport(t))
	require.NoError(t, err)
	assert.Equal(t, "sheet-1", id)

	assert.Equal(t, 1, fake.count(":clear"))
	assert.Equal(t, 1, fake.count(":batchUpdate"))
	require.Len(t, fake.updates, 1)
	assert.Equal(t, titleReport, fake.updates[0].Values[0][0])
}

func TestWriter_ExportInBatches(t *testing.T) {
	fake := &fakeSheets{}
	cfg := testConfig()
	cfg.BatchSize = 5
	cfg.EnableFormatting = false
	w := newTestWriter(t, fake, cfg)

	report := sampleReport(t)
	_, err := w.Export(context.Background(), report)
	require.NoError(t, err)

	rows := len(report.Values())
	assert.Len(t, fake.updates, (rows+4)/5)
	assert.Zero(t, fake.count(":batchUpdate"))
}

func TestWriter_ExportCreatesSpreadsheet(t *testing.T) {
	fake := &fakeSheets{}
	cfg := testConfig()
	cfg.SpreadsheetID = ""
	w := newTestWriter(t, fake, cfg)

	id, err := w.Export(context.Background(), Report{})
	require.NoError(t, err)
	assert.Equal(t, "new-sheet", id)
}

func TestWriter_ExportRetriesServerErrors(t *testing.T) {
	fake := &fakeSheets{failUpdates: 1, failStatus: http.StatusServiceUnavailable}
	w := newTestWriter(t, fake, testConfig())

	_, err := w.Export(context.Background(), Report{})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, fake.count("PUT"), 2)
	assert.Len(t, fake.updates, 1)
}

func TestWriter_ExportStopsOnClientErrors(t *testing.T) {
	fake := &fakeSheets{failUpdates: 5, failStatus: http.StatusBadRequest}
	w := newTestWriter(t, fake, testConfig())

	_, err := w.Export(context.Background(), Report{})
	require.Error(t, err)
	assert.Equal(t, 1, fake.count("PUT"))
}

func TestTokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	token := &oauth2.Token{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer"}

	require.NoError(t, SaveToken(path, token))
	loaded, err := LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "r", loaded.RefreshToken)

	_, err = LoadToken(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestTokenSource_MissingTokenFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ClientID, cfg.ClientSecret = "id", "secret"
	cfg.TokenFile = filepath.Join(t.TempDir(), "missing.json")

	_, err := tokenSource(context.Background(), cfg)
	var userErr *common.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Contains(t, userErr.UserMessage, "money sheets auth")
}

func TestCallbackHandler(t *testing.T) {
	codes := make(chan string, 1)
	errs := make(chan error, 1)
	h := callbackHandler("st", codes, errs)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/callback?state=bad&code=c", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, codes)

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/callback?state=st&error=access_denied", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Error(t, <-errs)

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/callback?state=st&code=abc", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc", <-codes)
}
