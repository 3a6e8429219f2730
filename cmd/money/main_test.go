package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/money-tracker/internal/api"
	"github.com/Veraticus/money-tracker/internal/common"
	"github.com/Veraticus/money-tracker/internal/guard"
	"github.com/Veraticus/money-tracker/internal/model"
	"github.com/Veraticus/money-tracker/internal/pages"
	"github.com/Veraticus/money-tracker/internal/testutil"
)

// cliHarness runs commands against an in-memory backend with a private
// home directory and local storage file.
type cliHarness struct {
	t       *testing.T
	backend *testutil.Backend
}

type result struct {
	err    error
	stdout string
	stderr string
}

func newCLI(t *testing.T) *cliHarness {
	t.Helper()
	home := t.TempDir()
	backend := testutil.NewBackend(t)

	t.Setenv("HOME", home)
	t.Setenv("MONEY_STORAGE_PATH", filepath.Join(home, "state.db"))
	t.Setenv("MONEY_API_BACKEND_URL", backend.BackendURL())

	return &cliHarness{t: t, backend: backend}
}

func (h *cliHarness) run(stdin string, args ...string) result {
	h.t.Helper()
	root := newRootCmd(viper.New())

	var stdout, stderr bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return result{err: err, stdout: stdout.String(), stderr: stderr.String()}
}

// login signs in through the login command so the token lands in local storage.
func (h *cliHarness) login(username, password string) {
	h.t.Helper()
	res := h.run(password+"\n", "login", "-u", username)
	require.NoError(h.t, res.err, res.stderr)
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd(viper.New())

	want := []string{"login", "logout", "whoami", "dashboard", "transactions", "categories", "admin", "download", "sheets", "ui", "version"}
	got := map[string]*cobra.Command{}
	for _, c := range root.Commands() {
		got[c.Name()] = c
	}
	for _, name := range want {
		assert.Contains(t, got, name)
	}

	tx, _, err := root.Find([]string{"transactions", "import"})
	require.NoError(t, err)
	assert.Equal(t, "import", tx.Name())
	assert.Equal(t, defaultImportCategory, tx.Flag("income-category").DefValue)

	del, _, err := root.Find([]string{"tx", "delete"})
	require.NoError(t, err)
	assert.NotNil(t, del.Flag("yes"), "delete can skip confirmation")
}

func TestVersion(t *testing.T) {
	h := newCLI(t)
	res := h.run("", "version")
	require.NoError(t, res.err)
	assert.Equal(t, "money dev\n", res.stdout)
}

func TestLogin_PersistsSession(t *testing.T) {
	h := newCLI(t)
	h.login(testutil.AdminUsername, testutil.AdminPassword)

	res := h.run("", "whoami")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "admin (superadmin)")

	res = h.run("", "logout")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "Logout berhasil")

	res = h.run("", "whoami")
	require.ErrorIs(t, res.err, common.ErrNotAuthenticated)
	assert.Contains(t, errorMessage(res.err), "money login")
}

func TestLogin_AsksForUsername(t *testing.T) {
	h := newCLI(t)
	res := h.run("admin\nadmin123\n", "login")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stderr, pages.MsgLoginSucceeded)
	assert.Contains(t, res.stderr, "admin (superadmin)")
}

func TestLogin_Failures(t *testing.T) {
	t.Run("wrong password", func(t *testing.T) {
		h := newCLI(t)
		res := h.run("wrong\n", "login", "-u", "admin")
		require.ErrorIs(t, res.err, pages.ErrNotified, "the notice is already printed")
		assert.Contains(t, res.stderr, "Invalid username or password")

		res = h.run("", "whoami")
		assert.ErrorIs(t, res.err, common.ErrNotAuthenticated)
	})

	t.Run("already signed in", func(t *testing.T) {
		h := newCLI(t)
		h.login(testutil.AdminUsername, testutil.AdminPassword)
		res := h.run("admin123\n", "login", "-u", "admin")
		require.Error(t, res.err)
		assert.Contains(t, errorMessage(res.err), "Sudah login sebagai admin")
	})

	t.Run("input ends", func(t *testing.T) {
		h := newCLI(t)
		res := h.run("", "login", "-u", "admin")
		require.ErrorIs(t, res.err, io.EOF)
		assert.Contains(t, errorMessage(res.err), "Input berakhir")
		assert.Zero(t, h.backend.Count("POST", "/api/auth/login"))
	})
}

func TestLogin_RevokedTokenSignsOut(t *testing.T) {
	h := newCLI(t)
	h.login(testutil.AdminUsername, testutil.AdminPassword)
	h.backend.RevokeTokens()

	res := h.run("", "dashboard")
	require.ErrorIs(t, res.err, common.ErrNotAuthenticated)
	assert.NotContains(t, res.stderr, pages.MsgLoadFailed, "a stale token is dropped silently")

	// The stale token was removed, so no verification request is made any more.
	before := h.backend.Count("GET", "/api/users/me")
	res = h.run("", "dashboard")
	require.ErrorIs(t, res.err, common.ErrNotAuthenticated)
	assert.Equal(t, before, h.backend.Count("GET", "/api/users/me"))
}

func TestCommands_RequireLogin(t *testing.T) {
	tests := [][]string{
		{"whoami"},
		{"dashboard"},
		{"transactions", "list"},
		{"transactions", "add", "--category", "Makanan", "--amount", "1000"},
		{"transactions", "delete", "tx-1", "--yes"},
		{"categories", "list"},
		{"categories", "add", "Hobi"},
		{"admin", "users", "list"},
		{"download"},
	}

	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			h := newCLI(t)
			res := h.run("", args...)
			require.ErrorIs(t, res.err, common.ErrNotAuthenticated)
			assert.Empty(t, h.backend.Requests(), "nothing is sent without a session")
		})
	}
}

func TestAdmin_RequiresSuperadmin(t *testing.T) {
	h := newCLI(t)
	h.backend.AddUser("budi", "rahasia", model.RoleUser)
	h.login("budi", "rahasia")

	res := h.run("", "admin", "users", "list")
	require.ErrorIs(t, res.err, common.ErrForbidden)
	assert.Zero(t, h.backend.Count("GET", "/api/users"))

	res = h.run("", "categories", "list")
	assert.NoError(t, res.err, "other pages stay open to regular users")
}

func TestCheckRoute(t *testing.T) {
	superadmin := &model.User{Username: "admin", Role: model.RoleSuperadmin}
	user := &model.User{Username: "budi", Role: model.RoleUser}

	tests := []struct {
		name  string
		user  *model.User
		route guard.Route
		want  error
	}{
		{"anonymous dashboard", nil, guard.Dashboard, common.ErrNotAuthenticated},
		{"anonymous admin", nil, guard.Admin, common.ErrNotAuthenticated},
		{"anonymous login", nil, guard.Login, nil},
		{"user admin", user, guard.Admin, common.ErrForbidden},
		{"user transactions", user, guard.Transactions, nil},
		{"superadmin admin", superadmin, guard.Admin, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkRouteFor(tt.user, tt.route)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "Dibatalkan.", errorMessage(common.NewUserError("Dibatalkan.", errors.New("input canceled"))))
	assert.Equal(t, "boom", errorMessage(errors.New("boom")))
}

func TestWritten(t *testing.T) {
	boom := errors.New("boom")

	assert.NoError(t, written(nil))
	assert.NoError(t, written(fmt.Errorf("%w: %w", pages.ErrRefetchFailed, boom)))
	assert.ErrorIs(t, written(boom), boom)
	assert.ErrorIs(t, written(pages.ErrNotified), pages.ErrNotified)
}

func TestPageRoute(t *testing.T) {
	tests := map[string]guard.Route{
		"":             guard.Dashboard,
		"dashboard":    guard.Dashboard,
		"Transactions": guard.Transactions,
		"/categories/": guard.Categories,
		"admin":        guard.Admin,
	}
	for in, want := range tests {
		got, err := pageRoute(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := pageRoute("settings")
	assert.ErrorIs(t, err, guard.ErrUnknownRoute)
	assert.Equal(t, `Halaman "settings" tidak dikenal. Pilihan: dashboard, transactions, categories, admin, download`, errorMessage(err))
}

func TestUI_BackendUnreachable(t *testing.T) {
	h := adminCLI(t)
	h.backend.Fail("GET /api/health", http.StatusServiceUnavailable, "")

	res := h.run("", "ui")
	require.Error(t, res.err)
	assert.Contains(t, errorMessage(res.err), "tidak dapat dihubungi")
	assert.Equal(t, 1, h.backend.Count(http.MethodGet, "/api/health"))

	var apiErr *api.Error
	require.ErrorAs(t, res.err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
}
