package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/Veraticus/money-tracker/internal/api"
	"github.com/Veraticus/money-tracker/internal/cli"
	"github.com/Veraticus/money-tracker/internal/common"
	"github.com/Veraticus/money-tracker/internal/config"
	"github.com/Veraticus/money-tracker/internal/guard"
	"github.com/Veraticus/money-tracker/internal/model"
	"github.com/Veraticus/money-tracker/internal/pages"
	"github.com/Veraticus/money-tracker/internal/session"
	"github.com/Veraticus/money-tracker/internal/storage"
)

// initStorage opens local storage with proper path expansion.
func initStorage(ctx context.Context, v *viper.Viper) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(config.StoragePath(v))
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// env is what a command needs to talk to the backend as the stored user.
type env struct {
	storage *storage.SQLiteStorage
	session *session.Store
	client  *api.Client
	notify  *cli.Notifier
}

// openEnv wires storage, session and client from configuration. The session
// is not restored yet; see restore.
func openEnv(cmd *cobra.Command, v *viper.Viper) (*env, error) {
	apiCfg, err := config.LoadAPI(v)
	if err != nil {
		return nil, err
	}

	store, err := initStorage(cmd.Context(), v)
	if err != nil {
		return nil, err
	}

	sess := session.NewStore(storage.NewTokenStore(store))
	client := api.New(apiCfg.BaseURL(), sess, api.WithTimeout(apiCfg.Timeout))

	return &env{
		storage: store,
		session: sess,
		client:  client,
		notify:  cli.NewNotifier(cmd.ErrOrStderr()),
	}, nil
}

// restore runs the session bootstrap against the backend.
func (e *env) restore(ctx context.Context) session.Status {
	status := e.session.Bootstrap(ctx, e.client)
	common.LogDebug("Session bootstrap finished", common.Fields{"status": status.String()})
	return status
}

// require restores the session and checks that route may be opened.
func (e *env) require(ctx context.Context, route guard.Route) error {
	e.restore(ctx)
	return checkRouteFor(e.session.User(), route)
}

func (e *env) Close() {
	if err := e.storage.Close(); err != nil {
		slog.Warn("Failed to close storage", "error", err)
	}
}

// checkRouteFor turns a guard redirect into an error a terminal user can act on.
func checkRouteFor(user *model.User, route guard.Route) error {
	d := guard.ForUser(user, route)
	if d.Action == guard.Render {
		return nil
	}
	switch d.Target {
	case guard.Login:
		return common.NewUserError(`Belum login. Jalankan "money login" terlebih dahulu.`, common.ErrNotAuthenticated)
	case guard.Dashboard:
		if route == guard.Login {
			return common.NewUserError("Sudah login sebagai "+user.Username+`. Jalankan "money logout" untuk berganti user.`, nil)
		}
		return common.NewUserError("Halaman ini hanya untuk superadmin.", common.ErrForbidden)
	default:
		return fmt.Errorf("unexpected redirect from %s to %s", route, d.Target)
	}
}

// withEnv opens an env, checks route and runs fn.
func withEnv(cmd *cobra.Command, v *viper.Viper, route guard.Route, fn func(ctx context.Context, e *env) error) error {
	e, err := openEnv(cmd, v)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	if err := e.require(ctx, route); err != nil {
		return err
	}
	return fn(ctx, e)
}

func newPrompter(cmd *cobra.Command) *cli.Prompter {
	return cli.NewPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
}

// promptConfirmer asks on the terminal unless skip is set.
func promptConfirmer(cmd *cobra.Command, skip bool) pages.Confirmer {
	if skip {
		return pages.Confirmed
	}
	return newPrompter(cmd)
}

// readPassword reads without echo when stdin is a terminal.
func readPassword(ctx context.Context, cmd *cobra.Command, p *cli.Prompter) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		w := cmd.ErrOrStderr()
		fmt.Fprint(w, cli.FormatPrompt("Password"))
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(w)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}
	return p.Ask(ctx, "Password", "")
}

// written drops ErrRefetchFailed: the change was stored and the reload
// failure has already been shown, so the command succeeded.
func written(err error) error {
	if errors.Is(err, pages.ErrRefetchFailed) {
		return nil
	}
	return err
}

// inputError gives a failed prompt a short message.
func inputError(err error) error {
	switch {
	case errors.Is(err, cli.ErrInputCancelled):
		return common.NewUserError("Dibatalkan.", err)
	case errors.Is(err, io.EOF):
		return common.NewUserError("Input berakhir sebelum pertanyaan dijawab.", err)
	default:
		return err
	}
}
