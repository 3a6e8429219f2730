package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/money-tracker/internal/common"
	"github.com/Veraticus/money-tracker/internal/config"
	"github.com/Veraticus/money-tracker/internal/guard"
	"github.com/Veraticus/money-tracker/internal/tui"
	"github.com/Veraticus/money-tracker/internal/tui/themes"
)

func uiCmd(v *viper.Viper) *cobra.Command {
	var (
		page    string
		logFile string
	)

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Buka tampilan interaktif",
		Long: `Buka tampilan interaktif MoneyTracker.

Tombol 1-4 berpindah halaman, L untuk logout, ? menampilkan bantuan dan q untuk
keluar. Log tidak ditulis ke terminal; gunakan --log-file untuk menyimpannya.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			route, err := pageRoute(page)
			if err != nil {
				return err
			}
			closeLog, err := redirectLogs(v, logFile)
			if err != nil {
				return err
			}
			defer closeLog()

			e, err := openEnv(cmd, v)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.client.Health(cmd.Context()); err != nil {
				return common.NewUserError("Backend MoneyTracker tidak dapat dihubungi. Periksa api.backend_url.", err)
			}

			err = tui.Run(cmd.Context(),
				tui.WithBackend(e.client),
				tui.WithSession(e.session),
				tui.WithTheme(themes.GetTheme(v.GetString("ui.theme"))),
				tui.WithRoute(route),
			)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&page, "page", "p", "dashboard", "page to open (dashboard, transactions, categories, admin)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file while the UI runs")
	return cmd
}

// pageRoute maps a page name such as "transactions" to its route.
func pageRoute(page string) (guard.Route, error) {
	name := strings.Trim(strings.ToLower(strings.TrimSpace(page)), "/")
	if name == "" || name == "dashboard" {
		return guard.Dashboard, nil
	}
	route, err := guard.ParseRoute("/" + name)
	if err != nil {
		msg := fmt.Sprintf("Halaman %q tidak dikenal. Pilihan: %s", page, strings.Join(pageNames(), ", "))
		return "", common.NewUserError(msg, err)
	}
	return route, nil
}

// pageNames lists the names accepted by --page.
func pageNames() []string {
	var names []string
	for _, r := range guard.Routes() {
		switch r {
		case guard.Login:
		case guard.Dashboard:
			names = append(names, "dashboard")
		default:
			names = append(names, strings.TrimPrefix(string(r), "/"))
		}
	}
	return names
}

// redirectLogs keeps log lines off the screen the UI draws on. The returned
// func closes the log file, if any.
func redirectLogs(v *viper.Viper, path string) (func(), error) {
	level, err := common.ParseLevel(v.GetString("logging.level"))
	if err != nil {
		return nil, err
	}

	var w io.Writer = io.Discard
	closeLog := func() {}
	if path != "" {
		f, err := os.OpenFile(config.ExpandPath(path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closeLog = func() { _ = f.Close() }
	}
	if err := common.SetupLoggerTo(w, level, v.GetString("logging.format")); err != nil {
		closeLog()
		return nil, err
	}
	return closeLog, nil
}
