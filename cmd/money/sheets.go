package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/money-tracker/internal/cli"
	"github.com/Veraticus/money-tracker/internal/common"
	"github.com/Veraticus/money-tracker/internal/config"
	"github.com/Veraticus/money-tracker/internal/guard"
	"github.com/Veraticus/money-tracker/internal/model"
	"github.com/Veraticus/money-tracker/internal/pages"
	"github.com/Veraticus/money-tracker/internal/sheets"
)

func sheetsCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Ekspor ke Google Sheets",
	}

	cmd.AddCommand(sheetsAuthCmd(v))
	cmd.AddCommand(sheetsExportCmd(v))

	return cmd
}

func sheetsAuthCmd(v *viper.Viper) *cobra.Command {
	var (
		clientID     string
		clientSecret string
		callbackAddr string
	)

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with Google Sheets",
		Long: `Authenticate with Google Sheets using OAuth2.

This opens the Google consent page, waits for the redirect on a local port and
stores the token in sheets.token_file. Run it once before "money sheets export"
unless a service account is configured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if clientID == "" {
				clientID = firstNonEmpty(v.GetString("sheets.client_id"), os.Getenv("GOOGLE_SHEETS_CLIENT_ID"))
			}
			if clientSecret == "" {
				clientSecret = firstNonEmpty(v.GetString("sheets.client_secret"), os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET"))
			}
			if clientID == "" || clientSecret == "" {
				return common.NewUserError(
					"OAuth2 credentials not found. Set sheets.client_id and sheets.client_secret or use --client-id and --client-secret",
					common.ErrMissingConfig)
			}

			tokenFile := config.ExpandPath(firstNonEmpty(v.GetString("sheets.token_file"), config.DefaultSheetsTokenFile))
			slog.Info("Starting Google Sheets authentication", "token_file", tokenFile)

			out := cmd.ErrOrStderr()
			_, err := sheets.AuthenticateOAuth2Interactive(cmd.Context(), sheets.OAuth2Config{
				ClientID:     clientID,
				ClientSecret: clientSecret,
				TokenFile:    tokenFile,
				CallbackAddr: callbackAddr,
				OpenURL: func(url string) {
					fmt.Fprintln(out, cli.FormatInfo("Buka URL ini di browser untuk memberi akses:"))
					fmt.Fprintln(out, url)
				},
			})
			if err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}

			fmt.Fprintln(out, cli.FormatSuccess("Google Sheets siap dipakai. Jalankan \"money sheets export\"."))
			return nil
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", "", "OAuth2 client ID")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "OAuth2 client secret")
	cmd.Flags().StringVar(&callbackAddr, "callback-addr", sheets.DefaultCallbackAddr, "address the OAuth2 redirect is received on")
	return cmd
}

func sheetsExportCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Ekspor ringkasan dan semua transaksi ke Google Sheets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sheetsCfg, err := config.LoadSheetsConfig(v)
			if err != nil {
				return err
			}

			return withEnv(cmd, v, guard.Dashboard, func(ctx context.Context, e *env) error {
				report, err := loadReport(ctx, e)
				if err != nil {
					return err
				}

				writer, err := sheets.NewWriter(ctx, *sheetsCfg, slog.Default())
				if err != nil {
					return err
				}
				id, err := writer.Export(ctx, report)
				if err != nil {
					return err
				}

				out := cmd.ErrOrStderr()
				fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%d transaksi diekspor", len(report.Transactions))))
				fmt.Fprintln(cmd.OutOrStdout(), "https://docs.google.com/spreadsheets/d/"+id)
				return nil
			})
		},
	}
}

// loadReport fetches the stats and every transaction. Either failure drops both.
func loadReport(ctx context.Context, e *env) (sheets.Report, error) {
	var (
		stats *model.Stats
		txs   []model.Transaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = e.client.Stats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		txs, err = e.client.ListTransactions(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		e.notify.Notify(pages.Notice{Level: pages.LevelError, Message: pages.MsgLoadFailed})
		return sheets.Report{}, fmt.Errorf("%w: %w", pages.ErrNotified, err)
	}

	return sheets.Report{GeneratedAt: time.Now(), Stats: stats, Transactions: txs}, nil
}

func firstNonEmpty(values ...string) string {
	for _, s := range values {
		if s != "" {
			return s
		}
	}
	return ""
}
