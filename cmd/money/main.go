package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/money-tracker/internal/cli"
	"github.com/Veraticus/money-tracker/internal/common"
	"github.com/Veraticus/money-tracker/internal/config"
	"github.com/Veraticus/money-tracker/internal/pages"
)

var version = "dev"

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, cli.FormatWarning(fmt.Sprintf("Gagal membaca .env: %v", err)))
	}

	interrupts := cli.NewInterruptHandler(os.Stderr)
	ctx := interrupts.HandleInterrupts(context.Background(), "")

	err := newRootCmd(viper.New()).ExecuteContext(ctx)
	if err != nil {
		if !interrupts.WasInterrupted() && !errors.Is(err, pages.ErrNotified) {
			fmt.Fprintln(os.Stderr, cli.FormatError(errorMessage(err)))
		}
		os.Exit(1)
	}
}

// errorMessage is the text shown for err. A UserError carries its own wording.
func errorMessage(err error) string {
	var userErr *common.UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	return err.Error()
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "money",
		Short: "💰 MoneyTracker di terminal",
		Long: `money: client terminal untuk MoneyTracker.

Catat pemasukan dan pengeluaran, lihat ringkasan saldo, kelola kategori
dan user, atau buka tampilan interaktif dengan "money ui".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initConfig(v, cfgFile)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/money/config.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.String("backend-url", "", "MoneyTracker backend URL (default: "+config.DefaultBackendURL+")")

	_ = v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("logging.format", flags.Lookup("log-format"))
	_ = v.BindPFlag("api.backend_url", flags.Lookup("backend-url"))

	rootCmd.AddCommand(loginCmd(v))
	rootCmd.AddCommand(logoutCmd(v))
	rootCmd.AddCommand(whoamiCmd(v))
	rootCmd.AddCommand(dashboardCmd(v))
	rootCmd.AddCommand(transactionsCmd(v))
	rootCmd.AddCommand(categoriesCmd(v))
	rootCmd.AddCommand(adminCmd(v))
	rootCmd.AddCommand(downloadCmd(v))
	rootCmd.AddCommand(sheetsCmd(v))
	rootCmd.AddCommand(uiCmd(v))
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func initConfig(v *viper.Viper, cfgFile string) error {
	config.SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := config.Dir()
		if err != nil {
			return err
		}

		v.AddConfigPath(dir)
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// MONEY_API_BACKEND_URL overrides api.backend_url.
	v.SetEnvPrefix("MONEY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := setupLogging(v); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	slog.Debug("Configuration loaded", "config_file", v.ConfigFileUsed())
	return nil
}

func setupLogging(v *viper.Viper) error {
	level, err := common.ParseLevel(v.GetString("logging.level"))
	if err != nil {
		return err
	}
	return common.SetupLogger(level, v.GetString("logging.format"))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "money %s\n", version)
		},
	}
}
