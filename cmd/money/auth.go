package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/money-tracker/internal/cli"
	"github.com/Veraticus/money-tracker/internal/guard"
	"github.com/Veraticus/money-tracker/internal/pages"
)

func loginCmd(v *viper.Viper) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Masuk ke MoneyTracker",
		Long: `Masuk dengan username dan password. Token disimpan di penyimpanan lokal
sehingga perintah berikutnya tidak perlu login lagi.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd, v)
			if err != nil {
				return err
			}
			defer e.Close()

			ctx := cmd.Context()
			if err := e.require(ctx, guard.Login); err != nil {
				return err
			}

			out := cmd.ErrOrStderr()
			fmt.Fprintln(out, cli.FormatTitle("MoneyTracker"))

			p := newPrompter(cmd)
			if username == "" {
				username, err = p.Ask(ctx, "Username", "")
				if err != nil {
					return inputError(err)
				}
			}
			password, err := readPassword(ctx, cmd, p)
			if err != nil {
				return inputError(err)
			}

			user, err := pages.NewLoginPage(e.client, e.session, e.notify).Submit(ctx, username, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("%s %s (%s)", cli.UserIcon, user.Username, user.Role)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username (asked when omitted)")
	return cmd
}

func logoutCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Keluar dan hapus token yang tersimpan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd, v)
			if err != nil {
				return err
			}
			defer e.Close()

			e.session.Logout()
			fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess("Logout berhasil"))
			return nil
		},
	}
}

func whoamiCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Tampilkan user yang sedang login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, v, guard.Dashboard, func(_ context.Context, e *env) error {
				user := e.session.User()
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", cli.UserIcon, user.Username, user.Role)
				return nil
			})
		},
	}
}
