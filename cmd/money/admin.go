package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/money-tracker/internal/cli"
	"github.com/Veraticus/money-tracker/internal/guard"
	"github.com/Veraticus/money-tracker/internal/model"
	"github.com/Veraticus/money-tracker/internal/pages"
)

func adminCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrasi (khusus superadmin)",
	}

	users := &cobra.Command{
		Use:   "users",
		Short: "Kelola user",
	}
	users.AddCommand(listUsersCmd(v))
	users.AddCommand(createUserCmd(v))

	cmd.AddCommand(users)
	return cmd
}

func listUsersCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Tampilkan semua user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, v, guard.Admin, func(ctx context.Context, e *env) error {
				users, err := pages.NewAdminPage(e.client, e.notify).Load(ctx)
				if err != nil {
					return err
				}
				return cli.WriteUsers(cmd.OutOrStdout(), users)
			})
		},
	}
}

func createUserCmd(v *viper.Viper) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:     "create USERNAME",
		Short:   "Buat user baru",
		Long:    `Buat user baru. Password ditanyakan di terminal.`,
		Example: `  money admin users create budi --role user`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, v, guard.Admin, func(ctx context.Context, e *env) error {
				password, err := readPassword(ctx, cmd, newPrompter(cmd))
				if err != nil {
					return inputError(err)
				}

				form := pages.UserForm{
					Username: args[0],
					Password: password,
					Role:     model.Role(strings.ToLower(role)),
				}
				users, err := pages.NewAdminPage(e.client, e.notify).CreateUser(ctx, form)
				if err != nil {
					return written(err)
				}
				return cli.WriteUsers(cmd.OutOrStdout(), users)
			})
		},
	}

	cmd.Flags().StringVarP(&role, "role", "r", string(model.RoleUser), "role (user, superadmin)")
	return cmd
}
