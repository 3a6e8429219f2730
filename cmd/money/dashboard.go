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

func dashboardCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"stats"},
		Short:   "Ringkasan pemasukan, pengeluaran dan saldo",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, v, guard.Dashboard, func(ctx context.Context, e *env) error {
				data, err := pages.NewDashboardPage(e.client, e.notify).Load(ctx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, cli.FormatTitle("Dashboard"))
				return cli.WriteDashboard(out, pages.BuildDashboardView(data.Stats, data.Recent))
			})
		},
	}
}
