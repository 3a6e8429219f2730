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

func categoriesCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Kelola kategori",
	}

	cmd.AddCommand(listCategoriesCmd(v))
	cmd.AddCommand(addCategoryCmd(v))

	return cmd
}

func listCategoriesCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Tampilkan kategori pemasukan dan pengeluaran",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, v, guard.Categories, func(ctx context.Context, e *env) error {
				cats, err := pages.NewCategoriesPage(e.client, e.notify).Load(ctx)
				if err != nil {
					return err
				}
				return cli.WriteCategories(cmd.OutOrStdout(), cats)
			})
		},
	}
}

func addCategoryCmd(v *viper.Viper) *cobra.Command {
	var typeFlag string

	cmd := &cobra.Command{
		Use:     "add NAME",
		Short:   "Tambah kategori custom",
		Example: `  money categories add Hobi --type expense`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := model.TransactionType(strings.ToLower(typeFlag))
			return withEnv(cmd, v, guard.Categories, func(ctx context.Context, e *env) error {
				_, err := pages.NewCategoriesPage(e.client, e.notify).Create(ctx, args[0], t)
				return written(err)
			})
		},
	}

	cmd.Flags().StringVarP(&typeFlag, "type", "t", string(model.TypeExpense), "category type (income, expense)")
	return cmd
}
