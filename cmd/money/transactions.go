package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/money-tracker/internal/cli"
	"github.com/Veraticus/money-tracker/internal/common"
	"github.com/Veraticus/money-tracker/internal/filter"
	"github.com/Veraticus/money-tracker/internal/guard"
	"github.com/Veraticus/money-tracker/internal/model"
	"github.com/Veraticus/money-tracker/internal/pages"
)

func transactionsCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "Kelola transaksi",
	}

	cmd.AddCommand(listTransactionsCmd(v))
	cmd.AddCommand(addTransactionCmd(v))
	cmd.AddCommand(editTransactionCmd(v))
	cmd.AddCommand(deleteTransactionCmd(v))
	cmd.AddCommand(importOFXCmd(v))

	return cmd
}

func listTransactionsCmd(v *viper.Viper) *cobra.Command {
	var (
		search   string
		typeFlag string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Tampilkan transaksi",
		Long: `Tampilkan semua transaksi. --search mencocokkan deskripsi dan nama kategori
tanpa membedakan huruf besar/kecil; --type membatasi ke income atau expense.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := filter.ParseType(typeFlag)
			if err != nil {
				return err
			}

			return withEnv(cmd, v, guard.Transactions, func(ctx context.Context, e *env) error {
				data, err := pages.NewTransactionsPage(e.client, e.notify).Load(ctx)
				if err != nil {
					return err
				}

				criteria := filter.Criteria{Search: search, Type: t}
				shown := filter.Apply(data.Transactions, criteria)

				out := cmd.OutOrStdout()
				if len(shown) == 0 {
					msg := "Belum ada transaksi"
					if !criteria.IsZero() {
						msg = "Tidak ada transaksi yang cocok"
					}
					fmt.Fprintln(out, cli.SubtleStyle.Render(msg))
					return nil
				}
				if err := cli.WriteTransactions(out, pages.TransactionRows(shown)); err != nil {
					return err
				}
				if !criteria.IsZero() {
					fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf("%d dari %d transaksi", len(shown), len(data.Transactions))))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "search description and category name")
	cmd.Flags().StringVarP(&typeFlag, "type", "t", "all", "filter by type (all, income, expense)")
	return cmd
}

// formFlags are the flags shared by add and edit.
type formFlags struct {
	typ         string
	category    string
	amount      string
	description string
	date        string
}

func (f *formFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.typ, "type", "t", string(model.TypeExpense), "transaction type (income, expense)")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "category name or ID")
	cmd.Flags().StringVarP(&f.amount, "amount", "a", "", "amount in rupiah, for example 50000")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "description")
	cmd.Flags().StringVar(&f.date, "date", "", "date as YYYY-MM-DD (default: today)")
}

// apply copies the flags the user set onto form.
func (f *formFlags) apply(cmd *cobra.Command, form pages.Form, categories []model.Category) pages.Form {
	changed := cmd.Flags().Changed
	if changed("type") {
		form = form.WithType(model.TransactionType(strings.ToLower(f.typ)))
	}
	if changed("category") {
		form.CategoryID = resolveCategory(categories, form.Type, f.category)
	}
	if changed("amount") {
		form.Amount = f.amount
	}
	if changed("description") {
		form.Description = f.description
	}
	if changed("date") {
		form.Date = f.date
	}
	return form
}

// resolveCategory maps a category name of type t to its ID. Anything else is
// passed through unchanged for the backend to judge.
func resolveCategory(categories []model.Category, t model.TransactionType, value string) string {
	value = strings.TrimSpace(value)
	for _, c := range categories {
		if c.ID == value {
			return c.ID
		}
	}
	for _, c := range model.CategoriesOfType(categories, t) {
		if strings.EqualFold(c.Name, value) {
			return c.ID
		}
	}
	return value
}

func addTransactionCmd(v *viper.Viper) *cobra.Command {
	var flags formFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Tambah transaksi",
		Example: `  money transactions add --type expense --category Makanan --amount 50000 --description "makan siang"
  money transactions add -t income -c Gaji -a 5000000 --date 2024-08-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, v, guard.Transactions, func(ctx context.Context, e *env) error {
				page := pages.NewTransactionsPage(e.client, e.notify)
				data, err := page.Load(ctx)
				if err != nil {
					return err
				}

				form := flags.apply(cmd, pages.NewForm(time.Now()), data.Categories)
				_, err = page.Save(ctx, "", form)
				return written(err)
			})
		},
	}

	flags.register(cmd)
	return cmd
}

func editTransactionCmd(v *viper.Viper) *cobra.Command {
	var flags formFlags

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Ubah transaksi",
		Long: `Ubah transaksi. Hanya flag yang diberikan yang diubah; mengganti --type
mengosongkan kategori sehingga --category perlu diberikan juga.`,
		Example: `  money transactions edit 64f1c2 --amount 75000`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return withEnv(cmd, v, guard.Transactions, func(ctx context.Context, e *env) error {
				page := pages.NewTransactionsPage(e.client, e.notify)
				data, err := page.Load(ctx)
				if err != nil {
					return err
				}

				tx, ok := findTransaction(data.Transactions, id)
				if !ok {
					return common.NewUserError("Transaksi "+id+" tidak ditemukan", common.ErrNotFound)
				}

				form := flags.apply(cmd, pages.FormFromTransaction(tx), data.Categories)
				_, err = page.Save(ctx, tx.ID, form)
				return written(err)
			})
		},
	}

	flags.register(cmd)
	return cmd
}

func deleteTransactionCmd(v *viper.Viper) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Hapus transaksi",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, v, guard.Transactions, func(ctx context.Context, e *env) error {
				_, err := pages.NewTransactionsPage(e.client, e.notify).Delete(ctx, args[0], promptConfirmer(cmd, yes))
				switch err = written(err); {
				case errors.Is(err, common.ErrNotConfirmed):
					fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatInfo("Transaksi tidak dihapus"))
					return nil
				case err != nil:
					return inputError(err)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking for confirmation")
	return cmd
}

func findTransaction(txs []model.Transaction, id string) (model.Transaction, bool) {
	for _, tx := range txs {
		if tx.ID == id {
			return tx, true
		}
	}
	return model.Transaction{}, false
}
