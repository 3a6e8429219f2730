package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/money-tracker/internal/cli"
	"github.com/Veraticus/money-tracker/internal/common"
	"github.com/Veraticus/money-tracker/internal/guard"
	"github.com/Veraticus/money-tracker/internal/model"
	"github.com/Veraticus/money-tracker/internal/ofx"
	"github.com/Veraticus/money-tracker/internal/pages"
)

// defaultImportCategory exists for both types in a fresh backend.
const defaultImportCategory = "Lainnya"

func importOFXCmd(v *viper.Viper) *cobra.Command {
	var (
		incomeCategory  string
		expenseCategory string
		dryRun          bool
	)

	cmd := &cobra.Command{
		Use:   "import FILES...",
		Short: "Import transaksi dari file OFX/QFX",
		Long: `Import transaksi dari file OFX atau QFX hasil ekspor bank. Nominal negatif
menjadi pengeluaran, nominal positif menjadi pemasukan. Setiap transaksi
dikirim satu per satu ke backend.`,
		Example: `  money transactions import ~/Downloads/bca_agustus.qfx
  money transactions import ~/Downloads/*.ofx --income-category Gaji --expense-category Belanja`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandFiles(args)
			if err != nil {
				return err
			}

			return withEnv(cmd, v, guard.Transactions, func(ctx context.Context, e *env) error {
				entries, err := readStatements(ctx, files)
				if err != nil {
					return err
				}
				out := cmd.ErrOrStderr()
				if len(entries) == 0 {
					fmt.Fprintln(out, cli.FormatWarning("Tidak ada transaksi di file"))
					return nil
				}

				page := pages.NewTransactionsPage(e.client, e.notify)
				data, err := page.Load(ctx)
				if err != nil {
					return err
				}

				drafts, err := draftsFor(entries, data.Categories, incomeCategory, expenseCategory)
				if err != nil {
					return err
				}

				if dryRun {
					fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("%d transaksi akan diimpor (dry run)", len(drafts))))
					return cli.WriteTransactions(cmd.OutOrStdout(), pages.TransactionRows(previewTransactions(drafts, data.Categories)))
				}

				bar := cli.NewProgressBar(out, len(drafts), "Mengimpor")
				result, err := page.Import(ctx, drafts, func() { _ = bar.Add(1) })
				reloaded := !errors.Is(err, pages.ErrRefetchFailed)
				if err = written(err); err != nil {
					return err
				}
				for _, f := range result.Failures {
					common.LogError(f.Err, "Import entry rejected", common.Fields{"index": f.Index})
				}

				if reloaded {
					fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Total transaksi sekarang: %d", len(result.Data.Transactions))))
				}
				if len(result.Failures) > 0 {
					return pages.ErrNotified
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&incomeCategory, "income-category", defaultImportCategory, "category name or ID for income entries")
	cmd.Flags().StringVar(&expenseCategory, "expense-category", defaultImportCategory, "category name or ID for expense entries")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be imported without sending anything")
	return cmd
}

// expandFiles resolves glob patterns. A pattern without matches must name an existing file.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) > 0 {
			files = append(files, matches...)
			continue
		}
		if _, err := os.Stat(pattern); err != nil {
			return nil, common.NewUserError("File tidak ditemukan: "+pattern, err)
		}
		files = append(files, pattern)
	}
	return files, nil
}

// readStatements parses every file and drops entries whose FITID was already seen.
func readStatements(ctx context.Context, files []string) ([]ofx.Entry, error) {
	parser := ofx.NewParser()
	seen := make(map[string]bool)
	var entries []ofx.Entry

	for _, path := range files {
		parsed, err := parseFile(ctx, parser, path)
		if err != nil {
			return nil, err
		}

		added := 0
		for _, entry := range parsed {
			if entry.FITID != "" {
				if seen[entry.FITID] {
					continue
				}
				seen[entry.FITID] = true
			}
			entries = append(entries, entry)
			added++
		}
		common.LogInfo("Statement parsed", common.Fields{
			"file":    filepath.Base(path),
			"entries": len(parsed),
			"new":     added,
		})
	}
	return entries, nil
}

func parseFile(ctx context.Context, parser *ofx.Parser, path string) ([]ofx.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	entries, err := parser.Parse(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return entries, nil
}

// draftsFor files each entry under the category chosen for its type.
func draftsFor(entries []ofx.Entry, categories []model.Category, income, expense string) ([]model.TransactionDraft, error) {
	ids := map[model.TransactionType]string{}
	for t, value := range map[model.TransactionType]string{model.TypeIncome: income, model.TypeExpense: expense} {
		id := resolveCategory(categories, t, value)
		if cat := findCategory(categories, id); cat == nil || cat.Type != t {
			return nil, common.NewUserError(fmt.Sprintf("Kategori %s %q tidak ditemukan", t.Label(), value), common.ErrNotFound)
		}
		ids[t] = id
	}

	drafts := make([]model.TransactionDraft, 0, len(entries))
	for _, entry := range entries {
		drafts = append(drafts, entry.Draft(ids[entry.Type]))
	}
	return drafts, nil
}

// previewTransactions renders drafts the way the list shows saved transactions.
func previewTransactions(drafts []model.TransactionDraft, categories []model.Category) []model.Transaction {
	txs := make([]model.Transaction, 0, len(drafts))
	for _, d := range drafts {
		tx := model.Transaction{
			Type:        d.Type,
			CategoryID:  d.CategoryID,
			Amount:      d.Amount,
			Description: d.Description,
			Date:        d.Date,
		}
		if cat := findCategory(categories, d.CategoryID); cat != nil {
			name := cat.Name
			tx.CategoryName = &name
		}
		txs = append(txs, tx)
	}
	return txs
}

func findCategory(categories []model.Category, id string) *model.Category {
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i]
		}
	}
	return nil
}
