package pages

import (
	"context"
	"fmt"

	"github.com/Veraticus/money-tracker/internal/api"
	"github.com/Veraticus/money-tracker/internal/model"
)

// ImportFailure is a draft the backend rejected.
type ImportFailure struct {
	Err   error
	Index int
}

// ImportResult summarizes an import.
type ImportResult struct {
	Data     TransactionsData
	Failures []ImportFailure
	Created  int
}

// Import creates each draft with its own request, then fetches the lists
// again. step, when set, is called after every draft. A rejected draft is
// recorded and the import continues; a canceled context stops it.
func (p *TransactionsPage) Import(ctx context.Context, drafts []model.TransactionDraft, step func()) (ImportResult, error) {
	var result ImportResult

	err := p.gate.Run(func() error {
		for i, d := range drafts {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := p.api.CreateTransaction(ctx, d); err != nil {
				result.Failures = append(result.Failures, ImportFailure{Index: i, Err: err})
			} else {
				result.Created++
			}
			if step != nil {
				step()
			}
		}
		return nil
	})
	if err != nil {
		return result, err
	}

	if len(result.Failures) > 0 {
		first := result.Failures[0]
		p.notify.Notify(Notice{
			Level:   LevelError,
			Message: fmt.Sprintf("%s (%d/%d): %s", MsgImportFailed, len(result.Failures), len(drafts), api.DetailOr(first.Err, MsgTransactionSaveErr)),
		})
	} else {
		succeed(p.notify, fmt.Sprintf("%s: %d transaksi", MsgImportDone, result.Created))
	}

	data, err := p.Load(ctx)
	result.Data = data
	return result, refetchErr(err)
}
