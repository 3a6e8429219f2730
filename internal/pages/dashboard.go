package pages

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/money-tracker/internal/model"
)

// RecentLimit is how many transactions the dashboard lists.
const RecentLimit = 5

// DashboardData is what the dashboard fetched. Stats is nil when not loaded.
type DashboardData struct {
	Stats  *model.Stats
	Recent []model.Transaction
}

// DashboardPage loads the aggregates and the latest transactions.
type DashboardPage struct {
	api    DashboardAPI
	notify Notifier
}

// NewDashboardPage creates the dashboard page.
func NewDashboardPage(a DashboardAPI, n Notifier) *DashboardPage {
	return &DashboardPage{api: a, notify: orDiscard(n)}
}

// Load fetches stats and transactions concurrently. If either request fails
// both results are dropped, a notice is raised and empty data is returned
// together with the error.
func (p *DashboardPage) Load(ctx context.Context) (DashboardData, error) {
	var (
		stats *model.Stats
		txs   []model.Transaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = p.api.Stats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		txs, err = p.api.ListTransactions(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return DashboardData{}, fail(p.notify, MsgLoadFailed, err)
	}

	if len(txs) > RecentLimit {
		txs = txs[:RecentLimit]
	}
	return DashboardData{Stats: stats, Recent: txs}, nil
}
