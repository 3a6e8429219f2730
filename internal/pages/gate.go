package pages

import "sync/atomic"

// Gate lets one submission run at a time. The zero value is open.
type Gate struct {
	busy atomic.Bool
}

// Run calls fn unless another call is in flight, in which case it returns ErrBusy.
func (g *Gate) Run(fn func() error) error {
	if !g.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer g.busy.Store(false)
	return fn()
}

// Busy reports whether a submission is in flight.
func (g *Gate) Busy() bool {
	return g.busy.Load()
}
