/*
Package app wires handlers into a dispatcher that executes one
transaction at a time against a cache-wrapped store.

The execution model is strictly sequential: a call either applies all
of its writes or none of them. The dispatcher cache-wraps the store for
every delivery, hands the wrap to the handler, and only writes the wrap
through when the handler reports success. Queries always observe the
latest committed state.
*/
package app

import (
	"github.com/glyph-network/glyph"
	"github.com/glyph-network/glyph/errors"
)

// Dispatcher owns the store and routes transactions to handlers with
// all-or-nothing semantics per call.
type Dispatcher struct {
	db      glyph.CacheableKVStore
	handler glyph.Handler
}

// NewDispatcher combines a cacheable store with a handler, usually a
// Router holding the routes of every registered extension.
func NewDispatcher(db glyph.CacheableKVStore, h glyph.Handler) *Dispatcher {
	return &Dispatcher{
		db:      db,
		handler: h,
	}
}

// View exposes the latest committed state for read-only access. Query
// facades are built on top of this.
func (d *Dispatcher) View() glyph.ReadOnlyKVStore {
	return d.db
}

// Check runs the transaction against a throwaway cache wrap, so state
// is never modified no matter what the handler does.
func (d *Dispatcher) Check(ctx glyph.Context, tx glyph.Tx) (res *glyph.CheckResult, err error) {
	defer errors.Recover(&err)

	cache := d.db.CacheWrap()
	defer cache.Discard()

	return d.handler.Check(ctx, cache, tx)
}

// Deliver executes the transaction. On success every write of the
// handler is committed at once, on any failure the store is left
// untouched.
func (d *Dispatcher) Deliver(ctx glyph.Context, tx glyph.Tx) (res *glyph.DeliverResult, err error) {
	defer errors.Recover(&err)

	cache := d.db.CacheWrap()

	res, err = d.handler.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	cache.Write()

	logger := glyph.GetLogger(ctx)
	if msg, merr := tx.GetMsg(); merr == nil {
		logger.Info("delivered", "path", msg.Path(), "log", res.Log)
	}
	return res, nil
}
