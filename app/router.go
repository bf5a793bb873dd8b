package app

import (
	"fmt"
	"regexp"

	"github.com/glyph-network/glyph"
	"github.com/glyph-network/glyph/errors"
)

var isPath = regexp.MustCompile(`^[a-z0-9_]+/[a-z0-9_]+$`).MatchString

// Router is a closed routing table: exactly one handler per message
// path, all registered during setup. Routing an unknown path is an
// ErrNotFound, never a fallback.
type Router struct {
	routes map[string]glyph.Handler
}

var _ glyph.Registry = (*Router)(nil)
var _ glyph.Handler = (*Router)(nil)

// NewRouter initializes an empty router.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]glyph.Handler),
	}
}

// Handle implements glyph.Registry. Registering a path twice or using a
// malformed path is a setup bug and panics right away.
func (r *Router) Handle(m glyph.Msg, h glyph.Handler) {
	path := m.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %q", path))
	}
	r.routes[path] = h
}

// handler returns the registered handler or an error wrapping
// ErrNotFound.
func (r *Router) handler(tx glyph.Tx) (glyph.Handler, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot get message")
	}
	h, ok := r.routes[msg.Path()]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no handler for %q", msg.Path())
	}
	return h, nil
}

// Check dispatches the dry run to the handler registered for the
// message path.
func (r *Router) Check(ctx glyph.Context, store glyph.KVStore, tx glyph.Tx) (*glyph.CheckResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, store, tx)
}

// Deliver dispatches the execution to the handler registered for the
// message path.
func (r *Router) Deliver(ctx glyph.Context, store glyph.KVStore, tx glyph.Tx) (*glyph.DeliverResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, store, tx)
}
