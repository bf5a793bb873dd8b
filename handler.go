package glyph

// Handler is a core engine that can process a few specific messages.
// This could represent "mint a token", or "grant an operator".
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a transaction.
// It is its own interface to allow better type control in arguments.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction.
// It is its own interface to allow better type control in arguments.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Registry is an interface to register your handler,
// the setup side of a router.
type Registry interface {
	// Handle assigns the given handler to all messages with the same
	// path as the given one.
	Handle(msg Msg, h Handler)
}
