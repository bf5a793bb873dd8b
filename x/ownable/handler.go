package ownable

import (
	"github.com/tendermint/tendermint/libs/common"

	"github.com/glyph-network/glyph"
	"github.com/glyph-network/glyph/errors"
)

const updateOwnerCost int64 = 50

// RegisterRoutes binds the ownership handlers of one named record into
// the given registry.
func RegisterRoutes(r glyph.Registry, pkg string, addr glyph.AddressValidator) {
	ctrl := NewController()
	r.Handle(&ProposeOwnerMsg{}, ProposeHandler{pkg: pkg, addr: addr, ctrl: ctrl})
	r.Handle(&AcceptOwnerMsg{}, AcceptHandler{pkg: pkg, ctrl: ctrl})
	r.Handle(&RenounceOwnerMsg{}, RenounceHandler{pkg: pkg, ctrl: ctrl})
}

// ProposeHandler processes ProposeOwnerMsg.
type ProposeHandler struct {
	pkg  string
	addr glyph.AddressValidator
	ctrl Controller
}

var _ glyph.Handler = ProposeHandler{}

// Check implements glyph.Handler.
func (h ProposeHandler) Check(ctx glyph.Context, db glyph.KVStore, tx glyph.Tx) (*glyph.CheckResult, error) {
	var msg ProposeOwnerMsg
	if err := glyph.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	return &glyph.CheckResult{GasAllocated: updateOwnerCost}, nil
}

// Deliver implements glyph.Handler.
func (h ProposeHandler) Deliver(ctx glyph.Context, db glyph.KVStore, tx glyph.Tx) (*glyph.DeliverResult, error) {
	var msg ProposeOwnerMsg
	if err := glyph.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	actor := glyph.GetSender(ctx)
	if actor == "" {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no sender")
	}
	newOwner, err := h.addr.Validate(msg.NewOwner)
	if err != nil {
		return nil, errors.Wrap(err, "new owner")
	}
	if err := h.ctrl.Propose(ctx, db, h.pkg, actor, newOwner, msg.Expiry); err != nil {
		return nil, err
	}
	return &glyph.DeliverResult{
		Tags: []common.KVPair{
			glyph.Pair("action", "propose_owner"),
			glyph.Pair("pending_owner", string(newOwner)),
		},
	}, nil
}

// AcceptHandler processes AcceptOwnerMsg.
type AcceptHandler struct {
	pkg  string
	ctrl Controller
}

var _ glyph.Handler = AcceptHandler{}

// Check implements glyph.Handler.
func (h AcceptHandler) Check(ctx glyph.Context, db glyph.KVStore, tx glyph.Tx) (*glyph.CheckResult, error) {
	var msg AcceptOwnerMsg
	if err := glyph.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	return &glyph.CheckResult{GasAllocated: updateOwnerCost}, nil
}

// Deliver implements glyph.Handler.
func (h AcceptHandler) Deliver(ctx glyph.Context, db glyph.KVStore, tx glyph.Tx) (*glyph.DeliverResult, error) {
	var msg AcceptOwnerMsg
	if err := glyph.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	actor := glyph.GetSender(ctx)
	if actor == "" {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no sender")
	}
	if err := h.ctrl.Accept(ctx, db, h.pkg, actor); err != nil {
		return nil, err
	}
	return &glyph.DeliverResult{
		Tags: []common.KVPair{
			glyph.Pair("action", "accept_owner"),
			glyph.Pair("owner", string(actor)),
		},
	}, nil
}

// RenounceHandler processes RenounceOwnerMsg.
type RenounceHandler struct {
	pkg  string
	ctrl Controller
}

var _ glyph.Handler = RenounceHandler{}

// Check implements glyph.Handler.
func (h RenounceHandler) Check(ctx glyph.Context, db glyph.KVStore, tx glyph.Tx) (*glyph.CheckResult, error) {
	var msg RenounceOwnerMsg
	if err := glyph.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	return &glyph.CheckResult{GasAllocated: updateOwnerCost}, nil
}

// Deliver implements glyph.Handler.
func (h RenounceHandler) Deliver(ctx glyph.Context, db glyph.KVStore, tx glyph.Tx) (*glyph.DeliverResult, error) {
	var msg RenounceOwnerMsg
	if err := glyph.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	actor := glyph.GetSender(ctx)
	if actor == "" {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no sender")
	}
	if err := h.ctrl.Renounce(db, h.pkg, actor); err != nil {
		return nil, err
	}
	return &glyph.DeliverResult{
		Tags: []common.KVPair{
			glyph.Pair("action", "renounce_owner"),
		},
	}, nil
}
