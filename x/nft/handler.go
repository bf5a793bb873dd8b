package nft

import (
	"github.com/tendermint/tendermint/libs/common"

	"github.com/glyph-network/glyph"
	"github.com/glyph-network/glyph/errors"
	"github.com/glyph-network/glyph/x/ownable"
)

// Gas allocated per message kind, mint pays for index and counter
// writes on top of the token itself.
const (
	mintCost     int64 = 200
	moveCost     int64 = 150
	approveCost  int64 = 100
	treasuryCost int64 = 100
)

// RegisterRoutes binds all token handlers into the given registry. The
// ownership record of this package gates the treasury configuration,
// its handoff messages are registered alongside.
func RegisterRoutes(r glyph.Registry, addr glyph.AddressValidator) {
	if addr == nil {
		panic("address validator is required")
	}
	tokens := NewTokenBucket()
	operators := NewOperatorBucket()
	treasury := NewTreasuryBucket()
	owners := ownable.NewController()
	authz := Authorizer{operators: operators}

	r.Handle(&MintMsg{}, MintHandler{addr: addr, tokens: tokens})
	r.Handle(&TransferMsg{}, TransferHandler{addr: addr, tokens: tokens, authz: authz})
	r.Handle(&SendMsg{}, SendHandler{addr: addr, tokens: tokens, authz: authz})
	r.Handle(&ApproveMsg{}, ApproveHandler{addr: addr, tokens: tokens, authz: authz})
	r.Handle(&RevokeMsg{}, RevokeHandler{addr: addr, tokens: tokens, authz: authz})
	r.Handle(&ApproveAllMsg{}, ApproveAllHandler{addr: addr, operators: operators})
	r.Handle(&RevokeAllMsg{}, RevokeAllHandler{addr: addr, operators: operators})
	r.Handle(&BurnMsg{}, BurnHandler{tokens: tokens, authz: authz})
	r.Handle(&SetWithdrawAddressMsg{}, SetWithdrawAddressHandler{addr: addr, treasury: treasury, owners: owners})
	r.Handle(&RemoveWithdrawAddressMsg{}, RemoveWithdrawAddressHandler{treasury: treasury, owners: owners})
	r.Handle(&WithdrawFundsMsg{}, WithdrawFundsHandler{treasury: treasury})

	ownable.RegisterRoutes(r, pkgName, addr)
}

// sender returns the authenticated sender of the envelope, or
// ErrUnauthorized when the call carries none.
func sender(ctx glyph.Context) (glyph.Address, error) {
	s := glyph.GetSender(ctx)
	if s == "" {
		return "", errors.Wrap(errors.ErrUnauthorized, "no sender")
	}
	return s, nil
}

// MintHandler processes MintMsg. Minting is open to anyone, the mint
// policy (supply cap, wallet cap, price) is the only gate.
type MintHandler struct {
	addr   glyph.AddressValidator
	tokens TokenBucket
}

var _ glyph.Handler = MintHandler{}

// Check implements glyph.Handler.
func (h MintHandler) Check(ctx glyph.Context, db glyph.KVStore, tx glyph.Tx) (*glyph.CheckResult, error) {
	var msg MintMsg
	if err := glyph.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	return &glyph.CheckResult{GasAllocated: mintCost}, nil
}

// Deliver implements glyph.Handler.
func (h MintHandler) Deliver(ctx glyph.Context, db glyph.KVStore, tx glyph.Tx) (*glyph.DeliverResult, error) {
	var msg MintMsg
	if err := glyph.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	actor, err := sender(ctx)
	if err != nil {
		return nil, err
	}
	owner, err := h.addr.Validate(msg.Owner)
	if err != nil {
		return nil, errors.Wrap(err, "owner")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	policy := MintPolicy{tokens: h.tokens}
	if err := policy.Admit(db, conf, owner, glyph.GetFunds(ctx)); err != nil {
		return nil, err
	}

	id := h.tokens.NextID(db)
	token := &TokenInfo{
		Owner:     owner,
		URI:       msg.URI,
		Extension: msg.Extension,
	}
	if err := h.tokens.Mint(db, id, token); err != nil {
		return nil, err
	}
	return &glyph.DeliverResult{
		Data: []byte(id),
		Tags: []common.KVPair{
			glyph.Pair("action", "mint"),
			glyph.Pair("minter", string(actor)),
			glyph.Pair("owner", string(owner)),
			glyph.Pair("token_id", id),
		},
		GasUsed: mintCost,
	}, nil
}

// move loads the token, checks transfer rights of actor and hands the
// token to the recipient, wiping all approvals of the previous owner.
func move(ctx glyph.Context, db glyph.KVStore, tokens TokenBucket, authz Authorizer, actor, recipient glyph.Address, id string) error {
	token, err := tokens.Load(db, id)
	if err != nil {
		return err
	}
	if err := authz.CanTransfer(ctx, db, actor, token); err != nil {
		return err
	}
	token.Owner = recipient
	token.Approvals = nil
	return tokens.Save(db, id, token)
}

// TransferHandler processes TransferMsg.
type TransferHandler struct {
	addr   glyph.AddressValidator
	tokens TokenBucket
	authz  Authorizer
}

var _ glyph.Handler = TransferHandler{}

// Check implements glyph.Handler.
func (h TransferHandler) Check(ctx glyph.Context, db glyph.KVStore, tx glyph.Tx) (*glyph.CheckResult, error) {
	var msg TransferMsg
	if err := glyph.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	return &glyph.CheckResult{GasAllocated: moveCost}, nil
}

// Deliver implements glyph.Handler.
func (h TransferHandler) Deliver(ctx glyph.Context, db glyph.KVStore, tx glyph.Tx) (*glyph.DeliverResult, error) {
	var msg TransferMsg
	if err := glyph.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	actor, err := sender(ctx)
	if err != nil {
		return nil, err
	}
	recipient, err := h.addr.Validate(msg.Recipient)
	if err != nil {
		return nil, errors.Wrap(err, "recipient")
	}
	if err := move(ctx, db, h.tokens, h.authz, actor, recipient, msg.TokenID); err != nil {
		return nil, err
	}
	return &glyph.DeliverResult{
		Tags: []common.KVPair{
			glyph.Pair("action", "transfer_nft"),
			glyph.Pair("sender", string(actor)),
			glyph.Pair("recipient", string(recipient)),
			glyph.Pair("token_id", msg.TokenID),
		},
		GasUsed: moveCost,
	}, nil
}

// TokenReceiveNotice asks the runtime to notify a contract account that
// it just received a token, passing through the opaque payload of the
// send message.
type TokenReceiveNotice struct {
	Contract glyph.Address
	Sender   glyph.Address
	TokenID  string
	Msg      []byte
}

var _ glyph.Outbound = TokenReceiveNotice{}

// Kind implements glyph.Outbound.
func (TokenReceiveNotice) Kind() string {
	return "token_receive"
}

// SendHandler processes SendMsg.
type SendHandler struct {
	addr   glyph.AddressValidator
	tokens TokenBucket
	authz  Authorizer
}

var _ glyph.Handler = SendHandler{}

// Check implements glyph.Handler.
func (h SendHandler) Check(ctx glyph.Context, db glyph.KVStore, tx glyph.Tx) (*glyph.CheckResult, error) {
	var msg SendMsg
	if err := glyph.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	return &glyph.CheckResult{GasAllocated: moveCost}, nil
}

// Deliver implements glyph.Handler.
func (h SendHandler) Deliver(ctx glyph.Context, db glyph.KVStore, tx glyph.Tx) (*glyph.DeliverResult, error) {
	var msg SendMsg
	if err := glyph.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	actor, err := sender(ctx)
	if err != nil {
		return nil, err
	}
	contract, err := h.addr.Validate(msg.Contract)
	if err != nil {
		return nil, errors.Wrap(err, "contract")
	}
	if err := move(ctx, db, h.tokens, h.authz, actor, contract, msg.TokenID); err != nil {
		return nil, err
	}
	return &glyph.DeliverResult{
		Tags: []common.KVPair{
			glyph.Pair("action", "send_nft"),
			glyph.Pair("sender", string(actor)),
			glyph.Pair("recipient", string(contract)),
			glyph.Pair("token_id", msg.TokenID),
		},
		Outbound: []glyph.Outbound{
			TokenReceiveNotice{
				Contract: contract,
				Sender:   actor,
				TokenID:  msg.TokenID,
				Msg:      msg.Msg,
			},
		},
		GasUsed: moveCost,
	}, nil
}

// updateApproval rewrites the approval list of one token. Any previous
// grant for the spender goes away, and when add is set a fresh grant is
// appended. Actor must hold the approval right on the token.
func updateApproval(ctx glyph.Context, db glyph.KVStore, tokens TokenBucket, authz Authorizer, actor, spender glyph.Address, id string, add bool, expires glyph.Expiration) error {
	token, err := tokens.Load(db, id)
	if err != nil {
		return err
	}
	if err := authz.CanApprove(ctx, db, actor, token); err != nil {
		return err
	}
	token.Approvals = Approvals(token.Approvals).Without(spender)
	if add {
		if expires.IsExpired(ctx) {
			return errors.Wrap(errors.ErrExpired, "approval expiry is in the past")
		}
		token.Approvals = append(token.Approvals, Approval{Spender: spender, Expires: expires})
	}
	return tokens.Save(db, id, token)
}

// ApproveHandler processes ApproveMsg.
type ApproveHandler struct {
	addr   glyph.AddressValidator
	tokens TokenBucket
	authz  Authorizer
}

var _ glyph.Handler = ApproveHandler{}

// Check implements glyph.Handler.
func (h ApproveHandler) Check(ctx glyph.Context, db glyph.KVStore, tx glyph.Tx) (*glyph.CheckResult, error) {
	var msg ApproveMsg
	if err := glyph.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	return &glyph.CheckResult{GasAllocated: approveCost}, nil
}

// Deliver implements glyph.Handler.
func (h ApproveHandler) Deliver(ctx glyph.Context, db glyph.KVStore, tx glyph.Tx) (*glyph.DeliverResult, error) {
	var msg ApproveMsg
	if err := glyph.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	actor, err := sender(ctx)
	if err != nil {
		return nil, err
	}
	spender, err := h.addr.Validate(msg.Spender)
	if err != nil {
		return nil, errors.Wrap(err, "spender")
	}
	if err := updateApproval(ctx, db, h.tokens, h.authz, actor, spender, msg.TokenID, true, msg.Expires); err != nil {
		return nil, err
	}
	return &glyph.DeliverResult{
		Tags: []common.KVPair{
			glyph.Pair("action", "approve"),
			glyph.Pair("sender", string(actor)),
			glyph.Pair("spender", string(spender)),
			glyph.Pair("token_id", msg.TokenID),
		},
		GasUsed: approveCost,
	}, nil
}

// RevokeHandler processes RevokeMsg.
type RevokeHandler struct {
	addr   glyph.AddressValidator
	tokens TokenBucket
	authz  Authorizer
}

var _ glyph.Handler = RevokeHandler{}

// Check implements glyph.Handler.
func (h RevokeHandler) Check(ctx glyph.Context, db glyph.KVStore, tx glyph.Tx) (*glyph.CheckResult, error) {
	var msg RevokeMsg
	if err := glyph.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	return &glyph.CheckResult{GasAllocated: approveCost}, nil
}

// Deliver implements glyph.Handler.
func (h RevokeHandler) Deliver(ctx glyph.Context, db glyph.KVStore, tx glyph.Tx) (*glyph.DeliverResult, error) {
	var msg RevokeMsg
	if err := glyph.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	actor, err := sender(ctx)
	if err != nil {
		return nil, err
	}
	spender, err := h.addr.Validate(msg.Spender)
	if err != nil {
		return nil, errors.Wrap(err, "spender")
	}
	if err := updateApproval(ctx, db, h.tokens, h.authz, actor, spender, msg.TokenID, false, glyph.Never()); err != nil {
		return nil, err
	}
	return &glyph.DeliverResult{
		Tags: []common.KVPair{
			glyph.Pair("action", "revoke"),
			glyph.Pair("sender", string(actor)),
			glyph.Pair("spender", string(spender)),
			glyph.Pair("token_id", msg.TokenID),
		},
		GasUsed: approveCost,
	}, nil
}

// ApproveAllHandler processes ApproveAllMsg.
type ApproveAllHandler struct {
	addr      glyph.AddressValidator
	operators OperatorBucket
}

var _ glyph.Handler = ApproveAllHandler{}

// Check implements glyph.Handler.
func (h ApproveAllHandler) Check(ctx glyph.Context, db glyph.KVStore, tx glyph.Tx) (*glyph.CheckResult, error) {
	var msg ApproveAllMsg
	if err := glyph.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	return &glyph.CheckResult{GasAllocated: approveCost}, nil
}

// Deliver implements glyph.Handler.
func (h ApproveAllHandler) Deliver(ctx glyph.Context, db glyph.KVStore, tx glyph.Tx) (*glyph.DeliverResult, error) {
	var msg ApproveAllMsg
	if err := glyph.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	actor, err := sender(ctx)
	if err != nil {
		return nil, err
	}
	operator, err := h.addr.Validate(msg.Operator)
	if err != nil {
		return nil, errors.Wrap(err, "operator")
	}
	if msg.Expires.IsExpired(ctx) {
		return nil, errors.Wrap(errors.ErrExpired, "grant expiry is in the past")
	}
	if err := h.operators.Set(db, actor, operator, &OperatorGrant{Expires: msg.Expires}); err != nil {
		return nil, err
	}
	return &glyph.DeliverResult{
		Tags: []common.KVPair{
			glyph.Pair("action", "approve_all"),
			glyph.Pair("sender", string(actor)),
			glyph.Pair("operator", string(operator)),
		},
		GasUsed: approveCost,
	}, nil
}

// RevokeAllHandler processes RevokeAllMsg.
type RevokeAllHandler struct {
	addr      glyph.AddressValidator
	operators OperatorBucket
}

var _ glyph.Handler = RevokeAllHandler{}

// Check implements glyph.Handler.
func (h RevokeAllHandler) Check(ctx glyph.Context, db glyph.KVStore, tx glyph.Tx) (*glyph.CheckResult, error) {
	var msg RevokeAllMsg
	if err := glyph.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	return &glyph.CheckResult{GasAllocated: approveCost}, nil
}

// Deliver implements glyph.Handler.
func (h RevokeAllHandler) Deliver(ctx glyph.Context, db glyph.KVStore, tx glyph.Tx) (*glyph.DeliverResult, error) {
	var msg RevokeAllMsg
	if err := glyph.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	actor, err := sender(ctx)
	if err != nil {
		return nil, err
	}
	operator, err := h.addr.Validate(msg.Operator)
	if err != nil {
		return nil, errors.Wrap(err, "operator")
	}
	if err := h.operators.Drop(db, actor, operator); err != nil {
		return nil, err
	}
	return &glyph.DeliverResult{
		Tags: []common.KVPair{
			glyph.Pair("action", "revoke_all"),
			glyph.Pair("sender", string(actor)),
			glyph.Pair("operator", string(operator)),
		},
		GasUsed: approveCost,
	}, nil
}

// BurnHandler processes BurnMsg.
type BurnHandler struct {
	tokens TokenBucket
	authz  Authorizer
}

var _ glyph.Handler = BurnHandler{}

// Check implements glyph.Handler.
func (h BurnHandler) Check(ctx glyph.Context, db glyph.KVStore, tx glyph.Tx) (*glyph.CheckResult, error) {
	var msg BurnMsg
	if err := glyph.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	return &glyph.CheckResult{GasAllocated: moveCost}, nil
}

// Deliver implements glyph.Handler.
func (h BurnHandler) Deliver(ctx glyph.Context, db glyph.KVStore, tx glyph.Tx) (*glyph.DeliverResult, error) {
	var msg BurnMsg
	if err := glyph.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	actor, err := sender(ctx)
	if err != nil {
		return nil, err
	}
	token, err := h.tokens.Load(db, msg.TokenID)
	if err != nil {
		return nil, err
	}
	if err := h.authz.CanTransfer(ctx, db, actor, token); err != nil {
		return nil, err
	}
	if err := h.tokens.Burn(db, msg.TokenID); err != nil {
		return nil, err
	}
	return &glyph.DeliverResult{
		Tags: []common.KVPair{
			glyph.Pair("action", "burn"),
			glyph.Pair("sender", string(actor)),
			glyph.Pair("token_id", msg.TokenID),
		},
		GasUsed: moveCost,
	}, nil
}

// SetWithdrawAddressHandler processes SetWithdrawAddressMsg.
type SetWithdrawAddressHandler struct {
	addr     glyph.AddressValidator
	treasury TreasuryBucket
	owners   ownable.Controller
}

var _ glyph.Handler = SetWithdrawAddressHandler{}

// Check implements glyph.Handler.
func (h SetWithdrawAddressHandler) Check(ctx glyph.Context, db glyph.KVStore, tx glyph.Tx) (*glyph.CheckResult, error) {
	var msg SetWithdrawAddressMsg
	if err := glyph.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	return &glyph.CheckResult{GasAllocated: treasuryCost}, nil
}

// Deliver implements glyph.Handler.
func (h SetWithdrawAddressHandler) Deliver(ctx glyph.Context, db glyph.KVStore, tx glyph.Tx) (*glyph.DeliverResult, error) {
	var msg SetWithdrawAddressMsg
	if err := glyph.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	actor, err := sender(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.owners.AssertOwner(db, pkgName, actor); err != nil {
		return nil, err
	}
	addr, err := h.addr.Validate(msg.Address)
	if err != nil {
		return nil, errors.Wrap(err, "address")
	}
	if err := h.treasury.SetWithdrawAddress(db, addr); err != nil {
		return nil, err
	}
	return &glyph.DeliverResult{
		Tags: []common.KVPair{
			glyph.Pair("action", "set_withdraw_address"),
			glyph.Pair("address", string(addr)),
		},
		GasUsed: treasuryCost,
	}, nil
}

// RemoveWithdrawAddressHandler processes RemoveWithdrawAddressMsg.
type RemoveWithdrawAddressHandler struct {
	treasury TreasuryBucket
	owners   ownable.Controller
}

var _ glyph.Handler = RemoveWithdrawAddressHandler{}

// Check implements glyph.Handler.
func (h RemoveWithdrawAddressHandler) Check(ctx glyph.Context, db glyph.KVStore, tx glyph.Tx) (*glyph.CheckResult, error) {
	var msg RemoveWithdrawAddressMsg
	if err := glyph.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	return &glyph.CheckResult{GasAllocated: treasuryCost}, nil
}

// Deliver implements glyph.Handler.
func (h RemoveWithdrawAddressHandler) Deliver(ctx glyph.Context, db glyph.KVStore, tx glyph.Tx) (*glyph.DeliverResult, error) {
	var msg RemoveWithdrawAddressMsg
	if err := glyph.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	actor, err := sender(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.owners.AssertOwner(db, pkgName, actor); err != nil {
		return nil, err
	}
	removed, err := h.treasury.RemoveWithdrawAddress(db)
	if err != nil {
		return nil, err
	}
	return &glyph.DeliverResult{
		Tags: []common.KVPair{
			glyph.Pair("action", "remove_withdraw_address"),
			glyph.Pair("address", string(removed)),
		},
		GasUsed: treasuryCost,
	}, nil
}

// WithdrawFundsHandler processes WithdrawFundsMsg.
type WithdrawFundsHandler struct {
	treasury TreasuryBucket
}

var _ glyph.Handler = WithdrawFundsHandler{}

// Check implements glyph.Handler.
func (h WithdrawFundsHandler) Check(ctx glyph.Context, db glyph.KVStore, tx glyph.Tx) (*glyph.CheckResult, error) {
	var msg WithdrawFundsMsg
	if err := glyph.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	return &glyph.CheckResult{GasAllocated: treasuryCost}, nil
}

// Deliver implements glyph.Handler.
func (h WithdrawFundsHandler) Deliver(ctx glyph.Context, db glyph.KVStore, tx glyph.Tx) (*glyph.DeliverResult, error) {
	var msg WithdrawFundsMsg
	if err := glyph.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	dest, err := h.treasury.WithdrawAddress(db)
	if err != nil {
		return nil, err
	}
	return &glyph.DeliverResult{
		Tags: []common.KVPair{
			glyph.Pair("action", "withdraw_funds"),
			glyph.Pair("recipient", string(dest)),
			glyph.Pair("amount", msg.Amount.String()),
		},
		Outbound: []glyph.Outbound{
			glyph.Payment{To: dest, Amount: msg.Amount},
		},
		GasUsed: treasuryCost,
	}, nil
}
