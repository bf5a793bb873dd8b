package nft

import (
	"github.com/glyph-network/glyph"
	"github.com/glyph-network/glyph/errors"
)

// Authorizer answers the two delegation questions of the registry. The
// approval right belongs to the owner and their operators. The transfer
// right additionally belongs to spenders holding a live per-token
// approval. An expired grant of either kind authorizes nothing.
type Authorizer struct {
	operators OperatorBucket
}

// CanApprove returns nil when actor may manage the approval list of the
// token, that is when actor is the owner or a live operator of the
// owner.
func (a Authorizer) CanApprove(ctx glyph.Context, db glyph.ReadOnlyKVStore, actor glyph.Address, t *TokenInfo) error {
	if t.Owner.Equals(actor) {
		return nil
	}
	if a.isOperator(ctx, db, t.Owner, actor) {
		return nil
	}
	return errors.Wrap(errors.ErrUnauthorized, "not owner or operator")
}

// CanTransfer returns nil when actor may move or burn the token, that
// is when actor passes CanApprove or holds a live per-token approval.
func (a Authorizer) CanTransfer(ctx glyph.Context, db glyph.ReadOnlyKVStore, actor glyph.Address, t *TokenInfo) error {
	if t.Owner.Equals(actor) {
		return nil
	}
	if g := Approvals(t.Approvals).ForSpender(actor); g != nil && !g.Expires.IsExpired(ctx) {
		return nil
	}
	if a.isOperator(ctx, db, t.Owner, actor) {
		return nil
	}
	return errors.Wrap(errors.ErrUnauthorized, "no transfer rights on this token")
}

func (a Authorizer) isOperator(ctx glyph.Context, db glyph.ReadOnlyKVStore, granter, operator glyph.Address) bool {
	g, err := a.operators.Get(db, granter, operator)
	if err != nil {
		return false
	}
	return !g.Expires.IsExpired(ctx)
}
