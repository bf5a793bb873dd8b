package nft

import (
	"testing"

	"github.com/tendermint/tendermint/libs/common"

	"github.com/glyph-network/glyph"
	"github.com/glyph-network/glyph/app"
	"github.com/glyph-network/glyph/coin"
	"github.com/glyph-network/glyph/errors"
	"github.com/glyph-network/glyph/glyphtest"
	"github.com/glyph-network/glyph/glyphtest/assert"
	"github.com/glyph-network/glyph/store"
	"github.com/glyph-network/glyph/x/ownable"
)

const testHeight int64 = 1234567

var (
	demeter = glyph.Address("demeter")
	random  = glyph.Address("random")
	person  = glyph.Address("person")
)

type fixture struct {
	db glyph.KVStore
	r  *app.Router
}

// newFixture builds a registry instantiated by demeter, who holds the
// owner role gating the treasury setup.
func newFixture(t testing.TB, opts InitOptions) *fixture {
	t.Helper()
	if opts.Name == "" {
		opts.Name = "Glyphs"
	}
	if opts.Symbol == "" {
		opts.Symbol = "GLY"
	}
	db := store.MemStore()
	assert.Nil(t, Initialize(db, demeter, opts, glyphtest.AddressValidator{}))
	r := app.NewRouter()
	RegisterRoutes(r, glyphtest.AddressValidator{})
	return &fixture{db: db, r: r}
}

func as(sender glyph.Address) glyph.Context {
	return glyph.WithSender(glyphtest.Ctx(testHeight), sender)
}

func (f *fixture) deliver(ctx glyph.Context, msg glyph.Msg) (*glyph.DeliverResult, error) {
	return f.r.Deliver(ctx, f.db, glyphtest.NewTx(msg))
}

func (f *fixture) mint(t testing.TB, owner glyph.Address) string {
	t.Helper()
	res, err := f.deliver(as(demeter), &MintMsg{Owner: string(owner)})
	assert.Nil(t, err)
	return string(res.Data)
}

func TestMintAssignsIDsInOrder(t *testing.T) {
	f := newFixture(t, InitOptions{})

	assert.Equal(t, "0", f.mint(t, demeter))
	assert.Equal(t, "1", f.mint(t, person))

	token, err := NewTokenBucket().Load(f.db, "1")
	assert.Nil(t, err)
	assert.Equal(t, person, token.Owner)
}

func TestMintIsPublic(t *testing.T) {
	price := coin.NewCoin(1000000, "usei")
	f := newFixture(t, InitOptions{MintPrice: &price})

	// Any funded sender may mint, the policy is the only gate.
	ctx := glyph.WithFunds(as(random), coin.Coins{price})
	res, err := f.r.Deliver(ctx, f.db, glyphtest.NewTx(&MintMsg{Owner: "medusa"}))
	assert.Nil(t, err)

	token, err := NewTokenBucket().Load(f.db, string(res.Data))
	assert.Nil(t, err)
	assert.Equal(t, glyph.Address("medusa"), token.Owner)

	// The minter tag reports who actually sent the mint.
	assert.Equal(t, "random", tagValue(res.Tags, "minter"))

	// A call without a sender is still rejected.
	_, err = f.deliver(glyphtest.Ctx(testHeight), &MintMsg{Owner: "random"})
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func tagValue(tags []common.KVPair, key string) string {
	for _, kv := range tags {
		if string(kv.Key) == key {
			return string(kv.Value)
		}
	}
	return ""
}

func TestMintPolicyOrder(t *testing.T) {
	price := coin.NewCoin(1000000, "usei")
	f := newFixture(t, InitOptions{
		MaxSupply:    4,
		MaxPerWallet: 2,
		MintPrice:    &price,
	})
	paid := glyph.WithFunds(as(demeter), coin.Coins{price})

	// Two mints to person exhaust the wallet cap.
	for i := 0; i < 2; i++ {
		_, err := f.r.Deliver(paid, f.db, glyphtest.NewTx(&MintMsg{Owner: "person"}))
		assert.Nil(t, err)
	}
	_, err := f.r.Deliver(paid, f.db, glyphtest.NewTx(&MintMsg{Owner: "person"}))
	assert.IsErr(t, ErrMintPerWalletOverflow, err)

	// Fill the collection up to the supply cap with other wallets.
	for _, owner := range []string{"second", "third"} {
		_, err := f.r.Deliver(paid, f.db, glyphtest.NewTx(&MintMsg{Owner: owner}))
		assert.Nil(t, err)
	}

	// Now even a maxed-out wallet reports the supply overflow, the
	// supply cap is checked first.
	_, err = f.r.Deliver(paid, f.db, glyphtest.NewTx(&MintMsg{Owner: "person"}))
	assert.IsErr(t, ErrSupplyOverflow, err)
}

func TestMintPrice(t *testing.T) {
	price := coin.NewCoin(1000000, "usei")
	f := newFixture(t, InitOptions{MintPrice: &price})

	cases := map[string]struct {
		funds   coin.Coins
		wantErr *errors.Error
	}{
		"no funds":         {nil, ErrNotEnoughFunds},
		"not enough":       {coin.Coins{coin.NewCoin(999999, "usei")}, ErrNotEnoughFunds},
		"wrong denom":      {coin.Coins{coin.NewCoin(1000000, "uatom")}, ErrNotEnoughFunds},
		"split coins":      {coin.Coins{coin.NewCoin(500000, "usei"), coin.NewCoin(500000, "usei")}, ErrNotEnoughFunds},
		"exact":            {coin.Coins{price}, nil},
		"overpaid":         {coin.Coins{coin.NewCoin(2000000, "usei")}, nil},
		"extra denominations": {coin.Coins{coin.NewCoin(7, "uatom"), price}, nil},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := glyph.WithFunds(as(demeter), tc.funds)
			_, err := f.r.Deliver(ctx, f.db, glyphtest.NewTx(&MintMsg{Owner: "person"}))
			if tc.wantErr == nil {
				assert.Nil(t, err)
			} else {
				assert.IsErr(t, tc.wantErr, err)
			}
		})
	}
}

func TestTransferClearsApprovals(t *testing.T) {
	f := newFixture(t, InitOptions{})
	id := f.mint(t, demeter)

	_, err := f.deliver(as(demeter), &ApproveMsg{Spender: "random", TokenID: id})
	assert.Nil(t, err)

	_, err = f.deliver(as(demeter), &TransferMsg{Recipient: "person", TokenID: id})
	assert.Nil(t, err)

	token, err := NewTokenBucket().Load(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, person, token.Owner)
	assert.Equal(t, 0, len(token.Approvals))

	// The old approval authorizes nothing anymore.
	_, err = f.deliver(as(random), &TransferMsg{Recipient: "random", TokenID: id})
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestTransferAuthorization(t *testing.T) {
	f := newFixture(t, InitOptions{})

	// A stranger cannot move the token.
	id := f.mint(t, demeter)
	_, err := f.deliver(as(random), &TransferMsg{Recipient: "random", TokenID: id})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	// An approved spender can.
	_, err = f.deliver(as(demeter), &ApproveMsg{Spender: "random", TokenID: id})
	assert.Nil(t, err)
	_, err = f.deliver(as(random), &TransferMsg{Recipient: "random", TokenID: id})
	assert.Nil(t, err)

	// An operator of the owner can as well.
	id2 := f.mint(t, demeter)
	_, err = f.deliver(as(demeter), &ApproveAllMsg{Operator: "person"})
	assert.Nil(t, err)
	_, err = f.deliver(as(person), &TransferMsg{Recipient: "person", TokenID: id2})
	assert.Nil(t, err)

	// The grant binds the old owner, not the token. Once person owns
	// the token their operators matter, demeter's do not carry over.
	_, err = f.deliver(as(person), &RevokeAllMsg{Operator: "person"})
	assert.Nil(t, err)
	_, err = f.deliver(as(random), &TransferMsg{Recipient: "random", TokenID: id2})
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestTransferMissingToken(t *testing.T) {
	f := newFixture(t, InitOptions{})
	_, err := f.deliver(as(demeter), &TransferMsg{Recipient: "person", TokenID: "99"})
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestApproveRights(t *testing.T) {
	f := newFixture(t, InitOptions{})
	id := f.mint(t, demeter)

	// A per-token spender cannot grant further approvals, only the
	// owner and operators hold the approval right.
	_, err := f.deliver(as(demeter), &ApproveMsg{Spender: "random", TokenID: id})
	assert.Nil(t, err)
	_, err = f.deliver(as(random), &ApproveMsg{Spender: "person", TokenID: id})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	// An operator can manage approvals on behalf of the owner.
	_, err = f.deliver(as(demeter), &ApproveAllMsg{Operator: "person"})
	assert.Nil(t, err)
	_, err = f.deliver(as(person), &ApproveMsg{Spender: "friend", TokenID: id})
	assert.Nil(t, err)
	_, err = f.deliver(as(person), &RevokeMsg{Spender: "random", TokenID: id})
	assert.Nil(t, err)

	token, err := NewTokenBucket().Load(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(token.Approvals))
	assert.Equal(t, glyph.Address("friend"), token.Approvals[0].Spender)
}

func TestApproveReplacesExistingGrant(t *testing.T) {
	f := newFixture(t, InitOptions{})
	id := f.mint(t, demeter)

	_, err := f.deliver(as(demeter), &ApproveMsg{Spender: "random", TokenID: id, Expires: glyph.ExpireAtHeight(testHeight + 10)})
	assert.Nil(t, err)
	_, err = f.deliver(as(demeter), &ApproveMsg{Spender: "random", TokenID: id, Expires: glyph.ExpireAtHeight(testHeight + 99)})
	assert.Nil(t, err)

	token, err := NewTokenBucket().Load(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(token.Approvals))
	assert.Equal(t, glyph.ExpireAtHeight(testHeight+99), token.Approvals[0].Expires)
}

func TestRevokeIsIdempotent(t *testing.T) {
	f := newFixture(t, InitOptions{})
	id := f.mint(t, demeter)

	_, err := f.deliver(as(demeter), &ApproveMsg{Spender: "random", TokenID: id})
	assert.Nil(t, err)
	before, err := NewTokenBucket().Load(f.db, id)
	assert.Nil(t, err)

	// Revoking a spender that holds no grant succeeds and changes
	// nothing.
	_, err = f.deliver(as(demeter), &RevokeMsg{Spender: "person", TokenID: id})
	assert.Nil(t, err)
	after, err := NewTokenBucket().Load(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, before, after)

	// Approve then revoke restores the original list.
	_, err = f.deliver(as(demeter), &ApproveMsg{Spender: "person", TokenID: id})
	assert.Nil(t, err)
	_, err = f.deliver(as(demeter), &RevokeMsg{Spender: "person", TokenID: id})
	assert.Nil(t, err)
	after, err = NewTokenBucket().Load(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, before, after)
}

func TestApproveRejectsPastExpiry(t *testing.T) {
	f := newFixture(t, InitOptions{})
	id := f.mint(t, demeter)

	// The bound is inclusive, the current height is already too late.
	_, err := f.deliver(as(demeter), &ApproveMsg{Spender: "random", TokenID: id, Expires: glyph.ExpireAtHeight(testHeight)})
	assert.IsErr(t, errors.ErrExpired, err)

	_, err = f.deliver(as(demeter), &ApproveAllMsg{Operator: "random", Expires: glyph.ExpireAtHeight(testHeight)})
	assert.IsErr(t, errors.ErrExpired, err)
}

func TestExpiredGrantsAuthorizeNothing(t *testing.T) {
	f := newFixture(t, InitOptions{})
	id := f.mint(t, demeter)

	_, err := f.deliver(as(demeter), &ApproveMsg{Spender: "random", TokenID: id, Expires: glyph.ExpireAtHeight(testHeight + 1)})
	assert.Nil(t, err)
	_, err = f.deliver(as(demeter), &ApproveAllMsg{Operator: "person", Expires: glyph.ExpireAtHeight(testHeight + 1)})
	assert.Nil(t, err)

	// One block later both grants are dead.
	later := glyph.WithSender(glyphtest.Ctx(testHeight+1), random)
	_, err = f.r.Deliver(later, f.db, glyphtest.NewTx(&TransferMsg{Recipient: "random", TokenID: id}))
	assert.IsErr(t, errors.ErrUnauthorized, err)

	later = glyph.WithSender(glyphtest.Ctx(testHeight+1), person)
	_, err = f.r.Deliver(later, f.db, glyphtest.NewTx(&TransferMsg{Recipient: "person", TokenID: id}))
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestSendEmitsReceiveNotice(t *testing.T) {
	f := newFixture(t, InitOptions{})
	id := f.mint(t, demeter)

	payload := []byte(`{"kind":"stake"}`)
	res, err := f.deliver(as(demeter), &SendMsg{Contract: "vault", TokenID: id, Msg: payload})
	assert.Nil(t, err)

	token, err := NewTokenBucket().Load(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, glyph.Address("vault"), token.Owner)

	assert.Equal(t, 1, len(res.Outbound))
	notice, ok := res.Outbound[0].(TokenReceiveNotice)
	if !ok {
		t.Fatalf("want a receive notice, got %T", res.Outbound[0])
	}
	assert.Equal(t, glyph.Address("vault"), notice.Contract)
	assert.Equal(t, demeter, notice.Sender)
	assert.Equal(t, id, notice.TokenID)
	assert.Equal(t, payload, notice.Msg)
}

func TestBurn(t *testing.T) {
	f := newFixture(t, InitOptions{})
	id := f.mint(t, demeter)

	_, err := f.deliver(as(random), &BurnMsg{TokenID: id})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	_, err = f.deliver(as(demeter), &BurnMsg{TokenID: id})
	assert.Nil(t, err)

	_, err = NewTokenBucket().Load(f.db, id)
	assert.IsErr(t, errors.ErrNotFound, err)
	assert.Equal(t, uint64(0), NewTokenBucket().Count(f.db))
}

func TestBurnDoesNotRefundMintQuota(t *testing.T) {
	f := newFixture(t, InitOptions{MaxPerWallet: 1})

	id := f.mint(t, person)
	_, err := f.deliver(as(person), &BurnMsg{TokenID: id})
	assert.Nil(t, err)

	_, err = f.deliver(as(demeter), &MintMsg{Owner: "person"})
	assert.IsErr(t, ErrMintPerWalletOverflow, err)
}

func TestWithdrawAddressLifecycle(t *testing.T) {
	f := newFixture(t, InitOptions{})

	// Without a configured address nothing can be withdrawn.
	_, err := f.deliver(as(demeter), &WithdrawFundsMsg{Amount: coin.NewCoin(5, "usei")})
	assert.IsErr(t, ErrNoWithdrawAddress, err)

	// Only the owner can configure it.
	_, err = f.deliver(as(random), &SetWithdrawAddressMsg{Address: "treasury"})
	assert.IsErr(t, errors.ErrUnauthorized, err)
	_, err = f.deliver(as(demeter), &SetWithdrawAddressMsg{Address: "treasury"})
	assert.Nil(t, err)

	res, err := f.deliver(as(random), &WithdrawFundsMsg{Amount: coin.NewCoin(5, "usei")})
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res.Outbound))
	payment, ok := res.Outbound[0].(glyph.Payment)
	if !ok {
		t.Fatalf("want a payment, got %T", res.Outbound[0])
	}
	assert.Equal(t, glyph.Address("treasury"), payment.To)
	assert.Equal(t, coin.NewCoin(5, "usei"), payment.Amount)

	// Removing closes the gate again and reports what was removed.
	_, err = f.deliver(as(random), &RemoveWithdrawAddressMsg{})
	assert.IsErr(t, errors.ErrUnauthorized, err)
	res, err = f.deliver(as(demeter), &RemoveWithdrawAddressMsg{})
	assert.Nil(t, err)
	assert.Equal(t, "treasury", tagValue(res.Tags, "address"))
	_, err = f.deliver(as(demeter), &RemoveWithdrawAddressMsg{})
	assert.IsErr(t, ErrNoWithdrawAddress, err)
	_, err = f.deliver(as(demeter), &WithdrawFundsMsg{Amount: coin.NewCoin(5, "usei")})
	assert.IsErr(t, ErrNoWithdrawAddress, err)
}

func TestOwnerHandoff(t *testing.T) {
	f := newFixture(t, InitOptions{})

	// Hand the owner role from demeter to person using the ownership
	// routes registered alongside the token handlers.
	_, err := f.deliver(as(demeter), &ownable.ProposeOwnerMsg{NewOwner: "person"})
	assert.Nil(t, err)
	_, err = f.deliver(as(person), &ownable.AcceptOwnerMsg{})
	assert.Nil(t, err)

	// Treasury configuration follows the role.
	_, err = f.deliver(as(demeter), &SetWithdrawAddressMsg{Address: "treasury"})
	assert.IsErr(t, errors.ErrUnauthorized, err)
	_, err = f.deliver(as(person), &SetWithdrawAddressMsg{Address: "treasury"})
	assert.Nil(t, err)

	// Minting stays public and unaffected by the handoff.
	res, err := f.deliver(as(demeter), &MintMsg{Owner: "demeter"})
	assert.Nil(t, err)
	assert.Equal(t, "0", string(res.Data))
}
