package nft

import (
	"github.com/glyph-network/glyph"
	"github.com/glyph-network/glyph/errors"
	"github.com/glyph-network/glyph/x/ownable"
)

// Enumeration pages are clamped, a caller can never force a full table
// scan through one call.
const (
	DefaultPageSize = 10
	MaxPageSize     = 30
)

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultPageSize
	case limit > MaxPageSize:
		return MaxPageSize
	default:
		return limit
	}
}

// Queries bundles all read-only operations of the registry. All methods
// take a context only to resolve grant expiry against the current block
// and never write.
type Queries struct {
	tokens    TokenBucket
	operators OperatorBucket
	treasury  TreasuryBucket
	owners    ownable.Controller
}

// NewQueries returns the read side of the registry.
func NewQueries() Queries {
	return Queries{
		tokens:    NewTokenBucket(),
		operators: NewOperatorBucket(),
		treasury:  NewTreasuryBucket(),
		owners:    ownable.NewController(),
	}
}

// OwnerOfResponse reports who owns a token and who may move it.
type OwnerOfResponse struct {
	Owner     glyph.Address
	Approvals []Approval
}

// OwnerOf returns the owner of the token together with its approvals.
// Expired approvals are hidden unless includeExpired is set.
func (q Queries) OwnerOf(ctx glyph.Context, db glyph.ReadOnlyKVStore, tokenID string, includeExpired bool) (*OwnerOfResponse, error) {
	t, err := q.tokens.Load(db, tokenID)
	if err != nil {
		return nil, err
	}
	approvals := Approvals(t.Approvals)
	if !includeExpired {
		approvals = approvals.FilterExpired(ctx)
	}
	return &OwnerOfResponse{Owner: t.Owner, Approvals: approvals}, nil
}

// Approval returns the grant the token holds for the given spender. A
// missing grant, or an expired one unless includeExpired is set,
// reports ErrNotFound.
func (q Queries) Approval(ctx glyph.Context, db glyph.ReadOnlyKVStore, tokenID string, spender glyph.Address, includeExpired bool) (*Approval, error) {
	t, err := q.tokens.Load(db, tokenID)
	if err != nil {
		return nil, err
	}
	a := Approvals(t.Approvals).ForSpender(spender)
	if a == nil || (!includeExpired && a.Expires.IsExpired(ctx)) {
		return nil, errors.Wrapf(errors.ErrNotFound, "no approval for %s", spender)
	}
	return a, nil
}

// TokenApprovals returns all approvals of the token. Expired ones are
// hidden unless includeExpired is set.
func (q Queries) TokenApprovals(ctx glyph.Context, db glyph.ReadOnlyKVStore, tokenID string, includeExpired bool) ([]Approval, error) {
	t, err := q.tokens.Load(db, tokenID)
	if err != nil {
		return nil, err
	}
	approvals := Approvals(t.Approvals)
	if !includeExpired {
		approvals = approvals.FilterExpired(ctx)
	}
	return approvals, nil
}

// Operator returns the blanket grant from granter to operator. A
// missing grant, or an expired one unless includeExpired is set,
// reports ErrNotFound.
func (q Queries) Operator(ctx glyph.Context, db glyph.ReadOnlyKVStore, granter, operator glyph.Address, includeExpired bool) (*OperatorGrant, error) {
	g, err := q.operators.Get(db, granter, operator)
	if err != nil {
		return nil, err
	}
	if !includeExpired && g.Expires.IsExpired(ctx) {
		return nil, errors.Wrapf(errors.ErrNotFound, "grant for %s expired", operator)
	}
	return g, nil
}

// AllOperators pages through the blanket grants given by granter, in
// operator address order, starting strictly after the given operator.
// Expired grants are hidden unless includeExpired is set and never
// consume a page slot, a page holds up to limit live grants.
func (q Queries) AllOperators(ctx glyph.Context, db glyph.ReadOnlyKVStore, granter glyph.Address, includeExpired bool, after glyph.Address, limit int) ([]GrantInfo, error) {
	var keep func(OperatorGrant) bool
	if !includeExpired {
		keep = func(g OperatorGrant) bool {
			return !g.Expires.IsExpired(ctx)
		}
	}
	return q.operators.ListByGranter(db, granter, after, clampLimit(limit), keep)
}

// NumTokens returns how many tokens the collection currently holds.
func (q Queries) NumTokens(db glyph.ReadOnlyKVStore) uint64 {
	return q.tokens.Count(db)
}

// ContractInfoResponse reports the collection identity.
type ContractInfoResponse struct {
	Name   string
	Symbol string
}

// ContractInfo returns the collection name and symbol.
func (q Queries) ContractInfo(db glyph.ReadOnlyKVStore) (*ContractInfoResponse, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	return &ContractInfoResponse{Name: conf.Name, Symbol: conf.Symbol}, nil
}

// NftInfoResponse reports the immutable metadata of one token.
type NftInfoResponse struct {
	URI       string
	Extension Extension
}

// NftInfo returns the metadata of the token.
func (q Queries) NftInfo(db glyph.ReadOnlyKVStore, tokenID string) (*NftInfoResponse, error) {
	t, err := q.tokens.Load(db, tokenID)
	if err != nil {
		return nil, err
	}
	return &NftInfoResponse{URI: t.URI, Extension: t.Extension}, nil
}

// AllNftInfoResponse combines ownership and metadata of one token.
type AllNftInfoResponse struct {
	Access OwnerOfResponse
	Info   NftInfoResponse
}

// AllNftInfo returns ownership and metadata of the token in one shot.
func (q Queries) AllNftInfo(ctx glyph.Context, db glyph.ReadOnlyKVStore, tokenID string, includeExpired bool) (*AllNftInfoResponse, error) {
	t, err := q.tokens.Load(db, tokenID)
	if err != nil {
		return nil, err
	}
	approvals := Approvals(t.Approvals)
	if !includeExpired {
		approvals = approvals.FilterExpired(ctx)
	}
	return &AllNftInfoResponse{
		Access: OwnerOfResponse{Owner: t.Owner, Approvals: approvals},
		Info:   NftInfoResponse{URI: t.URI, Extension: t.Extension},
	}, nil
}

// Tokens pages through the ids of tokens held by owner in mint order,
// starting strictly after the given cursor.
func (q Queries) Tokens(db glyph.ReadOnlyKVStore, owner glyph.Address, after string, limit int) ([]string, error) {
	return q.tokens.ListByOwner(db, owner, after, clampLimit(limit))
}

// AllTokens pages through all token ids in mint order, starting
// strictly after the given cursor.
func (q Queries) AllTokens(db glyph.ReadOnlyKVStore, after string, limit int) ([]string, error) {
	return q.tokens.ListAll(db, after, clampLimit(limit))
}

// Minter returns the account currently holding the minter role, or
// ErrNotFound when the role was renounced.
func (q Queries) Minter(db glyph.ReadOnlyKVStore) (glyph.Address, error) {
	return q.owners.Owner(db, pkgName)
}

// WithdrawAddress returns the configured treasury payout destination,
// or ErrNoWithdrawAddress when none is set.
func (q Queries) WithdrawAddress(db glyph.ReadOnlyKVStore) (glyph.Address, error) {
	return q.treasury.WithdrawAddress(db)
}
