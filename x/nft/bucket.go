package nft

import (
	"encoding/binary"
	"strconv"

	"github.com/glyph-network/glyph"
	"github.com/glyph-network/glyph/errors"
	"github.com/glyph-network/glyph/orm"
)

// Token ids are decimal strings on the outside and fixed width big
// endian numbers on the inside, so that byte-wise key order equals mint
// order and enumeration pages through tokens oldest first.

// tokenKey converts an external token id into its primary key. Only the
// canonical decimal form of a number is accepted.
func tokenKey(id string) ([]byte, error) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil || strconv.FormatUint(n, 10) != id {
		return nil, errors.Wrapf(errors.ErrInput, "malformed token id %q", id)
	}
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, n)
	return key, nil
}

// tokenID converts a primary key back into the external token id.
func tokenID(key []byte) string {
	return strconv.FormatUint(binary.BigEndian.Uint64(key), 10)
}

// TokenBucket stores all tokens, indexed by owner, together with the
// two counters the mint policy reads: the live token count, which also
// assigns the next token id, and the per-wallet mint tally, which burn
// never decrements.
type TokenBucket struct {
	orm.Bucket
	count  orm.Counter
	minted orm.Counter
}

// NewTokenBucket returns a bucket to access all token state.
func NewTokenBucket() TokenBucket {
	b := orm.NewBucket("tokens", &TokenInfo{}).
		WithIndex("owner", ownerIndexer, false)
	return TokenBucket{
		Bucket: b,
		count:  orm.NewCounter("tokens", "count"),
		minted: orm.NewCounter("tokens", "minted"),
	}
}

func ownerIndexer(key []byte, m orm.Model) ([]byte, error) {
	t, ok := m.(*TokenInfo)
	if !ok {
		return nil, errors.Wrapf(errors.ErrModel, "%T", m)
	}
	return []byte(t.Owner), nil
}

// Load returns the token stored under the given id. Malformed ids
// cannot name a token and report ErrNotFound like any other miss.
func (b TokenBucket) Load(db glyph.ReadOnlyKVStore, id string) (*TokenInfo, error) {
	key, err := tokenKey(id)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "token %q", id)
	}
	var t TokenInfo
	if err := b.One(db, key, &t); err != nil {
		return nil, errors.Wrapf(err, "token %q", id)
	}
	return &t, nil
}

// Save overwrites the token stored under the given id, moving the owner
// index when the owner changed.
func (b TokenBucket) Save(db glyph.KVStore, id string, t *TokenInfo) error {
	key, err := tokenKey(id)
	if err != nil {
		return err
	}
	return b.Put(db, key, t)
}

// NextID returns the id the next minted token will receive.
func (b TokenBucket) NextID(db glyph.ReadOnlyKVStore) string {
	return strconv.FormatUint(b.count.Get(db), 10)
}

// Mint creates the token under the given id and bumps both counters in
// the same operation. An occupied id fails with ErrDuplicate.
func (b TokenBucket) Mint(db glyph.KVStore, id string, t *TokenInfo) error {
	key, err := tokenKey(id)
	if err != nil {
		return err
	}
	if err := b.Create(db, key, t); err != nil {
		return errors.Wrapf(err, "token %q", id)
	}
	if _, err := b.count.Incr(db); err != nil {
		return err
	}
	_, err = b.minted.WithSuffix([]byte(t.Owner)).Incr(db)
	return err
}

// Burn removes the token and decrements the live count. The per-wallet
// mint tally is left untouched, burning does not refund mint quota.
func (b TokenBucket) Burn(db glyph.KVStore, id string) error {
	key, err := tokenKey(id)
	if err != nil {
		return errors.Wrapf(errors.ErrNotFound, "token %q", id)
	}
	if err := b.Delete(db, key); err != nil {
		return errors.Wrapf(err, "token %q", id)
	}
	_, err = b.count.Decr(db)
	return err
}

// Count returns the number of tokens currently in the collection.
func (b TokenBucket) Count(db glyph.ReadOnlyKVStore) uint64 {
	return b.count.Get(db)
}

// MintedBy returns how many tokens were ever minted to the given
// wallet.
func (b TokenBucket) MintedBy(db glyph.ReadOnlyKVStore, owner glyph.Address) uint64 {
	return b.minted.WithSuffix([]byte(owner)).Get(db)
}

// ListAll returns up to limit token ids in mint order, starting
// strictly after the given cursor. An empty cursor starts from the
// beginning.
func (b TokenBucket) ListAll(db glyph.ReadOnlyKVStore, after string, limit int) ([]string, error) {
	afterKey, err := cursorKey(after)
	if err != nil {
		return nil, err
	}
	it := b.Iterate(db, afterKey)
	defer it.Close()

	var ids []string
	for ; it.Valid() && len(ids) < limit; it.Next() {
		ids = append(ids, tokenID(it.Key()))
	}
	return ids, nil
}

// ListByOwner returns up to limit ids of tokens held by owner in mint
// order, starting strictly after the given cursor.
func (b TokenBucket) ListByOwner(db glyph.ReadOnlyKVStore, owner glyph.Address, after string, limit int) ([]string, error) {
	afterKey, err := cursorKey(after)
	if err != nil {
		return nil, err
	}
	it, err := b.IndexKeys(db, "owner", []byte(owner), afterKey)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var ids []string
	for ; it.Valid() && len(ids) < limit; it.Next() {
		pk, err := it.Key()
		if err != nil {
			return nil, err
		}
		ids = append(ids, tokenID(pk))
	}
	return ids, nil
}

func cursorKey(after string) ([]byte, error) {
	if after == "" {
		return nil, nil
	}
	key, err := tokenKey(after)
	if err != nil {
		return nil, errors.Wrap(err, "cursor")
	}
	return key, nil
}

// GrantInfo is one operator grant together with the operator it was
// given to, as returned by enumeration.
type GrantInfo struct {
	Operator glyph.Address
	Grant    OperatorGrant
}

// OperatorBucket stores blanket operator grants keyed by the
// (granter, operator) address pair.
type OperatorBucket struct {
	orm.Bucket
}

// NewOperatorBucket returns a bucket to access all operator grants.
func NewOperatorBucket() OperatorBucket {
	return OperatorBucket{Bucket: orm.NewBucket("operators", &OperatorGrant{})}
}

// grantKey packs the address pair into one key. Both parts are length
// prefixed so the operator can be recovered during enumeration.
func grantKey(granter, operator glyph.Address) []byte {
	return append(addrChunk(granter), addrChunk(operator)...)
}

func addrChunk(a glyph.Address) []byte {
	return append([]byte{byte(len(a))}, a...)
}

// Set stores or replaces the grant from granter to operator.
func (b OperatorBucket) Set(db glyph.KVStore, granter, operator glyph.Address, g *OperatorGrant) error {
	return b.Put(db, grantKey(granter, operator), g)
}

// Get returns the grant from granter to operator, expired or not. It
// returns ErrNotFound when no grant exists.
func (b OperatorBucket) Get(db glyph.ReadOnlyKVStore, granter, operator glyph.Address) (*OperatorGrant, error) {
	var g OperatorGrant
	if err := b.One(db, grantKey(granter, operator), &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// Drop removes the grant from granter to operator. Removing a grant
// that does not exist is not an error.
func (b OperatorBucket) Drop(db glyph.KVStore, granter, operator glyph.Address) error {
	err := b.Delete(db, grantKey(granter, operator))
	if errors.ErrNotFound.Is(err) {
		return nil
	}
	return err
}

// ListByGranter returns up to limit grants given by granter in
// operator address order, starting strictly after the given operator.
// An empty after starts from the beginning. Grants rejected by keep are
// skipped without counting against the limit, a nil keep accepts all.
func (b OperatorBucket) ListByGranter(db glyph.ReadOnlyKVStore, granter glyph.Address, after glyph.Address, limit int, keep func(OperatorGrant) bool) ([]GrantInfo, error) {
	var afterKey []byte
	if after != "" {
		afterKey = grantKey(granter, after)
	}
	it := b.IteratePrefix(db, addrChunk(granter), afterKey)
	defer it.Close()

	var out []GrantInfo
	for ; it.Valid() && len(out) < limit; it.Next() {
		var g OperatorGrant
		if err := it.Load(&g); err != nil {
			return nil, err
		}
		if keep != nil && !keep(g) {
			continue
		}
		key := it.Key()
		// Strip the granter chunk, then the operator length byte.
		op := key[len(granter)+2:]
		out = append(out, GrantInfo{Operator: glyph.Address(op), Grant: g})
	}
	return out, nil
}
