package nft

import (
	"fmt"
	"testing"

	"github.com/glyph-network/glyph"
	"github.com/glyph-network/glyph/errors"
	"github.com/glyph-network/glyph/glyphtest"
	"github.com/glyph-network/glyph/glyphtest/assert"
)

func TestQueryOwnerOfFiltersExpired(t *testing.T) {
	f := newFixture(t, InitOptions{})
	id := f.mint(t, demeter)

	_, err := f.deliver(as(demeter), &ApproveMsg{
		Spender: "random",
		TokenID: id,
		Expires: glyph.ExpireAtHeight(testHeight + 1),
	})
	assert.Nil(t, err)

	q := NewQueries()

	// At the current height the grant is visible.
	res, err := q.OwnerOf(glyphtest.Ctx(testHeight), f.db, id, false)
	assert.Nil(t, err)
	assert.Equal(t, demeter, res.Owner)
	assert.Equal(t, 1, len(res.Approvals))

	// One block later it is hidden, unless expired entries are asked
	// for explicitly.
	res, err = q.OwnerOf(glyphtest.Ctx(testHeight+1), f.db, id, false)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res.Approvals))

	res, err = q.OwnerOf(glyphtest.Ctx(testHeight+1), f.db, id, true)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res.Approvals))
}

func TestQueryApproval(t *testing.T) {
	f := newFixture(t, InitOptions{})
	id := f.mint(t, demeter)

	_, err := f.deliver(as(demeter), &ApproveMsg{
		Spender: "random",
		TokenID: id,
		Expires: glyph.ExpireAtHeight(testHeight + 1),
	})
	assert.Nil(t, err)

	q := NewQueries()

	a, err := q.Approval(glyphtest.Ctx(testHeight), f.db, id, "random", false)
	assert.Nil(t, err)
	assert.Equal(t, glyph.Address("random"), a.Spender)

	_, err = q.Approval(glyphtest.Ctx(testHeight), f.db, id, "person", false)
	assert.IsErr(t, errors.ErrNotFound, err)

	_, err = q.Approval(glyphtest.Ctx(testHeight+1), f.db, id, "random", false)
	assert.IsErr(t, errors.ErrNotFound, err)
	a, err = q.Approval(glyphtest.Ctx(testHeight+1), f.db, id, "random", true)
	assert.Nil(t, err)
	assert.Equal(t, glyph.Address("random"), a.Spender)
}

func TestQueryOperators(t *testing.T) {
	f := newFixture(t, InitOptions{})

	_, err := f.deliver(as(demeter), &ApproveAllMsg{Operator: "person"})
	assert.Nil(t, err)
	_, err = f.deliver(as(demeter), &ApproveAllMsg{
		Operator: "random",
		Expires:  glyph.ExpireAtHeight(testHeight + 1),
	})
	assert.Nil(t, err)

	q := NewQueries()

	g, err := q.Operator(glyphtest.Ctx(testHeight), f.db, demeter, "person", false)
	assert.Nil(t, err)
	assert.Equal(t, glyph.Never(), g.Expires)

	_, err = q.Operator(glyphtest.Ctx(testHeight+1), f.db, demeter, "random", false)
	assert.IsErr(t, errors.ErrNotFound, err)

	grants, err := q.AllOperators(glyphtest.Ctx(testHeight+1), f.db, demeter, false, "", 10)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(grants))
	assert.Equal(t, glyph.Address("person"), grants[0].Operator)

	grants, err = q.AllOperators(glyphtest.Ctx(testHeight+1), f.db, demeter, true, "", 10)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(grants))
}

func TestQueryOperatorsPageSkipsExpired(t *testing.T) {
	f := newFixture(t, InitOptions{})

	// Ten dead grants sort ahead of the single live one. They must not
	// eat the page, a full page still surfaces every live grant.
	for i := 0; i < 10; i++ {
		_, err := f.deliver(as(demeter), &ApproveAllMsg{
			Operator: fmt.Sprintf("exp%d", i),
			Expires:  glyph.ExpireAtHeight(testHeight + 1),
		})
		assert.Nil(t, err)
	}
	_, err := f.deliver(as(demeter), &ApproveAllMsg{Operator: "zlive"})
	assert.Nil(t, err)

	q := NewQueries()

	grants, err := q.AllOperators(glyphtest.Ctx(testHeight+1), f.db, demeter, false, "", 10)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(grants))
	assert.Equal(t, glyph.Address("zlive"), grants[0].Operator)

	// With expired entries included the page fills up with them.
	grants, err = q.AllOperators(glyphtest.Ctx(testHeight+1), f.db, demeter, true, "", 10)
	assert.Nil(t, err)
	assert.Equal(t, 10, len(grants))
	assert.Equal(t, glyph.Address("exp0"), grants[0].Operator)
}

func TestQueryTokensPagination(t *testing.T) {
	f := newFixture(t, InitOptions{})
	for i := 0; i < 35; i++ {
		f.mint(t, person)
	}
	q := NewQueries()

	// Zero limit falls back to the default page size.
	ids, err := q.AllTokens(f.db, "", 0)
	assert.Nil(t, err)
	assert.Equal(t, DefaultPageSize, len(ids))
	assert.Equal(t, "0", ids[0])

	// Requests above the cap are clamped.
	ids, err = q.AllTokens(f.db, "", 100)
	assert.Nil(t, err)
	assert.Equal(t, MaxPageSize, len(ids))

	// Pages chain through the exclusive cursor without overlap.
	ids, err = q.AllTokens(f.db, ids[len(ids)-1], 100)
	assert.Nil(t, err)
	assert.Equal(t, 5, len(ids))
	assert.Equal(t, "30", ids[0])
	assert.Equal(t, "34", ids[4])
}

func TestQueryTokensByOwner(t *testing.T) {
	f := newFixture(t, InitOptions{})
	var owned []string
	for i := 0; i < 6; i++ {
		if i%2 == 0 {
			owned = append(owned, f.mint(t, person))
		} else {
			f.mint(t, random)
		}
	}
	q := NewQueries()

	ids, err := q.Tokens(f.db, person, "", 2)
	assert.Nil(t, err)
	assert.Equal(t, owned[:2], ids)

	ids, err = q.Tokens(f.db, person, ids[1], 10)
	assert.Nil(t, err)
	assert.Equal(t, owned[2:], ids)

	ids, err = q.Tokens(f.db, "nobody", "", 10)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(ids))
}

func TestQueryContractInfoAndNumTokens(t *testing.T) {
	f := newFixture(t, InitOptions{Name: "Demeter Fields", Symbol: "CROP"})
	q := NewQueries()

	info, err := q.ContractInfo(f.db)
	assert.Nil(t, err)
	assert.Equal(t, "Demeter Fields", info.Name)
	assert.Equal(t, "CROP", info.Symbol)

	assert.Equal(t, uint64(0), q.NumTokens(f.db))
	f.mint(t, person)
	assert.Equal(t, uint64(1), q.NumTokens(f.db))
}

func TestQueryNftInfo(t *testing.T) {
	f := newFixture(t, InitOptions{})
	res, err := f.deliver(as(demeter), &MintMsg{
		Owner:     "person",
		URI:       "ipfs://metadata/7",
		Extension: Extension{Kind: "trait_list", Data: []byte(`["green"]`)},
	})
	assert.Nil(t, err)
	id := string(res.Data)

	q := NewQueries()

	info, err := q.NftInfo(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, "ipfs://metadata/7", info.URI)
	assert.Equal(t, "trait_list", info.Extension.Kind)

	all, err := q.AllNftInfo(glyphtest.Ctx(testHeight), f.db, id, false)
	assert.Nil(t, err)
	assert.Equal(t, person, all.Access.Owner)
	assert.Equal(t, "ipfs://metadata/7", all.Info.URI)

	_, err = q.NftInfo(f.db, "99")
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestQueryMinter(t *testing.T) {
	f := newFixture(t, InitOptions{})
	q := NewQueries()

	minter, err := q.Minter(f.db)
	assert.Nil(t, err)
	assert.Equal(t, demeter, minter)
}

func TestClampLimit(t *testing.T) {
	cases := []struct {
		in, out int
	}{
		{-1, DefaultPageSize},
		{0, DefaultPageSize},
		{1, 1},
		{MaxPageSize, MaxPageSize},
		{MaxPageSize + 1, MaxPageSize},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprint(tc.in), func(t *testing.T) {
			assert.Equal(t, tc.out, clampLimit(tc.in))
		})
	}
}
