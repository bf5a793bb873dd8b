package ownable

import (
	"testing"

	"github.com/glyph-network/glyph"
	"github.com/glyph-network/glyph/errors"
	"github.com/glyph-network/glyph/glyphtest"
	"github.com/glyph-network/glyph/glyphtest/assert"
	"github.com/glyph-network/glyph/store"
)

const testPkg = "widget"

var (
	alice = glyph.Address("alice")
	bob   = glyph.Address("bob")
	eve   = glyph.Address("eve")
)

func TestInitializeOnce(t *testing.T) {
	db := store.MemStore()
	c := NewController()

	assert.Nil(t, c.Initialize(db, testPkg, alice))

	owner, err := c.Owner(db, testPkg)
	assert.Nil(t, err)
	assert.Equal(t, alice, owner)

	assert.IsErr(t, errors.ErrDuplicate, c.Initialize(db, testPkg, bob))
}

func TestOwnerOfUnknownRecord(t *testing.T) {
	db := store.MemStore()
	c := NewController()

	_, err := c.Owner(db, testPkg)
	assert.IsErr(t, errors.ErrNotFound, err)
	assert.IsErr(t, errors.ErrUnauthorized, c.AssertOwner(db, testPkg, alice))
}

func TestProposeAndAccept(t *testing.T) {
	db := store.MemStore()
	c := NewController()
	ctx := glyphtest.Ctx(100)

	assert.Nil(t, c.Initialize(db, testPkg, alice))

	// Only the owner can propose.
	err := c.Propose(ctx, db, testPkg, eve, bob, glyph.Never())
	assert.IsErr(t, errors.ErrUnauthorized, err)

	assert.Nil(t, c.Propose(ctx, db, testPkg, alice, bob, glyph.ExpireAtHeight(200)))

	// Until accepted, nothing changed.
	assert.Nil(t, c.AssertOwner(db, testPkg, alice))

	// Only the proposed owner can accept.
	err = c.Accept(ctx, db, testPkg, eve)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	assert.Nil(t, c.Accept(ctx, db, testPkg, bob))
	owner, err := c.Owner(db, testPkg)
	assert.Nil(t, err)
	assert.Equal(t, bob, owner)

	// The proposal is consumed.
	err = c.Accept(ctx, db, testPkg, bob)
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestProposalExpiry(t *testing.T) {
	db := store.MemStore()
	c := NewController()

	assert.Nil(t, c.Initialize(db, testPkg, alice))

	// A proposal that is already expired is rejected outright.
	err := c.Propose(glyphtest.Ctx(300), db, testPkg, alice, bob, glyph.ExpireAtHeight(200))
	assert.IsErr(t, errors.ErrExpired, err)

	assert.Nil(t, c.Propose(glyphtest.Ctx(100), db, testPkg, alice, bob, glyph.ExpireAtHeight(200)))

	// Accepting after the deadline fails, the deadline is inclusive.
	assert.IsErr(t, errors.ErrExpired, c.Accept(glyphtest.Ctx(200), db, testPkg, bob))
	// Before the deadline it works.
	assert.Nil(t, c.Accept(glyphtest.Ctx(199), db, testPkg, bob))
}

func TestRenounce(t *testing.T) {
	db := store.MemStore()
	c := NewController()
	ctx := glyphtest.Ctx(100)

	assert.Nil(t, c.Initialize(db, testPkg, alice))
	assert.Nil(t, c.Propose(ctx, db, testPkg, alice, bob, glyph.Never()))

	assert.IsErr(t, errors.ErrUnauthorized, c.Renounce(db, testPkg, eve))
	assert.Nil(t, c.Renounce(db, testPkg, alice))

	// Renouncing drops the pending proposal as well.
	assert.IsErr(t, errors.ErrUnauthorized, c.Accept(ctx, db, testPkg, bob))

	_, err := c.Owner(db, testPkg)
	assert.IsErr(t, errors.ErrNotFound, err)
}
