package nft

import (
	"testing"

	"github.com/glyph-network/glyph"
	"github.com/glyph-network/glyph/errors"
	"github.com/glyph-network/glyph/glyphtest"
	"github.com/glyph-network/glyph/glyphtest/assert"
	"github.com/glyph-network/glyph/store"
)

func TestInitializeDefaultsMinterToCreator(t *testing.T) {
	db := store.MemStore()
	opts := InitOptions{Name: "Glyphs", Symbol: "GLY"}
	assert.Nil(t, Initialize(db, demeter, opts, glyphtest.AddressValidator{}))

	minter, err := NewQueries().Minter(db)
	assert.Nil(t, err)
	assert.Equal(t, demeter, minter)

	// A second instantiation is refused.
	assert.IsErr(t, errors.ErrDuplicate, Initialize(db, person, opts, glyphtest.AddressValidator{}))
}

func TestInitializeExplicitRoles(t *testing.T) {
	db := store.MemStore()
	opts := InitOptions{
		Name:            "Glyphs",
		Symbol:          "GLY",
		Minter:          "person",
		WithdrawAddress: "treasury",
	}
	assert.Nil(t, Initialize(db, demeter, opts, glyphtest.AddressValidator{}))

	q := NewQueries()
	minter, err := q.Minter(db)
	assert.Nil(t, err)
	assert.Equal(t, person, minter)

	withdraw, err := q.WithdrawAddress(db)
	assert.Nil(t, err)
	assert.Equal(t, glyph.Address("treasury"), withdraw)
}

func TestInitializeRejectsBrokenSetup(t *testing.T) {
	db := store.MemStore()
	v := glyphtest.AddressValidator{}

	err := Initialize(db, demeter, InitOptions{Symbol: "GLY"}, v)
	assert.IsErr(t, errors.ErrEmpty, err)

	err = Initialize(db, demeter, InitOptions{Name: "Glyphs", Symbol: "GLY", Minter: "NOT VALID"}, v)
	assert.IsErr(t, errors.ErrBadAddress, err)
}
