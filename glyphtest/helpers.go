// Package glyphtest provides helpers for testing handlers and buckets
// without a full runtime around them.
package glyphtest

import (
	"context"
	"time"

	"github.com/glyph-network/glyph"
	"github.com/glyph-network/glyph/errors"
)

// Tx is the simplest possible transaction, wrapping a single message.
type Tx struct {
	Msg glyph.Msg
}

var _ glyph.Tx = &Tx{}

// GetMsg implements glyph.Tx.
func (tx *Tx) GetMsg() (glyph.Msg, error) {
	return tx.Msg, nil
}

// NewTx wraps one message into a transaction.
func NewTx(msg glyph.Msg) *Tx {
	return &Tx{Msg: msg}
}

// Ctx returns a context at the given block height. Block time advances
// five seconds per block from a fixed epoch so both expiry dimensions
// are always populated.
func Ctx(height int64) glyph.Context {
	ctx := context.Background()
	ctx = glyph.WithChainID(ctx, "test-chain")
	ctx = glyph.WithHeight(ctx, height)
	ctx = glyph.WithBlockTime(ctx, time.Unix(1500000000+height*5, 0))
	return ctx
}

// AddressValidator accepts any well formed address string as is,
// allowing tests to use readable account names.
type AddressValidator struct{}

var _ glyph.AddressValidator = AddressValidator{}

// Validate implements glyph.AddressValidator.
func (AddressValidator) Validate(source string) (glyph.Address, error) {
	a := glyph.Address(source)
	if err := a.Validate(); err != nil {
		return "", errors.Wrapf(err, "%q", source)
	}
	return a, nil
}
