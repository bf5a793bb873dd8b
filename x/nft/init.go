package nft

import (
	"github.com/glyph-network/glyph"
	"github.com/glyph-network/glyph/coin"
	"github.com/glyph-network/glyph/errors"
	"github.com/glyph-network/glyph/x/ownable"
)

// InitOptions is everything instantiation needs. Minter and
// WithdrawAddress are optional, a missing minter defaults to the
// instantiating account and a missing withdraw address leaves
// withdrawals disabled.
type InitOptions struct {
	Name            string
	Symbol          string
	Minter          string
	WithdrawAddress string
	MaxSupply       uint64
	MaxPerWallet    uint64
	MintPrice       *coin.Coin
}

// Initialize writes the collection configuration, seeds the minter role
// and optionally the withdraw address. It runs exactly once, a second
// call fails on the already existing ownership record.
func Initialize(db glyph.KVStore, creator glyph.Address, opts InitOptions, addr glyph.AddressValidator) error {
	conf := Configuration{
		Name:         opts.Name,
		Symbol:       opts.Symbol,
		MaxSupply:    opts.MaxSupply,
		MaxPerWallet: opts.MaxPerWallet,
		MintPrice:    opts.MintPrice,
	}
	if err := saveConf(db, &conf); err != nil {
		return errors.Wrap(err, "configuration")
	}

	minter := creator
	if opts.Minter != "" {
		var err error
		if minter, err = addr.Validate(opts.Minter); err != nil {
			return errors.Wrap(err, "minter")
		}
	}
	owners := ownable.NewController()
	if err := owners.Initialize(db, pkgName, minter); err != nil {
		return errors.Wrap(err, "minter role")
	}

	if opts.WithdrawAddress != "" {
		withdraw, err := addr.Validate(opts.WithdrawAddress)
		if err != nil {
			return errors.Wrap(err, "withdraw address")
		}
		if err := NewTreasuryBucket().SetWithdrawAddress(db, withdraw); err != nil {
			return errors.Wrap(err, "withdraw address")
		}
	}
	return nil
}
