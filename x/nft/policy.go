package nft

import (
	"github.com/glyph-network/glyph"
	"github.com/glyph-network/glyph/coin"
	"github.com/glyph-network/glyph/errors"
)

// MintPolicy decides whether one more token may be minted to a wallet.
// The checks run in a fixed order, supply cap first, then the wallet
// cap, then the price, so a candidate failing several of them always
// reports the same error.
type MintPolicy struct {
	tokens TokenBucket
}

// Admit returns nil when minting one token to owner is allowed given
// the configuration and the funds attached to the call.
func (p MintPolicy) Admit(db glyph.ReadOnlyKVStore, conf *Configuration, owner glyph.Address, funds coin.Coins) error {
	if conf.MaxSupply > 0 && p.tokens.Count(db) >= conf.MaxSupply {
		return errors.Wrapf(ErrSupplyOverflow, "cap %d", conf.MaxSupply)
	}
	if conf.MaxPerWallet > 0 && p.tokens.MintedBy(db, owner) >= conf.MaxPerWallet {
		return errors.Wrapf(ErrMintPerWalletOverflow, "cap %d", conf.MaxPerWallet)
	}
	if conf.MintPrice != nil && !funds.Pays(*conf.MintPrice) {
		return errors.Wrapf(ErrNotEnoughFunds, "price %s", conf.MintPrice)
	}
	return nil
}
