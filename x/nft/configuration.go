package nft

import (
	"github.com/glyph-network/glyph"
	"github.com/glyph-network/glyph/coin"
	"github.com/glyph-network/glyph/errors"
	"github.com/glyph-network/glyph/gconf"
)

// pkgName is the namespace this package registers its configuration
// and ownership record under.
const pkgName = "nft"

// Configuration is the immutable collection setup written once at
// instantiation time. Zero caps mean unlimited, a nil price means
// minting is free.
type Configuration struct {
	Name         string     `msgpack:"name"`
	Symbol       string     `msgpack:"symbol"`
	MaxSupply    uint64     `msgpack:"max_supply,omitempty"`
	MaxPerWallet uint64     `msgpack:"max_per_wallet,omitempty"`
	MintPrice    *coin.Coin `msgpack:"mint_price,omitempty"`
}

var _ gconf.Configuration = (*Configuration)(nil)

// Validate implements gconf.Configuration.
func (c *Configuration) Validate() error {
	if c.Name == "" {
		return errors.Wrap(errors.ErrEmpty, "name")
	}
	if c.Symbol == "" {
		return errors.Wrap(errors.ErrEmpty, "symbol")
	}
	if c.MintPrice != nil {
		if err := c.MintPrice.Validate(); err != nil {
			return errors.Wrap(err, "mint price")
		}
		if !c.MintPrice.IsPositive() {
			return errors.Wrap(errors.ErrAmount, "mint price must be positive")
		}
	}
	return nil
}

func loadConf(db glyph.ReadOnlyKVStore) (*Configuration, error) {
	var c Configuration
	if err := gconf.Load(db, pkgName, &c); err != nil {
		return nil, errors.Wrap(err, "configuration")
	}
	return &c, nil
}

func saveConf(db glyph.KVStore, c *Configuration) error {
	return gconf.Save(db, pkgName, c)
}
