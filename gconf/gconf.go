// Package gconf manages the per-package configuration singletons. A
// configuration is written once during initialization and read by the
// package that owns it, by convention under the "_c:<pkg>" key.
package gconf

import (
	"github.com/vmihailenco/msgpack/v4"

	"github.com/glyph-network/glyph"
	"github.com/glyph-network/glyph/errors"
)

// Configuration is implemented by any object that can be persisted as a
// package configuration.
type Configuration interface {
	Validate() error
}

func dbKey(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates the object, then writes it to the configuration
// singleton of the given package.
func Save(db glyph.KVStore, pkg string, src Configuration) error {
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "configuration %q", pkg)
	}
	raw, err := msgpack.Marshal(src)
	if err != nil {
		return errors.Wrapf(err, "marshal configuration %q", pkg)
	}
	db.Set(dbKey(pkg), raw)
	return nil
}

// Load reads the configuration singleton of the given package into dst.
// It fails with ErrNotFound when the package was never configured.
func Load(db glyph.ReadOnlyKVStore, pkg string, dst Configuration) error {
	raw := db.Get(dbKey(pkg))
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "configuration %q", pkg)
	}
	if err := msgpack.Unmarshal(raw, dst); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "unmarshal configuration %q: %s", pkg, err)
	}
	return nil
}
