package orm

import (
	"encoding/binary"

	"github.com/glyph-network/glyph"
	"github.com/glyph-network/glyph/errors"
)

const counterPrefix = "_n."

// Counter is a named uint64 stored as 8 bytes big endian. Missing reads
// as zero. It backs the registry's bookkeeping numbers, like the live
// token count and the per-wallet mint totals.
type Counter struct {
	key []byte
}

// NewCounter returns a counter stored under the given bucket and name.
func NewCounter(bucket, name string) Counter {
	return Counter{
		key: []byte(counterPrefix + bucket + ":" + name),
	}
}

// WithSuffix derives a counter keyed by an additional dynamic part, for
// per-entity counts.
func (c Counter) WithSuffix(suffix []byte) Counter {
	key := make([]byte, 0, len(c.key)+1+len(suffix))
	key = append(key, c.key...)
	key = append(key, ':')
	key = append(key, suffix...)
	return Counter{key: key}
}

// Get returns the current value, zero when never written.
func (c Counter) Get(db glyph.ReadOnlyKVStore) uint64 {
	raw := db.Get(c.key)
	if raw == nil {
		return 0
	}
	return binary.BigEndian.Uint64(raw)
}

// Incr increases the counter by one and returns the new value.
func (c Counter) Incr(db glyph.KVStore) (uint64, error) {
	val := c.Get(db) + 1
	if val == 0 {
		return 0, errors.Wrap(errors.ErrOverflow, "counter wrapped")
	}
	c.set(db, val)
	return val, nil
}

// Decr decreases the counter by one and returns the new value. Going
// below zero is a coding error, the caller tracks live entities.
func (c Counter) Decr(db glyph.KVStore) (uint64, error) {
	val := c.Get(db)
	if val == 0 {
		return 0, errors.Wrap(errors.ErrHuman, "counter below zero")
	}
	c.set(db, val-1)
	return val - 1, nil
}

func (c Counter) set(db glyph.KVStore, val uint64) {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, val)
	db.Set(c.key, raw)
}
