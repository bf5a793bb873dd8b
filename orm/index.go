package orm

import (
	"bytes"
	"math"

	"github.com/glyph-network/glyph"
	"github.com/glyph-network/glyph/errors"
)

const indexPrefix = "_x."

// Indexer calculates the secondary index value for a given entity. A
// nil result means the entity is not present in this index.
type Indexer func(key []byte, m Model) ([]byte, error)

// Index maintains a database-native secondary index: one db key per
// (indexed value, primary key) pair, so lookups and range scans map
// directly onto key iteration.
type Index struct {
	name    string
	indexer Indexer
	unique  bool
}

func newIndex(name string, indexer Indexer, unique bool) Index {
	return Index{
		name:    name,
		indexer: indexer,
		unique:  unique,
	}
}

// update moves the index entry of one entity.
//
// prev == nil means insert, next == nil means delete, both nil is a
// coding error. Deregistering the old entry and registering the new one
// happen within the same store operation as the entity write itself.
func (ix Index) update(db glyph.KVStore, key []byte, prev, next Model) error {
	if prev == nil && next == nil {
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil model")
	}

	var oldVal, newVal []byte
	var err error
	if prev != nil {
		if oldVal, err = ix.indexer(key, prev); err != nil {
			return errors.Wrapf(err, "index %s", ix.name)
		}
	}
	if next != nil {
		if newVal, err = ix.indexer(key, next); err != nil {
			return errors.Wrapf(err, "index %s", ix.name)
		}
	}
	if bytes.Equal(oldVal, newVal) {
		return nil
	}

	if oldVal != nil {
		db.Delete(ix.dbKey(oldVal, key))
	}
	if newVal != nil {
		if ix.unique {
			if it := ix.keys(db, newVal, nil); it.Valid() {
				it.Close()
				return errors.Wrapf(errors.ErrDuplicate, "index %s", ix.name)
			}
		}
		db.Set(ix.dbKey(newVal, key), []byte{})
	}
	return nil
}

// keys returns an iterator over the primary keys indexed under the
// given value, in ascending primary key order, starting strictly after
// the given key (nil for all).
func (ix Index) keys(db glyph.ReadOnlyKVStore, value []byte, after []byte) *IndexIterator {
	base := packIndexKey(ix.name, value)

	start := base
	if after != nil {
		start = append(ix.dbKey(value, after), 0)
	}
	// MaxUint8 is never produced by the chunk serializer so it works
	// as the upper guard for this value.
	end := append(append([]byte{}, base...), math.MaxUint8)

	return &IndexIterator{iter: db.Iterator(start, end)}
}

// dbKey builds the full database key for one (value, primary key) pair.
func (ix Index) dbKey(value, pk []byte) []byte {
	return append(packIndexKey(ix.name, value), packChunk(pk)...)
}

// IndexIterator walks the primary keys stored in one index.
type IndexIterator struct {
	iter glyph.Iterator
}

// Valid returns true while the iterator can be read.
func (it *IndexIterator) Valid() bool {
	return it.iter.Valid()
}

// Next advances the iterator.
func (it *IndexIterator) Next() {
	it.iter.Next()
}

// Key returns the primary key the current index entry references.
func (it *IndexIterator) Key() ([]byte, error) {
	chunks, err := unpackIndexKey(it.iter.Key())
	if err != nil {
		return nil, err
	}
	return chunks[len(chunks)-1], nil
}

// Close releases the iterator.
func (it *IndexIterator) Close() {
	it.iter.Close()
}

// packIndexKey serializes the index name and value into the common
// prefix of all entries indexed under that value. Each chunk is length
// prefixed so that no value can fake a chunk boundary, and chunks of
// different lengths never interleave in iteration order.
func packIndexKey(name string, value []byte) []byte {
	out := make([]byte, 0, len(indexPrefix)+len(name)+len(value)+2)
	out = append(out, indexPrefix...)
	out = append(out, name...)
	out = append(out, ':')
	out = append(out, packChunk(value)...)
	return out
}

// packChunk length-prefixes a single chunk. MaxUint8 is reserved for
// the iteration guard, so the longest allowed chunk is 254 bytes.
func packChunk(b []byte) []byte {
	if len(b) > math.MaxUint8-1 {
		panic("index chunk too long")
	}
	out := make([]byte, 0, len(b)+1)
	out = append(out, uint8(len(b)))
	return append(out, b...)
}

// unpackIndexKey extracts the chunks composing an index key.
func unpackIndexKey(key []byte) ([][]byte, error) {
	i := bytes.IndexByte(key, ':')
	if !bytes.HasPrefix(key, []byte(indexPrefix)) || i < 0 {
		return nil, errors.Wrapf(errors.ErrDatabase, "not an index key: %X", key)
	}
	b := key[i+1:]
	res := make([][]byte, 0, 2)
	for len(b) > 0 {
		size := int(b[0])
		if len(b) < 1+size {
			return nil, errors.Wrapf(errors.ErrDatabase, "malformed index key: %X", key)
		}
		res = append(res, b[1:1+size])
		b = b[1+size:]
	}
	if len(res) == 0 {
		return nil, errors.Wrapf(errors.ErrDatabase, "empty index key: %X", key)
	}
	return res, nil
}
