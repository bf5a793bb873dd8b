package orm

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/glyph-network/glyph"
	"github.com/glyph-network/glyph/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket is a generic holder that stores models of one type under a
// prefixed subspace of the db, as well as references to secondary
// indexes.
//
// This is a generic building block that should generally be embedded in
// a type-safe wrapper to ensure all data is the same type.
type Bucket struct {
	name    string
	prefix  []byte
	model   reflect.Type
	indexes []Index
}

// NewBucket creates a bucket to store data. The prototype defines the
// one model type this bucket operates on.
func NewBucket(name string, proto Model) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket name: %s", name))
	}
	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		model:  modelType(proto),
	}
}

// Name returns the name of the bucket.
func (b Bucket) Name() string {
	return b.name
}

// WithIndex returns a copy of this bucket with the given secondary
// index. Designed to be chained during construction, never afterwards.
func (b Bucket) WithIndex(name string, indexer Indexer, unique bool) Bucket {
	for _, ix := range b.indexes {
		if ix.name == name {
			panic(fmt.Sprintf("index %s registered twice", name))
		}
	}
	indexes := make([]Index, len(b.indexes), len(b.indexes)+1)
	copy(indexes, b.indexes)
	b.indexes = append(indexes, newIndex(b.name+"_"+name, indexer, unique))
	return b
}

// DBKey is the full key we store in the db, including the prefix. We
// copy into a new array rather than use append, so consecutive calls do
// not overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// One loads the model stored under the given primary key into dest.
// It returns ErrNotFound when no entity exists under that key.
func (b Bucket) One(db glyph.ReadOnlyKVStore, key []byte, dest Model) error {
	raw := db.Get(b.DBKey(key))
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	return unmarshal(raw, dest)
}

// Has returns true if an entity exists under the given primary key.
func (b Bucket) Has(db glyph.ReadOnlyKVStore, key []byte) bool {
	return db.Has(b.DBKey(key))
}

// Put saves the model under the given primary key, overwriting any
// previous version and moving all index entries in the same operation.
func (b Bucket) Put(db glyph.KVStore, key []byte, m Model) error {
	raw, err := marshal(m)
	if err != nil {
		return err
	}
	prev, err := b.previous(db, key)
	if err != nil {
		return err
	}
	for _, ix := range b.indexes {
		if err := ix.update(db, key, prev, m); err != nil {
			return err
		}
	}
	db.Set(b.DBKey(key), raw)
	return nil
}

// Create saves the model under the given primary key and fails with
// ErrDuplicate when the key is already occupied.
func (b Bucket) Create(db glyph.KVStore, key []byte, m Model) error {
	if b.Has(db, key) {
		return errors.Wrapf(errors.ErrDuplicate, "%s %X", b.name, key)
	}
	return b.Put(db, key, m)
}

// Delete removes the entity under the given primary key together with
// all its index entries. It returns ErrNotFound when there is nothing
// to remove.
func (b Bucket) Delete(db glyph.KVStore, key []byte) error {
	prev, err := b.previous(db, key)
	if err != nil {
		return err
	}
	if prev == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	for _, ix := range b.indexes {
		if err := ix.update(db, key, prev, nil); err != nil {
			return err
		}
	}
	db.Delete(b.DBKey(key))
	return nil
}

// previous loads the currently stored version of an entity, or nil when
// absent. Only consulted when indexes must be moved.
func (b Bucket) previous(db glyph.ReadOnlyKVStore, key []byte) (Model, error) {
	if len(b.indexes) == 0 {
		return nil, nil
	}
	raw := db.Get(b.DBKey(key))
	if raw == nil {
		return nil, nil
	}
	prev := reflect.New(b.model).Interface().(Model)
	if err := unmarshal(raw, prev); err != nil {
		return nil, err
	}
	return prev, nil
}

// Iterate returns an iterator over all entities in ascending primary
// key order, starting strictly after the given key. A nil after starts
// from the beginning. Returned keys are stripped of the bucket prefix.
func (b Bucket) Iterate(db glyph.ReadOnlyKVStore, after []byte) *ModelIterator {
	start, end := prefixRange(b.prefix)
	if after != nil {
		// The smallest key greater than the cursor is the cursor
		// with a zero byte appended.
		start = append(b.DBKey(after), 0)
	}
	return &ModelIterator{
		iter:   db.Iterator(start, end),
		prefix: b.prefix,
	}
}

// IteratePrefix returns an iterator over all entities whose primary key
// begins with the given prefix, in ascending key order, starting
// strictly after the given key. A nil after starts from the beginning
// of the prefix range. Both prefix and after are without the bucket
// prefix, the same namespace as keys passed to Put.
func (b Bucket) IteratePrefix(db glyph.ReadOnlyKVStore, prefix []byte, after []byte) *ModelIterator {
	start, end := prefixRange(b.DBKey(prefix))
	if after != nil {
		start = append(b.DBKey(after), 0)
	}
	return &ModelIterator{
		iter:   db.Iterator(start, end),
		prefix: b.prefix,
	}
}

// IndexKeys returns the primary keys of all entities indexed under the
// given value by the named index, in ascending primary key order,
// starting strictly after the given key. It returns ErrHuman for an
// unknown index name, registering indexes is a construction time task.
func (b Bucket) IndexKeys(db glyph.ReadOnlyKVStore, name string, value []byte, after []byte) (*IndexIterator, error) {
	ix, ok := b.index(name)
	if !ok {
		return nil, errors.Wrapf(errors.ErrHuman, "no index %q on bucket %q", name, b.name)
	}
	return ix.keys(db, value, after), nil
}

func (b Bucket) index(name string) (Index, bool) {
	full := b.name + "_" + name
	for _, ix := range b.indexes {
		if ix.name == full {
			return ix, true
		}
	}
	return Index{}, false
}

// ModelIterator walks over the entities of one bucket.
type ModelIterator struct {
	iter   glyph.Iterator
	prefix []byte
}

// Valid returns true while the iterator can be read.
func (it *ModelIterator) Valid() bool {
	return it.iter.Valid()
}

// Next advances the iterator.
func (it *ModelIterator) Next() {
	it.iter.Next()
}

// Key returns the primary key of the current entity, without the bucket
// prefix.
func (it *ModelIterator) Key() []byte {
	return it.iter.Key()[len(it.prefix):]
}

// Load deserializes the current entity into dest.
func (it *ModelIterator) Load(dest Model) error {
	return unmarshal(it.iter.Value(), dest)
}

// Close releases the iterator.
func (it *ModelIterator) Close() {
	it.iter.Close()
}

// prefixRange turns a prefix into the start/end bounds covering exactly
// all keys with that prefix.
//
// In case of the prefix being 0xff bytes only, there is no end and nil
// is returned.
func prefixRange(prefix []byte) ([]byte, []byte) {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return prefix, end[:i+1]
		}
	}
	return prefix, nil
}
