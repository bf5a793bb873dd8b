package store

import (
	"bytes"

	"github.com/google/btree"
)

// itemIter merges the uncommitted items of a cache wrap with the
// iterator of the backing store. The cache wins on key collisions and
// deleted keys shadow whatever the parent holds.
type itemIter struct {
	cache   []btree.Item
	parent  Iterator
	reverse bool

	valid bool
	key   []byte
	value []byte
}

var _ Iterator = (*itemIter)(nil)

func newItemIter(cache []btree.Item, parent Iterator, reverse bool) *itemIter {
	iter := &itemIter{
		cache:   cache,
		parent:  parent,
		reverse: reverse,
	}
	iter.advance()
	return iter
}

// Valid implements Iterator and returns true iff it can be read.
func (i *itemIter) Valid() bool {
	return i.valid
}

// Next moves the iterator to the next sequential key as defined by the
// order of iteration.
func (i *itemIter) Next() {
	if !i.valid {
		panic("passed end of iterator")
	}
	i.advance()
}

// Key returns the key of the cursor.
func (i *itemIter) Key() []byte {
	if !i.valid {
		panic("passed end of iterator")
	}
	return i.key
}

// Value returns the value of the cursor.
func (i *itemIter) Value() []byte {
	if !i.valid {
		panic("passed end of iterator")
	}
	return i.value
}

// Close releases the iterator and the wrapped parent.
func (i *itemIter) Close() {
	i.cache = nil
	i.valid = false
	i.parent.Close()
}

// advance resolves the next visible key, skipping cached deletes and
// the parent entries they shadow.
func (i *itemIter) advance() {
	for {
		haveCache := len(i.cache) > 0
		haveParent := i.parent.Valid()

		switch {
		case !haveCache && !haveParent:
			i.valid = false
			return
		case !haveCache:
			i.takeParent()
			return
		case !haveParent:
			if i.takeCache() {
				return
			}
		default:
			cmp := bytes.Compare(i.cache[0].(keyer).Key(), i.parent.Key())
			if i.reverse {
				cmp = -cmp
			}
			switch {
			case cmp > 0:
				i.takeParent()
				return
			case cmp == 0:
				// The cached write overrides the stored one.
				i.parent.Next()
				fallthrough
			default:
				if i.takeCache() {
					return
				}
			}
		}
	}
}

// takeCache consumes the next cached item. It reports false when the
// item was a delete marker and the scan must continue.
func (i *itemIter) takeCache() bool {
	item := i.cache[0]
	i.cache = i.cache[1:]
	set, ok := item.(setItem)
	if !ok {
		return false
	}
	i.key = set.key
	i.value = set.value
	i.valid = true
	return true
}

func (i *itemIter) takeParent() {
	i.key = i.parent.Key()
	i.value = i.parent.Value()
	i.valid = true
	i.parent.Next()
}
