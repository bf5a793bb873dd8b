package store

import "github.com/glyph-network/glyph"

// Move references for all storage types into this package
// for shorter names everywhere.

type KVStore = glyph.KVStore
type ReadOnlyKVStore = glyph.ReadOnlyKVStore
type Iterator = glyph.Iterator
type Model = glyph.Model
type CacheableKVStore = glyph.CacheableKVStore
type KVCacheWrap = glyph.KVCacheWrap
