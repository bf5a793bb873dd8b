/*
Package glyph defines the common interfaces that tie the registry
together: key-value storage, message and handler contracts, context
helpers, and the small shared value types (addresses, times and
expirations).

Implementations of the heavier components live in subpackages: store
provides the cache-wrapping KVStore, orm the bucket layer on top of it,
app the message dispatcher, and x/nft the non-fungible token registry
itself.
*/
package glyph
