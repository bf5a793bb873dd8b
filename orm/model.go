/*
Package orm provides an easy to use db wrapper.

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of model.
* It has a primary key and may possess secondary indexes.
* Easy queries for one, and ordered iteration with a cursor.

Values are serialized with msgpack. The storage layout is private to the
bucket and is not a wire contract.
*/
package orm

import (
	"reflect"

	"github.com/vmihailenco/msgpack/v4"

	"github.com/glyph-network/glyph/errors"
)

// Model is implemented by any entity that can be stored in a Bucket.
type Model interface {
	// Validate returns an error if the model cannot be persisted in
	// its current state.
	Validate() error
}

// marshal serializes a model after making sure it is valid.
func marshal(m Model) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}
	raw, err := msgpack.Marshal(m)
	if err != nil {
		return nil, errors.Wrapf(err, "marshal %T", m)
	}
	return raw, nil
}

// unmarshal deserializes raw bucket data into the destination model.
func unmarshal(raw []byte, dest Model) error {
	if err := msgpack.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "unmarshal %T: %s", dest, err)
	}
	return nil
}

// modelType returns the concrete type a prototype represents, so a
// bucket can create fresh instances when it needs to look at stored
// neighbours (eg. for index maintenance).
func modelType(proto Model) reflect.Type {
	tp := reflect.TypeOf(proto)
	if tp.Kind() == reflect.Ptr {
		tp = tp.Elem()
	}
	return tp
}
