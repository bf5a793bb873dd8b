package glyph

import (
	"reflect"

	"github.com/glyph-network/glyph/errors"
)

// Msg is a mutating operation request. It is the basic building block of
// every transaction processed by the dispatcher.
type Msg interface {
	// Path returns the routing path for this message, in the
	// "<extension>/<operation>" format.
	Path() string

	// Validate makes sure the message is internally consistent.
	// Validation must not depend on any state.
	Validate() error
}

// Tx represents the signed transaction envelope. The dispatcher resolves
// the sender and attached funds from the envelope and exposes them
// through the context, handlers only care about the message.
type Tx interface {
	// GetMsg returns the message this transaction wants executed.
	GetMsg() (Msg, error)
}

// LoadMsg extracts the message from the transaction and loads it into
// the destination, which must be a non-nil pointer to the expected
// message type. The message is validated before being returned.
func LoadMsg(tx Tx, destination Msg) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}

	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr || dest.IsNil() {
		return errors.Wrapf(errors.ErrType, "%T is not a pointer", destination)
	}
	val := reflect.ValueOf(msg)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if !val.Type().AssignableTo(dest.Elem().Type()) {
		return errors.Wrapf(errors.ErrType, "want %s, got %T", dest.Elem().Type(), msg)
	}
	dest.Elem().Set(val)
	return nil
}
