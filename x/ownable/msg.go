package ownable

import (
	"github.com/glyph-network/glyph"
	"github.com/glyph-network/glyph/errors"
)

var _ glyph.Msg = (*ProposeOwnerMsg)(nil)
var _ glyph.Msg = (*AcceptOwnerMsg)(nil)
var _ glyph.Msg = (*RenounceOwnerMsg)(nil)

// ProposeOwnerMsg starts a handoff of an ownership record to NewOwner.
// Expiry bounds how long the proposal can be accepted, the zero value
// means forever.
type ProposeOwnerMsg struct {
	NewOwner string           `msgpack:"new_owner"`
	Expiry   glyph.Expiration `msgpack:"expiry,omitempty"`
}

// Path implements glyph.Msg.
func (ProposeOwnerMsg) Path() string {
	return "ownable/propose"
}

// Validate implements glyph.Msg.
func (m *ProposeOwnerMsg) Validate() error {
	if m.NewOwner == "" {
		return errors.Wrap(errors.ErrEmpty, "new owner")
	}
	return errors.Wrap(m.Expiry.Validate(), "expiry")
}

// AcceptOwnerMsg completes a pending handoff. The sender must be the
// proposed owner.
type AcceptOwnerMsg struct{}

// Path implements glyph.Msg.
func (AcceptOwnerMsg) Path() string {
	return "ownable/accept"
}

// Validate implements glyph.Msg.
func (*AcceptOwnerMsg) Validate() error {
	return nil
}

// RenounceOwnerMsg gives up ownership permanently.
type RenounceOwnerMsg struct{}

// Path implements glyph.Msg.
func (RenounceOwnerMsg) Path() string {
	return "ownable/renounce"
}

// Validate implements glyph.Msg.
func (*RenounceOwnerMsg) Validate() error {
	return nil
}
