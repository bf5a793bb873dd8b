package nft

import (
	"github.com/glyph-network/glyph"
	"github.com/glyph-network/glyph/errors"
	"github.com/glyph-network/glyph/orm"
)

// maxURILength bounds the metadata reference stored per token.
const maxURILength = 2048

// TokenInfo is the stored state of one token. Owner is always set.
// Approvals only ever holds entries attached by the current owner,
// every owner change wipes them.
type TokenInfo struct {
	Owner     glyph.Address `msgpack:"owner"`
	Approvals []Approval    `msgpack:"approvals,omitempty"`
	URI       string        `msgpack:"uri,omitempty"`
	Extension Extension     `msgpack:"extension,omitempty"`
}

var _ orm.Model = (*TokenInfo)(nil)

// Validate implements orm.Model.
func (t *TokenInfo) Validate() error {
	if err := t.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	for i, a := range t.Approvals {
		if err := a.Validate(); err != nil {
			return errors.Wrapf(err, "approval #%d", i)
		}
	}
	if len(t.URI) > maxURILength {
		return errors.Wrap(errors.ErrInput, "uri too long")
	}
	return t.Extension.Validate()
}

// Approval grants one spender the right to transfer one token until the
// grant expires. The zero expiration never expires.
type Approval struct {
	Spender glyph.Address    `msgpack:"spender"`
	Expires glyph.Expiration `msgpack:"expires,omitempty"`
}

// Validate returns an error unless the approval could be stored.
func (a Approval) Validate() error {
	if err := a.Spender.Validate(); err != nil {
		return errors.Wrap(err, "spender")
	}
	return errors.Wrap(a.Expires.Validate(), "expires")
}

// Approvals provides set-like helpers over the approval list of one
// token. All methods work on copies, the receiver is never mutated.
type Approvals []Approval

// Without returns the approvals with any grant for the given spender
// removed. There is at most one grant per spender, but stale data is
// cleaned up wholesale anyway.
func (as Approvals) Without(spender glyph.Address) Approvals {
	var out Approvals
	for _, a := range as {
		if !a.Spender.Equals(spender) {
			out = append(out, a)
		}
	}
	return out
}

// ForSpender returns the grant for the given spender, or nil.
func (as Approvals) ForSpender(spender glyph.Address) *Approval {
	for i, a := range as {
		if a.Spender.Equals(spender) {
			return &as[i]
		}
	}
	return nil
}

// FilterExpired returns only the approvals that are still live in the
// given block context.
func (as Approvals) FilterExpired(ctx glyph.Context) Approvals {
	var out Approvals
	for _, a := range as {
		if !a.Expires.IsExpired(ctx) {
			out = append(out, a)
		}
	}
	return out
}

// Extension is an opaque, application-defined payload attached to a
// token at mint time. Kind tags the payload format so off-chain
// consumers know how to decode Data. The registry itself never
// interprets it.
type Extension struct {
	Kind string `msgpack:"kind,omitempty"`
	Data []byte `msgpack:"data,omitempty"`
}

// maxExtensionKind bounds the format tag, maxExtensionData the payload.
const (
	maxExtensionKind = 64
	maxExtensionData = 8192
)

// IsEmpty returns true when no payload was attached.
func (e Extension) IsEmpty() bool {
	return e.Kind == "" && len(e.Data) == 0
}

// Validate returns an error unless the extension could be stored.
func (e Extension) Validate() error {
	if len(e.Kind) > maxExtensionKind {
		return errors.Wrap(errors.ErrInput, "extension kind too long")
	}
	if len(e.Data) > maxExtensionData {
		return errors.Wrap(errors.ErrInput, "extension data too big")
	}
	if e.Kind == "" && len(e.Data) != 0 {
		return errors.Wrap(errors.ErrInput, "extension data without kind")
	}
	return nil
}

// OperatorGrant is the stored state of one blanket operator grant,
// keyed outside the model by the (granter, operator) pair.
type OperatorGrant struct {
	Expires glyph.Expiration `msgpack:"expires,omitempty"`
}

var _ orm.Model = (*OperatorGrant)(nil)

// Validate implements orm.Model.
func (g *OperatorGrant) Validate() error {
	return errors.Wrap(g.Expires.Validate(), "expires")
}
