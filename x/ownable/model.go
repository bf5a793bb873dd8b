package ownable

import (
	"github.com/glyph-network/glyph"
	"github.com/glyph-network/glyph/errors"
	"github.com/glyph-network/glyph/orm"
)

// Ownership is the stored state of one ownership record. An empty Owner
// means the record was renounced and no owner-gated operation can ever
// succeed again.
type Ownership struct {
	Owner         glyph.Address    `msgpack:"owner,omitempty"`
	PendingOwner  glyph.Address    `msgpack:"pending_owner,omitempty"`
	PendingExpiry glyph.Expiration `msgpack:"pending_expiry,omitempty"`
}

var _ orm.Model = (*Ownership)(nil)

// Validate implements orm.Model.
func (o *Ownership) Validate() error {
	if o.Owner != "" {
		if err := o.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner")
		}
	}
	if o.PendingOwner != "" {
		if err := o.PendingOwner.Validate(); err != nil {
			return errors.Wrap(err, "pending owner")
		}
	}
	if err := o.PendingExpiry.Validate(); err != nil {
		return errors.Wrap(err, "pending expiry")
	}
	return nil
}

// NewBucket returns the bucket holding all ownership records, keyed by
// the registering module name.
func NewBucket() orm.Bucket {
	return orm.NewBucket("ownership", &Ownership{})
}
