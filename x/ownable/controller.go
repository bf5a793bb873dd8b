package ownable

import (
	"github.com/glyph-network/glyph"
	"github.com/glyph-network/glyph/errors"
	"github.com/glyph-network/glyph/orm"
)

// Controller is the functional interface other modules and handlers use
// to read and mutate one named ownership record. It is stateless, all
// state lives in the store.
type Controller struct {
	bucket orm.Bucket
}

// NewController returns a controller over the shared ownership bucket.
func NewController() Controller {
	return Controller{bucket: NewBucket()}
}

// Initialize writes the initial owner of a record. It fails with
// ErrDuplicate when the record already exists, initialization happens
// exactly once.
func (c Controller) Initialize(db glyph.KVStore, pkg string, owner glyph.Address) error {
	if err := owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	return c.bucket.Create(db, []byte(pkg), &Ownership{Owner: owner})
}

// Owner returns the current owner of a record. It returns ErrNotFound
// when the record does not exist or was renounced.
func (c Controller) Owner(db glyph.ReadOnlyKVStore, pkg string) (glyph.Address, error) {
	var o Ownership
	if err := c.bucket.One(db, []byte(pkg), &o); err != nil {
		return "", err
	}
	if o.Owner == "" {
		return "", errors.Wrapf(errors.ErrNotFound, "ownership of %q renounced", pkg)
	}
	return o.Owner, nil
}

// AssertOwner returns nil only when actor is the current owner of the
// record. A missing or renounced record means nobody is authorized.
func (c Controller) AssertOwner(db glyph.ReadOnlyKVStore, pkg string, actor glyph.Address) error {
	owner, err := c.Owner(db, pkg)
	if err != nil {
		if errors.ErrNotFound.Is(err) {
			return errors.Wrap(errors.ErrUnauthorized, "no owner")
		}
		return err
	}
	if !owner.Equals(actor) {
		return errors.Wrap(errors.ErrUnauthorized, "not the owner")
	}
	return nil
}

// Propose starts a handoff of the record to newOwner, replacing any
// earlier pending proposal. Only the current owner may propose. A
// proposal whose expiry already passed is rejected outright.
func (c Controller) Propose(ctx glyph.Context, db glyph.KVStore, pkg string, actor, newOwner glyph.Address, expiry glyph.Expiration) error {
	var o Ownership
	if err := c.bucket.One(db, []byte(pkg), &o); err != nil {
		return err
	}
	if o.Owner == "" || !o.Owner.Equals(actor) {
		return errors.Wrap(errors.ErrUnauthorized, "not the owner")
	}
	if err := newOwner.Validate(); err != nil {
		return errors.Wrap(err, "new owner")
	}
	if expiry.IsExpired(ctx) {
		return errors.Wrap(errors.ErrExpired, "proposal expiry is in the past")
	}
	o.PendingOwner = newOwner
	o.PendingExpiry = expiry
	return c.bucket.Put(db, []byte(pkg), &o)
}

// Accept completes a pending handoff. Only the proposed owner may
// accept, and only before the proposal expiry.
func (c Controller) Accept(ctx glyph.Context, db glyph.KVStore, pkg string, actor glyph.Address) error {
	var o Ownership
	if err := c.bucket.One(db, []byte(pkg), &o); err != nil {
		return err
	}
	if o.PendingOwner == "" || !o.PendingOwner.Equals(actor) {
		return errors.Wrap(errors.ErrUnauthorized, "no proposal for this account")
	}
	if o.PendingExpiry.IsExpired(ctx) {
		return errors.Wrap(errors.ErrExpired, "proposal expired")
	}
	o.Owner = actor
	o.PendingOwner = ""
	o.PendingExpiry = glyph.Never()
	return c.bucket.Put(db, []byte(pkg), &o)
}

// Renounce clears the owner of the record for good, dropping any
// pending proposal along with it. Only the current owner may renounce.
func (c Controller) Renounce(db glyph.KVStore, pkg string, actor glyph.Address) error {
	var o Ownership
	if err := c.bucket.One(db, []byte(pkg), &o); err != nil {
		return err
	}
	if o.Owner == "" || !o.Owner.Equals(actor) {
		return errors.Wrap(errors.ErrUnauthorized, "not the owner")
	}
	o.Owner = ""
	o.PendingOwner = ""
	o.PendingExpiry = glyph.Never()
	return c.bucket.Put(db, []byte(pkg), &o)
}
