package nft

import (
	"github.com/glyph-network/glyph"
	"github.com/glyph-network/glyph/errors"
	"github.com/glyph-network/glyph/orm"
)

// withdrawKey is the single slot of the treasury bucket.
var withdrawKey = []byte("withdraw")

// withdrawConfig holds the configured payout destination.
type withdrawConfig struct {
	Address glyph.Address `msgpack:"address"`
}

var _ orm.Model = (*withdrawConfig)(nil)

func (c *withdrawConfig) Validate() error {
	return errors.Wrap(c.Address.Validate(), "address")
}

// TreasuryBucket stores the withdraw address gate. Funds themselves
// live with an external custodian, this registry only decides where
// payouts may go.
type TreasuryBucket struct {
	orm.Bucket
}

// NewTreasuryBucket returns a bucket to access the treasury setup.
func NewTreasuryBucket() TreasuryBucket {
	return TreasuryBucket{Bucket: orm.NewBucket("treasury", &withdrawConfig{})}
}

// WithdrawAddress returns the configured payout destination, or
// ErrNoWithdrawAddress when none is set.
func (b TreasuryBucket) WithdrawAddress(db glyph.ReadOnlyKVStore) (glyph.Address, error) {
	var c withdrawConfig
	if err := b.One(db, withdrawKey, &c); err != nil {
		if errors.ErrNotFound.Is(err) {
			return "", ErrNoWithdrawAddress
		}
		return "", err
	}
	return c.Address, nil
}

// SetWithdrawAddress stores or replaces the payout destination.
func (b TreasuryBucket) SetWithdrawAddress(db glyph.KVStore, addr glyph.Address) error {
	return b.Put(db, withdrawKey, &withdrawConfig{Address: addr})
}

// RemoveWithdrawAddress clears the payout destination and returns the
// address that was removed, blocking withdrawals until a new one is
// set. Clearing an unset destination reports ErrNoWithdrawAddress.
func (b TreasuryBucket) RemoveWithdrawAddress(db glyph.KVStore) (glyph.Address, error) {
	addr, err := b.WithdrawAddress(db)
	if err != nil {
		return "", err
	}
	if err := b.Delete(db, withdrawKey); err != nil {
		return "", err
	}
	return addr, nil
}
