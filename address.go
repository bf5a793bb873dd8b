package glyph

import (
	"regexp"
	"strings"

	"github.com/btcsuite/btcutil/bech32"

	"github.com/glyph-network/glyph/errors"
)

// MaxAddressLength is the longest address accepted anywhere in the
// registry. It matches the bech32 limit.
const MaxAddressLength = 90

// isAddressBody ensures an address contains only characters that can
// appear in a bech32 string. This is a cheap shape test, full validation
// is the job of an AddressValidator.
var isAddressBody = regexp.MustCompile(`^[a-z0-9]+$`).MatchString

// Address is an account identifier as used on the wire: an opaque,
// lower-case string. Whether it denominates a key pair or a contract is
// of no concern to this package.
type Address string

// Equals checks if two addresses are the same.
func (a Address) Equals(b Address) bool {
	return a == b
}

func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return string(a)
}

// Validate returns an error if the address does not have a plausible
// shape. It does not verify the checksum, use an AddressValidator for
// that.
func (a Address) Validate() error {
	if len(a) == 0 {
		return errors.Wrap(errors.ErrEmpty, "address")
	}
	if len(a) > MaxAddressLength {
		return errors.Wrapf(errors.ErrBadAddress, "%d characters", len(a))
	}
	if !isAddressBody(string(a)) {
		return errors.Wrapf(errors.ErrBadAddress, "%q", string(a))
	}
	return nil
}

// AddressValidator turns raw strings into validated addresses. The
// registry never trusts a raw string: every address that ends up in the
// state passed through a validator first.
type AddressValidator interface {
	// Validate returns the canonical form of the given address, or an
	// error that wraps ErrBadAddress.
	Validate(source string) (Address, error)
}

// NewBech32Validator returns an AddressValidator that accepts only
// bech32 strings with the given human readable prefix and a correct
// checksum.
func NewBech32Validator(hrp string) AddressValidator {
	return bech32Validator{hrp: hrp}
}

type bech32Validator struct {
	hrp string
}

func (v bech32Validator) Validate(source string) (Address, error) {
	if source != strings.ToLower(source) {
		return "", errors.Wrapf(errors.ErrBadAddress, "mixed case: %q", source)
	}
	hrp, _, err := bech32.Decode(source)
	if err != nil {
		return "", errors.Wrapf(errors.ErrBadAddress, "bech32: %s", err)
	}
	if hrp != v.hrp {
		return "", errors.Wrapf(errors.ErrBadAddress, "prefix %q, expected %q", hrp, v.hrp)
	}
	return Address(source), nil
}
