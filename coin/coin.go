package coin

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/glyph-network/glyph/errors"
)

// IsDenom is the RegExp to ensure valid coin denominations, eg. "usei".
var IsDenom = regexp.MustCompile(`^[a-z]{3,16}$`).MatchString

// MaxAmount is the largest amount we accept in one coin.
const MaxAmount int64 = 999999999999999999 // 10^18-1

// Coin is a non-negative amount of one denomination.
type Coin struct {
	Amount int64  `msgpack:"amount"`
	Denom  string `msgpack:"denom"`
}

// NewCoin creates a new coin object.
func NewCoin(amount int64, denom string) Coin {
	return Coin{
		Amount: amount,
		Denom:  denom,
	}
}

// NewCoinp returns a pointer to a new coin.
func NewCoinp(amount int64, denom string) *Coin {
	c := NewCoin(amount, denom)
	return &c
}

// IsZero returns true if the amount is zero.
func (c Coin) IsZero() bool {
	return c.Amount == 0
}

// IsPositive returns true if the amount is greater than zero.
func (c Coin) IsPositive() bool {
	return c.Amount > 0
}

// SameDenom returns true if both coins use the same denomination.
func (c Coin) SameDenom(o Coin) bool {
	return c.Denom == o.Denom
}

// IsGTE returns true if the coin's value is at least the value of the
// other one. Comparing coins of different denominations is a coding
// error, they never cover each other.
func (c Coin) IsGTE(o Coin) bool {
	return c.SameDenom(o) && c.Amount >= o.Amount
}

// Equals returns true if both coins are identical.
func (c Coin) Equals(o Coin) bool {
	return c.SameDenom(o) && c.Amount == o.Amount
}

// String provides the canonical <amount><denom> representation, the
// same one used in event attributes.
func (c Coin) String() string {
	return strconv.FormatInt(c.Amount, 10) + c.Denom
}

// Validate ensures the coin is well formed.
func (c Coin) Validate() error {
	if !IsDenom(c.Denom) {
		return errors.Wrapf(errors.ErrCurrency, "denom: %q", c.Denom)
	}
	if c.Amount < 0 {
		return errors.Wrapf(errors.ErrAmount, "negative amount: %d", c.Amount)
	}
	if c.Amount > MaxAmount {
		return errors.Wrapf(errors.ErrOverflow, "amount: %d", c.Amount)
	}
	return nil
}

// Coins is a set of coins, as attached to a message envelope.
type Coins []Coin

// Validate ensures every coin in the set is well formed.
func (cs Coins) Validate() error {
	for i, c := range cs {
		if err := c.Validate(); err != nil {
			return errors.Wrap(err, fmt.Sprintf("coin #%d", i))
		}
	}
	return nil
}

// Pays returns true if any single coin in the set has the wanted
// denomination and at least the wanted amount. Amounts are not summed
// across coins and overpayment is accepted as is.
func (cs Coins) Pays(want Coin) bool {
	for _, c := range cs {
		if c.IsGTE(want) {
			return true
		}
	}
	return false
}

// Clone returns a copy that can be mutated independently.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	out := make(Coins, len(cs))
	copy(out, cs)
	return out
}
