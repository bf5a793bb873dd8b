package glyph

import (
	"fmt"

	"github.com/glyph-network/glyph/errors"
)

// Expiration is a deadline expressed either as a block height or as a
// block time. The zero value never expires.
//
// A deadline is inclusive: an expiration at height N is already expired
// when processed in block N.
type Expiration struct {
	AtHeight int64    `msgpack:"at_height,omitempty"`
	AtTime   UnixTime `msgpack:"at_time,omitempty"`
}

// Never returns an expiration that is never reached.
func Never() Expiration {
	return Expiration{}
}

// ExpireAtHeight returns an expiration bound to a block height.
func ExpireAtHeight(height int64) Expiration {
	return Expiration{AtHeight: height}
}

// ExpireAtTime returns an expiration bound to a block time.
func ExpireAtTime(t UnixTime) Expiration {
	return Expiration{AtTime: t}
}

// IsNever returns true when no deadline is set.
func (e Expiration) IsNever() bool {
	return e.AtHeight == 0 && e.AtTime == 0
}

// IsExpired compares the deadline against the block height and time
// declared in the context. A context without block information never
// expires anything, the dispatcher always provides it.
func (e Expiration) IsExpired(ctx Context) bool {
	if e.AtHeight != 0 {
		if height, ok := GetHeight(ctx); ok && height >= e.AtHeight {
			return true
		}
	}
	if e.AtTime != 0 {
		if now, ok := BlockTime(ctx); ok && AsUnixTime(now) >= e.AtTime {
			return true
		}
	}
	return false
}

// Validate ensures the expiration is well formed. Height and time bounds
// are exclusive alternatives.
func (e Expiration) Validate() error {
	if e.AtHeight != 0 && e.AtTime != 0 {
		return errors.Wrap(errors.ErrState, "both height and time bound set")
	}
	if e.AtHeight < 0 {
		return errors.Wrap(errors.ErrState, "negative height")
	}
	return e.AtTime.Validate()
}

func (e Expiration) String() string {
	switch {
	case e.AtHeight != 0:
		return fmt.Sprintf("at height %d", e.AtHeight)
	case e.AtTime != 0:
		return fmt.Sprintf("at time %s", e.AtTime)
	default:
		return "never"
	}
}
