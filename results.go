package glyph

import (
	"github.com/tendermint/tendermint/libs/common"

	"github.com/glyph-network/glyph/coin"
)

// Pair builds a result tag out of a key/value pair of strings.
func Pair(key, value string) common.KVPair {
	return common.KVPair{
		Key:   []byte(key),
		Value: []byte(value),
	}
}

// CheckResult captures any non-error result of a transaction dry run,
// to make sure people use error for error cases.
type CheckResult struct {
	// Data is a machine-parseable return value, like the id of a created
	// entity.
	Data []byte
	// Log is a human-readable informational string.
	Log string
	// GasAllocated is the maximum units of work we allow this tx to
	// perform.
	GasAllocated int64
}

// DeliverResult captures any non-error result of an executed transaction,
// to make sure people use error for error cases.
type DeliverResult struct {
	// Data is a machine-parseable return value, like the id of a created
	// entity.
	Data []byte
	// Log is a human-readable informational string.
	Log string
	// Tags describe what happened, to index and search the transaction
	// history. By convention every result carries an "action" tag.
	Tags []common.KVPair
	// Outbound holds the side-effect instructions produced by the
	// handler, in order. Their execution happens outside this core's
	// transaction boundary.
	Outbound []Outbound
	// GasUsed is the units of work consumed by the execution.
	GasUsed int64
}

// Outbound is a side-effect instruction addressed to an external
// collaborator. The registry only decides that an instruction must be
// issued, delivery and settlement happen elsewhere, fire and forget.
type Outbound interface {
	// Kind names the instruction type for logging and routing.
	Kind() string
}

// Payment instructs the external funds custodian to move the given
// amount from the contract treasury to the recipient.
type Payment struct {
	To     Address
	Amount coin.Coin
}

var _ Outbound = Payment{}

// Kind implements Outbound.
func (Payment) Kind() string {
	return "payment"
}
