package nft

import (
	"github.com/glyph-network/glyph"
	"github.com/glyph-network/glyph/coin"
	"github.com/glyph-network/glyph/errors"
)

// Path prefixes of all messages handled by this package.
const (
	pathMint                  = "nft/mint"
	pathTransfer              = "nft/transfer"
	pathSend                  = "nft/send"
	pathApprove               = "nft/approve"
	pathRevoke                = "nft/revoke"
	pathApproveAll            = "nft/approve_all"
	pathRevokeAll             = "nft/revoke_all"
	pathBurn                  = "nft/burn"
	pathSetWithdrawAddress    = "nft/set_withdraw_address"
	pathRemoveWithdrawAddress = "nft/remove_withdraw_address"
	pathWithdrawFunds         = "nft/withdraw_funds"
)

var (
	_ glyph.Msg = (*MintMsg)(nil)
	_ glyph.Msg = (*TransferMsg)(nil)
	_ glyph.Msg = (*SendMsg)(nil)
	_ glyph.Msg = (*ApproveMsg)(nil)
	_ glyph.Msg = (*RevokeMsg)(nil)
	_ glyph.Msg = (*ApproveAllMsg)(nil)
	_ glyph.Msg = (*RevokeAllMsg)(nil)
	_ glyph.Msg = (*BurnMsg)(nil)
	_ glyph.Msg = (*SetWithdrawAddressMsg)(nil)
	_ glyph.Msg = (*RemoveWithdrawAddressMsg)(nil)
	_ glyph.Msg = (*WithdrawFundsMsg)(nil)
)

// MintMsg creates a new token owned by Owner. Anyone may send this as
// long as the mint policy admits it. The token id is assigned by the
// registry and returned in the result data.
type MintMsg struct {
	Owner     string    `msgpack:"owner"`
	URI       string    `msgpack:"uri,omitempty"`
	Extension Extension `msgpack:"extension,omitempty"`
}

// Path implements glyph.Msg.
func (MintMsg) Path() string {
	return pathMint
}

// Validate implements glyph.Msg.
func (m *MintMsg) Validate() error {
	if m.Owner == "" {
		return errors.Wrap(errors.ErrEmpty, "owner")
	}
	if len(m.URI) > maxURILength {
		return errors.Wrap(errors.ErrInput, "uri too long")
	}
	return m.Extension.Validate()
}

// TransferMsg moves the token to Recipient. The sender must be the
// owner, an approved spender or an operator of the owner.
type TransferMsg struct {
	Recipient string `msgpack:"recipient"`
	TokenID   string `msgpack:"token_id"`
}

// Path implements glyph.Msg.
func (TransferMsg) Path() string {
	return pathTransfer
}

// Validate implements glyph.Msg.
func (m *TransferMsg) Validate() error {
	if m.Recipient == "" {
		return errors.Wrap(errors.ErrEmpty, "recipient")
	}
	if m.TokenID == "" {
		return errors.Wrap(errors.ErrEmpty, "token id")
	}
	return nil
}

// SendMsg moves the token to the Contract account and asks the runtime
// to notify it with the opaque Msg payload. Authorization rules are the
// same as for TransferMsg.
type SendMsg struct {
	Contract string `msgpack:"contract"`
	TokenID  string `msgpack:"token_id"`
	Msg      []byte `msgpack:"msg,omitempty"`
}

// Path implements glyph.Msg.
func (SendMsg) Path() string {
	return pathSend
}

// Validate implements glyph.Msg.
func (m *SendMsg) Validate() error {
	if m.Contract == "" {
		return errors.Wrap(errors.ErrEmpty, "contract")
	}
	if m.TokenID == "" {
		return errors.Wrap(errors.ErrEmpty, "token id")
	}
	return nil
}

// ApproveMsg grants Spender the right to transfer one token until the
// grant expires. The sender must be the owner or an operator of the
// owner. An existing grant for the same spender is replaced.
type ApproveMsg struct {
	Spender string           `msgpack:"spender"`
	TokenID string           `msgpack:"token_id"`
	Expires glyph.Expiration `msgpack:"expires,omitempty"`
}

// Path implements glyph.Msg.
func (ApproveMsg) Path() string {
	return pathApprove
}

// Validate implements glyph.Msg.
func (m *ApproveMsg) Validate() error {
	if m.Spender == "" {
		return errors.Wrap(errors.ErrEmpty, "spender")
	}
	if m.TokenID == "" {
		return errors.Wrap(errors.ErrEmpty, "token id")
	}
	return errors.Wrap(m.Expires.Validate(), "expires")
}

// RevokeMsg removes the per-token grant for Spender. Authorization
// rules are the same as for ApproveMsg.
type RevokeMsg struct {
	Spender string `msgpack:"spender"`
	TokenID string `msgpack:"token_id"`
}

// Path implements glyph.Msg.
func (RevokeMsg) Path() string {
	return pathRevoke
}

// Validate implements glyph.Msg.
func (m *RevokeMsg) Validate() error {
	if m.Spender == "" {
		return errors.Wrap(errors.ErrEmpty, "spender")
	}
	if m.TokenID == "" {
		return errors.Wrap(errors.ErrEmpty, "token id")
	}
	return nil
}

// ApproveAllMsg grants Operator blanket transfer and approval rights
// over every token the sender owns, now and in the future, until the
// grant expires.
type ApproveAllMsg struct {
	Operator string           `msgpack:"operator"`
	Expires  glyph.Expiration `msgpack:"expires,omitempty"`
}

// Path implements glyph.Msg.
func (ApproveAllMsg) Path() string {
	return pathApproveAll
}

// Validate implements glyph.Msg.
func (m *ApproveAllMsg) Validate() error {
	if m.Operator == "" {
		return errors.Wrap(errors.ErrEmpty, "operator")
	}
	return errors.Wrap(m.Expires.Validate(), "expires")
}

// RevokeAllMsg removes the sender's blanket grant for Operator.
type RevokeAllMsg struct {
	Operator string `msgpack:"operator"`
}

// Path implements glyph.Msg.
func (RevokeAllMsg) Path() string {
	return pathRevokeAll
}

// Validate implements glyph.Msg.
func (m *RevokeAllMsg) Validate() error {
	if m.Operator == "" {
		return errors.Wrap(errors.ErrEmpty, "operator")
	}
	return nil
}

// BurnMsg destroys one token. Authorization rules are the same as for
// TransferMsg. Burning does not refund anyone's mint quota.
type BurnMsg struct {
	TokenID string `msgpack:"token_id"`
}

// Path implements glyph.Msg.
func (BurnMsg) Path() string {
	return pathBurn
}

// Validate implements glyph.Msg.
func (m *BurnMsg) Validate() error {
	if m.TokenID == "" {
		return errors.Wrap(errors.ErrEmpty, "token id")
	}
	return nil
}

// SetWithdrawAddressMsg configures where treasury withdrawals go. Only
// the collection owner may send this.
type SetWithdrawAddressMsg struct {
	Address string `msgpack:"address"`
}

// Path implements glyph.Msg.
func (SetWithdrawAddressMsg) Path() string {
	return pathSetWithdrawAddress
}

// Validate implements glyph.Msg.
func (m *SetWithdrawAddressMsg) Validate() error {
	if m.Address == "" {
		return errors.Wrap(errors.ErrEmpty, "address")
	}
	return nil
}

// RemoveWithdrawAddressMsg clears the configured withdraw address,
// disabling withdrawals until a new one is set. Only the collection
// owner may send this.
type RemoveWithdrawAddressMsg struct{}

// Path implements glyph.Msg.
func (RemoveWithdrawAddressMsg) Path() string {
	return pathRemoveWithdrawAddress
}

// Validate implements glyph.Msg.
func (*RemoveWithdrawAddressMsg) Validate() error {
	return nil
}

// WithdrawFundsMsg pays out the given amount from the treasury to the
// configured withdraw address. Anyone may trigger it, the destination
// is fixed by configuration.
type WithdrawFundsMsg struct {
	Amount coin.Coin `msgpack:"amount"`
}

// Path implements glyph.Msg.
func (WithdrawFundsMsg) Path() string {
	return pathWithdrawFunds
}

// Validate implements glyph.Msg.
func (m *WithdrawFundsMsg) Validate() error {
	if err := m.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !m.Amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "withdraw amount must be positive")
	}
	return nil
}
