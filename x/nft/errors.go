package nft

import "github.com/glyph-network/glyph/errors"

var (
	// ErrSupplyOverflow is returned by mint when the collection already
	// holds the configured maximum number of tokens.
	ErrSupplyOverflow = errors.Register(520, "max token supply reached")

	// ErrMintPerWalletOverflow is returned by mint when the receiving
	// wallet already minted its configured maximum.
	ErrMintPerWalletOverflow = errors.Register(521, "wallet mint limit reached")

	// ErrNotEnoughFunds is returned by mint when the attached funds do
	// not cover the configured mint price.
	ErrNotEnoughFunds = errors.Register(522, "not enough funds for mint price")

	// ErrNoWithdrawAddress is returned by treasury operations that need
	// a withdraw address while none is configured.
	ErrNoWithdrawAddress = errors.Register(523, "no withdraw address configured")
)
