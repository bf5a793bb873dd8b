package glyph

import (
	"context"
	"time"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/glyph-network/glyph/coin"
)

// Context is just a standard context, declared here so extension
// packages do not have to import the stdlib package next to glyph.
//
// The dispatcher enriches the context with framework-defined
// information: block height and time, chain id, the sender of the
// message envelope and the funds sent along with it. Extensions read
// these through the Get helpers and must not overwrite them.
type Context = context.Context

type contextKey int

const (
	contextKeyHeight contextKey = iota
	contextKeyTime
	contextKeyChainID
	contextKeyLogger
	contextKeySender
	contextKeyFunds
)

// DefaultLogger is used for all contexts that have not set anything
// themselves.
var DefaultLogger = log.NewNopLogger()

// WithHeight sets the block height for the execution context.
func WithHeight(ctx Context, height int64) Context {
	return context.WithValue(ctx, contextKeyHeight, height)
}

// GetHeight returns the current block height and whether it was set.
func GetHeight(ctx Context) (int64, bool) {
	val, ok := ctx.Value(contextKeyHeight).(int64)
	return val, ok
}

// WithBlockTime sets the block time for the execution context.
func WithBlockTime(ctx Context, t time.Time) Context {
	return context.WithValue(ctx, contextKeyTime, t)
}

// BlockTime returns the block time as declared in the context.
func BlockTime(ctx Context) (time.Time, bool) {
	val, ok := ctx.Value(contextKeyTime).(time.Time)
	return val, ok
}

// WithChainID sets the chain id for the execution context.
func WithChainID(ctx Context, chainID string) Context {
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID returns the chain id, or an empty string when not set.
func GetChainID(ctx Context) string {
	val, _ := ctx.Value(contextKeyChainID).(string)
	return val
}

// WithLogger sets the logger for the execution context.
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// GetLogger returns the logger stored in the context, or DefaultLogger.
func GetLogger(ctx Context) log.Logger {
	if logger, ok := ctx.Value(contextKeyLogger).(log.Logger); ok {
		return logger
	}
	return DefaultLogger
}

// WithSender declares the validated address of the account that sent
// the message being processed.
func WithSender(ctx Context, sender Address) Context {
	return context.WithValue(ctx, contextKeySender, sender)
}

// GetSender returns the sender of the message envelope. It returns an
// empty address when the envelope was not authenticated.
func GetSender(ctx Context) Address {
	val, _ := ctx.Value(contextKeySender).(Address)
	return val
}

// WithFunds declares the funds that were sent along with the message.
func WithFunds(ctx Context, funds coin.Coins) Context {
	return context.WithValue(ctx, contextKeyFunds, funds)
}

// GetFunds returns the funds attached to the message envelope. A nil
// result means no funds were sent.
func GetFunds(ctx Context) coin.Coins {
	val, _ := ctx.Value(contextKeyFunds).(coin.Coins)
	return val
}
