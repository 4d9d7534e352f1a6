package domain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
)

type callerKey struct{}

// WithCaller returns a copy of ctx carrying the authenticated caller. The
// core trusts this value; deriving it is the job of the inbound adapter.
func WithCaller(ctx context.Context, caller common.Address) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFromContext extracts the caller identity set by WithCaller.
func CallerFromContext(ctx context.Context) (common.Address, bool) {
	caller, ok := ctx.Value(callerKey{}).(common.Address)
	return caller, ok
}

// ParseAddress validates a hex identity such as "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed".
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, Errorf(CodeInvalidArgument, "invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}

// ParseAmount parses a non-negative decimal or 0x-prefixed hex amount that
// fits in 256 bits.
func ParseAmount(s string) (*big.Int, error) {
	v, ok := math.ParseBig256(s)
	if !ok || s == "" {
		return nil, Errorf(CodeInvalidArgument, "invalid amount %q", s)
	}
	if v.Sign() < 0 {
		return nil, Errorf(CodeInvalidArgument, "amount must not be negative: %s", s)
	}
	return v, nil
}
