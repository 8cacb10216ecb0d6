package uniswap

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrUnknownToken = errors.New("token not in pair")
	ErrFeeMismatch  = errors.New("fee tier does not match pair")
)

// Pair is a constant-product pool with fixed reserves, usable wherever a swap
// simulator is expected without touching a node.
type Pair struct {
	Token0   common.Address
	Token1   common.Address
	Reserve0 *big.Int
	Reserve1 *big.Int
	Fee      uint32
}

func (p Pair) SimulateSwap(_ context.Context, tokenIn common.Address, tokenOut common.Address, fee uint32, amountIn *big.Int) (*big.Int, error) {
	if fee != p.Fee {
		return nil, fmt.Errorf("%w (got: %d, want: %d)", ErrFeeMismatch, fee, p.Fee)
	}
	switch {
	case tokenIn == p.Token0 && tokenOut == p.Token1:
		return GetAmountOut(amountIn, p.Reserve0, p.Reserve1, p.Fee), nil
	case tokenIn == p.Token1 && tokenOut == p.Token0:
		return GetAmountOut(amountIn, p.Reserve1, p.Reserve0, p.Fee), nil
	default:
		return nil, fmt.Errorf("%w (in: %s, out: %s)", ErrUnknownToken, tokenIn.Hex(), tokenOut.Hex())
	}
}
