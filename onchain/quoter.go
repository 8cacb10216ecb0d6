package onchain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// QuoteExactInputSingleParams is a static tuple, so its encoding equals that
// of its members passed one by one.
const quoteExactInputSingle = "quoteExactInputSingle((address,address,uint256,uint24,uint160))"

var quoteArguments = arguments("address", "address", "uint256", "uint24", "uint160")

// Quoter simulates single-hop swaps through a Uniswap V3 QuoterV2.
type Quoter struct {
	caller  Caller
	address common.Address
}

func NewQuoter(caller Caller, address common.Address) *Quoter {
	return &Quoter{caller: caller, address: address}
}

func (q *Quoter) SimulateSwap(ctx context.Context, tokenIn common.Address, tokenOut common.Address, fee uint32, amountIn *big.Int) (*big.Int, error) {

	output, err := call(ctx, q.caller, q.address, quoteExactInputSingle, quoteArguments,
		tokenIn, tokenOut, amountIn, big.NewInt(int64(fee)), big.NewInt(0),
	)
	if err != nil {
		return nil, err
	}

	amountOut, err := word(output, 0)
	if err != nil {
		return nil, fmt.Errorf("could not decode quote: %w", err)
	}

	return amountOut, nil
}
