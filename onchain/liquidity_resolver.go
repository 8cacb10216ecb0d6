package onchain

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/optakt/fluidapr/fluid"
)

const getOverallTokenData = "getOverallTokenData(address)"

// Word positions inside the static OverallTokenData tuple.
const (
	overallSupplyInterestFree = 9
	overallTotalSupply        = 12
)

// LiquidityResolver reads token totals from Fluid's liquidity resolver.
type LiquidityResolver struct {
	caller  Caller
	address common.Address
}

func NewLiquidityResolver(caller Caller, address common.Address) *LiquidityResolver {
	return &LiquidityResolver{caller: caller, address: address}
}

func (l *LiquidityResolver) OverallTokenData(ctx context.Context, asset common.Address) (fluid.TokenData, error) {

	output, err := call(ctx, l.caller, l.address, getOverallTokenData, arguments("address"), asset)
	if err != nil {
		return fluid.TokenData{}, err
	}

	interestFree, err := word(output, overallSupplyInterestFree)
	if err != nil {
		return fluid.TokenData{}, fmt.Errorf("could not decode interest free supply: %w", err)
	}
	total, err := word(output, overallTotalSupply)
	if err != nil {
		return fluid.TokenData{}, fmt.Errorf("could not decode total supply: %w", err)
	}

	data := fluid.TokenData{
		TotalSupply:        total,
		InterestFreeSupply: interestFree,
	}

	return data, nil
}
