package onchain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/optakt/fluidapr/b"
	"github.com/optakt/fluidapr/fluid"
)

const getFTokenDetails = "getFTokenDetails(address)"

// Head positions inside the FTokenDetails tuple. The tuple carries strings,
// so the return data starts with an offset to it.
const (
	detailsDecimals    = 5
	detailsAsset       = 6
	detailsTotalAssets = 7
	detailsRewardsRate = 11
	detailsSupplyRate  = 12
)

// LendingResolver reads fToken details from Fluid's lending resolver.
type LendingResolver struct {
	caller  Caller
	address common.Address
}

func NewLendingResolver(caller Caller, address common.Address) *LendingResolver {
	return &LendingResolver{caller: caller, address: address}
}

// FTokenDetails returns the market's details with the supply rate lifted from
// 1e2 precision and the rewards rate from 1e12 precision to 1e18 = 100%.
func (l *LendingResolver) FTokenDetails(ctx context.Context, market common.Address) (fluid.FTokenDetails, error) {

	output, err := call(ctx, l.caller, l.address, getFTokenDetails, arguments("address"), market)
	if err != nil {
		return fluid.FTokenDetails{}, err
	}

	offset, err := word(output, 0)
	if err != nil {
		return fluid.FTokenDetails{}, err
	}
	if !offset.IsInt64() || offset.Int64()%wordSize != 0 || offset.Int64() > int64(len(output)) {
		return fluid.FTokenDetails{}, fmt.Errorf("invalid tuple offset in ftoken details (%s)", offset)
	}
	tuple := output[offset.Int64():]

	fields := make(map[int]*big.Int, 5)
	for _, index := range []int{detailsDecimals, detailsAsset, detailsTotalAssets, detailsRewardsRate, detailsSupplyRate} {
		value, err := word(tuple, index)
		if err != nil {
			return fluid.FTokenDetails{}, fmt.Errorf("could not decode ftoken details: %w", err)
		}
		fields[index] = value
	}

	decimals := fields[detailsDecimals]
	if !decimals.IsUint64() || decimals.Uint64() > 77 {
		return fluid.FTokenDetails{}, fmt.Errorf("invalid ftoken decimals (%s)", decimals)
	}

	details := fluid.FTokenDetails{
		Asset:       common.BigToAddress(fields[detailsAsset]),
		Decimals:    uint8(decimals.Uint64()),
		TotalAssets: fields[detailsTotalAssets],
		SupplyRate:  big.NewInt(0).Mul(fields[detailsSupplyRate], b.E14),
		RewardsRate: big.NewInt(0).Mul(fields[detailsRewardsRate], b.E4),
	}

	return details, nil
}
