package fluid

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// FTokenDetails is the subset of the lending resolver's fToken view used to
// estimate yield. Rates are normalised to 1e18 = 100%.
type FTokenDetails struct {
	Asset       common.Address
	Decimals    uint8
	TotalAssets *big.Int
	SupplyRate  *big.Int
	RewardsRate *big.Int
}

// TokenData is the subset of the liquidity layer's overall token data used to
// estimate yield.
type TokenData struct {
	TotalSupply        *big.Int
	InterestFreeSupply *big.Int
}

type LendingResolver interface {
	FTokenDetails(ctx context.Context, market common.Address) (FTokenDetails, error)
}

type LiquidityResolver interface {
	OverallTokenData(ctx context.Context, asset common.Address) (TokenData, error)
}

// MarketSnapshot is a read of one lending market, valid for a single
// computation.
type MarketSnapshot struct {
	Asset              common.Address
	Decimals           uint8
	SuppliedAssets     *big.Int
	TotalSupply        *big.Int
	InterestFreeSupply *big.Int
	SupplyRate         *big.Int
	RewardsRate        *big.Int
}

// InterestBearingSupply is the part of the liquidity layer supply that earns
// the base supply rate.
func (m MarketSnapshot) InterestBearingSupply() *big.Int {
	bearing := big.NewInt(0).Sub(m.TotalSupply, m.InterestFreeSupply)
	if bearing.Sign() < 0 {
		return big.NewInt(0)
	}
	return bearing
}

// Snapshot reads the market and its underlying asset's liquidity data.
func Snapshot(ctx context.Context, lending LendingResolver, liquidity LiquidityResolver, market common.Address) (MarketSnapshot, error) {

	details, err := lending.FTokenDetails(ctx, market)
	if err != nil {
		return MarketSnapshot{}, fmt.Errorf("could not get ftoken details (market: %s): %w", market.Hex(), err)
	}

	data, err := liquidity.OverallTokenData(ctx, details.Asset)
	if err != nil {
		return MarketSnapshot{}, fmt.Errorf("could not get overall token data (asset: %s): %w", details.Asset.Hex(), err)
	}

	snapshot := MarketSnapshot{
		Asset:              details.Asset,
		Decimals:           details.Decimals,
		SuppliedAssets:     orZero(details.TotalAssets),
		TotalSupply:        orZero(data.TotalSupply),
		InterestFreeSupply: orZero(data.InterestFreeSupply),
		SupplyRate:         orZero(details.SupplyRate),
		RewardsRate:        orZero(details.RewardsRate),
	}

	return snapshot, nil
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return v
}
