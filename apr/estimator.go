package apr

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"

	"github.com/optakt/fluidapr/aave"
	"github.com/optakt/fluidapr/b"
	"github.com/optakt/fluidapr/fluid"
	"github.com/optakt/fluidapr/price"
	"github.com/optakt/fluidapr/rate"
	"github.com/optakt/fluidapr/rewards"
)

// RewardSource returns the reward configuration of a market.
type RewardSource interface {
	Reward(market common.Address) (rewards.Reward, error)
}

// Chain carries the per-chain conventions the estimator needs.
type Chain struct {
	Name           string
	RewardToken    common.Address
	RewardDecimals uint
	StableDecimals uint
}

// Estimate is the breakdown of a forward APR, every rate at 1e18 = 100%.
type Estimate struct {
	SupplyRate  *big.Int
	RewardsRate *big.Int
	BonusRate   *big.Int
	Total       *big.Int
	NewAssets   *big.Int
	Decimals    uint8
}

func zeroEstimate(newAssets *big.Int, decimals uint8) Estimate {
	return Estimate{
		SupplyRate:  big.NewInt(0),
		RewardsRate: big.NewInt(0),
		BonusRate:   big.NewInt(0),
		Total:       big.NewInt(0),
		NewAssets:   newAssets,
		Decimals:    decimals,
	}
}

// Estimator composes the forward APR of a Fluid lending market after a
// hypothetical deposit (positive delta) or withdrawal (negative delta).
type Estimator struct {
	log       zerolog.Logger
	lending   fluid.LendingResolver
	liquidity fluid.LiquidityResolver
	pricer    price.Pricer
	rewards   RewardSource
	chain     Chain
}

func New(log zerolog.Logger, lending fluid.LendingResolver, liquidity fluid.LiquidityResolver, pricer price.Pricer, rewards RewardSource, chain Chain) *Estimator {

	e := Estimator{
		log:       log.With().Str("component", "estimator").Str("chain", chain.Name).Logger(),
		lending:   lending,
		liquidity: liquidity,
		pricer:    pricer,
		rewards:   rewards,
		chain:     chain,
	}

	return &e
}

// AprAfterDelta returns the total forward APR of the market.
func (e *Estimator) AprAfterDelta(ctx context.Context, market common.Address, delta *big.Int) (*big.Int, error) {
	estimate, err := e.Estimate(ctx, market, delta)
	if err != nil {
		return nil, err
	}
	return estimate.Total, nil
}

// Estimate returns the forward APR of the market with its components.
//
// The supply rate is diluted by the delta scaled onto the liquidity layer's
// interest-bearing supply in proportion to the fToken's own assets. Where the
// liquidity layer holds far more than the fToken, this overstates dilution.
func (e *Estimator) Estimate(ctx context.Context, market common.Address, delta *big.Int) (Estimate, error) {

	if delta == nil {
		delta = big.NewInt(0)
	}

	snapshot, err := fluid.Snapshot(ctx, e.lending, e.liquidity, market)
	if err != nil {
		return Estimate{}, err
	}

	newAssets, err := rate.ApplyDelta(snapshot.SuppliedAssets, delta)
	if err != nil {
		return Estimate{}, fmt.Errorf("could not apply delta %s to assets %s: %w", delta, snapshot.SuppliedAssets, err)
	}
	if newAssets.Sign() == 0 {
		return zeroEstimate(newAssets, snapshot.Decimals), nil
	}

	bearing := snapshot.InterestBearingSupply()
	supplyDelta := rate.ScaleDelta(delta, snapshot.SuppliedAssets, bearing)
	supplyRate, err := rate.Rescale(snapshot.SupplyRate, bearing, supplyDelta)
	if err != nil {
		return Estimate{}, fmt.Errorf("could not rescale supply rate: %w", err)
	}

	rewardsRate := big.NewInt(0)
	if snapshot.RewardsRate.Sign() != 0 {
		rewardsRate, err = rate.Rescale(snapshot.RewardsRate, snapshot.SuppliedAssets, delta)
		if err != nil {
			return Estimate{}, fmt.Errorf("could not rescale rewards rate: %w", err)
		}
	}

	bonusRate, err := e.bonusRate(ctx, market, newAssets, snapshot.Decimals)
	if err != nil {
		return Estimate{}, err
	}

	estimate := Estimate{
		SupplyRate:  supplyRate,
		RewardsRate: rewardsRate,
		BonusRate:   bonusRate,
		Total:       Compose(supplyRate, rewardsRate, bonusRate),
		NewAssets:   newAssets,
		Decimals:    snapshot.Decimals,
	}

	e.log.Debug().
		Str("market", market.Hex()).
		Str("delta", delta.String()).
		Str("supply_rate", supplyRate.String()).
		Str("rewards_rate", rewardsRate.String()).
		Str("bonus_rate", bonusRate.String()).
		Str("total", estimate.Total.String()).
		Msg("apr estimated")

	return estimate, nil
}

// bonusRate is the pinned APR in manual mode; otherwise the yearly value of
// the emission divided by the assets it is spread over:
//
//	price * emission * SPY * 10^(18 + assetDecimals - rewardDecimals - stableDecimals) / assets
func (e *Estimator) bonusRate(ctx context.Context, market common.Address, assets *big.Int, assetDecimals uint8) (*big.Int, error) {

	reward, err := e.rewards.Reward(market)
	if err != nil {
		return nil, fmt.Errorf("could not get reward config (market: %s): %w", market.Hex(), err)
	}
	if reward.Mode == rewards.Manual {
		return big.NewInt(0).Set(reward.Value), nil
	}
	if reward.Value.Sign() == 0 {
		return big.NewInt(0), nil
	}

	tokenPrice, err := e.pricer.Price(ctx, e.chain.RewardToken)
	if err != nil {
		return nil, fmt.Errorf("could not price reward token: %w", err)
	}

	numerator := big.NewInt(0).Mul(tokenPrice, reward.Value)
	numerator.Mul(numerator, b.SPY)
	denominator := big.NewInt(0).Set(assets)

	exponent := 18 + int(assetDecimals) - int(e.chain.RewardDecimals) - int(e.chain.StableDecimals)
	if exponent >= 0 {
		numerator.Mul(numerator, b.Pow10(uint(exponent)))
	} else {
		denominator.Mul(denominator, b.Pow10(uint(-exponent)))
	}

	return numerator.Quo(numerator, denominator), nil
}

// Compose sums rate components.
func Compose(rates ...*big.Int) *big.Int {
	total := big.NewInt(0)
	for _, r := range rates {
		total.Add(total, r)
	}
	return total
}

// Compound converts an APR into the APY of continuous per-second compounding.
func Compound(apr *big.Int) *big.Int {
	factor := aave.CalculateCompoundedInterest(apr, b.SPY)
	return factor.Sub(factor, b.WAD)
}
