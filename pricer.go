package main

import (
	"fmt"

	"github.com/optakt/fluidapr/config"
	"github.com/optakt/fluidapr/onchain"
	"github.com/optakt/fluidapr/price"
	"github.com/optakt/fluidapr/station"
	"github.com/optakt/fluidapr/uniswap"
)

// newPricer assembles the reward pricer of a chain. A price file replaces
// the Chainlink aggregators and must give prices at the aggregator decimals.
func newPricer(chain config.Chain, caller onchain.Caller, priceFile string) (price.Pricer, error) {

	var feed price.Feed
	if priceFile != "" {
		prices, err := station.New(priceFile)
		if err != nil {
			return nil, fmt.Errorf("could not load price file: %w", err)
		}
		feed = prices
	} else {
		feed = onchain.NewChainlink(caller, chain.FeedAggregators())
	}

	switch chain.Pricing {

	case config.PricingPacked:
		pricer := price.PackedSlot{
			Token:        chain.RewardToken,
			Pair:         chain.Packed.Dex,
			Offset:       chain.Packed.Offset,
			Intermediate: chain.Packed.Intermediate,
			Divisor:      chain.Packed.Divisor(),
			Reader:       onchain.NewDex(caller, chain.Packed.Slot),
			Feed:         feed,
		}
		return &pricer, nil

	case config.PricingSwap:
		var simulator price.SwapSimulator = onchain.NewQuoter(caller, chain.Swap.Quoter)
		if chain.Swap.Reserves != nil {
			reward, quote, err := chain.Swap.Reserves.Amounts()
			if err != nil {
				return nil, err
			}
			simulator = uniswap.Pair{
				Token0:   chain.RewardToken,
				Token1:   chain.Swap.Quote,
				Reserve0: reward,
				Reserve1: quote,
				Fee:      chain.Swap.Fee,
			}
		}
		pricer := price.SwapSimulation{
			Token:     chain.RewardToken,
			Decimals:  chain.RewardDecimals,
			Quote:     chain.Swap.Quote,
			Fee:       chain.Swap.Fee,
			Simulator: simulator,
		}
		if chain.Swap.DivisorExp != 0 {
			pricer.Feed = feed
			pricer.Divisor = chain.Swap.Divisor()
		}
		return &pricer, nil

	default:
		return nil, fmt.Errorf("unknown pricing strategy %q", chain.Pricing)
	}
}
