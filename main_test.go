package main

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/fluidapr/config"
	"github.com/optakt/fluidapr/rewards"
)

func TestChangeApply(t *testing.T) {
	operator := common.HexToAddress("0x00000000000000000000000000000000000000a1")
	market := common.HexToAddress("0x0000000000000000000000000000000000000f01")
	registry, err := rewards.New(zerolog.Nop(), rewards.NewMemoryStore(), operator)
	require.NoError(t, err)

	chain := config.Chain{Strategies: []config.Strategy{{Name: "usdc-lender", Market: market}}}

	update := change{
		caller:   operator.Hex(),
		emission: "0x0de0b6b3a7640000",
		chain:    chain,
		strategy: "usdc-lender",
		registry: registry,
	}
	require.NoError(t, update.apply())

	reward, err := registry.Reward(market)
	require.NoError(t, err)
	assert.Equal(t, rewards.Emission, reward.Mode)
	assert.Equal(t, "1000000000000000000", reward.Value.String())

	// clear emission, switch and pin in one run
	update = change{
		caller:   operator.Hex(),
		market:   market.Hex(),
		emission: "0",
		manual:   "50000000000000000",
		mode:     "manual",
		registry: registry,
	}
	require.NoError(t, update.apply())

	reward, err = registry.Reward(market)
	require.NoError(t, err)
	assert.Equal(t, rewards.Manual, reward.Mode)
	assert.Equal(t, "50000000000000000", reward.Value.String())

	update = change{
		caller:   operator.Hex(),
		market:   market.Hex(),
		manual:   "-5",
		registry: registry,
	}
	assert.ErrorIs(t, update.apply(), rewards.ErrNegativeValue)

	update.manual = "5%"
	assert.Error(t, update.apply())
}
