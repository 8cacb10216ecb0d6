package config

import (
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/fluidapr/b"
	"github.com/optakt/fluidapr/price"
)

const packedChain = `
[chains.mainnet]
rpc_env = "MAINNET_RPC_URL"
lending_resolver = "0x0000000000000000000000000000000000000a01"
liquidity_resolver = "0x0000000000000000000000000000000000000a02"
pricing = "packed"
reward_token = "0x6f40d4A6237C257fff2dB00FA0510DeEECd303eb"
reward_decimals = 18
stable_decimals = 6

[chains.mainnet.packed]
dex = "0x0000000000000000000000000000000000000d01"
slot = "0x0000000000000000000000000000000000000000000000000000000000000001"
intermediate = "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"

[chains.mainnet.feeds]
"0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2" = "0x5f4eC3Df9cbd43714FE2740f5E3616155c5b8419"

[[chains.mainnet.strategies]]
name = "usdc-lender"
market = "0x0000000000000000000000000000000000000f01"
`

const swapChain = `
[chains.polygon]
rpc_env = "POLYGON_RPC_URL"
lending_resolver = "0x0000000000000000000000000000000000000a01"
liquidity_resolver = "0x0000000000000000000000000000000000000a02"
pricing = "swap"
reward_token = "0x0d500B1d8E8eF31E21C99d1Db9A6444d3ADf1270"
reward_decimals = 18
stable_decimals = 6

[chains.polygon.swap]
quoter = "0x61fFE014bA17989E743c5F6cB21bF9697530B21e"
quote = "0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359"
fee = 500

[[chains.polygon.strategies]]
name = "usdc-lender"
market = "0x0000000000000000000000000000000000000f02"
`

func TestDecodePacked(t *testing.T) {
	cfg, err := Decode(packedChain)
	require.NoError(t, err)

	chain, err := cfg.Chain("mainnet")
	require.NoError(t, err)

	assert.Equal(t, PricingPacked, chain.Pricing)
	assert.Equal(t, uint(price.DefaultPackedOffset), chain.Packed.Offset)
	assert.Equal(t, b.E29.String(), chain.Packed.Divisor().String())
	assert.Equal(t, common.HexToHash("0x01"), chain.Packed.Slot)

	aggregators := chain.FeedAggregators()
	weth := common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
	assert.Equal(t, common.HexToAddress("0x5f4eC3Df9cbd43714FE2740f5E3616155c5b8419"), aggregators[weth])

	strategy, err := chain.Strategy("usdc-lender")
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0xf01"), strategy.Market)

	_, err = chain.Strategy("dai-lender")
	assert.ErrorIs(t, err, ErrUnknownStrategy)

	_, err = cfg.Chain("polygon")
	assert.ErrorIs(t, err, ErrUnknownChain)
}

func TestDecodeSwap(t *testing.T) {
	cfg, err := Decode(swapChain)
	require.NoError(t, err)

	chain, err := cfg.Chain("polygon")
	require.NoError(t, err)
	assert.Equal(t, PricingSwap, chain.Pricing)
	assert.Equal(t, uint32(500), chain.Swap.Fee)
	assert.Equal(t, "1", chain.Swap.Divisor().String())
}

func TestValidateNamesChainAndField(t *testing.T) {
	tests := map[string]struct {
		from  string
		to    string
		field string
	}{
		"missing rpc env": {
			from:  `rpc_env = "POLYGON_RPC_URL"`,
			to:    `rpc_env = ""`,
			field: "rpc_env",
		},
		"zero lending resolver": {
			from:  `lending_resolver = "0x0000000000000000000000000000000000000a01"`,
			to:    ``,
			field: "lending_resolver",
		},
		"unknown pricing": {
			from:  `pricing = "swap"`,
			to:    `pricing = "oracle"`,
			field: "pricing",
		},
		"missing fee": {
			from:  `fee = 500`,
			to:    ``,
			field: "swap.fee",
		},
		"divisor without feed": {
			from:  `fee = 500`,
			to:    "fee = 500\ndivisor_exp = 20",
			field: "swap.quote",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			data := replace(t, swapChain, test.from, test.to)
			cfg, err := Decode(data)
			require.NoError(t, err)
			_, err = cfg.Chain("polygon")
			require.ErrorIs(t, err, ErrInvalidField)
			assert.Contains(t, err.Error(), "chain polygon")
			assert.Contains(t, err.Error(), test.field)
		})
	}
}

func TestValidatePackedNeedsFeed(t *testing.T) {
	data := replace(t, packedChain, `"0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2" = "0x5f4eC3Df9cbd43714FE2740f5E3616155c5b8419"`, ``)
	cfg, err := Decode(data)
	require.NoError(t, err)
	_, err = cfg.Chain("mainnet")
	require.ErrorIs(t, err, ErrInvalidField)
	assert.Contains(t, err.Error(), "packed.intermediate")
}

func TestIncompleteChainDoesNotBlockOthers(t *testing.T) {
	data := packedChain + `
[chains.base]
rpc_env = "BASE_RPC_URL"
pricing = "swap"
reward_token = "0x6f40d4A6237C257fff2dB00FA0510DeEECd303eb"
reward_decimals = 18
stable_decimals = 6
`
	cfg, err := Decode(data)
	require.NoError(t, err)

	chain, err := cfg.Chain("mainnet")
	require.NoError(t, err)
	assert.Equal(t, "MAINNET_RPC_URL", chain.RPCEnv)

	_, err = cfg.Chain("base")
	require.ErrorIs(t, err, ErrInvalidField)
	assert.Contains(t, err.Error(), "chain base")
	assert.Contains(t, err.Error(), "lending_resolver")
}

func TestSwapReserves(t *testing.T) {
	data := replace(t, swapChain, `quoter = "0x61fFE014bA17989E743c5F6cB21bF9697530B21e"`, `reserves = { reward = "0xd3c21bcecceda1000000", quote = "500000000000" }`)
	cfg, err := Decode(data)
	require.NoError(t, err)

	chain, err := cfg.Chain("polygon")
	require.NoError(t, err)
	require.NotNil(t, chain.Swap.Reserves)
	reward, quote, err := chain.Swap.Reserves.Amounts()
	require.NoError(t, err)
	assert.Equal(t, 0, reward.Cmp(big.NewInt(0).Mul(big.NewInt(1_000_000), b.E18)))
	assert.Equal(t, int64(500_000_000_000), quote.Int64())

	data = replace(t, data, `quote = "500000000000"`, `quote = "0"`)
	cfg, err = Decode(data)
	require.NoError(t, err)
	_, err = cfg.Chain("polygon")
	require.ErrorIs(t, err, ErrInvalidField)
	assert.Contains(t, err.Error(), "swap.reserves.quote")
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chains.toml")
	err := os.WriteFile(path, []byte(swapChain+"\n[chains.polygon.extra]\nvalue = 1\n"), 0o600)
	require.NoError(t, err)

	_, err = Load(path)
	assert.Error(t, err)

	err = os.WriteFile(path, []byte(swapChain), 0o600)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Chains, 1)
}

func TestLoadExampleFile(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "chains.example.toml"))
	require.NoError(t, err)
	assert.Len(t, cfg.Chains, 3)

	// resolvers are left for the operator to fill in
	_, err = cfg.Chain("mainnet")
	assert.ErrorIs(t, err, ErrInvalidField)
}

func replace(t *testing.T, data string, from string, to string) string {
	t.Helper()
	require.Contains(t, data, from)
	return strings.Replace(data, from, to, 1)
}
