package uniswap

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAmountOutMatchesV2Fee(t *testing.T) {
	// 3000 pips is the 997/1000 of Uniswap v2
	amountIn := big.NewInt(1_000)
	reserveIn := big.NewInt(1_000_000)
	reserveOut := big.NewInt(2_000_000)

	got := GetAmountOut(amountIn, reserveIn, reserveOut, 3000)

	// 997000000 * 2000000 / (1000000 * 1000000 + 997000000)
	assert.Equal(t, int64(1992), got.Int64())
}

func TestGetAmountOutDegenerate(t *testing.T) {
	assert.Equal(t, 0, GetAmountOut(big.NewInt(0), big.NewInt(1), big.NewInt(1), 0).Sign())
	assert.Equal(t, 0, GetAmountOut(big.NewInt(1), big.NewInt(0), big.NewInt(1), 0).Sign())
	assert.Equal(t, 0, GetAmountOut(big.NewInt(1), big.NewInt(1), big.NewInt(1), FeeDenominator).Sign())
}

func TestPairSimulateSwap(t *testing.T) {
	token0 := common.HexToAddress("0x01")
	token1 := common.HexToAddress("0x02")
	pair := Pair{
		Token0:   token0,
		Token1:   token1,
		Reserve0: big.NewInt(1_000_000),
		Reserve1: big.NewInt(4_000_000),
		Fee:      0,
	}

	out, err := pair.SimulateSwap(context.Background(), token0, token1, 0, big.NewInt(1_000))
	require.NoError(t, err)
	// 1000 * 4000000 / 1001000
	assert.Equal(t, int64(3996), out.Int64())

	out, err = pair.SimulateSwap(context.Background(), token1, token0, 0, big.NewInt(4_000))
	require.NoError(t, err)
	assert.Equal(t, int64(999), out.Int64())

	_, err = pair.SimulateSwap(context.Background(), token0, common.HexToAddress("0x03"), 0, big.NewInt(1))
	assert.ErrorIs(t, err, ErrUnknownToken)

	_, err = pair.SimulateSwap(context.Background(), token0, token1, 500, big.NewInt(1))
	assert.ErrorIs(t, err, ErrFeeMismatch)
}
