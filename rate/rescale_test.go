package rate

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/fluidapr/b"
)

func units(n int64) *big.Int {
	return big.NewInt(0).Mul(big.NewInt(n), b.E6)
}

func TestRescaleZeroDelta(t *testing.T) {
	rates := []*big.Int{big.NewInt(0), big.NewInt(1), big.NewInt(0).Div(b.E18, big.NewInt(20)), b.E18}
	olds := []*big.Int{big.NewInt(1), big.NewInt(7), units(900_000)}

	for _, r := range rates {
		for _, old := range olds {
			got, err := Rescale(r, old, big.NewInt(0))
			require.NoError(t, err)
			assert.Equal(t, 0, got.Cmp(r), "rate %s old %s", r, old)
		}
	}
}

func TestRescaleDilution(t *testing.T) {
	r := big.NewInt(0).Div(b.E18, big.NewInt(20))
	old := units(1_000_000)

	previous, err := Rescale(r, old, units(-999_999))
	require.NoError(t, err)
	for _, d := range []int64{-500_000, -1, 0, 1, 100_000, 1_000_000, 50_000_000} {
		got, err := Rescale(r, old, units(d))
		require.NoError(t, err)
		assert.LessOrEqual(t, got.Cmp(previous), 0, "delta %d", d)
		previous = got
	}
}

func TestRescaleDrainedDenominator(t *testing.T) {
	got, err := Rescale(b.E18, units(5), units(-5))
	require.NoError(t, err)
	assert.Equal(t, 0, got.Sign())

	got, err = Rescale(b.E18, big.NewInt(0), big.NewInt(0))
	require.NoError(t, err)
	assert.Equal(t, 0, got.Sign())
}

func TestRescaleTruncates(t *testing.T) {
	got, err := Rescale(big.NewInt(10), big.NewInt(1), big.NewInt(2))
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Int64())
}

func TestRescaleRejectsUnderflow(t *testing.T) {
	_, err := Rescale(b.E18, units(5), units(-6))
	assert.ErrorIs(t, err, ErrDeltaExceedsDenominator)

	_, err = ApplyDelta(big.NewInt(0), big.NewInt(-1))
	assert.ErrorIs(t, err, ErrDeltaExceedsDenominator)
}

func TestRescaleDoesNotMutateInputs(t *testing.T) {
	r := big.NewInt(100)
	old := big.NewInt(10)
	delta := big.NewInt(5)

	_, err := Rescale(r, old, delta)
	require.NoError(t, err)
	assert.Equal(t, int64(100), r.Int64())
	assert.Equal(t, int64(10), old.Int64())
	assert.Equal(t, int64(5), delta.Int64())
}

func TestScaleDelta(t *testing.T) {
	got := ScaleDelta(units(100_000), units(1_000_000), units(900_000))
	assert.Equal(t, 0, got.Cmp(units(90_000)))

	got = ScaleDelta(big.NewInt(-10), big.NewInt(3), big.NewInt(1))
	assert.Equal(t, int64(-3), got.Int64())

	got = ScaleDelta(big.NewInt(42), big.NewInt(0), big.NewInt(9))
	assert.Equal(t, int64(42), got.Int64())
}
