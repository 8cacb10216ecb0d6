package price

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

var (
	// ErrUnsupportedToken is returned when a pricer is asked about a token it
	// was not configured for.
	ErrUnsupportedToken = errors.New("token not supported by pricer")
	ErrMissingDivisor   = errors.New("feed conversion requires a non-zero divisor")
)

// Pricer returns the price of one whole reward token in reference stable
// units (6 decimals).
type Pricer interface {
	Price(ctx context.Context, token common.Address) (*big.Int, error)
}

// DexStateReader returns the raw packed variables word of a DEX pair.
type DexStateReader interface {
	RawState(ctx context.Context, pair common.Address) (*uint256.Int, error)
}

// Feed returns the price of a token in the reference stable unit, at the
// fixed number of decimals the feed publishes.
type Feed interface {
	PriceInStable(ctx context.Context, token common.Address) (*big.Int, error)
}

// SwapSimulator quotes a single exact-input swap step without executing it.
type SwapSimulator interface {
	SimulateSwap(ctx context.Context, tokenIn common.Address, tokenOut common.Address, fee uint32, amountIn *big.Int) (*big.Int, error)
}
