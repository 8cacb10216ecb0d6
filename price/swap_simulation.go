package price

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/optakt/fluidapr/b"
)

// SwapSimulation prices a reward token by quoting a swap of one whole token
// into Quote with no minimum output. When Feed is set, Quote is not the
// stable unit itself and the output is converted through the feed:
//
//	out * feed(quote) / divisor
type SwapSimulation struct {
	Token     common.Address
	Decimals  uint
	Quote     common.Address
	Fee       uint32
	Simulator SwapSimulator
	Feed      Feed
	Divisor   *big.Int
}

func (s *SwapSimulation) Price(ctx context.Context, token common.Address) (*big.Int, error) {
	if token != s.Token {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedToken, token.Hex())
	}
	if s.Feed != nil && (s.Divisor == nil || s.Divisor.Sign() == 0) {
		return nil, ErrMissingDivisor
	}

	out, err := s.Simulator.SimulateSwap(ctx, s.Token, s.Quote, s.Fee, b.Pow10(s.Decimals))
	if err != nil {
		return nil, fmt.Errorf("could not simulate swap (in: %s, out: %s): %w", s.Token.Hex(), s.Quote.Hex(), err)
	}
	if s.Feed == nil || out.Sign() == 0 {
		return out, nil
	}

	rate, err := s.Feed.PriceInStable(ctx, s.Quote)
	if err != nil {
		return nil, fmt.Errorf("could not read feed price (token: %s): %w", s.Quote.Hex(), err)
	}

	price := big.NewInt(0).Mul(out, rate)
	return price.Quo(price, s.Divisor), nil
}
