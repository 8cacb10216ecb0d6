package price

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/optakt/fluidapr/b"
)

// Fluid DEX keeps the last stored price of the pool in bits 41-80 of its
// variables word, with 1e27 precision.
const DefaultPackedOffset = 41

// PackedSlot prices a reward token from the price packed into a DEX state
// word, quoted in an intermediate token that the feed converts to the stable
// unit:
//
//	decoded * feed(intermediate) / divisor
type PackedSlot struct {
	Token        common.Address
	Pair         common.Address
	Offset       uint
	Intermediate common.Address
	// Divisor reconciles the decimals of the decoded price and the feed,
	// e.g. 1e29 for a 1e27 DEX price and an 8-decimal feed.
	Divisor *big.Int
	Reader  DexStateReader
	Feed    Feed
}

func (p *PackedSlot) Price(ctx context.Context, token common.Address) (*big.Int, error) {
	if token != p.Token {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedToken, token.Hex())
	}

	word, err := p.Reader.RawState(ctx, p.Pair)
	if err != nil {
		return nil, fmt.Errorf("could not read dex state (pair: %s): %w", p.Pair.Hex(), err)
	}
	decoded := DecodePacked(word, p.Offset)
	if decoded.Sign() == 0 {
		return decoded, nil
	}

	rate, err := p.Feed.PriceInStable(ctx, p.Intermediate)
	if err != nil {
		return nil, fmt.Errorf("could not read feed price (token: %s): %w", p.Intermediate.Hex(), err)
	}

	divisor := p.Divisor
	if divisor == nil || divisor.Sign() == 0 {
		divisor = b.E29
	}

	price := big.NewInt(0).Mul(decoded, rate)
	price.Quo(price, divisor)
	return price, nil
}
