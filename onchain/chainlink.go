package onchain

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

const (
	latestRoundData   = "latestRoundData()"
	roundDataAnswer   = 1
	roundDataMinWords = 5
)

var (
	ErrNoAggregator  = errors.New("no aggregator configured for token")
	ErrInvalidAnswer = errors.New("aggregator answer is not positive")
)

// Chainlink returns aggregator answers as prices, at the aggregator's own
// decimals (8 for USD pairs).
type Chainlink struct {
	caller      Caller
	aggregators map[common.Address]common.Address
}

func NewChainlink(caller Caller, aggregators map[common.Address]common.Address) *Chainlink {
	return &Chainlink{caller: caller, aggregators: aggregators}
}

func (c *Chainlink) PriceInStable(ctx context.Context, token common.Address) (*big.Int, error) {

	aggregator, ok := c.aggregators[token]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoAggregator, token.Hex())
	}

	output, err := call(ctx, c.caller, aggregator, latestRoundData, nil)
	if err != nil {
		return nil, err
	}
	if len(output) < roundDataMinWords*wordSize {
		return nil, fmt.Errorf("%w (length: %d)", ErrShortReturn, len(output))
	}

	answer, err := word(output, roundDataAnswer)
	if err != nil {
		return nil, err
	}
	// int256: a set top bit means the answer is negative
	if answer.Sign() == 0 || answer.Bit(255) == 1 {
		return nil, fmt.Errorf("%w (aggregator: %s)", ErrInvalidAnswer, aggregator.Hex())
	}

	return answer, nil
}
