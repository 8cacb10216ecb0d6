package rate

import (
	"errors"
	"math/big"
)

// ErrDeltaExceedsDenominator is returned when a withdrawal delta is larger than
// the denominator it is applied to.
var ErrDeltaExceedsDenominator = errors.New("negative delta exceeds denominator")

// ApplyDelta returns old + delta as a new value. A negative delta whose
// magnitude exceeds old is rejected instead of wrapping.
func ApplyDelta(old *big.Int, delta *big.Int) (*big.Int, error) {
	next := big.NewInt(0).Add(old, delta)
	if next.Sign() < 0 {
		return nil, ErrDeltaExceedsDenominator
	}
	return next, nil
}

// Rescale adjusts a rate for a change of its denominator, assuming the
// absolute yield stays put while the base it is spread over moves:
//
//	rate * old / (old + delta)
//
// Division truncates. A denominator that lands on zero yields a zero rate.
func Rescale(rate *big.Int, old *big.Int, delta *big.Int) (*big.Int, error) {
	next, err := ApplyDelta(old, delta)
	if err != nil {
		return nil, err
	}
	if next.Sign() == 0 {
		return big.NewInt(0), nil
	}
	adjusted := big.NewInt(0).Mul(rate, old)
	adjusted.Quo(adjusted, next)
	return adjusted, nil
}

// ScaleDelta carries a delta measured against one denominator over to another
// one in proportion, delta * to / from, truncating toward zero. With an empty
// source denominator there is no ratio to use and the delta is returned as is.
func ScaleDelta(delta *big.Int, from *big.Int, to *big.Int) *big.Int {
	if from.Sign() == 0 {
		return big.NewInt(0).Set(delta)
	}
	scaled := big.NewInt(0).Mul(delta, to)
	scaled.Quo(scaled, from)
	return scaled
}
