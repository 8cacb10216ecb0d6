package b

import (
	"math/big"
)

func ToFloat(b *big.Int, decimals uint) float64 {
	if b == nil {
		return 0
	}
	f := big.NewFloat(0).SetInt(b)
	f.Quo(f, big.NewFloat(0).SetInt(Pow10(decimals)))
	n, _ := f.Float64()
	return n
}
