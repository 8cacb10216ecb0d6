package b

import (
	"math/big"
)

var (
	E4  = big.NewInt(0).Exp(D10, D4, nil)
	E6  = big.NewInt(0).Exp(D10, D6, nil)
	E8  = big.NewInt(0).Exp(D10, D8, nil)
	E12 = big.NewInt(0).Exp(D10, D12, nil)
	E14 = big.NewInt(0).Exp(D10, D14, nil)
	E18 = big.NewInt(0).Exp(D10, D18, nil)
	E27 = big.NewInt(0).Exp(D10, D27, nil)
	E29 = big.NewInt(0).Exp(D10, D29, nil)
)

// Pow10 returns a fresh 10^n.
func Pow10(n uint) *big.Int {
	return big.NewInt(0).Exp(D10, big.NewInt(int64(n)), nil)
}
