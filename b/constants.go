package b

import (
	"math/big"
)

var (
	HPY  = big.NewInt(0).Mul(D365, D24)  // hours per year
	SPY  = big.NewInt(0).Mul(HPY, D3600) // seconds per year
	WAD  = E18                           // 100% in rate space
	RAY  = E27
	HALF = big.NewInt(0).Div(RAY, D2) // Half Ray
	W2R  = big.NewInt(0).Div(RAY, WAD)
)
