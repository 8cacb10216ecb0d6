package b

import (
	"math/big"
)

var (
	D0    = big.NewInt(0)
	D1    = big.NewInt(1)
	D2    = big.NewInt(2)
	D4    = big.NewInt(4)
	D6    = big.NewInt(6)
	D8    = big.NewInt(8)
	D10   = big.NewInt(10)
	D12   = big.NewInt(12)
	D14   = big.NewInt(14)
	D18   = big.NewInt(18)
	D24   = big.NewInt(24)
	D27   = big.NewInt(27)
	D29   = big.NewInt(29)
	D365  = big.NewInt(365)
	D3600 = big.NewInt(3600)
)
