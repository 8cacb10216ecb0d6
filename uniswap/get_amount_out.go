package uniswap

import (
	"math/big"
)

// FeeDenominator expresses pool fees in pips, so 3000 is 0.3%.
const FeeDenominator = 1_000_000

// GetAmountOut adopted from Uniswap v2, with the fee taken in pips instead of
// the fixed 997/1000:
// => https://github.com/Uniswap/v2-periphery/blob/master/contracts/libraries/UniswapV2Library.sol#L42-L49
func GetAmountOut(amountIn *big.Int, reserveIn *big.Int, reserveOut *big.Int, fee uint32) *big.Int {
	if amountIn.Sign() <= 0 || reserveIn.Sign() <= 0 || reserveOut.Sign() <= 0 || fee >= FeeDenominator {
		return big.NewInt(0)
	}
	amountInWithFee := big.NewInt(0).Mul(amountIn, big.NewInt(int64(FeeDenominator)-int64(fee)))
	numerator := big.NewInt(0).Mul(amountInWithFee, reserveOut)
	denominator := big.NewInt(0).Mul(reserveIn, big.NewInt(FeeDenominator))
	denominator.Add(denominator, amountInWithFee)
	amountOut := big.NewInt(0).Div(numerator, denominator)
	return amountOut
}
