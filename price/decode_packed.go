package price

import (
	"math/big"

	"github.com/holiman/uint256"
)

const (
	packedBits   = 40
	exponentBits = 8
)

var (
	packedMask   = uint256.NewInt(1<<packedBits - 1)
	exponentMask = uint64(1<<exponentBits - 1)
)

// DecodePacked extracts the 40-bit big number stored at offset in a DEX
// variables word. The field holds a 32-bit coefficient above an 8-bit
// exponent and decodes to coefficient << exponent.
//
// Mirrors BigMathMinified.fromBigNumber of the Fluid contracts.
func DecodePacked(word *uint256.Int, offset uint) *big.Int {
	field := new(uint256.Int).Rsh(word, offset)
	field.And(field, packedMask)

	packed := field.Uint64()
	coefficient := packed >> exponentBits
	exponent := packed & exponentMask

	value := big.NewInt(0).SetUint64(coefficient)
	value.Lsh(value, uint(exponent))
	return value
}
