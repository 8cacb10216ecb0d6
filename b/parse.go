package b

import (
	"fmt"
	"math/big"
	"strings"
)

// Parse reads a signed integer amount given in decimal or as a 0x hex word.
func Parse(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	negative := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")
	if digits == "" || digits[0] == '-' || digits[0] == '+' {
		return nil, fmt.Errorf("could not parse amount %q", s)
	}

	var (
		v   *big.Int
		err error
	)
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		if len(digits) == 2 {
			return nil, fmt.Errorf("could not parse amount %q", s)
		}
		v, err = FromHex(digits)
		if err != nil {
			return nil, err
		}
	} else {
		var ok bool
		v, ok = big.NewInt(0).SetString(digits, 10)
		if !ok {
			return nil, fmt.Errorf("could not parse amount %q", s)
		}
	}

	if negative {
		v.Neg(v)
	}
	return v, nil
}
