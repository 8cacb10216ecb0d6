package b

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// FromHex parses a big-endian hex word, with or without 0x prefix.
func FromHex(s string) (*big.Int, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s)%2 == 1 {
		s = "0" + s
	}
	bytes, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("could not decode hex word: %w", err)
	}
	if len(bytes) > 32 {
		return nil, fmt.Errorf("hex word exceeds 256 bits (%d bytes)", len(bytes))
	}
	b := big.NewInt(0).SetBytes(bytes)
	return b, nil
}
