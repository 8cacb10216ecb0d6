package onchain

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

const readFromStorage = "readFromStorage(bytes32)"

// Dex reads a raw storage slot of Fluid DEX pairs; slot zero holds the
// packed dex variables.
type Dex struct {
	caller Caller
	slot   common.Hash
}

func NewDex(caller Caller, slot common.Hash) *Dex {
	return &Dex{caller: caller, slot: slot}
}

func (d *Dex) RawState(ctx context.Context, pair common.Address) (*uint256.Int, error) {

	output, err := call(ctx, d.caller, pair, readFromStorage, arguments("bytes32"), [32]byte(d.slot))
	if err != nil {
		return nil, err
	}

	value, err := word(output, 0)
	if err != nil {
		return nil, fmt.Errorf("could not decode dex state: %w", err)
	}

	return uint256.MustFromBig(value), nil
}
