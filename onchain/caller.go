package onchain

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrShortReturn is returned when a call returns fewer words than expected.
var ErrShortReturn = errors.New("call returned too little data")

const wordSize = 32

// Caller executes read-only calls; *ethclient.Client satisfies it.
type Caller interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

func selector(signature string) []byte {
	return crypto.Keccak256([]byte(signature))[:4]
}

func mustType(name string) abi.Type {
	typ, err := abi.NewType(name, "", nil)
	if err != nil {
		panic(err)
	}
	return typ
}

func arguments(types ...string) abi.Arguments {
	args := make(abi.Arguments, 0, len(types))
	for _, name := range types {
		args = append(args, abi.Argument{Type: mustType(name)})
	}
	return args
}

// call packs the arguments behind the method selector and runs it against
// the latest block.
func call(ctx context.Context, caller Caller, to common.Address, signature string, args abi.Arguments, values ...interface{}) ([]byte, error) {

	packed, err := args.Pack(values...)
	if err != nil {
		return nil, fmt.Errorf("could not pack %s: %w", signature, err)
	}
	input := append(selector(signature), packed...)

	msg := ethereum.CallMsg{
		To:   &to,
		Data: input,
	}
	output, err := caller.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("could not call %s on %s: %w", signature, to.Hex(), err)
	}

	return output, nil
}

// word returns the index-th 32-byte word of data as an unsigned integer.
func word(data []byte, index int) (*big.Int, error) {
	start := index * wordSize
	end := start + wordSize
	if index < 0 || len(data) < end {
		return nil, fmt.Errorf("%w (word: %d, length: %d)", ErrShortReturn, index, len(data))
	}
	return big.NewInt(0).SetBytes(data[start:end]), nil
}
