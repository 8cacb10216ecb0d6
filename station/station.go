package station

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Station is a fixed price feed loaded from a CSV file of token,price rows,
// prices given as integers in the feed's own decimals.
type Station struct {
	prices map[common.Address]*big.Int
}

func New(file string) (*Station, error) {

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("could not read prices file: %w", err)
	}

	return Parse(data)
}

func Parse(data []byte) (*Station, error) {

	csvr := csv.NewReader(bytes.NewReader(data))
	csvr.TrimLeadingSpace = true
	records, err := csvr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not read price records: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("price file holds no records")
	}

	prices := make(map[common.Address]*big.Int, len(records)-1)
	for i, record := range records[1:] {

		if len(record) < 2 {
			return nil, fmt.Errorf("could not parse price record %d: expected 2 fields, got %d", i+1, len(record))
		}

		token := strings.TrimSpace(record[0])
		if !common.IsHexAddress(token) {
			return nil, fmt.Errorf("could not parse price token %q", token)
		}

		value, ok := big.NewInt(0).SetString(strings.TrimSpace(record[1]), 10)
		if !ok || value.Sign() <= 0 {
			return nil, fmt.Errorf("could not parse price value %q", record[1])
		}

		prices[common.HexToAddress(token)] = value
	}

	s := Station{
		prices: prices,
	}

	return &s, nil
}

func (s *Station) PriceInStable(_ context.Context, token common.Address) (*big.Int, error) {

	price, ok := s.prices[token]
	if !ok {
		return nil, fmt.Errorf("price not found for token %s", token.Hex())
	}

	return big.NewInt(0).Set(price), nil
}
