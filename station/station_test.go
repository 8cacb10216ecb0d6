package station

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const prices = `token,price
0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2, 300000000000
0x6f40d4A6237C257fff2dB00FA0510DeEECd303eb,5000000
`

func TestStation(t *testing.T) {
	file := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(file, []byte(prices), 0o600))

	s, err := New(file)
	require.NoError(t, err)

	price, err := s.PriceInStable(context.Background(), common.HexToAddress("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2"))
	require.NoError(t, err)
	assert.Equal(t, int64(300_000_000_000), price.Int64())

	_, err = s.PriceInStable(context.Background(), common.HexToAddress("0x01"))
	assert.Error(t, err)
}

func TestStationRejectsBadRecords(t *testing.T) {
	_, err := Parse([]byte("token,price\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("token,price\nnot-an-address,1\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("token,price\n0x6f40d4A6237C257fff2dB00FA0510DeEECd303eb,-4\n"))
	assert.Error(t, err)

	_, err = New(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
