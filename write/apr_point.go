package write

import (
	"math/big"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/optakt/fluidapr/apr"
	"github.com/optakt/fluidapr/b"
)

func AprPoint(timestamp time.Time, chain string, strategy string, delta *big.Int, estimate apr.Estimate, outbound api.WriteAPI) {
	outbound.WritePoint(NewAprPoint(timestamp, chain, strategy, delta, estimate))
}

func NewAprPoint(timestamp time.Time, chain string, strategy string, delta *big.Int, estimate apr.Estimate) *write.Point {

	number, suffix := humanize.ComputeSI(b.ToFloat(delta, uint(estimate.Decimals)))
	size := humanize.Ftoa(number) + suffix

	tags := map[string]string{
		"strategy": strategy,
		"chain":    chain,
		"delta":    size,
	}
	fields := map[string]interface{}{
		"supply":  b.ToFloat(estimate.SupplyRate, 18),
		"rewards": b.ToFloat(estimate.RewardsRate, 18),
		"bonus":   b.ToFloat(estimate.BonusRate, 18),
		"total":   b.ToFloat(estimate.Total, 18),
		"apy":     b.ToFloat(apr.Compound(estimate.Total), 18),
		"assets":  b.ToFloat(estimate.NewAssets, uint(estimate.Decimals)),
	}

	return write.NewPoint("fluid_apr", tags, fields, timestamp)
}
