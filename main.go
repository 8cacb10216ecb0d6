package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/optakt/fluidapr/apr"
	"github.com/optakt/fluidapr/b"
	"github.com/optakt/fluidapr/config"
	"github.com/optakt/fluidapr/onchain"
	"github.com/optakt/fluidapr/rewards"
	"github.com/optakt/fluidapr/write"
)

func main() {

	var (
		configPath string
		chainName  string
		strategy   string
		delta      string
		interval   time.Duration
		logLevel   string

		rewardsDB string
		operator  string
		caller    string
		market    string
		priceFile string

		setEmission string
		setManual   string
		setMode     string
		setOperator string

		influxURL    string
		influxToken  string
		influxOrg    string
		influxBucket string
	)

	pflag.StringVarP(&configPath, "config", "c", "chains.toml", "path to the chain configuration file")
	pflag.StringVarP(&chainName, "chain", "n", "mainnet", "chain to estimate on")
	pflag.StringVarP(&strategy, "strategy", "s", "", "strategy name from the chain configuration")
	pflag.StringVarP(&delta, "delta", "d", "0", "signed deposit delta in asset base units, decimal or 0x hex")
	pflag.DurationVarP(&interval, "interval", "i", 0, "interval between estimations, zero to run once")
	pflag.StringVarP(&logLevel, "log-level", "l", "info", "log level")

	pflag.StringVar(&rewardsDB, "rewards-db", "rewards.db", "path to the reward configuration database")
	pflag.StringVar(&operator, "operator", "", "operator address seeded into an empty reward database, required on first run")
	pflag.StringVar(&caller, "caller", "", "address submitting reward configuration changes")
	pflag.StringVar(&market, "market", "", "market address for reward configuration changes, defaults to the strategy market")
	pflag.StringVar(&priceFile, "price-file", "", "CSV file of token,price rows used instead of on-chain feeds")

	pflag.StringVar(&setEmission, "set-emission", "", "set the emission rate of the market in reward base units per second")
	pflag.StringVar(&setManual, "set-manual", "", "set the manual APR of the market with 1e18 = 100%")
	pflag.StringVar(&setMode, "set-mode", "", "switch the reward mode of the market (emission or manual)")
	pflag.StringVar(&setOperator, "set-operator", "", "hand the operator role to a new address")

	pflag.StringVar(&influxURL, "influx-url", "", "InfluxDB server URL, empty to disable reporting")
	pflag.StringVar(&influxToken, "influx-token", "", "InfluxDB authentication token")
	pflag.StringVar(&influxOrg, "influx-org", "optakt", "InfluxDB organization")
	pflag.StringVar(&influxBucket, "influx-bucket", "fluid", "InfluxDB bucket")

	pflag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		log.Fatal().Str("level", logLevel).Err(err).Msg("invalid log level")
	}
	log = log.Level(level)

	err = godotenv.Load()
	if err != nil {
		log.Debug().Msg(".env file not found, using process environment")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Str("config", configPath).Err(err).Msg("could not load configuration")
	}
	chain, err := cfg.Chain(chainName)
	if err != nil {
		log.Fatal().Err(err).Msg("could not find chain")
	}

	store, err := rewards.OpenBolt(rewardsDB)
	if err != nil {
		log.Fatal().Str("rewards_db", rewardsDB).Err(err).Msg("could not open reward database")
	}
	defer store.Close()

	var seed common.Address
	if operator != "" {
		seed, err = parseAddress(operator)
		if err != nil {
			log.Fatal().Str("operator", operator).Err(err).Msg("invalid operator")
		}
	}
	registry, err := rewards.New(log, store, seed)
	if err != nil {
		log.Fatal().Err(err).Msg("could not initialize reward registry")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if setEmission != "" || setManual != "" || setMode != "" || setOperator != "" {
		update := change{
			caller:   caller,
			market:   market,
			emission: setEmission,
			manual:   setManual,
			mode:     setMode,
			operator: setOperator,
			chain:    chain,
			strategy: strategy,
			registry: registry,
		}
		err = update.apply()
		if err != nil {
			log.Fatal().Err(err).Msg("could not change reward configuration")
		}
		return
	}

	selected, err := chain.Strategy(strategy)
	if err != nil {
		log.Fatal().Err(err).Msg("could not find strategy")
	}
	amount, err := b.Parse(delta)
	if err != nil {
		log.Fatal().Str("delta", delta).Err(err).Msg("invalid delta")
	}

	rpc := os.Getenv(chain.RPCEnv)
	if rpc == "" {
		log.Fatal().Str("env", chain.RPCEnv).Msg("missing RPC URL")
	}
	client, err := ethclient.DialContext(ctx, rpc)
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to RPC endpoint")
	}
	defer client.Close()

	pricer, err := newPricer(chain, client, priceFile)
	if err != nil {
		log.Fatal().Err(err).Msg("could not build reward pricer")
	}

	estimator := apr.New(
		log,
		onchain.NewLendingResolver(client, chain.LendingResolver),
		onchain.NewLiquidityResolver(client, chain.LiquidityResolver),
		pricer,
		registry,
		apr.Chain{
			Name:           chainName,
			RewardToken:    chain.RewardToken,
			RewardDecimals: chain.RewardDecimals,
			StableDecimals: chain.StableDecimals,
		},
	)

	var outbound api.WriteAPI
	if influxURL != "" {
		influx := influxdb2.NewClient(influxURL, influxToken)
		defer influx.Close()
		outbound = influx.WriteAPI(influxOrg, influxBucket)
		defer outbound.Flush()
		go func() {
			for err := range outbound.Errors() {
				log.Warn().Err(err).Msg("could not write point")
			}
		}()
	}

	for {
		estimate, err := estimator.Estimate(ctx, selected.Market, amount)
		if err != nil {
			log.Error().Err(err).Msg("could not estimate APR")
		} else {
			log.Info().
				Str("chain", chainName).
				Str("strategy", selected.Name).
				Str("delta", amount.String()).
				Float64("supply", b.ToFloat(estimate.SupplyRate, 18)).
				Float64("rewards", b.ToFloat(estimate.RewardsRate, 18)).
				Float64("bonus", b.ToFloat(estimate.BonusRate, 18)).
				Float64("total", b.ToFloat(estimate.Total, 18)).
				Float64("apy", b.ToFloat(apr.Compound(estimate.Total), 18)).
				Msg("apr estimated")
			if outbound != nil {
				write.AprPoint(time.Now(), chainName, selected.Name, amount, estimate, outbound)
			}
		}

		if interval == 0 {
			break
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}
	}
}

// change is one operator invocation. Values of the mode active before the
// invocation are written first, then the mode switch, then the values of the
// other mode, so a market can be cleared, switched and set in one run.
type change struct {
	caller   string
	market   string
	emission string
	manual   string
	mode     string
	operator string
	chain    config.Chain
	strategy string
	registry *rewards.Registry
}

func (c change) apply() error {

	from, err := parseAddress(c.caller)
	if err != nil {
		return fmt.Errorf("invalid caller: %w", err)
	}

	if c.emission != "" || c.manual != "" || c.mode != "" {
		target, err := c.target()
		if err != nil {
			return err
		}
		current, err := c.registry.Reward(target)
		if err != nil {
			return err
		}

		order := []rewards.Mode{rewards.Emission, rewards.Manual}
		if current.Mode == rewards.Manual {
			order = []rewards.Mode{rewards.Manual, rewards.Emission}
		}

		for i, mode := range order {
			if i == 1 && c.mode != "" {
				next, err := rewards.ParseMode(c.mode)
				if err != nil {
					return err
				}
				err = c.registry.SetMode(from, target, next)
				if err != nil {
					return err
				}
			}
			err = c.setValue(from, target, mode)
			if err != nil {
				return err
			}
		}
	}

	if c.operator != "" {
		next, err := parseAddress(c.operator)
		if err != nil {
			return fmt.Errorf("invalid operator: %w", err)
		}
		return c.registry.SetOperator(from, next)
	}

	return nil
}

func (c change) target() (common.Address, error) {
	if c.market != "" {
		return parseAddress(c.market)
	}
	strategy, err := c.chain.Strategy(c.strategy)
	if err != nil {
		return common.Address{}, fmt.Errorf("no market given: %w", err)
	}
	return strategy.Market, nil
}

func (c change) setValue(from common.Address, market common.Address, mode rewards.Mode) error {
	value := c.emission
	if mode == rewards.Manual {
		value = c.manual
	}
	if value == "" {
		return nil
	}
	amount, err := b.Parse(value)
	if err != nil {
		return fmt.Errorf("invalid %s value: %w", mode, err)
	}
	if mode == rewards.Manual {
		return c.registry.SetManualApr(from, market, amount)
	}
	return c.registry.SetEmissionRate(from, market, amount)
}

var errInvalidAddress = errors.New("not a hex address")

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q", errInvalidAddress, s)
	}
	return common.HexToAddress(s), nil
}
