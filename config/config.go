package config

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common"

	"github.com/optakt/fluidapr/b"
	"github.com/optakt/fluidapr/price"
)

const (
	PricingPacked = "packed"
	PricingSwap   = "swap"
)

var (
	ErrUnknownChain    = errors.New("unknown chain")
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrInvalidField    = errors.New("invalid field")
)

type Config struct {
	Chains map[string]Chain `toml:"chains"`
}

// Chain describes where the resolvers of one deployment live and how its
// reward token is priced.
type Chain struct {
	RPCEnv            string         `toml:"rpc_env"`
	LendingResolver   common.Address `toml:"lending_resolver"`
	LiquidityResolver common.Address `toml:"liquidity_resolver"`
	Pricing           string         `toml:"pricing"`
	RewardToken       common.Address `toml:"reward_token"`
	RewardDecimals    uint           `toml:"reward_decimals"`
	StableDecimals    uint           `toml:"stable_decimals"`

	Packed Packed `toml:"packed"`
	Swap   Swap   `toml:"swap"`

	// Feeds maps a token to the Chainlink aggregator quoting it in USD.
	Feeds      map[string]common.Address `toml:"feeds"`
	Strategies []Strategy                `toml:"strategies"`
}

type Packed struct {
	Dex          common.Address `toml:"dex"`
	Slot         common.Hash    `toml:"slot"`
	Offset       uint           `toml:"offset"`
	DivisorExp   uint           `toml:"divisor_exp"`
	Intermediate common.Address `toml:"intermediate"`
}

type Swap struct {
	Quoter     common.Address `toml:"quoter"`
	Quote      common.Address `toml:"quote"`
	Fee        uint32         `toml:"fee"`
	DivisorExp uint           `toml:"divisor_exp"`

	// Reserves, when set, replace the quoter with a constant-product pool
	// of fixed reserves so pricing runs without a node.
	Reserves *Reserves `toml:"reserves"`
}

// Reserves are pool balances in base units, decimal or 0x hex.
type Reserves struct {
	Reward string `toml:"reward"`
	Quote  string `toml:"quote"`
}

// Amounts returns the reward and quote reserves.
func (r Reserves) Amounts() (*big.Int, *big.Int, error) {
	reward, err := b.Parse(r.Reward)
	if err != nil {
		return nil, nil, invalid("swap.reserves.reward", err.Error())
	}
	quote, err := b.Parse(r.Quote)
	if err != nil {
		return nil, nil, invalid("swap.reserves.quote", err.Error())
	}
	if reward.Sign() <= 0 {
		return nil, nil, invalid("swap.reserves.reward", "not positive")
	}
	if quote.Sign() <= 0 {
		return nil, nil, invalid("swap.reserves.quote", "not positive")
	}
	return reward, quote, nil
}

type Strategy struct {
	Name   string         `toml:"name"`
	Market common.Address `toml:"market"`
}

// Load reads a chain configuration file. Chains are validated when selected,
// so a file may carry chains that are not filled in yet.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %s", undecoded[0])
	}
	return cfg, nil
}

// Decode parses a configuration from its TOML text.
func Decode(data string) (*Config, error) {
	cfg := &Config{}
	_, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}
	return cfg, nil
}

// Chain returns the named chain with defaults applied, or the first field
// that keeps it from being used.
func (c *Config) Chain(name string) (Chain, error) {
	chain, ok := c.Chains[name]
	if !ok {
		return Chain{}, fmt.Errorf("%w: %s", ErrUnknownChain, name)
	}
	err := chain.validate()
	if err != nil {
		return Chain{}, fmt.Errorf("chain %s: %w", name, err)
	}
	return chain, nil
}

func (c Chain) Strategy(name string) (Strategy, error) {
	for _, strategy := range c.Strategies {
		if strategy.Name == name {
			return strategy, nil
		}
	}
	return Strategy{}, fmt.Errorf("%w: %s", ErrUnknownStrategy, name)
}

// FeedAggregators returns the aggregators keyed by token address.
func (c Chain) FeedAggregators() map[common.Address]common.Address {
	aggregators := make(map[common.Address]common.Address, len(c.Feeds))
	for token, aggregator := range c.Feeds {
		aggregators[common.HexToAddress(token)] = aggregator
	}
	return aggregators
}

func (p Packed) Divisor() *big.Int {
	return b.Pow10(p.DivisorExp)
}

func (s Swap) Divisor() *big.Int {
	return b.Pow10(s.DivisorExp)
}

func invalid(field string, reason string) error {
	return fmt.Errorf("%w %s: %s", ErrInvalidField, field, reason)
}

func (c *Chain) validate() error {
	if strings.TrimSpace(c.RPCEnv) == "" {
		return invalid("rpc_env", "missing")
	}
	if c.LendingResolver == (common.Address{}) {
		return invalid("lending_resolver", "zero address")
	}
	if c.LiquidityResolver == (common.Address{}) {
		return invalid("liquidity_resolver", "zero address")
	}
	if c.RewardToken == (common.Address{}) {
		return invalid("reward_token", "zero address")
	}
	if c.RewardDecimals == 0 || c.RewardDecimals > 36 {
		return invalid("reward_decimals", "out of range")
	}
	if c.StableDecimals == 0 || c.StableDecimals > 36 {
		return invalid("stable_decimals", "out of range")
	}
	for token := range c.Feeds {
		if !common.IsHexAddress(token) {
			return invalid("feeds", fmt.Sprintf("bad token %q", token))
		}
	}

	switch c.Pricing {
	case PricingPacked:
		if c.Packed.Dex == (common.Address{}) {
			return invalid("packed.dex", "zero address")
		}
		if c.Packed.Offset == 0 {
			c.Packed.Offset = price.DefaultPackedOffset
		}
		if c.Packed.Offset > 216 {
			return invalid("packed.offset", "out of range")
		}
		if c.Packed.DivisorExp == 0 {
			c.Packed.DivisorExp = 29
		}
		if !c.hasFeed(c.Packed.Intermediate) {
			return invalid("packed.intermediate", "no feed configured")
		}
	case PricingSwap:
		if c.Swap.Reserves != nil {
			_, _, err := c.Swap.Reserves.Amounts()
			if err != nil {
				return err
			}
		} else if c.Swap.Quoter == (common.Address{}) {
			return invalid("swap.quoter", "zero address")
		}
		if c.Swap.Quote == (common.Address{}) {
			return invalid("swap.quote", "zero address")
		}
		if c.Swap.Fee == 0 && c.Swap.Reserves == nil {
			return invalid("swap.fee", "missing")
		}
		if c.Swap.DivisorExp != 0 && !c.hasFeed(c.Swap.Quote) {
			return invalid("swap.quote", "divisor set but no feed configured")
		}
	default:
		return invalid("pricing", fmt.Sprintf("unknown strategy %q", c.Pricing))
	}

	if len(c.Strategies) == 0 {
		return invalid("strategies", "empty")
	}
	seen := make(map[string]struct{}, len(c.Strategies))
	for _, strategy := range c.Strategies {
		if strategy.Name == "" {
			return invalid("strategies.name", "missing")
		}
		if _, ok := seen[strategy.Name]; ok {
			return invalid("strategies.name", fmt.Sprintf("duplicate %q", strategy.Name))
		}
		seen[strategy.Name] = struct{}{}
		if strategy.Market == (common.Address{}) {
			return invalid("strategies.market", fmt.Sprintf("zero address for %q", strategy.Name))
		}
	}

	return nil
}

func (c Chain) hasFeed(token common.Address) bool {
	for key := range c.Feeds {
		if common.HexToAddress(key) == token {
			return true
		}
	}
	return false
}
