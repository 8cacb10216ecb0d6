package rewards

import (
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
)

var (
	ErrUnauthorized     = errors.New("caller is not the operator")
	ErrZeroOperator     = errors.New("operator must not be the zero address")
	ErrInactiveMode     = errors.New("cannot set a non-zero value for the inactive reward mode")
	ErrModeValueNotZero = errors.New("active reward value must be zero before switching mode")
	ErrNegativeValue    = errors.New("reward value must not be negative")
)

// Registry holds the reward configuration of every market. All writes go
// through the operator and either apply entirely or not at all.
type Registry struct {
	mu       sync.RWMutex
	log      zerolog.Logger
	store    Store
	operator common.Address
}

// New loads the operator from the store, seeding it with operator when the
// store has none yet.
func New(log zerolog.Logger, store Store, operator common.Address) (*Registry, error) {

	stored, ok, err := store.Operator()
	if err != nil {
		return nil, err
	}
	if !ok {
		if operator == (common.Address{}) {
			return nil, ErrZeroOperator
		}
		err = store.PutOperator(operator)
		if err != nil {
			return nil, err
		}
		stored = operator
	}

	r := Registry{
		log:      log.With().Str("component", "rewards").Logger(),
		store:    store,
		operator: stored,
	}

	return &r, nil
}

func (r *Registry) Operator() common.Address {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.operator
}

// Reward returns the configuration of a market; unknown markets have a zero
// emission rate.
func (r *Registry) Reward(market common.Address) (Reward, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.load(market)
}

func (r *Registry) load(market common.Address) (Reward, error) {
	reward, ok, err := r.store.Reward(market)
	if err != nil {
		return Reward{}, err
	}
	if !ok {
		return Reward{Mode: Emission, Value: big.NewInt(0)}, nil
	}
	return reward, nil
}

// SetEmissionRate sets the reward tokens emitted per second for a market.
func (r *Registry) SetEmissionRate(caller common.Address, market common.Address, rate *big.Int) error {
	return r.setValue(caller, market, Emission, rate)
}

// SetManualApr pins the bonus APR of a market, 1e18 = 100%.
func (r *Registry) SetManualApr(caller common.Address, market common.Address, apr *big.Int) error {
	return r.setValue(caller, market, Manual, apr)
}

func (r *Registry) setValue(caller common.Address, market common.Address, mode Mode, value *big.Int) error {
	if value == nil {
		value = big.NewInt(0)
	}
	if value.Sign() < 0 {
		return ErrNegativeValue
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if caller != r.operator {
		return ErrUnauthorized
	}

	current, err := r.load(market)
	if err != nil {
		return err
	}
	if current.Mode != mode {
		if value.Sign() != 0 {
			return fmt.Errorf("%w (active: %s, requested: %s)", ErrInactiveMode, current.Mode, mode)
		}
		return nil
	}

	err = r.store.PutReward(market, Reward{Mode: mode, Value: big.NewInt(0).Set(value)})
	if err != nil {
		return err
	}

	r.log.Info().
		Str("market", market.Hex()).
		Str("mode", mode.String()).
		Str("value", value.String()).
		Msg("reward value updated")

	return nil
}

// SetMode switches a market between emission pricing and a manual APR. The
// value of the active mode has to be cleared first.
func (r *Registry) SetMode(caller common.Address, market common.Address, mode Mode) error {
	if mode != Emission && mode != Manual {
		return fmt.Errorf("unknown reward mode %s", mode)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if caller != r.operator {
		return ErrUnauthorized
	}

	current, err := r.load(market)
	if err != nil {
		return err
	}
	if current.Mode == mode {
		return nil
	}
	if current.Value.Sign() != 0 {
		return fmt.Errorf("%w (active: %s, value: %s)", ErrModeValueNotZero, current.Mode, current.Value)
	}

	err = r.store.PutReward(market, Reward{Mode: mode, Value: big.NewInt(0)})
	if err != nil {
		return err
	}

	r.log.Info().
		Str("market", market.Hex()).
		Str("mode", mode.String()).
		Msg("reward mode switched")

	return nil
}

// SetOperator hands the operator role to next.
func (r *Registry) SetOperator(caller common.Address, next common.Address) error {
	if next == (common.Address{}) {
		return ErrZeroOperator
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if caller != r.operator {
		return ErrUnauthorized
	}

	err := r.store.PutOperator(next)
	if err != nil {
		return err
	}
	r.operator = next

	r.log.Info().
		Str("previous", caller.Hex()).
		Str("operator", next.Hex()).
		Msg("operator rotated")

	return nil
}
