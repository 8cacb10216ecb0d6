package rewards

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// Store persists reward configurations and the operator identity.
type Store interface {
	Reward(market common.Address) (Reward, bool, error)
	PutReward(market common.Address, reward Reward) error
	Operator() (common.Address, bool, error)
	PutOperator(operator common.Address) error
}

type MemoryStore struct {
	sync.RWMutex
	rewards  map[common.Address]Reward
	operator *common.Address
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rewards: make(map[common.Address]Reward)}
}

func (m *MemoryStore) Reward(market common.Address) (Reward, bool, error) {
	m.RLock()
	defer m.RUnlock()
	reward, ok := m.rewards[market]
	if !ok {
		return Reward{}, false, nil
	}
	return Reward{Mode: reward.Mode, Value: clone(reward.Value)}, true, nil
}

func (m *MemoryStore) PutReward(market common.Address, reward Reward) error {
	m.Lock()
	defer m.Unlock()
	m.rewards[market] = Reward{Mode: reward.Mode, Value: clone(reward.Value)}
	return nil
}

func (m *MemoryStore) Operator() (common.Address, bool, error) {
	m.RLock()
	defer m.RUnlock()
	if m.operator == nil {
		return common.Address{}, false, nil
	}
	return *m.operator, true, nil
}

func (m *MemoryStore) PutOperator(operator common.Address) error {
	m.Lock()
	defer m.Unlock()
	m.operator = &operator
	return nil
}

func clone(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return big.NewInt(0).Set(v)
}
