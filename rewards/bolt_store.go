package rewards

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.etcd.io/bbolt"
)

var (
	rewardsBucket = []byte("rewards")
	metaBucket    = []byte("meta")
	operatorKey   = []byte("operator")
)

// BoltStore keeps reward configurations in a bbolt file, keyed by market
// address.
type BoltStore struct {
	db *bbolt.DB
}

func OpenBolt(path string) (*BoltStore, error) {

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("could not open rewards database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{rewardsBucket, metaBucket} {
			_, err := tx.CreateBucketIfNotExists(name)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not create rewards buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) Reward(market common.Address) (Reward, bool, error) {
	var (
		reward Reward
		found  bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(rewardsBucket).Get(market.Bytes())
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &reward)
	})
	if err != nil {
		return Reward{}, false, fmt.Errorf("could not read reward (market: %s): %w", market.Hex(), err)
	}
	return reward, found, nil
}

func (s *BoltStore) PutReward(market common.Address, reward Reward) error {
	data, err := json.Marshal(reward)
	if err != nil {
		return fmt.Errorf("could not encode reward: %w", err)
	}
	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(rewardsBucket).Put(market.Bytes(), data)
	})
	if err != nil {
		return fmt.Errorf("could not write reward (market: %s): %w", market.Hex(), err)
	}
	return nil
}

func (s *BoltStore) Operator() (common.Address, bool, error) {
	var (
		operator common.Address
		found    bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(metaBucket).Get(operatorKey)
		if data == nil {
			return nil
		}
		found = true
		operator = common.BytesToAddress(data)
		return nil
	})
	if err != nil {
		return common.Address{}, false, fmt.Errorf("could not read operator: %w", err)
	}
	return operator, found, nil
}

func (s *BoltStore) PutOperator(operator common.Address) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(metaBucket).Put(operatorKey, operator.Bytes())
	})
	if err != nil {
		return fmt.Errorf("could not write operator: %w", err)
	}
	return nil
}
