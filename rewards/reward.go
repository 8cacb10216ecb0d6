package rewards

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// Mode selects how the bonus reward rate of a market is obtained.
type Mode uint8

const (
	// Emission prices a reward token emission, Value is tokens per second.
	Emission Mode = iota
	// Manual uses an operator pinned APR, Value is 1e18 = 100%.
	Manual
)

func (m Mode) String() string {
	switch m {
	case Emission:
		return "emission"
	case Manual:
		return "manual"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "emission":
		return Emission, nil
	case "manual":
		return Manual, nil
	default:
		return 0, fmt.Errorf("unknown reward mode %q", s)
	}
}

// Reward is the reward configuration of one market. Only the value of the
// active mode exists, so emission rate and manual APR can never both be set.
type Reward struct {
	Mode  Mode
	Value *big.Int
}

type rewardJSON struct {
	Mode  string `json:"mode"`
	Value string `json:"value"`
}

func (r Reward) MarshalJSON() ([]byte, error) {
	value := "0"
	if r.Value != nil {
		value = r.Value.String()
	}
	return json.Marshal(rewardJSON{Mode: r.Mode.String(), Value: value})
}

func (r *Reward) UnmarshalJSON(data []byte) error {
	var raw rewardJSON
	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}
	mode, err := ParseMode(raw.Mode)
	if err != nil {
		return err
	}
	value, ok := big.NewInt(0).SetString(raw.Value, 10)
	if !ok {
		return fmt.Errorf("invalid reward value %q", raw.Value)
	}
	r.Mode = mode
	r.Value = value
	return nil
}
