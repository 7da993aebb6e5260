package types

import "fmt"

type StakeState string

const (
	StakeStateActive   StakeState = "ACTIVE"
	StakeStateUnstaked StakeState = "UNSTAKED"
)

func (s StakeState) String() string {
	return string(s)
}

func StakeStateFromActive(active bool) StakeState {
	if active {
		return StakeStateActive
	}
	return StakeStateUnstaked
}

type PoolState string

const (
	PoolStateActive PoolState = "ACTIVE"
	PoolStateClosed PoolState = "CLOSED"
)

func (s PoolState) String() string {
	return string(s)
}

func PoolStateFromString(s string) (PoolState, error) {
	switch s {
	case PoolStateActive.String():
		return PoolStateActive, nil
	case PoolStateClosed.String():
		return PoolStateClosed, nil
	default:
		return "", fmt.Errorf("invalid pool state: %s", s)
	}
}
