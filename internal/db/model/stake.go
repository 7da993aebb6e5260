package model

import (
	"fmt"
	"strconv"

	"github.com/nftstake/weight-indexer/internal/accounting"
)

type StakeDocument struct {
	ID                   string `bson:"_id"` // Primary key
	PoolID               string `bson:"pool_id"`
	AssetID              string `bson:"asset_id"`
	Owner                string `bson:"owner"`
	StakeTime            int64  `bson:"stake_time"`
	AccumulatedWeight    string `bson:"accumulated_weight"`
	WithdrawnWeight      string `bson:"withdrawn_weight"`
	LastWeightUpdateTime int64  `bson:"last_weight_update_time"`
	Active               bool   `bson:"active"`
	UnstakedAt           int64  `bson:"unstaked_at,omitempty"`
	// Version is bumped on every write and used as the optimistic
	// concurrency guard.
	Version uint64 `bson:"version"`
}

func FromStakeRecord(id string, r *accounting.StakeRecord, version uint64) *StakeDocument {
	return &StakeDocument{
		ID:                   id,
		PoolID:               r.PoolID,
		AssetID:              r.AssetID,
		Owner:                r.Owner,
		StakeTime:            r.StakeTime,
		AccumulatedWeight:    formatUint(r.AccumulatedWeight),
		WithdrawnWeight:      formatUint(r.WithdrawnWeight),
		LastWeightUpdateTime: r.LastWeightUpdateTime,
		Active:               r.Active,
		UnstakedAt:           r.UnstakedAt,
		Version:              version,
	}
}

func (d *StakeDocument) ToStakeRecord() (*accounting.StakeRecord, error) {
	accumulated, err := parseUint(d.AccumulatedWeight)
	if err != nil {
		return nil, fmt.Errorf("invalid accumulated weight of stake %s: %w", d.ID, err)
	}
	withdrawn, err := parseUint(d.WithdrawnWeight)
	if err != nil {
		return nil, fmt.Errorf("invalid withdrawn weight of stake %s: %w", d.ID, err)
	}

	return &accounting.StakeRecord{
		PoolID:               d.PoolID,
		Owner:                d.Owner,
		AssetID:              d.AssetID,
		StakeTime:            d.StakeTime,
		AccumulatedWeight:    accumulated,
		WithdrawnWeight:      withdrawn,
		LastWeightUpdateTime: d.LastWeightUpdateTime,
		Active:               d.Active,
		UnstakedAt:           d.UnstakedAt,
	}, nil
}

// weights and rates do not fit BSON int64, they are stored as decimal strings
func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}

func parseUint(s string) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseUint(s, 10, 64)
}
