package accounting

import (
	sdkmath "cosmossdk.io/math"
)

// Payable returns floor(weight * rewardPerWeight).
func Payable(weight uint64, rewardPerWeight sdkmath.LegacyDec) sdkmath.Int {
	if weight == 0 || rewardPerWeight.IsNil() || !rewardPerWeight.IsPositive() {
		return sdkmath.ZeroInt()
	}
	return rewardPerWeight.MulInt(sdkmath.NewIntFromUint64(weight)).TruncateInt()
}

// TotalWeight sums the accumulated weight of the given records.
func TotalWeight(records []*StakeRecord) (uint64, error) {
	var total uint64
	for _, r := range records {
		if r == nil {
			continue
		}
		var err error
		total, err = checkedAdd(total, r.AccumulatedWeight)
		if err != nil {
			return 0, err
		}
	}
	return total, nil
}

// AddWeight adds two weights, failing on 64-bit overflow.
func AddWeight(a, b uint64) (uint64, error) {
	return checkedAdd(a, b)
}

// ShareOf returns the fraction of total weight held by weight, zero when
// the pool has no weight yet.
func ShareOf(weight, total uint64) sdkmath.LegacyDec {
	if total == 0 {
		return sdkmath.LegacyZeroDec()
	}
	return sdkmath.LegacyNewDecFromInt(sdkmath.NewIntFromUint64(weight)).
		QuoInt(sdkmath.NewIntFromUint64(total))
}
