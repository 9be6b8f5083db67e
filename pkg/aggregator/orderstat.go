package aggregator

import (
	"slices"

	"go-aggcore/pkg/types"
	"go-aggcore/util/helpers"

	"github.com/cockroachdb/apd/v3"
	"github.com/pkg/errors"
)

// sortValues sorts values ascending under mode. Equal values keep their
// relative order. The first comparison failure is returned.
func sortValues(values []types.DataType, mode *types.CompareMode) error {
	var err error
	slices.SortStableFunc(values, func(a, b types.DataType) int {
		cmp, cerr := types.Compare(a, b, mode)
		if cerr != nil && err == nil {
			err = cerr
		}
		return cmp
	})
	return err
}

// median sorts a snapshot of population and returns its middle element,
// or the promoted average of the two middle elements for an even count.
// The population itself is left untouched.
func median(population []types.DataType, mode *types.CompareMode) (types.DataType, error) {
	if len(population) == 0 {
		return types.Null, nil
	}

	sorted := slices.Clone(population)
	if err := sortValues(sorted, mode); err != nil {
		return nil, errors.Wrap(err, "failed to sort median population")
	}

	lo, hi := helpers.Mid(len(sorted))
	if lo == hi {
		return sorted[lo], nil
	}

	sum, err := types.Add(sorted[lo], sorted[hi])
	if err != nil {
		return nil, errors.Wrap(err, "failed to add middle values")
	}
	return Divide(sum, 2)
}

// percentileDisc returns the first value whose cumulative distribution is
// at least fraction, i.e. the value at index ceil(fraction*N)-1.
func percentileDisc(population []types.DataType, mode *types.CompareMode, fraction *apd.Decimal) (types.DataType, error) {
	if len(population) == 0 {
		return types.Null, nil
	}

	sorted := slices.Clone(population)
	if err := sortValues(sorted, mode); err != nil {
		return nil, errors.Wrap(err, "failed to sort percentile population")
	}

	pos := new(apd.Decimal)
	if _, err := types.DecimalCtx.Mul(pos, fraction, apd.New(int64(len(sorted)), 0)); err != nil {
		return nil, errors.Wrap(err, "percentile position")
	}
	if _, err := types.DecimalCtx.Ceil(pos, pos); err != nil {
		return nil, errors.Wrap(err, "percentile position")
	}
	idx, err := pos.Int64()
	if err != nil {
		return nil, errors.Wrap(err, "percentile position")
	}
	idx = helpers.Max(idx-1, 0)
	idx = helpers.Min(idx, int64(len(sorted)-1))
	return sorted[idx], nil
}
