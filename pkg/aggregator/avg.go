package aggregator

import (
	"go-aggcore/pkg/types"

	"github.com/pkg/errors"
)

// AggregationAVG keeps a running sum and divides it by the count through
// Divide, so integer inputs average to an exact DECIMAL.
type AggregationAVG struct {
	AggregatorBase
	Sum   types.DataType
	Count int64
}

func (as *AggregationAVG) Add(ctx *EvalContext, declared types.TypeCode, distinct bool, value types.DataType) error {
	return as.add(ctx, declared, distinct, value, requireNumeric, as.apply)
}

func (as *AggregationAVG) apply(ctx *EvalContext, value types.DataType) error {
	as.Count++
	if as.Sum == nil {
		as.Sum = value
		return nil
	}
	sum, err := types.Add(as.Sum, value)
	if err != nil {
		return errors.Wrap(err, "avg")
	}
	as.Sum = sum
	return nil
}

func (as *AggregationAVG) Value(ctx *EvalContext, declared types.TypeCode, distinct bool) (types.DataType, error) {
	if err := as.finish(ctx, distinct, as.apply); err != nil {
		return nil, err
	}
	return Divide(as.Sum, as.Count)
}
