package aggregator

import "go-aggcore/pkg/types"

// AggregationCOUNT counts non-NULL inputs, or every input when All is set
// (COUNT(*)). An empty group counts 0.
type AggregationCOUNT struct {
	AggregatorBase
	All bool
	Val int64
}

func (as *AggregationCOUNT) Add(ctx *EvalContext, declared types.TypeCode, distinct bool, value types.DataType) error {
	if as.All {
		// COUNT(*) counts rows, it has neither an input value nor DISTINCT
		return as.add(ctx, types.TYPE_NULL, false, types.NewInteger(1), nil, as.apply)
	}
	return as.add(ctx, declared, distinct, value, nil, as.apply)
}

func (as *AggregationCOUNT) apply(ctx *EvalContext, value types.DataType) error {
	as.Val++
	return nil
}

func (as *AggregationCOUNT) Value(ctx *EvalContext, declared types.TypeCode, distinct bool) (types.DataType, error) {
	if err := as.finish(ctx, distinct, as.apply); err != nil {
		return nil, err
	}
	return types.NewInteger(as.Val), nil
}
