package aggregator

import "go-aggcore/pkg/types"

// AggregationANYVALUE returns the first value it accepted.
type AggregationANYVALUE struct {
	AggregatorBase
	Val types.DataType
}

func (as *AggregationANYVALUE) Add(ctx *EvalContext, declared types.TypeCode, distinct bool, value types.DataType) error {
	return as.add(ctx, declared, distinct, value, nil, as.apply)
}

func (as *AggregationANYVALUE) apply(ctx *EvalContext, value types.DataType) error {
	if as.Val == nil {
		as.Val = value
	}
	return nil
}

func (as *AggregationANYVALUE) Value(ctx *EvalContext, declared types.TypeCode, distinct bool) (types.DataType, error) {
	if err := as.finish(ctx, distinct, as.apply); err != nil {
		return nil, err
	}
	if as.Val == nil {
		return types.Null, nil
	}
	return as.Val, nil
}
