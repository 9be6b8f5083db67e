package aggregator

import "go-aggcore/pkg/types"

type AggregationMIN struct {
	AggregatorBase
	Val types.DataType
}

func (as *AggregationMIN) Add(ctx *EvalContext, declared types.TypeCode, distinct bool, value types.DataType) error {
	return as.add(ctx, declared, distinct, value, as.requireOrderable, as.apply)
}

func (as *AggregationMIN) apply(ctx *EvalContext, value types.DataType) error {
	if as.Val == nil {
		as.Val = value
		return nil
	}
	cmp, err := types.Compare(value, as.Val, ctx.mode())
	if err != nil {
		return err
	}
	if cmp < 0 {
		as.Val = value
	}
	return nil
}

func (as *AggregationMIN) Value(ctx *EvalContext, declared types.TypeCode, distinct bool) (types.DataType, error) {
	if err := as.finish(ctx, distinct, as.apply); err != nil {
		return nil, err
	}
	if as.Val == nil {
		return types.Null, nil
	}
	return as.Val, nil
}
