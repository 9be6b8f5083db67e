package aggregator

import (
	"go-aggcore/pkg/types"
)

// AggregationMEDIAN materializes its population and reduces it at Value
// time. Inputs must be numeric; integer and fractional inputs are equally
// accepted unless the declared type narrows them.
type AggregationMEDIAN struct {
	AggregatorBase
	list []types.DataType
}

func (as *AggregationMEDIAN) Add(ctx *EvalContext, declared types.TypeCode, distinct bool, value types.DataType) error {
	return as.add(ctx, declared, distinct, value, requireNumeric, as.apply)
}

func (as *AggregationMEDIAN) apply(ctx *EvalContext, value types.DataType) error {
	if err := reserve(ctx, len(as.list)); err != nil {
		return err
	}
	as.list = append(as.list, value)
	return nil
}

func (as *AggregationMEDIAN) Value(ctx *EvalContext, declared types.TypeCode, distinct bool) (types.DataType, error) {
	if err := as.finish(ctx, distinct, as.apply); err != nil {
		return nil, err
	}
	return median(as.list, ctx.mode())
}

func (as *AggregationMEDIAN) Len() int {
	return len(as.list)
}
