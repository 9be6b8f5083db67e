package aggregator

import (
	"go-aggcore/pkg/types"

	"github.com/pkg/errors"
)

type AggregationSUM struct {
	AggregatorBase
	Sum types.DataType
}

func (as *AggregationSUM) Add(ctx *EvalContext, declared types.TypeCode, distinct bool, value types.DataType) error {
	return as.add(ctx, declared, distinct, value, requireNumeric, as.apply)
}

func (as *AggregationSUM) apply(ctx *EvalContext, value types.DataType) error {
	if as.Sum == nil {
		as.Sum = value
		return nil
	}
	sum, err := types.Add(as.Sum, value)
	if err != nil {
		return errors.Wrap(err, "sum")
	}
	as.Sum = sum
	return nil
}

func (as *AggregationSUM) Value(ctx *EvalContext, declared types.TypeCode, distinct bool) (types.DataType, error) {
	if err := as.finish(ctx, distinct, as.apply); err != nil {
		return nil, err
	}
	if as.Sum == nil {
		return types.Null, nil
	}
	return as.Sum, nil
}
