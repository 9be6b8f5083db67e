package aggregator

import (
	"math"

	"go-aggcore/pkg/types"

	"github.com/pkg/errors"
)

// AggregationVARIANCE computes VAR_POP, VAR_SAMP, STDDEV_POP and
// STDDEV_SAMP with Welford's online update over FLOAT.
type AggregationVARIANCE struct {
	AggregatorBase
	Kind AggregatorType

	n    int64
	mean float64
	m2   float64
}

func (as *AggregationVARIANCE) Add(ctx *EvalContext, declared types.TypeCode, distinct bool, value types.DataType) error {
	return as.add(ctx, declared, distinct, value, requireNumeric, as.apply)
}

func (as *AggregationVARIANCE) apply(ctx *EvalContext, value types.DataType) error {
	f, err := types.Convert(value, types.TYPE_FLOAT)
	if err != nil {
		return errors.Wrap(err, "variance")
	}
	x := f.Value().(float64)

	as.n++
	delta := x - as.mean
	as.mean += delta / float64(as.n)
	as.m2 += delta * (x - as.mean)
	return nil
}

func (as *AggregationVARIANCE) Value(ctx *EvalContext, declared types.TypeCode, distinct bool) (types.DataType, error) {
	if err := as.finish(ctx, distinct, as.apply); err != nil {
		return nil, err
	}

	n := as.n
	if as.Kind == VAR_SAMP || as.Kind == STDDEV_SAMP {
		n--
	}
	if n <= 0 {
		return types.Null, nil
	}

	v := as.m2 / float64(n)
	if as.Kind == STDDEV_POP || as.Kind == STDDEV_SAMP {
		v = math.Sqrt(v)
	}
	return types.NewFloat(v), nil
}
