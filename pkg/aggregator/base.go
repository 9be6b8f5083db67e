package aggregator

import (
	"go-aggcore/pkg/customerrors"
	"go-aggcore/pkg/types"

	"github.com/pkg/errors"
)

type applyFunc func(ctx *EvalContext, value types.DataType) error

type checkFunc func(ctx *EvalContext, value types.DataType) error

// AggregatorBase holds what every variant shares: the distinct set and the
// finalize bookkeeping. Variants fold non-distinct values themselves; the
// distinct set is replayed through the same fold once, on the first Value
// call.
type AggregatorBase struct {
	distinct  *DistinctSet
	sample    types.DataType
	finalized bool
	replayed  bool
	err       error
}

func (b *AggregatorBase) add(
	ctx *EvalContext,
	declared types.TypeCode,
	distinct bool,
	value types.DataType,
	check checkFunc,
	apply applyFunc,
) error {
	if b.finalized {
		return errors.Wrap(customerrors.ErrInvalidUsage, "add called on a finalized aggregate")
	}
	if types.IsNull(value) {
		return nil
	}

	value, err := coerce(declared, value)
	if err != nil {
		return err
	}
	if check != nil {
		if err := check(ctx, value); err != nil {
			return err
		}
	}

	if distinct {
		if b.distinct == nil {
			b.distinct = NewDistinctSet(ctx.mode(), ctx.limit())
		}
		if _, err := b.distinct.Insert(value); err != nil {
			ctx.log().WithError(err).Warn("distinct set limit reached")
			return err
		}
		return nil
	}
	return apply(ctx, value)
}

// finish marks the state finalized and, for distinct aggregates, moves the
// distinct set into the accumulation through apply. Only the first call
// replays; a failed replay is reported again by every later call.
func (b *AggregatorBase) finish(ctx *EvalContext, distinct bool, apply applyFunc) error {
	b.finalized = true
	if b.err != nil {
		return b.err
	}
	if !distinct || b.replayed {
		return nil
	}
	b.replayed = true
	if b.distinct == nil {
		return nil
	}

	set := b.distinct
	b.distinct = nil
	ctx.log().WithField("values", set.Len()).Debug("replaying distinct values")
	for _, v := range set.Values() {
		if err := apply(ctx, v); err != nil {
			b.err = errors.Wrap(err, "failed to replay distinct values")
			return b.err
		}
	}
	return nil
}

// coerce converts value to the declared input type of the aggregate.
// TYPE_NULL declares nothing and keeps the value as is.
func coerce(declared types.TypeCode, value types.DataType) (types.DataType, error) {
	if declared == types.TYPE_NULL {
		return value, nil
	}
	res, err := types.Convert(value, declared)
	if err != nil {
		return nil, errors.Wrap(customerrors.ErrTypeMismatch, err.Error())
	}
	return res, nil
}

func requireNumeric(ctx *EvalContext, value types.DataType) error {
	if !value.IsNumeric() {
		return errors.Wrapf(customerrors.ErrTypeMismatch, "%v '%s' is not numeric", value.GetCode(), value.String())
	}
	return nil
}

// requireOrderable checks value against the first value seen. Orderability
// depends only on the type family, so one sample is enough.
func (b *AggregatorBase) requireOrderable(ctx *EvalContext, value types.DataType) error {
	if b.sample == nil {
		b.sample = value
		return nil
	}
	if _, err := types.Compare(b.sample, value, ctx.mode()); err != nil {
		return errors.Wrapf(customerrors.ErrTypeMismatch, "%v '%s' cannot be ordered against %v", value.GetCode(), value.String(), b.sample.GetCode())
	}
	return nil
}

// reserve fails when a collection already holding n values may not grow.
func reserve(ctx *EvalContext, n int) error {
	if limit := ctx.limit(); limit > 0 && n >= limit {
		err := errors.Wrapf(customerrors.ErrResourceExhausted, "accumulation limit of %d values reached", limit)
		ctx.log().WithError(err).Warn("accumulation limit reached")
		return err
	}
	return nil
}
