package aggregator

import (
	"go-aggcore/pkg/customerrors"
	"go-aggcore/pkg/types"

	"github.com/cockroachdb/apd/v3"
	"github.com/pkg/errors"
)

// AggregationPERCENTILEDISC is the discrete percentile: the smallest value
// whose cumulative distribution reaches the fraction. Any orderable input
// is accepted, strings included.
type AggregationPERCENTILEDISC struct {
	AggregatorBase
	Fraction *apd.Decimal
	list     []types.DataType
}

func newPercentileDisc(arg types.DataType) (*AggregationPERCENTILEDISC, error) {
	if types.IsNull(arg) || !arg.IsNumeric() {
		return nil, errors.Wrap(customerrors.ErrTypeMismatch, "percentile fraction must be numeric")
	}
	d, err := types.Convert(arg, types.TYPE_DECIMAL)
	if err != nil {
		return nil, errors.Wrap(err, "percentile fraction")
	}
	fraction := d.Value().(*apd.Decimal)
	if fraction.Sign() < 0 || fraction.Cmp(apd.New(1, 0)) > 0 {
		return nil, errors.Errorf("percentile fraction %s is not between 0 and 1", fraction.Text('f'))
	}
	return &AggregationPERCENTILEDISC{Fraction: fraction}, nil
}

func (as *AggregationPERCENTILEDISC) Add(ctx *EvalContext, declared types.TypeCode, distinct bool, value types.DataType) error {
	return as.add(ctx, declared, distinct, value, as.requireOrderable, as.apply)
}

func (as *AggregationPERCENTILEDISC) apply(ctx *EvalContext, value types.DataType) error {
	if err := reserve(ctx, len(as.list)); err != nil {
		return err
	}
	as.list = append(as.list, value)
	return nil
}

func (as *AggregationPERCENTILEDISC) Value(ctx *EvalContext, declared types.TypeCode, distinct bool) (types.DataType, error) {
	if err := as.finish(ctx, distinct, as.apply); err != nil {
		return nil, err
	}
	return percentileDisc(as.list, ctx.mode(), as.Fraction)
}
