package aggregator

import (
	"go-aggcore/pkg/types"

	"github.com/pkg/errors"
)

// Divide divides value by an integer count. A zero divisor yields Null. The
// division runs in the higher order of value's type and INTEGER, widened to
// DECIMAL when that type cannot hold a fraction, so 5/2 is 2.5 and not 2.
func Divide(value types.DataType, by int64) (types.DataType, error) {
	if by == 0 || types.IsNull(value) {
		return types.Null, nil
	}

	code := types.HigherOrder(value.GetCode(), types.TYPE_INTEGER)
	if !types.HasFraction(code) {
		code = types.TYPE_DECIMAL
	}

	dividend, err := types.Convert(value, code)
	if err != nil {
		return nil, err
	}
	divisor, err := types.Convert(types.NewInteger(by), code)
	if err != nil {
		return nil, err
	}

	res, err := types.Divide(dividend, divisor)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to divide %s by %d", value.String(), by)
	}
	return res, nil
}
