package types

import (
	"math"
	"strconv"

	"go-aggcore/pkg/customerrors"

	"github.com/cockroachdb/apd/v3"
	"github.com/pkg/errors"
)

func init() {
	typesMap[TYPE_INTEGER] = newable{
		name:    "INTEGER",
		numeric: true,
		from: func(val DataType) (DataType, error) {
			switch v := val.(type) {
			case *DataTypeDECIMAL:
				i, ok := int64FromDecimal(v.value)
				if !ok {
					return nil, errors.Wrap(customerrors.ErrTypeMismatch, "not an integral value in range")
				}
				return NewInteger(i), nil
			case *DataTypeFLOAT:
				f := v.value
				if f != math.Trunc(f) || f < float64(math.MinInt64) || f >= -float64(math.MinInt64) {
					return nil, errors.Wrap(customerrors.ErrTypeMismatch, "not an integral value in range")
				}
				return NewInteger(int64(f)), nil
			case *DataTypeSTRING:
				i, err := strconv.ParseInt(v.value, 10, 64)
				if err != nil {
					return nil, errors.Wrap(customerrors.ErrTypeMismatch, err.Error())
				}
				return NewInteger(i), nil
			}
			return nil, customerrors.ErrTypeMismatch
		},
	}
}

type DataTypeINTEGER struct {
	value int64
}

func NewInteger(v int64) *DataTypeINTEGER {
	return &DataTypeINTEGER{value: v}
}

func (t *DataTypeINTEGER) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, t.value, 10), nil
}

func (t *DataTypeINTEGER) GetCode() TypeCode {
	return TYPE_INTEGER
}

func (t *DataTypeINTEGER) IsNumeric() bool {
	return true
}

func (t *DataTypeINTEGER) Value() interface{} {
	return t.value
}

func (t *DataTypeINTEGER) String() string {
	return strconv.FormatInt(t.value, 10)
}

func (t *DataTypeINTEGER) compare(val DataType, mode *CompareMode) int {
	v := val.(*DataTypeINTEGER).value
	switch {
	case t.value < v:
		return -1
	case t.value > v:
		return 1
	}
	return 0
}

func (t *DataTypeINTEGER) key(mode *CompareMode, dst []byte) []byte {
	return numericKey(t, dst)
}

func (t *DataTypeINTEGER) exact() (int, *apd.Decimal) {
	return rankFinite, apd.New(t.value, 0)
}

// add widens to DECIMAL instead of wrapping around on overflow.
func (t *DataTypeINTEGER) add(val DataType) (DataType, error) {
	a, b := t.value, val.(*DataTypeINTEGER).value
	sum := a + b
	if (a > 0 && b > 0 && sum < 0) || (a < 0 && b < 0 && sum >= 0) {
		d := new(apd.Decimal)
		if _, err := DecimalCtx.Add(d, apd.New(a, 0), apd.New(b, 0)); err != nil {
			return nil, errors.Wrap(err, "integer overflow")
		}
		return &DataTypeDECIMAL{value: d}, nil
	}
	return NewInteger(sum), nil
}

// divide truncates toward zero.
func (t *DataTypeINTEGER) divide(val DataType) (DataType, error) {
	b := val.(*DataTypeINTEGER).value
	if b == 0 {
		return nil, customerrors.ErrDivisionByZero
	}
	if t.value == math.MinInt64 && b == -1 {
		return (&DataTypeDECIMAL{value: apd.New(t.value, 0)}).divide(&DataTypeDECIMAL{value: apd.New(b, 0)})
	}
	return NewInteger(t.value / b), nil
}
