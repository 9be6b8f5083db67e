package types

import (
	"cmp"
	"math"
	"strconv"

	"go-aggcore/pkg/customerrors"

	"github.com/cockroachdb/apd/v3"
	"github.com/pkg/errors"
)

func init() {
	typesMap[TYPE_FLOAT] = newable{
		name:       "FLOAT",
		numeric:    true,
		fractional: true,
		from: func(val DataType) (DataType, error) {
			switch v := val.(type) {
			case *DataTypeINTEGER:
				return NewFloat(float64(v.value)), nil
			case *DataTypeDECIMAL:
				f, err := v.value.Float64()
				if err != nil {
					return nil, errors.Wrap(customerrors.ErrTypeMismatch, err.Error())
				}
				return NewFloat(f), nil
			case *DataTypeSTRING:
				f, err := strconv.ParseFloat(v.value, 64)
				if err != nil {
					return nil, errors.Wrap(customerrors.ErrTypeMismatch, err.Error())
				}
				return NewFloat(f), nil
			}
			return nil, customerrors.ErrTypeMismatch
		},
	}
}

type DataTypeFLOAT struct {
	value float64
}

func NewFloat(v float64) *DataTypeFLOAT {
	return &DataTypeFLOAT{value: v}
}

// MarshalJSON quotes NaN and infinities, JSON has no literal for them.
func (t *DataTypeFLOAT) MarshalJSON() ([]byte, error) {
	if math.IsNaN(t.value) || math.IsInf(t.value, 0) {
		return strconv.AppendQuote(nil, t.String()), nil
	}
	return strconv.AppendFloat(nil, t.value, 'g', -1, 64), nil
}

func (t *DataTypeFLOAT) GetCode() TypeCode {
	return TYPE_FLOAT
}

func (t *DataTypeFLOAT) IsNumeric() bool {
	return true
}

func (t *DataTypeFLOAT) Value() interface{} {
	return t.value
}

func (t *DataTypeFLOAT) String() string {
	return strconv.FormatFloat(t.value, 'g', -1, 64)
}

func (t *DataTypeFLOAT) compare(val DataType, mode *CompareMode) int {
	return cmp.Compare(t.value, val.(*DataTypeFLOAT).value)
}

func (t *DataTypeFLOAT) key(mode *CompareMode, dst []byte) []byte {
	return numericKey(t, dst)
}

func (t *DataTypeFLOAT) exact() (int, *apd.Decimal) {
	switch {
	case math.IsNaN(t.value):
		return rankNaN, nil
	case math.IsInf(t.value, -1):
		return rankNegInf, nil
	case math.IsInf(t.value, 1):
		return rankPosInf, nil
	}
	d, err := new(apd.Decimal).SetFloat64(t.value)
	if err != nil {
		// unreachable for finite values
		return rankNaN, nil
	}
	return rankFinite, d
}

func (t *DataTypeFLOAT) add(val DataType) (DataType, error) {
	return NewFloat(t.value + val.(*DataTypeFLOAT).value), nil
}

func (t *DataTypeFLOAT) divide(val DataType) (DataType, error) {
	b := val.(*DataTypeFLOAT).value
	if b == 0 {
		return nil, customerrors.ErrDivisionByZero
	}
	return NewFloat(t.value / b), nil
}
