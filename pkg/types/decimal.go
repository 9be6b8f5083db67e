package types

import (
	"math"

	"go-aggcore/pkg/customerrors"

	"github.com/cockroachdb/apd/v3"
	"github.com/pkg/errors"
)

func init() {
	typesMap[TYPE_DECIMAL] = newable{
		name:       "DECIMAL",
		numeric:    true,
		fractional: true,
		from: func(val DataType) (DataType, error) {
			switch v := val.(type) {
			case *DataTypeINTEGER:
				return &DataTypeDECIMAL{value: apd.New(v.value, 0)}, nil
			case *DataTypeFLOAT:
				if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
					return nil, errors.Wrap(customerrors.ErrTypeMismatch, "non-finite float")
				}
				d, err := new(apd.Decimal).SetFloat64(v.value)
				if err != nil {
					return nil, errors.Wrap(customerrors.ErrTypeMismatch, err.Error())
				}
				return &DataTypeDECIMAL{value: d}, nil
			case *DataTypeSTRING:
				return ParseDecimal(v.value)
			}
			return nil, customerrors.ErrTypeMismatch
		},
	}
}

type DataTypeDECIMAL struct {
	value *apd.Decimal
}

func NewDecimal(d *apd.Decimal) *DataTypeDECIMAL {
	return &DataTypeDECIMAL{value: new(apd.Decimal).Set(d)}
}

func ParseDecimal(s string) (*DataTypeDECIMAL, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return nil, errors.Wrapf(customerrors.ErrTypeMismatch, "invalid decimal '%s'", s)
	}
	if d.Form != apd.Finite {
		return nil, errors.Wrapf(customerrors.ErrTypeMismatch, "non-finite decimal '%s'", s)
	}
	return &DataTypeDECIMAL{value: d}, nil
}

func (t *DataTypeDECIMAL) MarshalJSON() ([]byte, error) {
	return []byte(t.value.Text('f')), nil
}

func (t *DataTypeDECIMAL) GetCode() TypeCode {
	return TYPE_DECIMAL
}

func (t *DataTypeDECIMAL) IsNumeric() bool {
	return true
}

// Value returns a copy, the receiver stays immutable.
func (t *DataTypeDECIMAL) Value() interface{} {
	return new(apd.Decimal).Set(t.value)
}

func (t *DataTypeDECIMAL) String() string {
	return t.value.Text('f')
}

func (t *DataTypeDECIMAL) compare(val DataType, mode *CompareMode) int {
	return t.value.Cmp(val.(*DataTypeDECIMAL).value)
}

func (t *DataTypeDECIMAL) key(mode *CompareMode, dst []byte) []byte {
	return numericKey(t, dst)
}

func (t *DataTypeDECIMAL) exact() (int, *apd.Decimal) {
	return rankFinite, t.value
}

func (t *DataTypeDECIMAL) add(val DataType) (DataType, error) {
	d := new(apd.Decimal)
	if _, err := DecimalCtx.Add(d, t.value, val.(*DataTypeDECIMAL).value); err != nil {
		return nil, errors.Wrap(err, "decimal addition")
	}
	return &DataTypeDECIMAL{value: d}, nil
}

// divide rounds to DecimalCtx precision and strips trailing zeros.
func (t *DataTypeDECIMAL) divide(val DataType) (DataType, error) {
	b := val.(*DataTypeDECIMAL).value
	if b.IsZero() {
		return nil, customerrors.ErrDivisionByZero
	}
	d := new(apd.Decimal)
	if _, err := DecimalCtx.Quo(d, t.value, b); err != nil {
		return nil, errors.Wrap(err, "decimal division")
	}
	d.Reduce(d)
	return &DataTypeDECIMAL{value: d}, nil
}
