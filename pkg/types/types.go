package types

import (
	"encoding/json"

	"go-aggcore/pkg/customerrors"

	"github.com/cockroachdb/apd/v3"
	"github.com/pkg/errors"
)

type TypeCode uint8

// Order of declaration is the widening order used by HigherOrder.
const (
	TYPE_NULL    TypeCode = iota // absence of a value, also "no declared type"
	TYPE_INTEGER                 // 64 bit signed integer
	TYPE_DECIMAL                 // arbitrary precision decimal
	TYPE_FLOAT                   // 64 bit floating point number
	TYPE_STRING                  // variable length string
)

type newable struct {
	name       string
	numeric    bool
	fractional bool
	from       func(val DataType) (DataType, error)
}

var typesMap = map[TypeCode]newable{}

// DataType is a single immutable scalar. The set of implementations is
// closed: every variant lives in this package.
type DataType interface {
	json.Marshaler

	GetCode() TypeCode
	IsNumeric() bool
	Value() interface{}
	String() string

	compare(val DataType, mode *CompareMode) int
	key(mode *CompareMode, dst []byte) []byte
}

// numeric is implemented by every variant that supports arithmetic.
// Both operands of add/divide always carry the receiver's TypeCode.
type numeric interface {
	DataType
	add(val DataType) (DataType, error)
	divide(val DataType) (DataType, error)
	exact() (rank int, d *apd.Decimal)
}

type DataRow map[string]DataType

func (c TypeCode) String() string {
	if t, ok := typesMap[c]; ok {
		return t.name
	}
	return "UNKNOWN"
}

func IsNumeric(code TypeCode) bool {
	return typesMap[code].numeric
}

// HasFraction reports whether values of the type can hold a non-integral
// number.
func HasFraction(code TypeCode) bool {
	return typesMap[code].fractional
}

func IsNull(val DataType) bool {
	return val == nil || val.GetCode() == TYPE_NULL
}

// HigherOrder returns the wider of two types.
func HigherOrder(a, b TypeCode) TypeCode {
	if a > b {
		return a
	}
	return b
}

// Convert widens (or narrows, when lossless) val to the target type.
func Convert(val DataType, code TypeCode) (DataType, error) {
	if IsNull(val) {
		return Null, nil
	}
	if val.GetCode() == code {
		return val, nil
	}
	t, ok := typesMap[code]
	if !ok {
		return nil, errors.Wrapf(customerrors.ErrUnsupportedType, "unknown type code %d", code)
	}
	res, err := t.from(val)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to convert %v '%s' to %v", val.GetCode(), val.String(), code)
	}
	return res, nil
}

// Compare orders a against b under mode. NULL sorts before everything,
// numerics of different subtypes are ordered by numeric value. Comparing a
// number with a string is a type mismatch.
func Compare(a, b DataType, mode *CompareMode) (int, error) {
	aNull, bNull := IsNull(a), IsNull(b)
	switch {
	case aNull && bNull:
		return 0, nil
	case aNull:
		return -1, nil
	case bNull:
		return 1, nil
	}

	if a.GetCode() == b.GetCode() {
		return a.compare(b, mode), nil
	}

	na, aok := a.(numeric)
	nb, bok := b.(numeric)
	if !aok || !bok {
		return 0, errors.Wrapf(customerrors.ErrTypeMismatch, "cannot compare %v with %v", a.GetCode(), b.GetCode())
	}
	return compareExact(na, nb), nil
}

// TotalCompare is Compare without the failure mode: values that cannot be
// compared are ordered by type code.
func TotalCompare(a, b DataType, mode *CompareMode) int {
	cmp, err := Compare(a, b, mode)
	if err == nil {
		return cmp
	}
	switch ac, bc := rankOf(a), rankOf(b); {
	case ac < bc:
		return -1
	case ac > bc:
		return 1
	}
	return 0
}

func rankOf(val DataType) TypeCode {
	if IsNull(val) {
		return TYPE_NULL
	}
	return val.GetCode()
}

func compareExact(a, b numeric) int {
	ar, ad := a.exact()
	br, bd := b.exact()
	switch {
	case ar < br:
		return -1
	case ar > br:
		return 1
	case ar != 0:
		return 0
	}
	return ad.Cmp(bd)
}

// Key returns a byte string identifying val under mode. Values comparing
// equal under mode produce identical keys.
func Key(val DataType, mode *CompareMode) []byte {
	if IsNull(val) {
		return Null.key(mode, nil)
	}
	return val.key(mode, nil)
}

// Add returns a+b computed in the higher order type of both operands.
// NULL operands yield NULL.
func Add(a, b DataType) (DataType, error) {
	na, nb, err := promote(a, b)
	if err != nil {
		return nil, err
	}
	if na == nil {
		return Null, nil
	}
	return na.add(nb)
}

// Divide returns a/b computed in the higher order type of both operands.
// NULL operands yield NULL, a zero divisor fails with ErrDivisionByZero.
func Divide(a, b DataType) (DataType, error) {
	na, nb, err := promote(a, b)
	if err != nil {
		return nil, err
	}
	if na == nil {
		return Null, nil
	}
	return na.divide(nb)
}

func promote(a, b DataType) (numeric, numeric, error) {
	if IsNull(a) || IsNull(b) {
		return nil, nil, nil
	}
	if !a.IsNumeric() || !b.IsNumeric() {
		return nil, nil, errors.Wrapf(customerrors.ErrTypeMismatch, "arithmetic on %v and %v", a.GetCode(), b.GetCode())
	}

	code := HigherOrder(a.GetCode(), b.GetCode())
	ca, err := Convert(a, code)
	if err != nil {
		return nil, nil, err
	}
	cb, err := Convert(b, code)
	if err != nil {
		return nil, nil, err
	}
	return ca.(numeric), cb.(numeric), nil
}
