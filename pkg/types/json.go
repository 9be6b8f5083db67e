package types

import (
	"encoding/json"
	"math"

	"go-aggcore/pkg/customerrors"

	"github.com/pkg/errors"
)

// ParseJSONValue maps a decoded JSON token to a value. Numbers decoded with
// json.Decoder.UseNumber keep their exact text: integral ones become
// INTEGER, the rest DECIMAL. Plain float64 numbers become INTEGER when
// integral and FLOAT otherwise.
func ParseJSONValue(item interface{}) (DataType, error) {
	switch v := item.(type) {
	case nil:
		return Null, nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return NewInteger(i), nil
		}
		d, err := ParseDecimal(v.String())
		if err != nil {
			return nil, err
		}
		return d, nil
	case float64:
		if v == math.Trunc(v) && v >= float64(math.MinInt64) && v < -float64(math.MinInt64) {
			return NewInteger(int64(v)), nil
		}
		return NewFloat(v), nil
	case int:
		return NewInteger(int64(v)), nil
	case int64:
		return NewInteger(v), nil
	case string:
		return NewString(v), nil
	case bool:
		if v {
			return NewInteger(1), nil
		}
		return NewInteger(0), nil
	}
	return nil, errors.Wrapf(customerrors.ErrUnsupportedType, "invalid item type %T", item)
}

// ParseJSONRow converts a decoded JSON object into a row.
func ParseJSONRow(obj map[string]interface{}) (DataRow, error) {
	row := make(DataRow, len(obj))
	for col, item := range obj {
		val, err := ParseJSONValue(item)
		if err != nil {
			return nil, errors.Wrapf(err, "column '%s'", col)
		}
		row[col] = val
	}
	return row, nil
}
