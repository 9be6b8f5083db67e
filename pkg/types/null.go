package types

func init() {
	typesMap[TYPE_NULL] = newable{
		name: "NULL",
		from: func(val DataType) (DataType, error) {
			return Null, nil
		},
	}
}

// Null is the canonical "no value". It is returned for empty groups and
// for division by a zero count.
var Null DataType = DataTypeNULL{}

type DataTypeNULL struct{}

func (t DataTypeNULL) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

func (t DataTypeNULL) GetCode() TypeCode {
	return TYPE_NULL
}

func (t DataTypeNULL) IsNumeric() bool {
	return false
}

func (t DataTypeNULL) Value() interface{} {
	return nil
}

func (t DataTypeNULL) String() string {
	return "NULL"
}

func (t DataTypeNULL) compare(val DataType, mode *CompareMode) int {
	return 0
}

func (t DataTypeNULL) key(mode *CompareMode, dst []byte) []byte {
	return append(dst, byte(TYPE_NULL))
}
