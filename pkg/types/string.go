package types

import (
	"encoding/json"
)

func init() {
	typesMap[TYPE_STRING] = newable{
		name: "STRING",
		from: func(val DataType) (DataType, error) {
			return NewString(val.String()), nil
		},
	}
}

const stringKeyTag = 0x20

type DataTypeSTRING struct {
	value string
}

func NewString(v string) *DataTypeSTRING {
	return &DataTypeSTRING{value: v}
}

func (t *DataTypeSTRING) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.value)
}

func (t *DataTypeSTRING) GetCode() TypeCode {
	return TYPE_STRING
}

func (t *DataTypeSTRING) IsNumeric() bool {
	return false
}

func (t *DataTypeSTRING) Value() interface{} {
	return t.value
}

func (t *DataTypeSTRING) String() string {
	return t.value
}

func (t *DataTypeSTRING) compare(val DataType, mode *CompareMode) int {
	return mode.compareStrings(t.value, val.(*DataTypeSTRING).value)
}

func (t *DataTypeSTRING) key(mode *CompareMode, dst []byte) []byte {
	return mode.appendKey(append(dst, stringKeyTag), t.value)
}
