package groupby

import (
	"go-aggcore/pkg/aggregator"
	"go-aggcore/pkg/types"
)

// Aggregation is one aggregate expression of the select list.
type Aggregation struct {
	Name     aggregator.AggregatorType
	Column   string // empty for COUNT(*)
	Alias    string
	Distinct bool
	Type     types.TypeCode // declared input type, TYPE_NULL for none
	Args     []types.DataType
}

type Options struct {
	GroupBy      []string
	Aggregations []*Aggregation
	Context      *aggregator.EvalContext
}
