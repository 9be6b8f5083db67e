package groupby

import (
	"go-aggcore/pkg/aggregator"
	"go-aggcore/pkg/types"

	"github.com/google/btree"
)

// group holds the states of every aggregation for one GROUP BY key.
type group struct {
	key    []types.DataType
	mode   *types.CompareMode
	states []aggregator.Aggregator
}

func (g *group) Less(than btree.Item) bool {
	other := than.(*group)
	for i := range g.key {
		if cmp := types.TotalCompare(g.key[i], other.key[i], g.mode); cmp != 0 {
			return cmp < 0
		}
	}
	return false
}
