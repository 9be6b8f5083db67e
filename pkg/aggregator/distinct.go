package aggregator

import (
	"bytes"
	"slices"

	"go-aggcore/pkg/customerrors"
	"go-aggcore/pkg/types"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
)

// DistinctSet keeps one value per equality class of the compare mode. The
// first value inserted for a class is the one retained.
type DistinctSet struct {
	mode    *types.CompareMode
	limit   int
	buckets map[uint64][]int
	keys    [][]byte
	values  []types.DataType
}

// NewDistinctSet creates an empty set. A positive limit bounds the number
// of values it may hold.
func NewDistinctSet(mode *types.CompareMode, limit int) *DistinctSet {
	return &DistinctSet{
		mode:    mode,
		limit:   limit,
		buckets: map[uint64][]int{},
	}
}

// Insert adds val unless an equal value is present and reports whether it
// was added.
func (s *DistinctSet) Insert(val types.DataType) (bool, error) {
	key := types.Key(val, s.mode)
	h := xxhash.Sum64(key)
	if s.find(h, key) >= 0 {
		return false, nil
	}
	if s.limit > 0 && len(s.values) >= s.limit {
		return false, errors.Wrapf(customerrors.ErrResourceExhausted, "distinct set limit of %d values reached", s.limit)
	}

	s.buckets[h] = append(s.buckets[h], len(s.values))
	s.keys = append(s.keys, key)
	s.values = append(s.values, val)
	return true, nil
}

func (s *DistinctSet) Contains(val types.DataType) bool {
	key := types.Key(val, s.mode)
	return s.find(xxhash.Sum64(key), key) >= 0
}

func (s *DistinctSet) find(h uint64, key []byte) int {
	for _, i := range s.buckets[h] {
		if bytes.Equal(s.keys[i], key) {
			return i
		}
	}
	return -1
}

func (s *DistinctSet) Len() int {
	return len(s.values)
}

// Values returns the retained values in insertion order.
func (s *DistinctSet) Values() []types.DataType {
	return slices.Clone(s.values)
}
