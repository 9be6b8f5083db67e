package groupby

import (
	"context"

	"go-aggcore/pkg/aggregator"
	"go-aggcore/pkg/types"
	"go-aggcore/util/logger"
	"go-aggcore/util/stream"

	"github.com/google/btree"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const btreeDegree = 32

// GroupBy evaluates aggregations over rows grouped by key columns. Group
// keys are compared under the compare mode of the evaluation context, so
// with a case-insensitive mode "a" and "A" fall into one group.
type GroupBy struct {
	opts *Options
	log  *logrus.Entry
}

func New(opts *Options) (*GroupBy, error) {
	if len(opts.Aggregations) == 0 && len(opts.GroupBy) == 0 {
		return nil, errors.New("nothing to group or aggregate")
	}
	if opts.Context == nil {
		opts.Context = aggregator.NewEvalContext(types.Binary, 0)
	}

	seen := map[string]struct{}{}
	for _, col := range opts.GroupBy {
		seen[col] = struct{}{}
	}
	for _, ag := range opts.Aggregations {
		if _, err := aggregator.New(ag.Name, ag.Args...); err != nil {
			return nil, errors.Wrapf(err, "invalid aggregation '%s'", ag.Alias)
		}
		if _, ok := seen[ag.Alias]; ok {
			return nil, errors.Errorf("duplicate output column '%s'", ag.Alias)
		}
		seen[ag.Alias] = struct{}{}
	}

	return &GroupBy{
		opts: opts,
		log:  logger.For("groupby"),
	}, nil
}

// Run consumes in until it is closed and returns one row per group, in
// group key order. Without GROUP BY columns exactly one row is returned,
// even for empty input. When ctx is cancelled the partial states are
// dropped without being finalized.
func (g *GroupBy) Run(ctx context.Context, in stream.Reader[types.DataRow]) ([]types.DataRow, error) {
	tree := btree.New(btreeDegree)
	mode := g.opts.Context.Mode
	probe := &group{key: make([]types.DataType, len(g.opts.GroupBy)), mode: mode}

	rows := 0
	for {
		row, ok, err := in.PopContext(ctx)
		if err != nil {
			g.log.WithField("rows", rows).Debug("aborted, discarding groups")
			return nil, errors.Wrap(err, "group by aborted")
		}
		if !ok {
			break
		}
		rows++

		for i, col := range g.opts.GroupBy {
			probe.key[i] = valueOf(row, col)
		}
		var grp *group
		if item := tree.Get(probe); item != nil {
			grp = item.(*group)
		} else {
			grp, err = g.newGroup(probe.key)
			if err != nil {
				return nil, err
			}
			tree.ReplaceOrInsert(grp)
		}

		if err := g.accumulate(grp, row); err != nil {
			return nil, errors.Wrapf(err, "row %d", rows)
		}
	}

	if tree.Len() == 0 && len(g.opts.GroupBy) == 0 {
		grp, err := g.newGroup(nil)
		if err != nil {
			return nil, err
		}
		tree.ReplaceOrInsert(grp)
	}

	res := make([]types.DataRow, 0, tree.Len())
	var ferr error
	tree.Ascend(func(item btree.Item) bool {
		row, err := g.finalize(item.(*group))
		if err != nil {
			ferr = err
			return false
		}
		res = append(res, row)
		return true
	})
	if ferr != nil {
		return nil, ferr
	}

	g.log.WithFields(logrus.Fields{"rows": rows, "groups": len(res)}).Debug("group by done")
	return res, nil
}

func (g *GroupBy) newGroup(key []types.DataType) (*group, error) {
	grp := &group{
		key:    append([]types.DataType(nil), key...),
		mode:   g.opts.Context.Mode,
		states: make([]aggregator.Aggregator, len(g.opts.Aggregations)),
	}
	for i, ag := range g.opts.Aggregations {
		state, err := aggregator.New(ag.Name, ag.Args...)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create '%s'", ag.Alias)
		}
		grp.states[i] = state
	}
	return grp, nil
}

func (g *GroupBy) accumulate(grp *group, row types.DataRow) error {
	for i, ag := range g.opts.Aggregations {
		if err := grp.states[i].Add(g.opts.Context, ag.Type, ag.Distinct, valueOf(row, ag.Column)); err != nil {
			return errors.Wrapf(err, "failed to add value to '%s'", ag.Alias)
		}
	}
	return nil
}

func (g *GroupBy) finalize(grp *group) (types.DataRow, error) {
	row := make(types.DataRow, len(g.opts.GroupBy)+len(g.opts.Aggregations))
	for i, col := range g.opts.GroupBy {
		row[col] = grp.key[i]
	}
	for i, ag := range g.opts.Aggregations {
		val, err := grp.states[i].Value(g.opts.Context, ag.Type, ag.Distinct)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to finalize '%s'", ag.Alias)
		}
		row[ag.Alias] = val
	}
	return row, nil
}

func valueOf(row types.DataRow, col string) types.DataType {
	if col == "" {
		return types.Null
	}
	if val, ok := row[col]; ok && val != nil {
		return val
	}
	return types.Null
}
