package main

import (
	"regexp"
	"strings"

	"go-aggcore/pkg/aggregator"
	"go-aggcore/pkg/engine/groupby"
	"go-aggcore/pkg/types"

	"github.com/pkg/errors"
)

// NAME ( [DISTINCT] [fraction,] column | * ) [AS alias]
var aggExpr = regexp.MustCompile(`(?i)^\s*(\w+)\s*\(\s*(DISTINCT\s+)?([^)]*?)\s*\)\s*(?:AS\s+(\w+))?\s*$`)

func parseAggregation(expr string) (*groupby.Aggregation, error) {
	m := aggExpr.FindStringSubmatch(expr)
	if m == nil {
		return nil, errors.Errorf("invalid aggregate expression '%s'", expr)
	}

	name, err := aggregator.ParseAggregatorType(m[1])
	if err != nil {
		return nil, err
	}
	ag := &groupby.Aggregation{
		Name:     name,
		Distinct: m[2] != "",
		Alias:    m[4],
	}

	argList := strings.Split(m[3], ",")
	for i := range argList {
		argList[i] = strings.TrimSpace(argList[i])
	}
	switch {
	case len(argList) == 2:
		fraction, err := types.ParseDecimal(argList[0])
		if err != nil {
			return nil, errors.Wrapf(err, "invalid argument in '%s'", expr)
		}
		ag.Args = []types.DataType{fraction}
		ag.Column = argList[1]
	case len(argList) == 1:
		ag.Column = argList[0]
	default:
		return nil, errors.Errorf("too many arguments in '%s'", expr)
	}

	if ag.Column == "*" {
		if name != aggregator.COUNT || ag.Distinct {
			return nil, errors.Errorf("'*' is only valid in COUNT(*)")
		}
		ag.Name = aggregator.COUNT_ALL
		ag.Column = ""
	} else if ag.Column == "" {
		return nil, errors.Errorf("missing column in '%s'", expr)
	}

	if ag.Alias == "" {
		ag.Alias = strings.ToLower(strings.TrimSpace(expr))
	}
	return ag, nil
}
