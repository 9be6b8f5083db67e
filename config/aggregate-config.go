package config

import (
	"go-aggcore/pkg/aggregator"
	"go-aggcore/pkg/types"
	"go-aggcore/util/logger"

	"github.com/pkg/errors"
)

type AggregateConfig struct {
	Collation string
	// MaxValues caps every accumulation collection and distinct set,
	// 0 means unlimited.
	MaxValues int
	LogLevel  string
}

func NewAggregateConfig() *AggregateConfig {
	return &AggregateConfig{
		Collation: types.BinaryMode,
		MaxValues: 0,
		LogLevel:  "info",
	}
}

// EvalContext applies the log level and builds the context handed to every
// aggregate.
func (c *AggregateConfig) EvalContext() (*aggregator.EvalContext, error) {
	if c.MaxValues < 0 {
		return nil, errors.Errorf("max values must not be negative, got %d", c.MaxValues)
	}
	if err := logger.SetLevel(c.LogLevel); err != nil {
		return nil, err
	}
	mode, err := types.NewCompareMode(c.Collation)
	if err != nil {
		return nil, errors.Wrap(err, "invalid collation")
	}
	return aggregator.NewEvalContext(mode, c.MaxValues), nil
}
