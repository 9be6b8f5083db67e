package aggregator

import (
	"strings"

	"go-aggcore/pkg/customerrors"
	"go-aggcore/pkg/types"
	"go-aggcore/util/logger"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type AggregatorType string

const (
	COUNT           AggregatorType = "COUNT"
	COUNT_ALL       AggregatorType = "COUNT_ALL"
	SUM             AggregatorType = "SUM"
	MAX             AggregatorType = "MAX"
	MIN             AggregatorType = "MIN"
	AVG             AggregatorType = "AVG"
	MEDIAN          AggregatorType = "MEDIAN"
	PERCENTILE_DISC AggregatorType = "PERCENTILE_DISC"
	ANY_VALUE       AggregatorType = "ANY_VALUE"
	VAR_POP         AggregatorType = "VAR_POP"
	VAR_SAMP        AggregatorType = "VAR_SAMP"
	STDDEV_POP      AggregatorType = "STDDEV_POP"
	STDDEV_SAMP     AggregatorType = "STDDEV_SAMP"
)

var aliases = map[string]AggregatorType{
	"STDDEV":   STDDEV_SAMP,
	"VARIANCE": VAR_SAMP,
	"ANY":      ANY_VALUE,
}

// Aggregator accumulates the values of one aggregate expression over one
// group. An instance is owned by a single evaluation context and must not
// be used concurrently.
type Aggregator interface {
	// Add records one input. With distinct set the value only enters the
	// distinct set, otherwise it is accumulated unconditionally.
	Add(ctx *EvalContext, declared types.TypeCode, distinct bool, value types.DataType) error

	// Value finalizes the state and returns the aggregate result, Null for
	// an empty population. It may be called again and returns the same
	// result; Add afterwards fails with ErrInvalidUsage.
	Value(ctx *EvalContext, declared types.TypeCode, distinct bool) (types.DataType, error)
}

// EvalContext carries what the surrounding query supplies to every
// aggregate: the active compare mode and the population limit.
type EvalContext struct {
	Mode *types.CompareMode
	// MaxValues caps each accumulation collection and each distinct set.
	// Zero means unlimited.
	MaxValues int
	Log       *logrus.Entry
}

func NewEvalContext(mode *types.CompareMode, maxValues int) *EvalContext {
	return &EvalContext{
		Mode:      mode,
		MaxValues: maxValues,
		Log:       logger.For("aggregate"),
	}
}

func (ctx *EvalContext) mode() *types.CompareMode {
	if ctx == nil {
		return types.Binary
	}
	return ctx.Mode
}

func (ctx *EvalContext) limit() int {
	if ctx == nil || ctx.MaxValues < 0 {
		return 0
	}
	return ctx.MaxValues
}

func (ctx *EvalContext) log() *logrus.Entry {
	if ctx == nil || ctx.Log == nil {
		return logger.For("aggregate")
	}
	return ctx.Log
}

func ParseAggregatorType(name string) (AggregatorType, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if t, ok := aliases[name]; ok {
		return t, nil
	}
	switch t := AggregatorType(name); t {
	case COUNT, COUNT_ALL, SUM, MAX, MIN, AVG, MEDIAN, PERCENTILE_DISC,
		ANY_VALUE, VAR_POP, VAR_SAMP, STDDEV_POP, STDDEV_SAMP:
		return t, nil
	}
	return "", errors.Wrapf(customerrors.ErrUnknownAggregate, "'%s'", name)
}

// New creates the state for one aggregate over one group. args holds the
// constant arguments of the aggregate, such as the fraction of
// PERCENTILE_DISC.
func New(name AggregatorType, args ...types.DataType) (Aggregator, error) {
	if name != PERCENTILE_DISC && len(args) != 0 {
		return nil, errors.Errorf("%s takes no constant arguments, got %d", name, len(args))
	}

	switch name {
	case COUNT:
		return &AggregationCOUNT{}, nil
	case COUNT_ALL:
		return &AggregationCOUNT{All: true}, nil
	case SUM:
		return &AggregationSUM{}, nil
	case MAX:
		return &AggregationMAX{}, nil
	case MIN:
		return &AggregationMIN{}, nil
	case AVG:
		return &AggregationAVG{}, nil
	case MEDIAN:
		return &AggregationMEDIAN{}, nil
	case PERCENTILE_DISC:
		if len(args) != 1 {
			return nil, errors.Errorf("%s takes exactly one fraction argument, got %d", name, len(args))
		}
		p, err := newPercentileDisc(args[0])
		if err != nil {
			return nil, err
		}
		return p, nil
	case ANY_VALUE:
		return &AggregationANYVALUE{}, nil
	case VAR_POP, VAR_SAMP, STDDEV_POP, STDDEV_SAMP:
		return &AggregationVARIANCE{Kind: name}, nil
	}
	return nil, errors.Wrapf(customerrors.ErrUnknownAggregate, "'%s'", name)
}
