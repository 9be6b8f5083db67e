package aggregator

import (
	"math"
	"testing"

	"go-aggcore/pkg/customerrors"
	"go-aggcore/pkg/types"

	"github.com/stretchr/testify/require"
)

func ints(vs ...int64) []types.DataType {
	res := make([]types.DataType, len(vs))
	for i, v := range vs {
		res[i] = types.NewInteger(v)
	}
	return res
}

func dec(t *testing.T, s string) types.DataType {
	d, err := types.ParseDecimal(s)
	require.NoError(t, err)
	return d
}

func strs(vs ...string) []types.DataType {
	res := make([]types.DataType, len(vs))
	for i, v := range vs {
		res[i] = types.NewString(v)
	}
	return res
}

func aggregate(t *testing.T, ctx *EvalContext, name AggregatorType, distinct bool, values []types.DataType, args ...types.DataType) types.DataType {
	ag, err := New(name, args...)
	require.NoError(t, err)
	for _, v := range values {
		require.NoError(t, ag.Add(ctx, types.TYPE_NULL, distinct, v))
	}
	res, err := ag.Value(ctx, types.TYPE_NULL, distinct)
	require.NoError(t, err)
	return res
}

func TestNew(t *testing.T) {
	_, err := New("MODE")
	require.ErrorIs(t, err, customerrors.ErrUnknownAggregate)

	_, err = New(SUM, types.NewInteger(1))
	require.Error(t, err)

	_, err = New(PERCENTILE_DISC)
	require.Error(t, err)

	_, err = New(PERCENTILE_DISC, dec(t, "1.5"))
	require.Error(t, err)

	_, err = New(PERCENTILE_DISC, types.NewString("half"))
	require.ErrorIs(t, err, customerrors.ErrTypeMismatch)
}

func TestParseAggregatorType(t *testing.T) {
	name, err := ParseAggregatorType(" median ")
	require.NoError(t, err)
	require.Equal(t, MEDIAN, name)

	name, err = ParseAggregatorType("stddev")
	require.NoError(t, err)
	require.Equal(t, STDDEV_SAMP, name)

	_, err = ParseAggregatorType("mode")
	require.ErrorIs(t, err, customerrors.ErrUnknownAggregate)
}

func TestEmptyPopulation(t *testing.T) {
	ctx := NewEvalContext(types.Binary, 0)
	for _, name := range []AggregatorType{SUM, MAX, MIN, AVG, MEDIAN, ANY_VALUE, VAR_POP, VAR_SAMP, STDDEV_POP, STDDEV_SAMP} {
		for _, distinct := range []bool{false, true} {
			res := aggregate(t, ctx, name, distinct, nil)
			require.True(t, types.IsNull(res), "%s distinct=%v", name, distinct)
		}
	}

	res := aggregate(t, ctx, PERCENTILE_DISC, false, nil, dec(t, "0.5"))
	require.True(t, types.IsNull(res))

	res = aggregate(t, ctx, COUNT, false, nil)
	require.Equal(t, int64(0), res.Value())
	res = aggregate(t, ctx, COUNT_ALL, false, nil)
	require.Equal(t, int64(0), res.Value())
}

func TestCount(t *testing.T) {
	ctx := NewEvalContext(types.Binary, 0)
	values := []types.DataType{types.NewInteger(1), types.Null, types.NewInteger(1), types.NewInteger(2), nil}

	require.Equal(t, int64(3), aggregate(t, ctx, COUNT, false, values).Value())
	require.Equal(t, int64(2), aggregate(t, ctx, COUNT, true, values).Value())
	require.Equal(t, int64(5), aggregate(t, ctx, COUNT_ALL, false, values).Value())
}

func TestSum(t *testing.T) {
	ctx := NewEvalContext(types.Binary, 0)

	res := aggregate(t, ctx, SUM, false, ints(1, 2, 3, 3))
	require.Equal(t, types.TYPE_INTEGER, res.GetCode())
	require.Equal(t, "9", res.String())

	res = aggregate(t, ctx, SUM, true, ints(1, 2, 3, 3))
	require.Equal(t, "6", res.String())

	res = aggregate(t, ctx, SUM, false, []types.DataType{types.NewInteger(1), dec(t, "2.5")})
	require.Equal(t, types.TYPE_DECIMAL, res.GetCode())
	require.Equal(t, "3.5", res.String())

	res = aggregate(t, ctx, SUM, false, ints(math.MaxInt64, math.MaxInt64))
	require.Equal(t, types.TYPE_DECIMAL, res.GetCode())
	require.Equal(t, "18446744073709551614", res.String())

	ag, err := New(SUM)
	require.NoError(t, err)
	err = ag.Add(ctx, types.TYPE_NULL, false, types.NewString("x"))
	require.ErrorIs(t, err, customerrors.ErrTypeMismatch)
}

func TestSumDeclaredType(t *testing.T) {
	ctx := NewEvalContext(types.Binary, 0)
	ag, err := New(SUM)
	require.NoError(t, err)

	require.NoError(t, ag.Add(ctx, types.TYPE_DECIMAL, false, types.NewInteger(1)))
	require.NoError(t, ag.Add(ctx, types.TYPE_DECIMAL, false, types.NewString("2.25")))
	res, err := ag.Value(ctx, types.TYPE_DECIMAL, false)
	require.NoError(t, err)
	require.Equal(t, types.TYPE_DECIMAL, res.GetCode())
	require.Equal(t, "3.25", res.String())

	ag, err = New(SUM)
	require.NoError(t, err)
	err = ag.Add(ctx, types.TYPE_INTEGER, false, types.NewFloat(1.5))
	require.ErrorIs(t, err, customerrors.ErrTypeMismatch)
}

func TestMinMax(t *testing.T) {
	ctx := NewEvalContext(types.Binary, 0)
	values := []types.DataType{types.NewInteger(3), dec(t, "2.5"), types.NewFloat(10.25), types.Null, types.NewInteger(-1)}

	require.Equal(t, "-1", aggregate(t, ctx, MIN, false, values).String())
	require.Equal(t, "10.25", aggregate(t, ctx, MAX, false, values).String())
	require.Equal(t, "-1", aggregate(t, ctx, MIN, true, values).String())
	require.Equal(t, "10.25", aggregate(t, ctx, MAX, true, values).String())
}

func TestMinMaxCollation(t *testing.T) {
	values := strs("apple", "Banana", "cherry", "Apple")

	binary := NewEvalContext(types.Binary, 0)
	require.Equal(t, "Apple", aggregate(t, binary, MIN, false, values).String())
	require.Equal(t, "cherry", aggregate(t, binary, MAX, false, values).String())

	mode, err := types.NewCompareMode("general_ci")
	require.NoError(t, err)
	ci := NewEvalContext(mode, 0)
	// "apple" and "Apple" are equal, the first one seen wins
	require.Equal(t, "apple", aggregate(t, ci, MIN, false, values).String())
	require.Equal(t, "cherry", aggregate(t, ci, MAX, false, values).String())
	require.Equal(t, int64(3), aggregate(t, ci, COUNT, true, values).Value())
}

func TestMinMaxMismatch(t *testing.T) {
	ctx := NewEvalContext(types.Binary, 0)
	for _, distinct := range []bool{false, true} {
		ag, err := New(MAX)
		require.NoError(t, err)
		require.NoError(t, ag.Add(ctx, types.TYPE_NULL, distinct, types.NewInteger(1)))
		err = ag.Add(ctx, types.TYPE_NULL, distinct, types.NewString("a"))
		require.ErrorIs(t, err, customerrors.ErrTypeMismatch)
	}
}

func TestAvg(t *testing.T) {
	ctx := NewEvalContext(types.Binary, 0)

	res := aggregate(t, ctx, AVG, false, ints(1, 2))
	require.Equal(t, types.TYPE_DECIMAL, res.GetCode())
	require.Equal(t, "1.5", res.String())

	res = aggregate(t, ctx, AVG, true, ints(2, 2, 2, 4))
	require.Equal(t, "3", res.String())

	res = aggregate(t, ctx, AVG, false, []types.DataType{types.NewFloat(1), types.NewInteger(2)})
	require.Equal(t, types.TYPE_FLOAT, res.GetCode())
	require.Equal(t, 1.5, res.Value())
}

func TestAnyValue(t *testing.T) {
	ctx := NewEvalContext(types.Binary, 0)
	values := []types.DataType{types.Null, types.NewString("x"), types.NewInteger(2)}
	require.Equal(t, "x", aggregate(t, ctx, ANY_VALUE, false, values).String())
	require.Equal(t, "x", aggregate(t, ctx, ANY_VALUE, true, values).String())
}

func TestVariance(t *testing.T) {
	ctx := NewEvalContext(types.Binary, 0)
	values := ints(2, 4, 4, 4, 5, 5, 7, 9)

	require.InDelta(t, 4.0, aggregate(t, ctx, VAR_POP, false, values).Value(), 1e-12)
	require.InDelta(t, 2.0, aggregate(t, ctx, STDDEV_POP, false, values).Value(), 1e-12)
	require.InDelta(t, 32.0/7, aggregate(t, ctx, VAR_SAMP, false, values).Value(), 1e-12)
	require.InDelta(t, math.Sqrt(32.0/7), aggregate(t, ctx, STDDEV_SAMP, false, values).Value(), 1e-12)

	// distinct population is {2, 4, 5, 7, 9}
	require.InDelta(t, 5.84, aggregate(t, ctx, VAR_POP, true, values).Value(), 1e-12)

	require.True(t, types.IsNull(aggregate(t, ctx, VAR_SAMP, false, ints(3))))
	require.Equal(t, 0.0, aggregate(t, ctx, VAR_POP, false, ints(3)).Value())
}

func TestPercentileDisc(t *testing.T) {
	ctx := NewEvalContext(types.Binary, 0)
	values := ints(7, 3, 10, 1, 4, 2, 9, 5, 8, 6)

	cases := []struct {
		fraction string
		want     string
	}{
		{"0", "1"},
		{"0.05", "1"},
		{"0.1", "1"},
		{"0.11", "2"},
		{"0.5", "5"},
		{"0.9", "9"},
		{"1", "10"},
	}
	for _, c := range cases {
		res := aggregate(t, ctx, PERCENTILE_DISC, false, values, dec(t, c.fraction))
		require.Equal(t, c.want, res.String(), "fraction %s", c.fraction)
	}

	res := aggregate(t, ctx, PERCENTILE_DISC, true, ints(1, 1, 1, 2, 3), types.NewFloat(0.5))
	require.Equal(t, "2", res.String())

	mode, err := types.NewCompareMode("general_ci")
	require.NoError(t, err)
	res = aggregate(t, NewEvalContext(mode, 0), PERCENTILE_DISC, false, strs("b", "C", "a"), dec(t, "1"))
	require.Equal(t, "C", res.String())
}

func TestInvalidUsage(t *testing.T) {
	ctx := NewEvalContext(types.Binary, 0)
	for _, name := range []AggregatorType{COUNT, COUNT_ALL, SUM, MAX, MIN, AVG, MEDIAN, ANY_VALUE, VAR_POP} {
		ag, err := New(name)
		require.NoError(t, err)
		require.NoError(t, ag.Add(ctx, types.TYPE_NULL, false, types.NewInteger(1)))
		_, err = ag.Value(ctx, types.TYPE_NULL, false)
		require.NoError(t, err)

		err = ag.Add(ctx, types.TYPE_NULL, false, types.NewInteger(2))
		require.ErrorIs(t, err, customerrors.ErrInvalidUsage, "%s", name)
	}
}

func TestIdempotentValue(t *testing.T) {
	ctx := NewEvalContext(types.Binary, 0)
	for _, name := range []AggregatorType{COUNT, SUM, MAX, MIN, AVG, MEDIAN, VAR_SAMP} {
		for _, distinct := range []bool{false, true} {
			ag, err := New(name)
			require.NoError(t, err)
			for _, v := range ints(4, 1, 4, 9, 1, 6) {
				require.NoError(t, ag.Add(ctx, types.TYPE_NULL, distinct, v))
			}

			first, err := ag.Value(ctx, types.TYPE_NULL, distinct)
			require.NoError(t, err)
			second, err := ag.Value(ctx, types.TYPE_NULL, distinct)
			require.NoError(t, err)
			require.Equal(t, first.String(), second.String(), "%s distinct=%v", name, distinct)
			require.Equal(t, first.GetCode(), second.GetCode())
		}
	}
}

func TestNilContext(t *testing.T) {
	ag, err := New(MEDIAN)
	require.NoError(t, err)
	require.NoError(t, ag.Add(nil, types.TYPE_NULL, true, types.NewInteger(1)))
	require.NoError(t, ag.Add(nil, types.TYPE_NULL, true, types.NewInteger(3)))
	res, err := ag.Value(nil, types.TYPE_NULL, true)
	require.NoError(t, err)
	require.Equal(t, "2", res.String())
}
