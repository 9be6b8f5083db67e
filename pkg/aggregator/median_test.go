package aggregator

import (
	"math/rand"
	"testing"

	"go-aggcore/pkg/customerrors"
	"go-aggcore/pkg/types"

	"github.com/stretchr/testify/require"
)

func TestMedian(t *testing.T) {
	ctx := NewEvalContext(types.Binary, 0)

	cases := []struct {
		name     string
		distinct bool
		values   []types.DataType
		want     string
		code     types.TypeCode
	}{
		{"odd", false, ints(3, 1, 2), "2", types.TYPE_INTEGER},
		{"even", false, ints(4, 1, 3, 2), "2.5", types.TYPE_DECIMAL},
		{"distinct", true, ints(5, 5, 1, 1, 3), "3", types.TYPE_INTEGER},
		{"empty", false, nil, "NULL", types.TYPE_NULL},
		{"empty distinct", true, nil, "NULL", types.TYPE_NULL},
		{"single", false, ints(7), "7", types.TYPE_INTEGER},
		{"even integral", false, ints(2, 4), "3", types.TYPE_DECIMAL},
		{"duplicates kept", false, ints(1, 1, 1, 5), "1", types.TYPE_DECIMAL},
		{"negative", false, ints(-3, -4), "-3.5", types.TYPE_DECIMAL},
		{"nulls ignored", false, []types.DataType{types.Null, types.NewInteger(3), nil}, "3", types.TYPE_INTEGER},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := aggregate(t, ctx, MEDIAN, c.distinct, c.values)
			require.Equal(t, c.want, res.String())
			require.Equal(t, c.code, res.GetCode())
		})
	}
}

func TestMedianMixedNumeric(t *testing.T) {
	ctx := NewEvalContext(types.Binary, 0)

	values := []types.DataType{types.NewInteger(3), types.NewFloat(2.5), dec(t, "2.75")}
	res := aggregate(t, ctx, MEDIAN, false, values)
	require.Equal(t, types.TYPE_DECIMAL, res.GetCode())
	require.Equal(t, "2.75", res.String())

	// middle pair is DECIMAL 1.5 and FLOAT 2.5, summed as FLOAT
	values = []types.DataType{dec(t, "1.5"), types.NewInteger(1), types.NewFloat(2.5), types.NewInteger(10)}
	res = aggregate(t, ctx, MEDIAN, false, values)
	require.Equal(t, types.TYPE_FLOAT, res.GetCode())
	require.Equal(t, 2.0, res.Value())

	// fractional inputs are accepted as they are
	values = []types.DataType{dec(t, "0.5"), dec(t, "0.25"), types.NewFloat(0.75)}
	res = aggregate(t, ctx, MEDIAN, false, values)
	require.Equal(t, "0.5", res.String())
}

func TestMedianDeclaredType(t *testing.T) {
	ctx := NewEvalContext(types.Binary, 0)

	ag, err := New(MEDIAN)
	require.NoError(t, err)
	require.NoError(t, ag.Add(ctx, types.TYPE_FLOAT, false, types.NewInteger(1)))
	require.NoError(t, ag.Add(ctx, types.TYPE_FLOAT, false, types.NewInteger(2)))
	res, err := ag.Value(ctx, types.TYPE_FLOAT, false)
	require.NoError(t, err)
	require.Equal(t, types.TYPE_FLOAT, res.GetCode())
	require.Equal(t, 1.5, res.Value())

	// only an integer declaration narrows
	ag, err = New(MEDIAN)
	require.NoError(t, err)
	err = ag.Add(ctx, types.TYPE_INTEGER, false, dec(t, "1.5"))
	require.ErrorIs(t, err, customerrors.ErrTypeMismatch)
}

func TestMedianTypeMismatch(t *testing.T) {
	ctx := NewEvalContext(types.Binary, 0)
	for _, distinct := range []bool{false, true} {
		ag, err := New(MEDIAN)
		require.NoError(t, err)
		require.NoError(t, ag.Add(ctx, types.TYPE_NULL, distinct, types.NewInteger(1)))

		err = ag.Add(ctx, types.TYPE_NULL, distinct, types.NewString("1"))
		require.ErrorIs(t, err, customerrors.ErrTypeMismatch)
	}
}

func TestMedianIdempotent(t *testing.T) {
	ctx := NewEvalContext(types.Binary, 0)
	for _, distinct := range []bool{false, true} {
		ag, err := New(MEDIAN)
		require.NoError(t, err)
		for _, v := range ints(8, 3, 3, 5, 1, 8) {
			require.NoError(t, ag.Add(ctx, types.TYPE_NULL, distinct, v))
		}

		first, err := ag.Value(ctx, types.TYPE_NULL, distinct)
		require.NoError(t, err)
		second, err := ag.Value(ctx, types.TYPE_NULL, distinct)
		require.NoError(t, err)
		require.Equal(t, first.String(), second.String())
		require.Equal(t, first.GetCode(), second.GetCode())
		require.Equal(t, 4+2*btoi(!distinct), ag.(*AggregationMEDIAN).Len())
	}
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}

func TestMedianDistinctReplay(t *testing.T) {
	ctx := NewEvalContext(types.Binary, 0)
	r := rand.New(rand.NewSource(7))

	for round := 0; round < 50; round++ {
		population := make([]types.DataType, r.Intn(40))
		for i := range population {
			switch r.Intn(3) {
			case 0:
				population[i] = types.NewInteger(int64(r.Intn(10)))
			case 1:
				population[i] = types.NewFloat(float64(r.Intn(20)) / 2)
			default:
				population[i] = dec(t, []string{"1.0", "2.50", "3", "4.25"}[r.Intn(4)])
			}
		}

		set := NewDistinctSet(ctx.Mode, 0)
		for _, v := range population {
			_, err := set.Insert(v)
			require.NoError(t, err)
		}

		distinct := aggregate(t, ctx, MEDIAN, true, population)
		plain := aggregate(t, ctx, MEDIAN, false, set.Values())
		cmp, err := types.Compare(distinct, plain, ctx.Mode)
		require.NoError(t, err)
		require.Zero(t, cmp, "round %d: %s != %s", round, distinct, plain)
	}
}

func TestMedianOrderInsensitive(t *testing.T) {
	ctx := NewEvalContext(types.Binary, 0)
	r := rand.New(rand.NewSource(42))
	values := []types.DataType{
		types.NewInteger(5), types.NewInteger(1), dec(t, "4.5"), types.NewInteger(2),
		types.NewFloat(3), types.NewInteger(2), dec(t, "-1"), types.NewInteger(9),
	}

	for _, distinct := range []bool{false, true} {
		want := aggregate(t, ctx, MEDIAN, distinct, values)
		for i := 0; i < 100; i++ {
			shuffled := append([]types.DataType(nil), values...)
			r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

			got := aggregate(t, ctx, MEDIAN, distinct, shuffled)
			cmp, err := types.Compare(want, got, ctx.Mode)
			require.NoError(t, err)
			require.Zero(t, cmp, "%s != %s", want, got)
		}
	}
}

func TestMedianLarge(t *testing.T) {
	ctx := NewEvalContext(types.Binary, 0)

	for _, n := range []int64{100001, 100000} {
		values := make([]types.DataType, n)
		for i := range values {
			values[i] = types.NewInteger(n - 1 - int64(i))
		}
		res := aggregate(t, ctx, MEDIAN, false, values)
		if n%2 == 1 {
			require.Equal(t, "50000", res.String())
		} else {
			require.Equal(t, "49999.5", res.String())
		}
	}
}

func TestMedianResourceExhausted(t *testing.T) {
	ctx := NewEvalContext(types.Binary, 3)

	ag, err := New(MEDIAN)
	require.NoError(t, err)
	for _, v := range ints(1, 2, 3) {
		require.NoError(t, ag.Add(ctx, types.TYPE_NULL, false, v))
	}
	err = ag.Add(ctx, types.TYPE_NULL, false, types.NewInteger(4))
	require.ErrorIs(t, err, customerrors.ErrResourceExhausted)

	ag, err = New(MEDIAN)
	require.NoError(t, err)
	for _, v := range ints(1, 2, 3, 3, 2, 1) {
		require.NoError(t, ag.Add(ctx, types.TYPE_NULL, true, v))
	}
	err = ag.Add(ctx, types.TYPE_NULL, true, types.NewInteger(4))
	require.ErrorIs(t, err, customerrors.ErrResourceExhausted)

	res, err := ag.Value(ctx, types.TYPE_NULL, true)
	require.NoError(t, err)
	require.Equal(t, "2", res.String())
}
