package types

import (
	"github.com/cockroachdb/apd/v3"
)

// DecimalCtx is the context every DECIMAL operation runs in: 34 significant
// digits, the precision of an IEEE 754 decimal128.
var DecimalCtx = func() *apd.Context {
	c := apd.BaseContext.WithPrecision(34)
	c.Rounding = apd.RoundHalfEven
	return c
}()

// Ranks returned by numeric.exact for values without a finite decimal form.
// The order matches cmp.Compare on float64: NaN first.
const (
	rankNaN    = -2
	rankNegInf = -1
	rankFinite = 0
	rankPosInf = 1
)

const numericKeyTag = 0x10

// numericKey is shared by every numeric variant so that 1, 1.0 and 1e0
// deduplicate to the same entry.
func numericKey(n numeric, dst []byte) []byte {
	rank, d := n.exact()
	dst = append(dst, numericKeyTag, byte(rank-rankNaN))
	if rank != rankFinite {
		return dst
	}
	if d.IsZero() {
		return append(dst, '0')
	}
	var r apd.Decimal
	r.Reduce(d)
	return append(dst, r.String()...)
}

func int64FromDecimal(d *apd.Decimal) (int64, bool) {
	if d.Form != apd.Finite {
		return 0, false
	}
	var r apd.Decimal
	r.Reduce(d)
	if r.Exponent < 0 {
		return 0, false
	}
	v, err := r.Int64()
	return v, err == nil
}
