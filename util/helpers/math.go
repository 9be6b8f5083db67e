package helpers

import "golang.org/x/exp/constraints"

func Min[T constraints.Ordered](numbers ...T) T {
	var min T = numbers[0]
	for _, n := range numbers {
		if n < min {
			min = n
		}
	}
	return min
}

func Max[T constraints.Ordered](numbers ...T) T {
	var max T = numbers[0]
	for _, n := range numbers {
		if n > max {
			max = n
		}
	}
	return max
}

// Mid returns the zero-based indexes of the middle element(s) of a sorted
// sequence of length n > 0. They are equal when n is odd.
func Mid[T constraints.Integer](n T) (lo, hi T) {
	return (n - 1) / 2, n / 2
}

// CeilDiv returns ceil(a/b) for a >= 0, b > 0.
func CeilDiv[T constraints.Integer](a, b T) T {
	return (a + b - 1) / b
}
