package mathutil

// Epsilon is the default tolerance for approximate comparisons.
const Epsilon = 1e-9

func approx(a, b, eps float64) bool {
	d := a - b
	return d <= eps && d >= -eps
}
