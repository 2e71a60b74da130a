package math2

// Fixed-width integer helpers for the values that cross the C boundary.

// Add returns a + b. Overflow wraps in two's complement, matching what a C
// int addition produces on every platform the library is built for.
func Add(a, b int32) int32 {
	return a + b
}

func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
