// SPDX-License-Identifier: MPL-2.0

package phisys

type (
	// Value is a generator value: the data a transformation consumes and
	// produces. The concrete types the engine understands are Go numbers,
	// bools, strings, and Matrix; anything else is compared with ==.
	Value any

	// Matrix is a dense row-major matrix, the canonical non-commutative
	// demo generator.
	Matrix [][]float64
)

// Rows returns the number of rows in the matrix.
func (m Matrix) Rows() int { return len(m) }

// Cols returns the number of columns in the matrix (0 for an empty matrix).
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Equal reports whether two matrices have identical shape and entries.
func (m Matrix) Equal(other Matrix) bool {
	if len(m) != len(other) {
		return false
	}
	for i := range m {
		if len(m[i]) != len(other[i]) {
			return false
		}
		for j := range m[i] {
			if m[i][j] != other[i][j] {
				return false
			}
		}
	}
	return true
}

// ValueEqual compares two generator values. Numeric values compare by
// magnitude regardless of Go type (an int 3 equals a float64 3.0), matrices
// compare element-wise, everything else falls back to ==.
func ValueEqual(a, b Value) bool {
	if am, ok := a.(Matrix); ok {
		bm, ok := b.(Matrix)
		return ok && am.Equal(bm)
	}
	if af, ok := asFloat(a); ok {
		bf, ok := asFloat(b)
		return ok && af == bf
	}
	return a == b
}

// asFloat widens any Go numeric value to float64.
func asFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
