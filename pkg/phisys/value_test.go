// SPDX-License-Identifier: MPL-2.0

package phisys

import "testing"

func TestValueEqual(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"ints", 3, 3, true},
		{"int vs float", 3, 3.0, true},
		{"int64 vs int", int64(7), 7, true},
		{"unequal numbers", 3, 4, false},
		{"strings", "x", "x", true},
		{"string vs number", "3", 3, false},
		{"bools", true, true, true},
		{"matrices equal", Matrix{{1, 0}, {0, 1}}, Matrix{{1, 0}, {0, 1}}, true},
		{"matrices unequal", Matrix{{1, 0}, {0, 1}}, Matrix{{0, 1}, {1, 0}}, false},
		{"matrix shape mismatch", Matrix{{1, 0}}, Matrix{{1}, {0}}, false},
		{"matrix vs number", Matrix{{1}}, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ValueEqual(tt.a, tt.b); got != tt.want {
				t.Errorf("ValueEqual(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestMatrixShape(t *testing.T) {
	t.Parallel()
	m := Matrix{{1, 2, 3}, {4, 5, 6}}
	if m.Rows() != 2 || m.Cols() != 3 {
		t.Errorf("unexpected shape %dx%d", m.Rows(), m.Cols())
	}
	var empty Matrix
	if empty.Rows() != 0 || empty.Cols() != 0 {
		t.Error("empty matrix should report 0x0")
	}
}
