package utils

import "testing"

func TestRoundFloat(t *testing.T) {
	tests := []struct {
		val       float64
		precision int
		want      float64
	}{
		{12.345, 2, 12.35},
		{12.344, 2, 12.34},
		{0.1 + 0.2, 2, 0.3},
		{99.999, 2, 100},
		{-1.005, 2, -1},
		{1234.5678, 0, 1235},
	}
	for _, tt := range tests {
		if got := RoundFloat(tt.val, tt.precision); got != tt.want {
			t.Fatalf("RoundFloat(%v, %d) = %v, want %v", tt.val, tt.precision, got, tt.want)
		}
	}
}

func TestToNumber(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"nil", nil, 0},
		{"float64", 12.5, 12.5},
		{"int", 7, 7},
		{"numeric string", "42.25", 42.25},
		{"garbage string", "not-a-number", 0},
		{"bool", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToNumber(tt.in); got != tt.want {
				t.Fatalf("ToNumber(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
