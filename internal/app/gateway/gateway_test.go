package gateway

import "testing"

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		amount float64
		want   int64
	}{
		{0, 0},
		{10, 1000},
		{10.999, 1099}, // truncates, never rounds up
		{29.99, 2999},  // float repr must not shave a cent off
		{19.99, 1999},
		{0.01, 1},
		{-5.50, -550},
		{-29.99, -2999},
	}
	for _, tc := range cases {
		if got := MinorUnits(tc.amount); got != tc.want {
			t.Errorf("MinorUnits(%v): got %d, want %d", tc.amount, got, tc.want)
		}
	}
}

func TestDecimalAmount(t *testing.T) {
	if got := DecimalAmount(2999); got != 29.99 {
		t.Errorf("DecimalAmount(2999): got %v, want 29.99", got)
	}
}
