package services

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculateCommissionBreakdown(t *testing.T) {
	tests := []struct {
		name          string
		amount        float64
		paidOut       float64
		orderTotal    float64
		paidAmount    float64
		wantAvailable float64
		wantPending   float64
	}{
		{
			name:   "zero order total yields no availability",
			amount: 100, paidOut: 0, orderTotal: 0, paidAmount: 50,
			wantAvailable: 0, wantPending: 100,
		},
		{
			name:   "fully paid order releases everything",
			amount: 100, paidOut: 0, orderTotal: 200, paidAmount: 200,
			wantAvailable: 100, wantPending: 0,
		},
		{
			name:   "half paid order with prior payout",
			amount: 100, paidOut: 40, orderTotal: 200, paidAmount: 100,
			wantAvailable: 10, wantPending: 50,
		},
		{
			name:   "overpayment is clamped",
			amount: 100, paidOut: 0, orderTotal: 200, paidAmount: 500,
			wantAvailable: 100, wantPending: 0,
		},
		{
			name:   "payout exceeding released commission floors at zero",
			amount: 100, paidOut: 80, orderTotal: 200, paidAmount: 100,
			wantAvailable: 0, wantPending: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bd := CalculateCommissionBreakdown(tt.amount, tt.paidOut, tt.orderTotal, tt.paidAmount)
			if !almostEqual(bd.Available, tt.wantAvailable) {
				t.Fatalf("available = %v, want %v", bd.Available, tt.wantAvailable)
			}
			if !almostEqual(bd.Pending, tt.wantPending) {
				t.Fatalf("pending = %v, want %v", bd.Pending, tt.wantPending)
			}
			if bd.Available < 0 || bd.Pending < 0 {
				t.Fatalf("breakdown produced negative figures: %+v", bd)
			}
		})
	}
}

// When the payout never exceeds the released commission, the three buckets
// must always add back up to the full commission amount.
func TestCommissionBreakdownConservation(t *testing.T) {
	cases := []struct {
		amount     float64
		paidOut    float64
		orderTotal float64
		paidAmount float64
	}{
		{100, 0, 200, 0},
		{100, 0, 200, 50},
		{100, 10, 200, 100},
		{100, 25, 200, 150},
		{250, 0, 1000, 999},
		{33.33, 5, 333.3, 111.1},
		{0, 0, 100, 50},
	}

	for _, tc := range cases {
		bd := CalculateCommissionBreakdown(tc.amount, tc.paidOut, tc.orderTotal, tc.paidAmount)
		ratio := 0.0
		if tc.orderTotal > 0 {
			ratio = math.Min(tc.paidAmount/tc.orderTotal, 1)
		}
		if tc.paidOut > tc.amount*ratio {
			continue
		}
		sum := bd.Available + bd.Pending + tc.paidOut
		if !almostEqual(sum, tc.amount) {
			t.Fatalf("conservation violated for %+v: available=%v pending=%v paidOut=%v sum=%v",
				tc, bd.Available, bd.Pending, tc.paidOut, sum)
		}
	}
}
