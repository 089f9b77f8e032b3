package money

import "testing"

func TestFlatInterest(t *testing.T) {
	cases := []struct {
		principal, rate, want float64
	}{
		{100000, 10, 10000},
		{5000, 5, 250},
		{1234.56, 12, 148.15}, // 148.1472 rounds to 148.15
		{1000, 0, 0},
	}
	for _, tc := range cases {
		if got := FlatInterest(tc.principal, tc.rate); got != tc.want {
			t.Errorf("FlatInterest(%v, %v) = %v, want %v", tc.principal, tc.rate, got, tc.want)
		}
	}
}

func TestInstallment(t *testing.T) {
	cases := []struct {
		total float64
		months int
		want  float64
	}{
		{110000, 10, 11000},
		{1100, 3, 366.67},
		{100, 3, 33.33},
		{1100, 1, 1100},
	}
	for _, tc := range cases {
		if got := Installment(tc.total, tc.months); got != tc.want {
			t.Errorf("Installment(%v, %d) = %v, want %v", tc.total, tc.months, got, tc.want)
		}
	}
}

func TestAddSubAvoidFloatDrift(t *testing.T) {
	// 0.1 + 0.2 is the classic float trap
	if got := Add(0.1, 0.2); got != 0.3 {
		t.Errorf("Add(0.1, 0.2) = %v, want 0.3", got)
	}
	if got := Sub(1100, 366.67); got != 733.33 {
		t.Errorf("Sub(1100, 366.67) = %v, want 733.33", got)
	}

	// a long repayment run stays exact
	balance := 366.67 * 3
	balance = Round2(balance)
	for i := 0; i < 3; i++ {
		balance = Sub(balance, 366.67)
	}
	if balance != 0 {
		t.Errorf("balance after equal repayments = %v, want 0", balance)
	}
}

func TestRound2(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{1.005, 1.01},
		{1.004, 1.0},
		{-1.005, -1.01},
		{2.5, 2.5},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
