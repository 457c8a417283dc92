package components

import "testing"

func TestChartTickStep(t *testing.T) {
	tests := []struct {
		maxVal float64
		want   float64
	}{
		{5, 1},
		{10, 2},
		{100, 20},
		{1300, 500},
		{0, 1},
	}
	for _, tt := range tests {
		if got := chartTickStep(tt.maxVal); got != tt.want {
			t.Errorf("chartTickStep(%v) = %v, want %v", tt.maxVal, got, tt.want)
		}
	}
}

func TestMoneyChartLabel(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{500, "500"},
		{1500, "1.5k"},
		{2000, "2k"},
		{-1500, "-1.5k"},
		{-250, "-250"},
	}
	for _, tt := range tests {
		if got := moneyChartLabel(tt.v); got != tt.want {
			t.Errorf("moneyChartLabel(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestLayoutRowSumsExactly(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5} {
		for _, total := range []int{80, 99, 120, 181} {
			widths := LayoutRow(total, n)
			sum := 0
			for _, w := range widths {
				sum += w
			}
			if sum != total {
				t.Errorf("LayoutRow(%d, %d) sums to %d", total, n, sum)
			}
		}
	}
	if LayoutRow(100, 0) != nil {
		t.Error("LayoutRow with n=0 should return nil")
	}
}

func TestBalanceChartEmptyAndNarrow(t *testing.T) {
	if got := BalanceChart(nil, nil, 80, 10); got != "" {
		t.Errorf("empty values should render nothing, got %q", got)
	}

	// Narrow widths fall back to a sparkline; must not panic on negatives.
	got := BalanceChart([]int64{-5000, 0, 5000}, nil, 10, 2)
	if got == "" {
		t.Error("sparkline fallback rendered nothing")
	}
}

func TestCardInnerWidthFloor(t *testing.T) {
	if got := CardInnerWidth(100); got != 96 {
		t.Errorf("CardInnerWidth(100) = %d, want 96", got)
	}
	if got := CardInnerWidth(5); got != 10 {
		t.Errorf("CardInnerWidth(5) = %d, want floor 10", got)
	}
}
