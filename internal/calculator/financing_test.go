package calculator

import (
	"testing"

	"github.com/iwvelando/hotel-forecast/pkg/constants"
)

func financedInputs() InputState {
	in := baselineInputs()
	in.IncludeFinancials = true
	in.PropertyValue = 5000000
	in.LoanAmount = 1000000
	in.InterestRate = 10.5
	in.LoanTermYears = 10
	return in
}

func TestFinancingWithLoan(t *testing.T) {
	m := Compute(financedInputs())

	assertClose(t, "MonthlyEMI", m.MonthlyEMI, 13493.50, 0.01)
	assertClose(t, "YearlyEMI", m.YearlyEMI, 161921.996, 0.001)
	assertClose(t, "DSCR", m.DSCR, 25.868876, 1e-5)
	assertClose(t, "Equity", m.Equity, 4000000, 1e-9)
	assertClose(t, "YearlyCashFlow", m.YearlyCashFlow, 4026818.004, 0.001)
	assertClose(t, "MonthlyCashFlow", m.MonthlyCashFlow, m.MonthlyNet-m.MonthlyEMI, 1e-9)
	assertClose(t, "DailyCashFlow", m.DailyCashFlow, m.DailyNet-m.MonthlyEMI/constants.DaysPerMonth, 1e-9)
	assertClose(t, "ROI", m.ROI, 100.670450, 1e-5)

	if !m.PaybackPeriod.IsFinite() {
		t.Fatalf("PaybackPeriod = %+v, expected finite", m.PaybackPeriod)
	}
	assertClose(t, "PaybackYears", m.PaybackYears(), 0.993340, 1e-5)
}

func TestFinancingBranches(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*InputState)
		wantEMI     bool
		wantEquity  float64
		wantROI     float64
		wantPayback float64
	}{
		{
			name: "outright purchase",
			modify: func(in *InputState) {
				in.LoanAmount = 0
				in.InterestRate = 0
			},
			wantEMI:     false,
			wantEquity:  5000000,
			wantROI:     4188740.0 / 5000000 * 100,
			wantPayback: 5000000 / 4188740.0,
		},
		{
			name: "interest free loan falls back to outright",
			modify: func(in *InputState) {
				in.InterestRate = 0
			},
			wantEMI:     false,
			wantEquity:  5000000,
			wantROI:     4188740.0 / 5000000 * 100,
			wantPayback: 5000000 / 4188740.0,
		},
		{
			name: "fully financed purchase has no equity",
			modify: func(in *InputState) {
				in.LoanAmount = 6000000
			},
			wantEMI:     true,
			wantEquity:  0,
			wantROI:     0,
			wantPayback: 0,
		},
		{
			name: "nothing to finance",
			modify: func(in *InputState) {
				in.PropertyValue = 0
				in.LoanAmount = 0
			},
			wantEMI:     false,
			wantEquity:  0,
			wantROI:     0,
			wantPayback: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := financedInputs()
			tt.modify(&in)
			m := Compute(in)

			if got := m.MonthlyEMI > 0; got != tt.wantEMI {
				t.Errorf("MonthlyEMI = %v, expected EMI present %v", m.MonthlyEMI, tt.wantEMI)
			}
			assertClose(t, "Equity", m.Equity, tt.wantEquity, 1e-9)
			assertClose(t, "ROI", m.ROI, tt.wantROI, 1e-9)
			assertClose(t, "PaybackYears", m.PaybackYears(), tt.wantPayback, 1e-9)
		})
	}
}

func TestFinancingNeverPaysBack(t *testing.T) {
	in := financedInputs()
	in.OccupancyPercent = 5
	in.ExtraDeductions = []Deduction{{ID: "x", Name: "Lease", Amount: 500000}}
	m := Compute(in)

	if m.YearlyCashFlow >= 0 {
		t.Fatalf("YearlyCashFlow = %v, expected negative", m.YearlyCashFlow)
	}
	if !m.PaybackPeriod.Never() {
		t.Errorf("PaybackPeriod = %+v, expected never", m.PaybackPeriod)
	}
	if got := m.PaybackYears(); got != constants.NeverPaysBackYears {
		t.Errorf("PaybackYears() = %v, expected %v", got, constants.NeverPaysBackYears)
	}
	if m.ROI >= 0 {
		t.Errorf("ROI = %v, expected negative", m.ROI)
	}
	if m.Valuation != 0 {
		t.Errorf("Valuation = %v, expected 0 for negative income", m.Valuation)
	}
}

func TestFinancingValuationIndependentOfFlag(t *testing.T) {
	financed := Compute(financedInputs())
	in := financedInputs()
	in.IncludeFinancials = false
	plain := Compute(in)

	if financed.Valuation != plain.Valuation {
		t.Errorf("Valuation differs with financing flag: %v vs %v", financed.Valuation, plain.Valuation)
	}
}
