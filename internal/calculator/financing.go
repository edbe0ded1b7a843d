package calculator

import (
	"github.com/iwvelando/hotel-forecast/pkg/constants"
	"github.com/iwvelando/hotel-forecast/pkg/loans"
	"github.com/iwvelando/hotel-forecast/pkg/mathutil"
)

// FinancedByLoan reports whether the acquisition is serviced by an
// interest-bearing loan rather than bought outright.
func (in InputState) FinancedByLoan() bool {
	return in.IncludeFinancials && in.LoanAmount > 0 && in.InterestRate > 0
}

// overlayFinancing adds loan servicing, returns and valuation on top of the
// net operating income.
func overlayFinancing(m *CalculationMetrics, in InputState) {
	if in.IncludeFinancials {
		switch {
		case in.FinancedByLoan():
			financeWithLoan(m, in)
		case in.PropertyValue > 0:
			financeOutright(m, in)
		}
	}

	m.DailyCashFlow = m.DailyNet - m.MonthlyEMI/constants.DaysPerMonth
	m.MonthlyCashFlow = m.MonthlyNet - m.MonthlyEMI
	m.YearlyCashFlow = m.YearlyNet - m.YearlyEMI

	if in.IncludeFinancials {
		switch {
		case in.FinancedByLoan():
			m.ROI = mathutil.CalculatePercentage(m.YearlyCashFlow, m.Equity)
			m.PaybackPeriod = paybackYears(m.Equity, m.YearlyCashFlow)
		case in.PropertyValue > 0:
			m.ROI = mathutil.CalculatePercentage(m.YearlyNet, in.PropertyValue)
			m.PaybackPeriod = paybackYears(in.PropertyValue, m.YearlyNet)
		}
	}

	if m.YearlyNet > 0 {
		m.Valuation = m.YearlyNet / constants.CapitalizationRate
	}
}

func financeWithLoan(m *CalculationMetrics, in InputState) {
	m.MonthlyEMI = loans.CalculateMonthlyPayment(in.LoanAmount, in.InterestRate, loans.TermMonths(in.LoanTermYears))
	m.YearlyEMI = m.MonthlyEMI * constants.MonthsPerYear
	m.DSCR = mathutil.SafeDivide(m.YearlyNet, m.YearlyEMI)
	m.Equity = mathutil.Max(in.PropertyValue-in.LoanAmount, 0)
}

func financeOutright(m *CalculationMetrics, in InputState) {
	m.Equity = in.PropertyValue
}

// paybackYears returns investment / yearly return, never reached when the
// yearly return is not positive.
func paybackYears(investment, yearlyReturn float64) Payback {
	if yearlyReturn <= 0 {
		return NeverPaysBack()
	}
	return Finite(investment / yearlyReturn)
}
