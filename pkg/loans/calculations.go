// Package loans provides common loan processing utilities.
package loans

import (
	"fmt"
	"math"

	"github.com/iwvelando/hotel-forecast/pkg/constants"
	"github.com/iwvelando/hotel-forecast/pkg/mathutil"
	"go.uber.org/zap"
)

// Payment holds the values for a given monthly installment.
type Payment struct {
	Month              int     `json:"month"`
	Payment            float64 `json:"payment"`
	Principal          float64 `json:"principal"`
	Interest           float64 `json:"interest"`
	RemainingPrincipal float64 `json:"remainingPrincipal"`
}

// YearSummary aggregates the installments of one loan year.
type YearSummary struct {
	Year               int     `json:"year"`
	Paid               float64 `json:"paid"`
	Principal          float64 `json:"principal"`
	Interest           float64 `json:"interest"`
	RemainingPrincipal float64 `json:"remainingPrincipal"`
}

// CalculateMonthlyPayment calculates the monthly installment (EMI) for a loan
// using the standard amortization formula P*r*(1+r)^n / ((1+r)^n - 1).
// A loan without principal or term has no installment.
func CalculateMonthlyPayment(principal, annualInterestRate, termMonths float64) float64 {
	if principal <= 0 || termMonths <= 0 {
		return 0
	}
	if annualInterestRate <= 0 {
		// For zero interest, simply divide the principal by term
		return principal / termMonths
	}

	periodicInterestRate := annualInterestRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
	power := math.Pow(1.00+periodicInterestRate, termMonths)
	discountFactor := (power - 1.00) / power
	return principal * periodicInterestRate / discountFactor
}

// TermMonths converts a loan term in years into months.
func TermMonths(termYears float64) float64 {
	return termYears * constants.MonthsPerYear
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * annualInterestRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// AmortizationScheduleGenerator provides utilities for generating loan amortization schedules
type AmortizationScheduleGenerator struct {
	logger *zap.Logger
}

// NewAmortizationScheduleGenerator creates a new generator instance
func NewAmortizationScheduleGenerator(logger *zap.Logger) *AmortizationScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AmortizationScheduleGenerator{logger: logger}
}

// GenerateSchedule creates the month by month amortization schedule of a loan.
func (g *AmortizationScheduleGenerator) GenerateSchedule(principal, annualInterestRate, termYears float64) ([]Payment, error) {
	if principal < 0 || annualInterestRate < 0 || termYears < 0 {
		return nil, fmt.Errorf("loan parameters must be non-negative: principal %.2f, rate %.2f, term %.2f",
			principal, annualInterestRate, termYears)
	}

	termMonths := int(math.Ceil(TermMonths(termYears)))
	if principal == 0 || termMonths == 0 {
		return nil, nil
	}

	monthlyPayment := CalculateMonthlyPayment(principal, annualInterestRate, TermMonths(termYears))
	schedule := make([]Payment, 0, termMonths)
	remaining := principal

	for month := 1; month <= termMonths; month++ {
		var current Payment
		current.Month = month
		current.Interest = CalculateInterestPayment(remaining, annualInterestRate)
		current.Principal = monthlyPayment - current.Interest
		current.Payment = monthlyPayment

		if month == termMonths || mathutil.Round(remaining-current.Principal) <= 0 {
			// We will get machine error otherwise so settle the remainder.
			current.Principal = remaining
			current.Payment = remaining + current.Interest
			current.RemainingPrincipal = 0
			schedule = append(schedule, current)
			g.logger.Debug(fmt.Sprintf("loan settled after %d installments", month),
				zap.String("op", "loans.GenerateSchedule"),
			)
			break
		}

		current.RemainingPrincipal = remaining - current.Principal
		remaining = current.RemainingPrincipal
		schedule = append(schedule, current)
	}

	return schedule, nil
}

// SummarizeByYear folds a monthly schedule into loan years.
func SummarizeByYear(schedule []Payment) []YearSummary {
	var years []YearSummary
	for _, payment := range schedule {
		year := (payment.Month-1)/constants.MonthsPerYear + 1
		if len(years) == 0 || years[len(years)-1].Year != year {
			years = append(years, YearSummary{Year: year})
		}
		summary := &years[len(years)-1]
		summary.Paid += payment.Payment
		summary.Principal += payment.Principal
		summary.Interest += payment.Interest
		summary.RemainingPrincipal = payment.RemainingPrincipal
	}
	return years
}
