// Package forecast evaluates the projects of a configuration: metrics,
// occupancy sweep, deal suggestions and the notes shown next to them.
package forecast

import (
	"errors"
	"fmt"

	"github.com/iwvelando/hotel-forecast/internal/calculator"
	"github.com/iwvelando/hotel-forecast/internal/config"
	"github.com/iwvelando/hotel-forecast/internal/logging"
	"github.com/iwvelando/hotel-forecast/internal/optimizer"
	"github.com/iwvelando/hotel-forecast/pkg/format"
	"github.com/iwvelando/hotel-forecast/pkg/loans"
	"github.com/iwvelando/hotel-forecast/pkg/mathutil"
	"github.com/iwvelando/hotel-forecast/pkg/optimization"
	"go.uber.org/zap"
)

// ErrNoActiveProjects is returned when a configuration has nothing to evaluate.
var ErrNoActiveProjects = errors.New("no active projects")

// Forecast holds all information related to a specific project.
type Forecast struct {
	Name        string                        `json:"name"`
	Inputs      calculator.InputState         `json:"inputs"`
	Metrics     calculator.CalculationMetrics `json:"metrics"`
	Sweep       []calculator.SweepPoint       `json:"sweep"`
	Suggestions []optimization.Summary        `json:"suggestions,omitempty"`
	Notes       []string                      `json:"notes,omitempty"`

	// LoanSchedule is the yearly amortization of the acquisition loan, empty
	// unless the project is financed by one.
	LoanSchedule []loans.YearSummary `json:"loanSchedule,omitempty"`
}

// GetForecast evaluates every active project of conf.
func GetForecast(logger *zap.Logger, conf config.Configuration) ([]Forecast, error) {
	logger = logging.OrNop(logger)

	var results []Forecast
	for _, project := range conf.Projects {
		if !project.Active {
			logger.Debug(fmt.Sprintf("skipping project %s because it is inactive", project.Name),
				zap.String("op", "forecast.GetForecast"),
			)
			continue
		}
		in := project.Inputs.ToInputState(project.Name, conf.Settings)
		results = append(results, Evaluate(logger, in, conf.Settings))
	}

	if len(results) == 0 {
		return nil, ErrNoActiveProjects
	}
	return results, nil
}

// Evaluate computes the full forecast for one input snapshot.
func Evaluate(logger *zap.Logger, in calculator.InputState, settings config.Settings) Forecast {
	logger = logging.OrNop(logger)

	metrics := calculator.Compute(in)
	runner := optimizer.NewRunner(logger, optimizer.Options{
		TargetCMPercent: settings.TargetCMPercent,
		CurrencySymbol:  settings.CurrencySymbol,
	})

	result := Forecast{
		Name:        in.PropertyName,
		Inputs:      in,
		Metrics:     metrics,
		Sweep:       calculator.Sweep(in),
		Suggestions: runner.Suggest(in).Summaries,
		Notes:       Notes(in, metrics, settings.CurrencySymbol),
	}

	if in.FinancedByLoan() {
		schedule, err := loans.NewAmortizationScheduleGenerator(logger).
			GenerateSchedule(in.LoanAmount, in.InterestRate, in.LoanTermYears)
		if err != nil {
			logger.Warn("failed to build loan schedule",
				zap.String("op", "forecast.Evaluate"),
				zap.String("project", in.PropertyName),
				zap.Error(err),
			)
		} else {
			result.LoanSchedule = loans.SummarizeByYear(schedule)
		}
	}

	logger.Debug("evaluated project",
		zap.String("op", "forecast.Evaluate"),
		zap.String("project", in.PropertyName),
		zap.Float64("monthlyNet", metrics.MonthlyNet),
		zap.Float64("dealCmPercent", metrics.DealCMPercent),
		zap.Int("notes", len(result.Notes)),
	)
	return result
}

// Notes returns the user facing remarks for a set of metrics.
func Notes(in calculator.InputState, m calculator.CalculationMetrics, currencySymbol string) []string {
	var notes []string

	if mathutil.IsNegative(m.MonthlyCashFlow) {
		notes = append(notes, fmt.Sprintf("monthly cash flow is negative (%s)",
			format.CurrencyWithSymbol(currencySymbol, m.MonthlyCashFlow)))
	}

	if in.IncludeFinancials && m.PaybackPeriod.Never() {
		notes = append(notes, "the investment never pays back at the current cash flow")
	}

	dealActive := in.MonthlyMG > 0 || in.SecurityDeposit > 0 || in.BusinessAdvance > 0
	if dealActive && m.DealPBPPercent.Never() {
		notes = append(notes, "the deal contribution margin is not positive; upfront payments are never recovered")
	}

	if in.MonthlyMG > 0 {
		switch {
		case !m.BreakEvenReachable:
			notes = append(notes, "no occupancy covers the minimum guarantee at the current room price")
		case m.BreakEvenOccupancyDeal > 100:
			notes = append(notes, fmt.Sprintf("break-even occupancy %s exceeds full occupancy",
				format.Percent(m.BreakEvenOccupancyDeal)))
		}
	}

	return notes
}
