// Package optimizer searches the metrics engine for deal suggestions: the
// largest minimum guarantee that keeps a target margin, and the lowest room
// rate and occupancy that still break even.
package optimizer

import (
	"fmt"

	"github.com/iwvelando/hotel-forecast/internal/calculator"
	"github.com/iwvelando/hotel-forecast/internal/logging"
	"github.com/iwvelando/hotel-forecast/pkg/constants"
	"github.com/iwvelando/hotel-forecast/pkg/format"
	"github.com/iwvelando/hotel-forecast/pkg/mathutil"
	"github.com/iwvelando/hotel-forecast/pkg/optimization"
	"go.uber.org/zap"
)

// Suggestion fields.
const (
	FieldMonthlyMG     = "maxMonthlyMg"
	FieldRoomPrice     = "minRoomPrice"
	FieldOccupancy     = "minOccupancy"
	DefaultTolerance   = 0.01
	DefaultIterations  = 50
	DefaultMaxRoomRate = 100000.0
)

// Options bound the searches.
type Options struct {
	TargetCMPercent float64
	MaxRoomPrice    float64
	Tolerance       float64
	MaxIterations   int
	CurrencySymbol  string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		TargetCMPercent: constants.DefaultTargetCMPercent,
		MaxRoomPrice:    DefaultMaxRoomRate,
		Tolerance:       DefaultTolerance,
		MaxIterations:   DefaultIterations,
		CurrencySymbol:  constants.DefaultCurrencySymbol,
	}
}

func (o Options) normalized() Options {
	defaults := DefaultOptions()
	if o.Tolerance <= 0 {
		o.Tolerance = defaults.Tolerance
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = defaults.MaxIterations
	}
	if o.MaxRoomPrice <= 0 {
		o.MaxRoomPrice = defaults.MaxRoomPrice
	}
	if o.CurrencySymbol == "" {
		o.CurrencySymbol = defaults.CurrencySymbol
	}
	return o
}

// Runner evaluates deal suggestions for input snapshots.
type Runner struct {
	logger *zap.Logger
	opts   Options
}

// Result holds the suggestions for one input snapshot.
type Result struct {
	Summaries []optimization.Summary
}

// NewRunner constructs a Runner. Zero options fall back to DefaultOptions.
func NewRunner(logger *zap.Logger, opts Options) *Runner {
	logger = logging.OrNop(logger)
	return &Runner{logger: logger, opts: opts.normalized()}
}

// target describes one search: which input moves, its bounds and the
// constraint a candidate has to satisfy.
type target struct {
	field     string
	original  float64
	minValue  float64
	maxValue  float64
	threshold float64
	// preferLow selects the lowest feasible value instead of the highest.
	preferLow bool
	apply     func(in *calculator.InputState, value float64)
	measure   func(m calculator.CalculationMetrics) float64
	snap      func(value float64) float64
	display   func(value float64) string
}

type evaluation struct {
	value     float64
	achieved  float64
	threshold float64
}

func (e evaluation) feasible() bool {
	return e.achieved >= e.threshold
}

func (e evaluation) headroom() float64 {
	return e.achieved - e.threshold
}

// Suggest runs every search against in.
func (r *Runner) Suggest(in calculator.InputState) Result {
	var summaries []optimization.Summary
	for _, t := range r.targets(in) {
		summary := r.optimize(in, t)
		summaries = append(summaries, summary)

		r.logger.Debug("optimizer evaluated deal suggestion",
			zap.String("op", "optimizer.Suggest"),
			zap.String("property", in.PropertyName),
			zap.String("field", summary.Field),
			zap.Float64("original", summary.Original),
			zap.Float64("value", summary.Value),
			zap.Float64("threshold", summary.Threshold),
			zap.Float64("achieved", summary.Achieved),
			zap.Int("iterations", summary.Iterations),
			zap.Bool("converged", summary.Converged),
		)
	}
	return Result{Summaries: summaries}
}

func (r *Runner) targets(in calculator.InputState) []target {
	currency := func(value float64) string {
		return format.CurrencyWithSymbol(r.opts.CurrencySymbol, value)
	}

	zeroMG := in
	zeroMG.MonthlyMG = 0
	revenueNetGST := calculator.Compute(zeroMG).DealRevenueNetGST

	maxPrice := mathutil.Max(r.opts.MaxRoomPrice, in.RoomPrice)

	return []target{
		{
			field:     FieldMonthlyMG,
			original:  in.MonthlyMG,
			minValue:  0,
			maxValue:  mathutil.Round(revenueNetGST),
			threshold: r.opts.TargetCMPercent,
			apply:     func(in *calculator.InputState, v float64) { in.MonthlyMG = v },
			measure:   func(m calculator.CalculationMetrics) float64 { return m.DealCMPercent },
			snap:      mathutil.Round,
			display:   currency,
		},
		{
			field:     FieldRoomPrice,
			original:  in.RoomPrice,
			minValue:  0,
			maxValue:  maxPrice,
			threshold: 0,
			preferLow: true,
			apply:     func(in *calculator.InputState, v float64) { in.RoomPrice = v },
			measure:   func(m calculator.CalculationMetrics) float64 { return m.DealAbsoluteCM },
			snap:      mathutil.Round,
			display:   currency,
		},
		{
			field:     FieldOccupancy,
			original:  in.OccupancyPercent,
			minValue:  0,
			maxValue:  100,
			threshold: 0,
			preferLow: true,
			apply:     func(in *calculator.InputState, v float64) { in.OccupancyPercent = v },
			measure:   func(m calculator.CalculationMetrics) float64 { return m.DealAbsoluteCM },
			snap:      mathutil.Round,
			display:   format.Percent,
		},
	}
}

func (r *Runner) evaluate(in calculator.InputState, t target, value float64) evaluation {
	value = clampValue(t.snap(value), t.minValue, t.maxValue)
	probe := in
	t.apply(&probe, value)
	return evaluation{
		value:     value,
		achieved:  t.measure(calculator.Compute(probe)),
		threshold: t.threshold,
	}
}

// optimize bisects between the bounds. The feasible region is assumed to be
// one side of a single crossing, which holds because every measured margin
// is monotone in the searched input.
func (r *Runner) optimize(in calculator.InputState, t target) optimization.Summary {
	lowerEval := r.evaluate(in, t, t.minValue)
	upperEval := r.evaluate(in, t, t.maxValue)

	summary := optimization.Summary{
		Scope:           "deal",
		TargetName:      in.PropertyName,
		Field:           t.field,
		Original:        t.original,
		OriginalDisplay: t.display(t.original),
		Threshold:       t.threshold,
	}
	finish := func(eval evaluation, iterations int, converged bool) optimization.Summary {
		summary.Value = eval.value
		summary.ValueDisplay = t.display(eval.value)
		summary.Achieved = eval.achieved
		summary.Headroom = eval.headroom()
		summary.Iterations = iterations
		summary.Converged = converged
		if !converged {
			summary.Notes = []string{fmt.Sprintf(
				"unable to satisfy %s within bounds %s to %s",
				describeThreshold(t), t.display(t.minValue), t.display(t.maxValue),
			)}
		}
		return summary
	}

	if !lowerEval.feasible() && !upperEval.feasible() {
		chased := upperEval
		if lowerEval.headroom() > upperEval.headroom() {
			chased = lowerEval
		}
		return finish(chased, 0, false)
	}

	if lowerEval.feasible() && upperEval.feasible() {
		if t.preferLow {
			return finish(lowerEval, 0, true)
		}
		return finish(upperEval, 0, true)
	}

	iterations := 0
	var final evaluation

	if lowerEval.feasible() {
		// Feasible below, infeasible above: push the feasible edge up.
		final = lowerEval
		lower, upper := lowerEval.value, upperEval.value
		for iterations < r.opts.MaxIterations && !mathutil.WithinTolerance(upper, lower, r.opts.Tolerance) {
			mid := r.evaluate(in, t, lower+(upper-lower)/2)
			iterations++
			if mid.feasible() {
				final = mid
				if mid.value == lower {
					break
				}
				lower = mid.value
			} else {
				if mid.value == upper {
					break
				}
				upper = mid.value
			}
		}
	} else {
		// Infeasible below, feasible above: pull the feasible edge down.
		final = upperEval
		lower, upper := lowerEval.value, upperEval.value
		for iterations < r.opts.MaxIterations && !mathutil.WithinTolerance(upper, lower, r.opts.Tolerance) {
			mid := r.evaluate(in, t, lower+(upper-lower)/2)
			iterations++
			if mid.feasible() {
				final = mid
				if mid.value == upper {
					break
				}
				upper = mid.value
			} else {
				if mid.value == lower {
					break
				}
				lower = mid.value
			}
		}
	}

	return finish(final, iterations, final.feasible())
}

func describeThreshold(t target) string {
	if t.field == FieldMonthlyMG {
		return fmt.Sprintf("contribution margin of %s", format.Percent(t.threshold))
	}
	return "a non-negative contribution margin"
}

func clampValue(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
