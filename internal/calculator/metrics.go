package calculator

import (
	"github.com/iwvelando/hotel-forecast/pkg/constants"
	"github.com/iwvelando/hotel-forecast/pkg/mathutil"
)

// CalculationMetrics holds every figure derived from an InputState. It is
// recomputed from scratch on each Compute call.
type CalculationMetrics struct {
	SoldRooms float64 `json:"soldRooms"`

	DailyRevenue   float64 `json:"dailyRevenue"`
	MonthlyRevenue float64 `json:"monthlyRevenue"`
	YearlyRevenue  float64 `json:"yearlyRevenue"`

	DailyOTA               float64 `json:"dailyOta"`
	MonthlyOTA             float64 `json:"monthlyOta"`
	YearlyOTA              float64 `json:"yearlyOta"`
	DailyMaintenance       float64 `json:"dailyMaintenance"`
	MonthlyMaintenance     float64 `json:"monthlyMaintenance"`
	YearlyMaintenance      float64 `json:"yearlyMaintenance"`
	DailyExtraDeductions   float64 `json:"dailyExtraDeductions"`
	MonthlyExtraDeductions float64 `json:"monthlyExtraDeductions"`
	YearlyExtraDeductions  float64 `json:"yearlyExtraDeductions"`
	DailyNet               float64 `json:"dailyNet"`
	MonthlyNet             float64 `json:"monthlyNet"`
	YearlyNet              float64 `json:"yearlyNet"`

	MonthlyEMI      float64 `json:"monthlyEmi"`
	YearlyEMI       float64 `json:"yearlyEmi"`
	DailyCashFlow   float64 `json:"dailyCashFlow"`
	MonthlyCashFlow float64 `json:"monthlyCashFlow"`
	YearlyCashFlow  float64 `json:"yearlyCashFlow"`
	DSCR            float64 `json:"dscr"`
	Equity          float64 `json:"equity"`
	ROI             float64 `json:"roi"`
	Valuation       float64 `json:"valuation"`
	PaybackPeriod   Payback `json:"paybackPeriod"` // years

	DealRevenueNetGST      float64 `json:"dealRevenueNetGst"`
	DealMonthlyGST         float64 `json:"dealMonthlyGst"`
	DealOTAAbs             float64 `json:"dealOtaAbs"`
	DealOpexAbs            float64 `json:"dealOpexAbs"`
	DealAbsoluteCM         float64 `json:"dealAbsoluteCm"`
	DealCMPercent          float64 `json:"dealCmPercent"`
	DealPBPPercent         Payback `json:"dealPbpPercent"`
	BreakEvenOccupancyDeal float64 `json:"breakEvenOccupancyDeal"`
	BreakEvenReachable     bool    `json:"breakEvenReachable"`
	ARRSensitivity         float64 `json:"arrSensitivity"`
}

// PaybackYears returns the payback period with the 999-year sentinel for a
// payback that is never reached.
func (m CalculationMetrics) PaybackYears() float64 {
	return m.PaybackPeriod.Or(constants.NeverPaysBackYears)
}

// DealPBP returns the deal payback percentage, 0 when it is undefined.
func (m CalculationMetrics) DealPBP() float64 {
	return m.DealPBPPercent.Or(0)
}

// finite replaces every NaN or infinite figure with 0. Overflow from very
// large inputs otherwise leaks into the output and breaks JSON encoding.
func (m CalculationMetrics) finite() CalculationMetrics {
	for _, field := range []*float64{
		&m.SoldRooms,
		&m.DailyRevenue, &m.MonthlyRevenue, &m.YearlyRevenue,
		&m.DailyOTA, &m.MonthlyOTA, &m.YearlyOTA,
		&m.DailyMaintenance, &m.MonthlyMaintenance, &m.YearlyMaintenance,
		&m.DailyExtraDeductions, &m.MonthlyExtraDeductions, &m.YearlyExtraDeductions,
		&m.DailyNet, &m.MonthlyNet, &m.YearlyNet,
		&m.MonthlyEMI, &m.YearlyEMI,
		&m.DailyCashFlow, &m.MonthlyCashFlow, &m.YearlyCashFlow,
		&m.DSCR, &m.Equity, &m.ROI, &m.Valuation,
		&m.DealRevenueNetGST, &m.DealMonthlyGST, &m.DealOTAAbs, &m.DealOpexAbs,
		&m.DealAbsoluteCM, &m.DealCMPercent,
		&m.BreakEvenOccupancyDeal, &m.ARRSensitivity,
	} {
		*field = mathutil.Finite(*field)
	}
	m.PaybackPeriod = m.PaybackPeriod.finite()
	m.DealPBPPercent = m.DealPBPPercent.finite()
	return m
}
