package calculator

import (
	"github.com/iwvelando/hotel-forecast/pkg/constants"
	"github.com/iwvelando/hotel-forecast/pkg/mathutil"
)

// Compute derives all metrics for one input snapshot. It never fails:
// degenerate arithmetic resolves to 0 or to a never-reached payback.
func Compute(in InputState) CalculationMetrics {
	in = in.sanitized()

	var m CalculationMetrics
	m.SoldRooms = resolveOccupancy(in)
	projectRevenue(&m, in)
	decomposeDeal(&m, in)
	projectDeductions(&m, in)
	overlayFinancing(&m, in)
	return m.finite()
}

// resolveOccupancy returns the rooms sold per day.
func resolveOccupancy(in InputState) float64 {
	sold := float64(in.TotalRooms) * in.OccupancyPercent / constants.PercentageMultiplier
	if in.RoundSRN {
		sold = mathutil.RoundHalfUp(sold)
	}
	return sold
}

func projectRevenue(m *CalculationMetrics, in InputState) {
	m.DailyRevenue = m.SoldRooms * in.RoomPrice
	m.MonthlyRevenue = m.DailyRevenue * constants.DaysPerMonth
	m.YearlyRevenue = m.DailyRevenue * constants.DaysPerYear
}

// projectDeductions applies the standard model: a flat OTA rate on gross
// revenue, per-room maintenance and the extra deductions list.
func projectDeductions(m *CalculationMetrics, in InputState) {
	m.DailyOTA = m.DailyRevenue * constants.OTACommissionRate
	m.MonthlyOTA = m.MonthlyRevenue * constants.OTACommissionRate
	m.YearlyOTA = m.YearlyRevenue * constants.OTACommissionRate

	maintenanceDay := m.SoldRooms * in.MaintenanceCostPerRoom
	m.DailyMaintenance = maintenanceDay
	m.MonthlyMaintenance = maintenanceDay * constants.DaysPerMonth
	m.YearlyMaintenance = maintenanceDay * constants.DaysPerYear

	extra := in.ExtraDeductionsTotal()
	m.MonthlyExtraDeductions = extra
	m.YearlyExtraDeductions = extra * constants.MonthsPerYear
	m.DailyExtraDeductions = extra / constants.DaysPerMonth

	m.DailyNet = m.DailyRevenue - (m.DailyOTA + m.DailyMaintenance + m.DailyExtraDeductions)
	m.MonthlyNet = m.MonthlyRevenue - (m.MonthlyOTA + m.MonthlyMaintenance + m.MonthlyExtraDeductions)
	m.YearlyNet = m.YearlyRevenue - (m.YearlyOTA + m.YearlyMaintenance + m.YearlyExtraDeductions)
}
