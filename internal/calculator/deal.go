package calculator

import (
	"github.com/iwvelando/hotel-forecast/pkg/constants"
	"github.com/iwvelando/hotel-forecast/pkg/mathutil"
)

// decomposeDeal runs the deal sheet waterfall. Monthly revenue is tax
// inclusive; commission is charged on the net-of-tax base at the deal's own
// OTA rate and opex follows the rooms actually sold.
func decomposeDeal(m *CalculationMetrics, in InputState) {
	m.DealRevenueNetGST = m.MonthlyRevenue / (1 + constants.GSTRate)
	m.DealMonthlyGST = m.MonthlyRevenue - m.DealRevenueNetGST
	m.DealOTAAbs = mathutil.ApplyPercentage(m.DealRevenueNetGST, in.OTAPercent)
	m.DealOpexAbs = m.SoldRooms * constants.DaysPerMonth * in.MaintenanceCostPerRoom
	m.DealAbsoluteCM = m.DealRevenueNetGST - m.DealOTAAbs - m.DealOpexAbs - in.MonthlyMG

	m.DealCMPercent = mathutil.CalculatePercentage(m.DealAbsoluteCM, m.DealRevenueNetGST)

	if m.DealAbsoluteCM > 0 {
		upfront := in.SecurityDeposit + in.BusinessAdvance
		m.DealPBPPercent = Finite(upfront / m.DealAbsoluteCM * constants.PercentageMultiplier)
	} else {
		m.DealPBPPercent = NeverPaysBack()
	}

	m.BreakEvenOccupancyDeal, m.BreakEvenReachable = breakEvenOccupancy(in)

	delta := constants.ARRSensitivityStep * m.SoldRooms * constants.DaysPerMonth
	m.ARRSensitivity = delta / (1 + constants.GSTRate) * (1 - in.OTAPercent/constants.PercentageMultiplier)
}

// unitMargin is the monthly contribution of one room sold every day of the
// month, before the minimum guarantee.
func unitMargin(in InputState) float64 {
	netRate := in.RoomPrice / (1 + constants.GSTRate) * (1 - in.OTAPercent/constants.PercentageMultiplier)
	return constants.DaysPerMonth * (netRate - in.MaintenanceCostPerRoom)
}

// breakEvenOccupancy solves DealAbsoluteCM = 0 for occupancy. Every term of
// the contribution margin is linear in sold rooms, so with fractional sold
// rooms the solution is MG / (unitMargin * rooms). RoundSRN is ignored: the
// result is the exact crossing, and with rounding the first occupancy that
// breaks even is the one whose rounded sold rooms reach the next whole room.
// The boolean is false when no occupancy breaks even.
func breakEvenOccupancy(in InputState) (float64, bool) {
	if in.MonthlyMG <= 0 {
		return 0, true
	}
	margin := unitMargin(in)
	if margin <= 0 || in.TotalRooms <= 0 {
		return 0, false
	}
	soldRooms := in.MonthlyMG / margin
	return soldRooms / float64(in.TotalRooms) * constants.PercentageMultiplier, true
}
