package calculator

import "github.com/iwvelando/hotel-forecast/pkg/constants"

// SweepPoint is one sample of the occupancy sensitivity curve.
type SweepPoint struct {
	OccupancyPercent  float64 `json:"occupancyPercent"`
	SoldRooms         float64 `json:"soldRooms"`
	MonthlyRevenue    float64 `json:"monthlyRevenue"`
	MonthlyNet        float64 `json:"monthlyNet"`
	DealRevenueNetGST float64 `json:"dealRevenueNetGst"`
	DealAbsoluteCM    float64 `json:"dealAbsoluteCm"`
	DealCMPercent     float64 `json:"dealCmPercent"`
}

// Sweep evaluates the inputs at occupancies 0% to 100% in 10% steps. The
// caller's rounding policy applies at every point.
func Sweep(in InputState) []SweepPoint {
	points := make([]SweepPoint, 0, 100/constants.SweepStepPercent+1)
	for occupancy := 0; occupancy <= 100; occupancy += constants.SweepStepPercent {
		probe := in
		probe.OccupancyPercent = float64(occupancy)
		m := Compute(probe)
		points = append(points, SweepPoint{
			OccupancyPercent:  probe.OccupancyPercent,
			SoldRooms:         m.SoldRooms,
			MonthlyRevenue:    m.MonthlyRevenue,
			MonthlyNet:        m.MonthlyNet,
			DealRevenueNetGST: m.DealRevenueNetGST,
			DealAbsoluteCM:    m.DealAbsoluteCM,
			DealCMPercent:     m.DealCMPercent,
		})
	}
	return points
}
