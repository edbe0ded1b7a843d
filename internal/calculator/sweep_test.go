package calculator

import "testing"

func TestSweep(t *testing.T) {
	points := Sweep(baselineInputs())

	if len(points) != 11 {
		t.Fatalf("len(Sweep) = %d, expected 11", len(points))
	}
	for i, point := range points {
		if want := float64(i * 10); point.OccupancyPercent != want {
			t.Errorf("point %d occupancy = %v, expected %v", i, point.OccupancyPercent, want)
		}
		if i == 0 {
			continue
		}
		previous := points[i-1]
		if point.MonthlyRevenue < previous.MonthlyRevenue {
			t.Errorf("point %d revenue %v below previous %v", i, point.MonthlyRevenue, previous.MonthlyRevenue)
		}
		if point.DealAbsoluteCM < previous.DealAbsoluteCM {
			t.Errorf("point %d CM %v below previous %v", i, point.DealAbsoluteCM, previous.DealAbsoluteCM)
		}
	}

	last := points[len(points)-1]
	if last.SoldRooms != 32 {
		t.Errorf("full occupancy sold rooms = %v, expected 32", last.SoldRooms)
	}
	if points[0].DealAbsoluteCM != -150000 {
		t.Errorf("empty hotel CM = %v, expected -150000", points[0].DealAbsoluteCM)
	}
}

func TestSweepKeepsRoundingPolicy(t *testing.T) {
	in := InputState{TotalRooms: 7, RoomPrice: 1000, RoundSRN: false}
	points := Sweep(in)
	// 7 rooms at 10% is 0.7 rooms unrounded.
	if got := points[1].SoldRooms; got < 0.69 || got > 0.71 {
		t.Errorf("unrounded sweep sold rooms = %v, expected 0.7", got)
	}

	in.RoundSRN = true
	points = Sweep(in)
	if got := points[1].SoldRooms; got != 1 {
		t.Errorf("rounded sweep sold rooms = %v, expected 1", got)
	}
}

func TestSweepMatchesCompute(t *testing.T) {
	in := baselineInputs()
	for _, point := range Sweep(in) {
		probe := in
		probe.OccupancyPercent = point.OccupancyPercent
		m := Compute(probe)
		if m.MonthlyNet != point.MonthlyNet || m.DealCMPercent != point.DealCMPercent {
			t.Errorf("sweep point at %.0f%% disagrees with Compute", point.OccupancyPercent)
		}
	}
}
