package forecast

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/iwvelando/hotel-forecast/internal/calculator"
	"github.com/iwvelando/hotel-forecast/internal/config"
	"go.uber.org/zap"
)

func TestGetForecast(t *testing.T) {
	conf := config.Configuration{
		Settings: config.DefaultSettings(),
		Projects: []config.Project{
			{
				Name:   "Active",
				Active: true,
				Inputs: config.ProjectInputs{TotalRooms: 32, OccupancyPercent: 60, RoomPrice: 1200, RoundSRN: true},
			},
			{
				Name:   "Inactive",
				Active: false,
				Inputs: config.ProjectInputs{TotalRooms: 10, OccupancyPercent: 50, RoomPrice: 1000},
			},
		},
	}

	results, err := GetForecast(zap.NewNop(), conf)
	if err != nil {
		t.Fatalf("GetForecast() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 forecast, got %d", len(results))
	}

	result := results[0]
	if result.Name != "Active" {
		t.Errorf("Expected forecast name Active, got %s", result.Name)
	}
	if result.Metrics.MonthlyRevenue != 684000 {
		t.Errorf("Expected monthly revenue 684000, got %v", result.Metrics.MonthlyRevenue)
	}
	if len(result.Sweep) != 11 {
		t.Errorf("Expected 11 sweep points, got %d", len(result.Sweep))
	}
	if len(result.Suggestions) != 3 {
		t.Errorf("Expected 3 suggestions, got %d", len(result.Suggestions))
	}
	if result.LoanSchedule != nil {
		t.Errorf("Expected no loan schedule without financing, got %d years", len(result.LoanSchedule))
	}
	if result.Inputs.OTAPercent != conf.Settings.DefaultOTAPercent {
		t.Errorf("Expected default OTA percent %v, got %v", conf.Settings.DefaultOTAPercent, result.Inputs.OTAPercent)
	}
}

func TestGetForecastNoActiveProjects(t *testing.T) {
	conf := config.Configuration{
		Projects: []config.Project{{Name: "Off", Active: false}},
	}
	_, err := GetForecast(nil, conf)
	if !errors.Is(err, ErrNoActiveProjects) {
		t.Errorf("GetForecast() error = %v, expected ErrNoActiveProjects", err)
	}
}

func TestGetForecastRealistic(t *testing.T) {
	conf, err := config.LoadConfiguration("../../test/test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	results, err := GetForecast(zap.NewNop(), *conf)
	if err != nil {
		t.Fatalf("GetForecast() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 active forecasts, got %d", len(results))
	}

	lakeview := results[0]
	if lakeview.Inputs.InterestRate != 10.5 {
		t.Errorf("Expected default interest rate 10.5, got %v", lakeview.Inputs.InterestRate)
	}
	if math.Abs(lakeview.Metrics.MonthlyEMI-13493.50) > 0.01 {
		t.Errorf("Expected EMI 13493.50, got %.4f", lakeview.Metrics.MonthlyEMI)
	}
	if math.Abs(lakeview.Metrics.MonthlyNet-(344280-90000)) > 1e-6 {
		t.Errorf("Expected monthly net 254280, got %.4f", lakeview.Metrics.MonthlyNet)
	}
	if len(lakeview.Notes) != 0 {
		t.Errorf("Expected no notes for a healthy project, got %v", lakeview.Notes)
	}
	if len(lakeview.LoanSchedule) != 10 {
		t.Fatalf("Expected a 10 year loan schedule, got %d years", len(lakeview.LoanSchedule))
	}
	if last := lakeview.LoanSchedule[9]; last.RemainingPrincipal != 0 {
		t.Errorf("Expected the loan to be settled in year 10, %.2f remains", last.RemainingPrincipal)
	}
	principal := 0.0
	for _, year := range lakeview.LoanSchedule {
		principal += year.Principal
	}
	if math.Abs(principal-1000000) > 0.05 {
		t.Errorf("Expected schedule principal to sum to the loan, got %.2f", principal)
	}

	hilltop := results[1]
	if hilltop.Metrics.MonthlyCashFlow >= 0 {
		t.Fatalf("Expected negative cash flow for Hilltop Inn, got %v", hilltop.Metrics.MonthlyCashFlow)
	}
	if !containsNote(hilltop.Notes, "monthly cash flow is negative") {
		t.Errorf("Expected negative cash flow note, got %v", hilltop.Notes)
	}
}

func TestNotes(t *testing.T) {
	base := calculator.InputState{
		TotalRooms:             32,
		OccupancyPercent:       60,
		RoomPrice:              1200,
		RoundSRN:               true,
		MaintenanceCostPerRoom: 380,
		OTAPercent:             15,
		MonthlyMG:              150000,
	}

	tests := []struct {
		name     string
		modify   func(*calculator.InputState)
		expected []string
	}{
		{
			name:   "healthy deal",
			modify: func(*calculator.InputState) {},
		},
		{
			name:     "guarantee beyond full occupancy",
			modify:   func(in *calculator.InputState) { in.MonthlyMG = 1000000 },
			expected: []string{"exceeds full occupancy", "never recovered"},
		},
		{
			name:     "unreachable break-even",
			modify:   func(in *calculator.InputState) { in.MaintenanceCostPerRoom = 5000 },
			expected: []string{"no occupancy covers", "monthly cash flow is negative"},
		},
		{
			name: "never pays back",
			modify: func(in *calculator.InputState) {
				in.MonthlyMG = 0
				in.IncludeFinancials = true
				in.PropertyValue = 1000000
				in.ExtraDeductions = []calculator.Deduction{{ID: "x", Name: "Lease", Amount: 1000000}}
			},
			expected: []string{"never pays back", "monthly cash flow is negative"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.modify(&in)
			notes := Notes(in, calculator.Compute(in), "₹")
			if len(tt.expected) == 0 && len(notes) != 0 {
				t.Errorf("Expected no notes, got %v", notes)
			}
			for _, want := range tt.expected {
				if !containsNote(notes, want) {
					t.Errorf("Notes() = %v, expected one containing %q", notes, want)
				}
			}
		})
	}
}

func containsNote(notes []string, fragment string) bool {
	for _, note := range notes {
		if strings.Contains(note, fragment) {
			return true
		}
	}
	return false
}
