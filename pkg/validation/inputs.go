package validation

import (
	"fmt"
	"math"

	"github.com/iwvelando/hotel-forecast/internal/calculator"
)

// ValidateInputs returns human readable warnings for inputs the engine will
// silently coerce or that make the financing figures meaningless. An empty
// result means the inputs are taken as given.
func ValidateInputs(in calculator.InputState) []string {
	var warnings []string

	if in.TotalRooms < 0 {
		warnings = append(warnings, fmt.Sprintf("total rooms is negative (%d) and is treated as 0", in.TotalRooms))
	}

	nonNegative := []struct {
		name  string
		value float64
	}{
		{"room price", in.RoomPrice},
		{"maintenance cost per room", in.MaintenanceCostPerRoom},
		{"property value", in.PropertyValue},
		{"loan amount", in.LoanAmount},
		{"interest rate", in.InterestRate},
		{"loan term", in.LoanTermYears},
		{"OTA percent", in.OTAPercent},
		{"monthly minimum guarantee", in.MonthlyMG},
		{"security deposit", in.SecurityDeposit},
		{"business advance", in.BusinessAdvance},
	}
	for _, field := range nonNegative {
		if math.IsNaN(field.value) || math.IsInf(field.value, 0) {
			warnings = append(warnings, fmt.Sprintf("%s is not a finite number and is treated as 0", field.name))
			continue
		}
		if field.value < 0 {
			warnings = append(warnings, fmt.Sprintf("%s is negative (%.2f) and is treated as 0", field.name, field.value))
		}
	}

	if in.OccupancyPercent < 0 || in.OccupancyPercent > 100 {
		warnings = append(warnings, fmt.Sprintf("occupancy %.2f%% is outside 0-100%%", in.OccupancyPercent))
	}
	if in.OTAPercent > 100 {
		warnings = append(warnings, fmt.Sprintf("OTA percent %.2f%% exceeds 100%%", in.OTAPercent))
	}

	for _, deduction := range in.ExtraDeductions {
		if deduction.Amount < 0 {
			warnings = append(warnings, fmt.Sprintf("deduction '%s' is negative (%.2f) and is treated as 0", deduction.Name, deduction.Amount))
		}
	}

	if in.IncludeFinancials {
		if in.PropertyValue <= 0 {
			warnings = append(warnings, "financing is enabled without a property value; ROI and payback are not computed")
		}
		if in.LoanAmount > 0 && in.PropertyValue > 0 && in.LoanAmount > in.PropertyValue {
			warnings = append(warnings, fmt.Sprintf("loan amount %.2f exceeds property value %.2f; equity is treated as 0",
				in.LoanAmount, in.PropertyValue))
		}
		if in.LoanAmount > 0 && in.LoanTermYears <= 0 {
			warnings = append(warnings, "loan amount is set without a loan term; no EMI is charged")
		}
	}

	return warnings
}
