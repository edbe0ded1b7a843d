// Package calculator implements the hotel metrics engine: a pure pipeline that
// turns the property parameters of a project into revenue, deduction, deal
// sheet and financing metrics.
package calculator

import (
	"github.com/iwvelando/hotel-forecast/pkg/mathutil"
)

// Deduction is a named ad-hoc monthly deduction.
type Deduction struct {
	ID     string  `json:"id" yaml:"id"`
	Name   string  `json:"name" yaml:"name"`
	Amount float64 `json:"amount" yaml:"amount"`
}

// InputState is a snapshot of the property form.
type InputState struct {
	PropertyName           string      `json:"propertyName" yaml:"propertyName"`
	TotalRooms             int         `json:"totalRooms" yaml:"totalRooms"`
	OccupancyPercent       float64     `json:"occupancyPercent" yaml:"occupancyPercent"`
	RoomPrice              float64     `json:"roomPrice" yaml:"roomPrice"`
	RoundSRN               bool        `json:"roundSRN" yaml:"roundSRN"`
	MaintenanceCostPerRoom float64     `json:"maintenanceCostPerRoom" yaml:"maintenanceCostPerRoom"`
	ExtraDeductions        []Deduction `json:"extraDeductions,omitempty" yaml:"extraDeductions,omitempty"`

	IncludeFinancials bool    `json:"includeFinancials" yaml:"includeFinancials"`
	PropertyValue     float64 `json:"propertyValue" yaml:"propertyValue"`
	LoanAmount        float64 `json:"loanAmount" yaml:"loanAmount"`
	InterestRate      float64 `json:"interestRate" yaml:"interestRate"` // annual %
	LoanTermYears     float64 `json:"loanTermYears" yaml:"loanTermYears"`

	OTAPercent      float64 `json:"otaPercent" yaml:"otaPercent"`
	MonthlyMG       float64 `json:"monthlyMg" yaml:"monthlyMg"`
	SecurityDeposit float64 `json:"securityDeposit" yaml:"securityDeposit"`
	BusinessAdvance float64 `json:"businessAdvance" yaml:"businessAdvance"`
}

// ExtraDeductionsTotal sums the monthly extra deductions, counting negative or
// non-finite amounts as zero.
func (in InputState) ExtraDeductionsTotal() float64 {
	total := 0.0
	for _, deduction := range in.ExtraDeductions {
		total += mathutil.NonNegative(deduction.Amount)
	}
	return total
}

// sanitized returns a copy safe for arithmetic. Occupancy keeps its sign since
// out of range values are the caller's concern; everything else that cannot
// be negative is floored at zero.
func (in InputState) sanitized() InputState {
	out := in
	if out.TotalRooms < 0 {
		out.TotalRooms = 0
	}
	out.OccupancyPercent = mathutil.Finite(out.OccupancyPercent)
	out.RoomPrice = mathutil.NonNegative(out.RoomPrice)
	out.MaintenanceCostPerRoom = mathutil.NonNegative(out.MaintenanceCostPerRoom)
	out.PropertyValue = mathutil.NonNegative(out.PropertyValue)
	out.LoanAmount = mathutil.NonNegative(out.LoanAmount)
	out.InterestRate = mathutil.NonNegative(out.InterestRate)
	out.LoanTermYears = mathutil.NonNegative(out.LoanTermYears)
	out.OTAPercent = mathutil.NonNegative(out.OTAPercent)
	out.MonthlyMG = mathutil.NonNegative(out.MonthlyMG)
	out.SecurityDeposit = mathutil.NonNegative(out.SecurityDeposit)
	out.BusinessAdvance = mathutil.NonNegative(out.BusinessAdvance)
	return out
}
