package config

import (
	"bytes"
	"fmt"

	"github.com/iwvelando/hotel-forecast/internal/calculator"
	"gopkg.in/yaml.v3"
)

// ProjectInputs mirrors calculator.InputState as written in configuration
// files. Rates left unset fall back to the configured settings.
type ProjectInputs struct {
	TotalRooms             int                    `yaml:"totalRooms"`
	OccupancyPercent       float64                `yaml:"occupancyPercent"`
	RoomPrice              float64                `yaml:"roomPrice"`
	RoundSRN               bool                   `yaml:"roundSRN"`
	MaintenanceCostPerRoom float64                `yaml:"maintenanceCostPerRoom"`
	ExtraDeductions        []calculator.Deduction `yaml:"extraDeductions,omitempty"`

	IncludeFinancials bool     `yaml:"includeFinancials"`
	PropertyValue     float64  `yaml:"propertyValue"`
	LoanAmount        float64  `yaml:"loanAmount"`
	InterestRate      *float64 `yaml:"interestRate,omitempty"`
	LoanTermYears     float64  `yaml:"loanTermYears"`

	OTAPercent      *float64 `yaml:"otaPercent,omitempty"`
	MonthlyMG       float64  `yaml:"monthlyMg"`
	SecurityDeposit float64  `yaml:"securityDeposit"`
	BusinessAdvance float64  `yaml:"businessAdvance"`
}

// ToInputState converts the configured inputs to an engine snapshot,
// applying settings defaults for unset rates.
func (p ProjectInputs) ToInputState(name string, settings Settings) calculator.InputState {
	interestRate := settings.DefaultInterestRate
	if p.InterestRate != nil {
		interestRate = *p.InterestRate
	}
	otaPercent := settings.DefaultOTAPercent
	if p.OTAPercent != nil {
		otaPercent = *p.OTAPercent
	}

	deductions := make([]calculator.Deduction, len(p.ExtraDeductions))
	copy(deductions, p.ExtraDeductions)

	return calculator.InputState{
		PropertyName:           name,
		TotalRooms:             p.TotalRooms,
		OccupancyPercent:       p.OccupancyPercent,
		RoomPrice:              p.RoomPrice,
		RoundSRN:               p.RoundSRN,
		MaintenanceCostPerRoom: p.MaintenanceCostPerRoom,
		ExtraDeductions:        deductions,
		IncludeFinancials:      p.IncludeFinancials,
		PropertyValue:          p.PropertyValue,
		LoanAmount:             p.LoanAmount,
		InterestRate:           interestRate,
		LoanTermYears:          p.LoanTermYears,
		OTAPercent:             otaPercent,
		MonthlyMG:              p.MonthlyMG,
		SecurityDeposit:        p.SecurityDeposit,
		BusinessAdvance:        p.BusinessAdvance,
	}
}

// FromInputState is the inverse of ToInputState with every rate set explicitly.
func FromInputState(in calculator.InputState) ProjectInputs {
	interestRate := in.InterestRate
	otaPercent := in.OTAPercent
	deductions := make([]calculator.Deduction, len(in.ExtraDeductions))
	copy(deductions, in.ExtraDeductions)

	return ProjectInputs{
		TotalRooms:             in.TotalRooms,
		OccupancyPercent:       in.OccupancyPercent,
		RoomPrice:              in.RoomPrice,
		RoundSRN:               in.RoundSRN,
		MaintenanceCostPerRoom: in.MaintenanceCostPerRoom,
		ExtraDeductions:        deductions,
		IncludeFinancials:      in.IncludeFinancials,
		PropertyValue:          in.PropertyValue,
		LoanAmount:             in.LoanAmount,
		InterestRate:           &interestRate,
		LoanTermYears:          in.LoanTermYears,
		OTAPercent:             &otaPercent,
		MonthlyMG:              in.MonthlyMG,
		SecurityDeposit:        in.SecurityDeposit,
		BusinessAdvance:        in.BusinessAdvance,
	}
}

// ExportProject renders in as a single active project configuration that the
// CLI can forecast without the settings it was saved under.
func ExportProject(in calculator.InputState, settings Settings) ([]byte, error) {
	conf := Configuration{
		Settings: normalizeSettings(settings),
		Projects: []Project{{
			Name:   in.PropertyName,
			Active: true,
			Inputs: FromInputState(in),
		}},
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(conf); err != nil {
		return nil, fmt.Errorf("error encoding project %s: %w", in.PropertyName, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("error encoding project %s: %w", in.PropertyName, err)
	}
	return buf.Bytes(), nil
}
