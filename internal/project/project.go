// Package project manages saved hotel projects: the input snapshot, a summary
// of the headline metrics and the store they live in.
package project

import (
	"context"
	"errors"
	"time"

	"github.com/iwvelando/hotel-forecast/internal/calculator"
)

// ErrNotFound is returned when a requested project does not exist or belongs
// to another user.
var ErrNotFound = errors.New("project not found")

// DefaultName names projects saved without a property name.
const DefaultName = "Untitled property"

// MetricSummary is the part of the metrics shown in project lists.
type MetricSummary struct {
	MonthlyRevenue float64 `json:"monthlyRevenue"`
	MonthlyNet     float64 `json:"monthlyNet"`
	ROI            float64 `json:"roi"`
	Valuation      float64 `json:"valuation"`
}

// Summarize projects the list summary out of full metrics.
func Summarize(m calculator.CalculationMetrics) MetricSummary {
	return MetricSummary{
		MonthlyRevenue: m.MonthlyRevenue,
		MonthlyNet:     m.MonthlyNet,
		ROI:            m.ROI,
		Valuation:      m.Valuation,
	}
}

// SavedProject is a named input snapshot owned by a user.
type SavedProject struct {
	ID           string                `json:"id"`
	UserID       string                `json:"userId"`
	Name         string                `json:"name"`
	LastModified time.Time             `json:"lastModified"`
	Inputs       calculator.InputState `json:"inputs"`
	Summary      MetricSummary         `json:"summary"`
}

// Store persists saved projects. Get and Delete return ErrNotFound for
// unknown ids; ListByUser returns projects newest first.
type Store interface {
	Save(ctx context.Context, p SavedProject) error
	Get(ctx context.Context, id string) (SavedProject, error)
	ListByUser(ctx context.Context, userID string) ([]SavedProject, error)
	Delete(ctx context.Context, id string) error
	Close() error
}
