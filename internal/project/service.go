package project

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/hotel-forecast/internal/calculator"
	"github.com/iwvelando/hotel-forecast/internal/logging"
	"go.uber.org/zap"
)

// Service builds, saves and reopens projects through a Store.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewService constructs a Service backed by store.
func NewService(logger *zap.Logger, store Store) *Service {
	logger = logging.OrNop(logger)
	return &Service{
		store:  store,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  func() string { return uuid.NewString() },
	}
}

// Save stores inputs as a project owned by userID. An empty id creates a new
// project; an existing id must belong to the same user. The summary is
// recomputed from the inputs on every save.
func (s *Service) Save(ctx context.Context, userID, id string, inputs calculator.InputState) (SavedProject, error) {
	if strings.TrimSpace(userID) == "" {
		return SavedProject{}, fmt.Errorf("user id cannot be empty")
	}

	if id == "" {
		id = s.newID()
	} else {
		if _, err := uuid.Parse(id); err != nil {
			return SavedProject{}, fmt.Errorf("invalid project id %q: %w", id, ErrNotFound)
		}
		existing, err := s.store.Get(ctx, id)
		switch {
		case err == nil && existing.UserID != userID:
			return SavedProject{}, ErrNotFound
		case err != nil && !errors.Is(err, ErrNotFound):
			return SavedProject{}, fmt.Errorf("failed to load project %s: %w", id, err)
		}
	}

	name := strings.TrimSpace(inputs.PropertyName)
	if name == "" {
		name = DefaultName
	}

	p := SavedProject{
		ID:           id,
		UserID:       userID,
		Name:         name,
		LastModified: s.now(),
		Inputs:       inputs,
		Summary:      Summarize(calculator.Compute(inputs)),
	}
	if err := s.store.Save(ctx, p); err != nil {
		return SavedProject{}, fmt.Errorf("failed to save project %s: %w", id, err)
	}

	s.logger.Info("saved project",
		zap.String("op", "project.Save"),
		zap.String("user", userID),
		zap.String("id", id),
		zap.String("name", name),
	)
	return p, nil
}

// Get returns the project id if it belongs to userID.
func (s *Service) Get(ctx context.Context, userID, id string) (SavedProject, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return SavedProject{}, err
	}
	if p.UserID != userID {
		return SavedProject{}, ErrNotFound
	}
	return p, nil
}

// List returns the projects of userID, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]SavedProject, error) {
	projects, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].LastModified.After(projects[j].LastModified)
	})
	return projects, nil
}

// Reopen loads a project and recomputes its metrics from the stored inputs.
func (s *Service) Reopen(ctx context.Context, userID, id string) (SavedProject, calculator.CalculationMetrics, error) {
	p, err := s.Get(ctx, userID, id)
	if err != nil {
		return SavedProject{}, calculator.CalculationMetrics{}, err
	}
	metrics := calculator.Compute(p.Inputs)
	p.Summary = Summarize(metrics)
	return p, metrics, nil
}

// Delete removes the project id if it belongs to userID.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("deleted project",
		zap.String("op", "project.Delete"),
		zap.String("user", userID),
		zap.String("id", id),
	)
	return nil
}
