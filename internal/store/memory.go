package store

import (
	"context"
	"sort"
	"sync"

	"github.com/iwvelando/hotel-forecast/internal/calculator"
	"github.com/iwvelando/hotel-forecast/internal/project"
)

// MemoryStore keeps projects in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string]project.SavedProject
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{projects: make(map[string]project.SavedProject)}
}

func (s *MemoryStore) Save(ctx context.Context, p project.SavedProject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[p.ID] = clone(p)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (project.SavedProject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return project.SavedProject{}, ErrNotFound
	}
	return clone(p), nil
}

func (s *MemoryStore) ListByUser(ctx context.Context, userID string) ([]project.SavedProject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []project.SavedProject
	for _, p := range s.projects {
		if p.UserID == userID {
			out = append(out, clone(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastModified.After(out[j].LastModified)
	})
	return out, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return ErrNotFound
	}
	delete(s.projects, id)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// clone copies the deductions so callers cannot mutate stored state.
func clone(p project.SavedProject) project.SavedProject {
	if p.Inputs.ExtraDeductions != nil {
		deductions := make([]calculator.Deduction, len(p.Inputs.ExtraDeductions))
		copy(deductions, p.Inputs.ExtraDeductions)
		p.Inputs.ExtraDeductions = deductions
	}
	return p
}
