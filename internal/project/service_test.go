package project

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/iwvelando/hotel-forecast/internal/calculator"
	"go.uber.org/zap"
)

// mockStore is an in-memory Store for unit tests.
type mockStore struct {
	projects map[string]SavedProject
	saveErr  error
	closed   bool
}

func newMockStore() *mockStore {
	return &mockStore{projects: make(map[string]SavedProject)}
}

func (m *mockStore) Save(ctx context.Context, p SavedProject) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.projects[p.ID] = p
	return nil
}

func (m *mockStore) Get(ctx context.Context, id string) (SavedProject, error) {
	p, ok := m.projects[id]
	if !ok {
		return SavedProject{}, ErrNotFound
	}
	return p, nil
}

func (m *mockStore) ListByUser(ctx context.Context, userID string) ([]SavedProject, error) {
	var out []SavedProject
	for _, p := range m.projects {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockStore) Delete(ctx context.Context, id string) error {
	if _, ok := m.projects[id]; !ok {
		return ErrNotFound
	}
	delete(m.projects, id)
	return nil
}

func (m *mockStore) Close() error {
	m.closed = true
	return nil
}

func newTestService(store Store) *Service {
	svc := NewService(zap.NewNop(), store)
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("00000000-0000-0000-0000-%012d", n)
	}
	return svc
}

func sampleInputs(name string) calculator.InputState {
	return calculator.InputState{
		PropertyName:           name,
		TotalRooms:             32,
		OccupancyPercent:       60,
		RoomPrice:              1200,
		RoundSRN:               true,
		MaintenanceCostPerRoom: 380,
	}
}

func TestServiceSaveNew(t *testing.T) {
	store := newMockStore()
	svc := newTestService(store)

	p, err := svc.Save(context.Background(), "alice", "", sampleInputs("Lakeview"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if p.ID == "" || p.UserID != "alice" || p.Name != "Lakeview" {
		t.Errorf("unexpected project %+v", p)
	}
	if p.Summary.MonthlyRevenue != 684000 {
		t.Errorf("Summary.MonthlyRevenue = %v, expected 684000", p.Summary.MonthlyRevenue)
	}
	if _, ok := store.projects[p.ID]; !ok {
		t.Errorf("project was not stored")
	}
}

func TestServiceSaveDefaultsName(t *testing.T) {
	svc := newTestService(newMockStore())
	p, err := svc.Save(context.Background(), "alice", "", sampleInputs("  "))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if p.Name != DefaultName {
		t.Errorf("Name = %q, expected %q", p.Name, DefaultName)
	}
}

func TestServiceSaveExisting(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		id      func(created SavedProject) string
		wantErr error
	}{
		{
			name:   "owner updates",
			userID: "alice",
			id:     func(created SavedProject) string { return created.ID },
		},
		{
			name:    "other user cannot overwrite",
			userID:  "bob",
			id:      func(created SavedProject) string { return created.ID },
			wantErr: ErrNotFound,
		},
		{
			name:    "malformed id",
			userID:  "alice",
			id:      func(SavedProject) string { return "not-a-uuid" },
			wantErr: ErrNotFound,
		},
		{
			name:    "empty user",
			userID:  "",
			id:      func(created SavedProject) string { return created.ID },
			wantErr: errors.New("user id cannot be empty"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(newMockStore())
			ctx := context.Background()
			created, err := svc.Save(ctx, "alice", "", sampleInputs("Original"))
			if err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			updatedInputs := sampleInputs("Renamed")
			updatedInputs.OccupancyPercent = 80
			updated, err := svc.Save(ctx, tt.userID, tt.id(created), updatedInputs)

			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("Save() expected error %v", tt.wantErr)
				}
				if errors.Is(tt.wantErr, ErrNotFound) && !errors.Is(err, ErrNotFound) {
					t.Errorf("Save() error = %v, expected ErrNotFound", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			if updated.ID != created.ID || updated.Name != "Renamed" {
				t.Errorf("unexpected update %+v", updated)
			}
			if !updated.LastModified.After(created.LastModified) {
				t.Errorf("LastModified not advanced: %v <= %v", updated.LastModified, created.LastModified)
			}
			if updated.Summary.MonthlyRevenue <= created.Summary.MonthlyRevenue {
				t.Errorf("Summary not recomputed: %+v", updated.Summary)
			}
		})
	}
}

func TestServiceSaveStoreError(t *testing.T) {
	store := newMockStore()
	store.saveErr = errors.New("disk full")
	svc := newTestService(store)

	if _, err := svc.Save(context.Background(), "alice", "", sampleInputs("X")); err == nil {
		t.Error("Save() expected store error")
	}
}

func TestServiceListNewestFirst(t *testing.T) {
	svc := newTestService(newMockStore())
	ctx := context.Background()
	for _, name := range []string{"First", "Second", "Third"} {
		if _, err := svc.Save(ctx, "alice", "", sampleInputs(name)); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}
	if _, err := svc.Save(ctx, "bob", "", sampleInputs("Other")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	projects, err := svc.List(ctx, "alice")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(projects) != 3 {
		t.Fatalf("Expected 3 projects, got %d", len(projects))
	}
	expected := []string{"Third", "Second", "First"}
	for i, name := range expected {
		if projects[i].Name != name {
			t.Errorf("projects[%d] = %s, expected %s", i, projects[i].Name, name)
		}
	}
}

func TestServiceReopen(t *testing.T) {
	store := newMockStore()
	svc := newTestService(store)
	ctx := context.Background()

	created, err := svc.Save(ctx, "alice", "", sampleInputs("Lakeview"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// A stale summary is replaced on reopen.
	stale := store.projects[created.ID]
	stale.Summary = MetricSummary{}
	store.projects[created.ID] = stale

	p, metrics, err := svc.Reopen(ctx, "alice", created.ID)
	if err != nil {
		t.Fatalf("Reopen() error = %v", err)
	}
	if metrics.SoldRooms != 19 {
		t.Errorf("SoldRooms = %v, expected 19", metrics.SoldRooms)
	}
	if p.Summary != Summarize(metrics) {
		t.Errorf("Summary = %+v, expected %+v", p.Summary, Summarize(metrics))
	}

	if _, _, err := svc.Reopen(ctx, "bob", created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Reopen() by other user error = %v, expected ErrNotFound", err)
	}
}

func TestServiceDelete(t *testing.T) {
	store := newMockStore()
	svc := newTestService(store)
	ctx := context.Background()

	created, err := svc.Save(ctx, "alice", "", sampleInputs("Lakeview"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := svc.Delete(ctx, "bob", created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() by other user error = %v, expected ErrNotFound", err)
	}
	if err := svc.Delete(ctx, "alice", created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.Get(ctx, "alice", created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, expected ErrNotFound", err)
	}
}

func TestSummarize(t *testing.T) {
	m := calculator.CalculationMetrics{MonthlyRevenue: 10, MonthlyNet: 5, ROI: 12.5, Valuation: 600}
	s := Summarize(m)
	if s.MonthlyRevenue != 10 || s.MonthlyNet != 5 || s.ROI != 12.5 || s.Valuation != 600 {
		t.Errorf("Summarize() = %+v", s)
	}
}
