package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/iwvelando/hotel-forecast/internal/calculator"
	"github.com/iwvelando/hotel-forecast/internal/project"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// projectRecord is the gorm model of a saved project.
type projectRecord struct {
	ID           string                                    `gorm:"primaryKey;size:36"`
	UserID       string                                    `gorm:"index:idx_saved_projects_user;not null"`
	Name         string                                    `gorm:"not null"`
	LastModified time.Time                                 `gorm:"index:idx_saved_projects_user;not null"`
	Inputs       datatypes.JSONType[calculator.InputState] `gorm:"not null"`
	Summary      datatypes.JSONType[project.MetricSummary] `gorm:"not null"`
}

func (projectRecord) TableName() string {
	return "saved_projects"
}

func toRecord(p project.SavedProject) projectRecord {
	return projectRecord{
		ID:           p.ID,
		UserID:       p.UserID,
		Name:         p.Name,
		LastModified: p.LastModified.UTC(),
		Inputs:       datatypes.NewJSONType(p.Inputs),
		Summary:      datatypes.NewJSONType(p.Summary),
	}
}

func (r projectRecord) toProject() project.SavedProject {
	return project.SavedProject{
		ID:           r.ID,
		UserID:       r.UserID,
		Name:         r.Name,
		LastModified: r.LastModified.UTC(),
		Inputs:       r.Inputs.Data(),
		Summary:      r.Summary.Data(),
	}
}

// SQLiteStore keeps projects in a local SQLite database through gorm.
type SQLiteStore struct {
	db *gorm.DB
}

// NewSQLiteStore opens (and migrates) the database at path. Use
// "file::memory:?cache=shared" for a throwaway database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	return newSQLiteStore(db)
}

func newSQLiteStore(db *gorm.DB) (*SQLiteStore, error) {
	if err := db.AutoMigrate(&projectRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate saved_projects: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, p project.SavedProject) error {
	record := toRecord(p)
	return s.db.WithContext(ctx).Save(&record).Error
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (project.SavedProject, error) {
	var record projectRecord
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return project.SavedProject{}, ErrNotFound
		}
		return project.SavedProject{}, err
	}
	return record.toProject(), nil
}

func (s *SQLiteStore) ListByUser(ctx context.Context, userID string) ([]project.SavedProject, error) {
	var records []projectRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_modified DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	projects := make([]project.SavedProject, 0, len(records))
	for _, record := range records {
		projects = append(projects, record.toProject())
	}
	return projects, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&projectRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
