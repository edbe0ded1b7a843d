package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iwvelando/hotel-forecast/internal/project"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS saved_projects (
	id            TEXT PRIMARY KEY,
	user_id       TEXT NOT NULL,
	name          TEXT NOT NULL,
	last_modified TIMESTAMPTZ NOT NULL,
	inputs        JSONB NOT NULL,
	summary       JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_saved_projects_user ON saved_projects (user_id, last_modified DESC);
`

// PostgresStore keeps projects in PostgreSQL with the inputs as JSONB documents.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to dsn and creates the schema if needed.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create saved_projects schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Save(ctx context.Context, p project.SavedProject) error {
	inputs, err := json.Marshal(p.Inputs)
	if err != nil {
		return fmt.Errorf("failed to encode inputs: %w", err)
	}
	summary, err := json.Marshal(p.Summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO saved_projects (id, user_id, name, last_modified, inputs, summary)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE
		 SET user_id = EXCLUDED.user_id,
		     name = EXCLUDED.name,
		     last_modified = EXCLUDED.last_modified,
		     inputs = EXCLUDED.inputs,
		     summary = EXCLUDED.summary`,
		p.ID, p.UserID, p.Name, p.LastModified.UTC(), inputs, summary,
	)
	return err
}

func (s *PostgresStore) Get(ctx context.Context, id string) (project.SavedProject, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, user_id, name, last_modified, inputs, summary
		 FROM saved_projects
		 WHERE id = $1`,
		id,
	)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return project.SavedProject{}, ErrNotFound
		}
		return project.SavedProject{}, err
	}
	return p, nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string) ([]project.SavedProject, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, name, last_modified, inputs, summary
		 FROM saved_projects
		 WHERE user_id = $1
		 ORDER BY last_modified DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []project.SavedProject
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM saved_projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanProject(row pgx.Row) (project.SavedProject, error) {
	var p project.SavedProject
	var inputs, summary []byte
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.LastModified, &inputs, &summary); err != nil {
		return project.SavedProject{}, err
	}
	if err := json.Unmarshal(inputs, &p.Inputs); err != nil {
		return project.SavedProject{}, fmt.Errorf("failed to decode inputs of %s: %w", p.ID, err)
	}
	if err := json.Unmarshal(summary, &p.Summary); err != nil {
		return project.SavedProject{}, fmt.Errorf("failed to decode summary of %s: %w", p.ID, err)
	}
	p.LastModified = p.LastModified.UTC()
	return p, nil
}
