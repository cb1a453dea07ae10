// Package store persists computed skeleton jobs in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// ErrNotFound is returned by Get for unknown job ids.
var ErrNotFound = errors.New("store: job not found")

// Job is one computed skeleton: the input polygon, the result in WKT and
// SVG form, and summary counts.
type Job struct {
	ID               string
	PolygonWKT       string
	SkeletonWKT      string
	SVG              string
	SkeletonVertices int
	Bisectors        int
	CreatedAt        time.Time
}

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the job database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Init creates the schema.
func (s *Store) Init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS jobs (
            id                TEXT PRIMARY KEY,
            polygon_wkt       TEXT NOT NULL,
            skeleton_wkt      TEXT NOT NULL,
            svg               TEXT NOT NULL,
            skeleton_vertices INTEGER NOT NULL,
            bisectors         INTEGER NOT NULL,
            created_at        TIMESTAMP NOT NULL
        )
    `)
	if err != nil {
		return fmt.Errorf("store: migrate: %w", err)
	}
	return nil
}

func (s *Store) Save(ctx context.Context, j *Job) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO jobs (id, polygon_wkt, skeleton_wkt, svg, skeleton_vertices, bisectors, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `, j.ID, j.PolygonWKT, j.SkeletonWKT, j.SVG, j.SkeletonVertices, j.Bisectors, j.CreatedAt)
	if err != nil {
		return fmt.Errorf("store: save: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*Job, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, polygon_wkt, skeleton_wkt, svg, skeleton_vertices, bisectors, created_at
        FROM jobs
        WHERE id = ?
    `, id)

	var j Job
	if err := row.Scan(&j.ID, &j.PolygonWKT, &j.SkeletonWKT, &j.SVG, &j.SkeletonVertices, &j.Bisectors, &j.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: get: %w", err)
	}
	return &j, nil
}
