package catalog

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
	pgUniqueCode = "23505"
)

// PostgresStore expects a courses table with the nine course columns plus
// a BIGSERIAL seq column preserving append order; code carries a unique
// index.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresStore) LoadAll(ctx context.Context) ([]Course, error) {
	var out []Course

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT code, name, instructor, semester, schedule,
			       classroom, prerequisites, grading, description
			FROM courses
			ORDER BY seq ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Course, 0, 16)
		for rows.Next() {
			var c Course
			if err := rows.Scan(&c.Code, &c.Name, &c.Instructor, &c.Semester,
				&c.Schedule, &c.Classroom, &c.Prerequisites, &c.Grading,
				&c.Description); err != nil {
				return err
			}
			out = append(out, c)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) Append(ctx context.Context, c Course) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO courses (code, name, instructor, semester, schedule,
			                     classroom, prerequisites, grading, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, c.Code, c.Name, c.Instructor, c.Semester, c.Schedule,
			c.Classroom, c.Prerequisites, c.Grading, c.Description)

		if err == nil {
			return nil
		}
		if isUniqueViolation(err) {
			return ErrDuplicateCode
		}
		return err
	})
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueCode
}
