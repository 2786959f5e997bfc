// internal/app/store/activities/pgstore.go
package activitystore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/activityhub/internal/domain/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS activities (
	name             TEXT PRIMARY KEY,
	position         INTEGER NOT NULL,
	category         TEXT NOT NULL DEFAULT '',
	description      TEXT NOT NULL DEFAULT '',
	schedule         TEXT NOT NULL DEFAULT '',
	max_participants INTEGER NOT NULL CHECK (max_participants > 0)
);

CREATE TABLE IF NOT EXISTS participants (
	seq           BIGSERIAL PRIMARY KEY,
	activity_name TEXT NOT NULL REFERENCES activities(name) ON DELETE CASCADE,
	email         TEXT NOT NULL,
	registered_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (activity_name, email)
);
`

// Postgres is a Store backed by the activities and participants tables.
// Roster order is registration order (participants.seq).
type Postgres struct {
	db *pgxpool.Pool
}

// NewPostgres creates a Postgres store on pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{db: pool}
}

// EnsureSchema creates the tables if they do not exist.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, pgSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Seed inserts acts when the activities table is empty.
func (s *Postgres) Seed(ctx context.Context, acts []models.Activity) (int, error) {
	var n int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM activities`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count activities: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	inserted := 0
	for i, a := range acts {
		tag, err := s.db.Exec(ctx,
			`INSERT INTO activities (name, position, category, description, schedule, max_participants)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (name) DO NOTHING`,
			a.Name, i, a.Category, a.Description, a.Schedule, a.MaxParticipants,
		)
		if err != nil {
			return inserted, fmt.Errorf("seed %q: %w", a.Name, err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

func (s *Postgres) List(ctx context.Context) (models.Collection, error) {
	rows, err := s.db.Query(ctx,
		`SELECT name, category, description, schedule, max_participants
		 FROM activities
		 ORDER BY position, name`,
	)
	if err != nil {
		return models.Collection{}, fmt.Errorf("list activities: %w", err)
	}
	var acts []models.Activity
	for rows.Next() {
		a := models.Activity{Participants: []string{}}
		if err := rows.Scan(&a.Name, &a.Category, &a.Description, &a.Schedule, &a.MaxParticipants); err != nil {
			rows.Close()
			return models.Collection{}, fmt.Errorf("scan activity: %w", err)
		}
		acts = append(acts, a)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return models.Collection{}, err
	}

	c := models.NewCollection(acts...)

	prows, err := s.db.Query(ctx, `SELECT activity_name, email FROM participants ORDER BY seq`)
	if err != nil {
		return models.Collection{}, fmt.Errorf("list participants: %w", err)
	}
	defer prows.Close()
	for prows.Next() {
		var name, email string
		if err := prows.Scan(&name, &email); err != nil {
			return models.Collection{}, fmt.Errorf("scan participant: %w", err)
		}
		if a, ok := c.Get(name); ok {
			a.Participants = append(a.Participants, email)
			c.Put(a)
		}
	}
	return c, prows.Err()
}

// Signup locks the activity row for the duration of the check-then-insert
// so two concurrent signups cannot both take the last spot.
func (s *Postgres) Signup(ctx context.Context, activity, email string) (msg string, err error) {
	email = NormalizeEmail(email)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var capacity int
	err = tx.QueryRow(ctx,
		`SELECT max_participants FROM activities WHERE name = $1 FOR UPDATE`,
		activity,
	).Scan(&capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrActivityNotFound
		}
		return "", fmt.Errorf("lock activity row: %w", err)
	}

	var taken, dup int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE email = $2)
		 FROM participants WHERE activity_name = $1`,
		activity, email,
	).Scan(&taken, &dup)
	if err != nil {
		return "", fmt.Errorf("count participants: %w", err)
	}
	if dup > 0 {
		return "", ErrAlreadySignedUp
	}
	if taken >= capacity {
		return "", ErrActivityFull
	}

	if _, err = tx.Exec(ctx,
		`INSERT INTO participants (activity_name, email) VALUES ($1, $2)`,
		activity, email,
	); err != nil {
		return "", fmt.Errorf("insert participant: %w", err)
	}
	if err = tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return signedUpMessage(activity, email), nil
}

func (s *Postgres) Remove(ctx context.Context, activity, email string) (string, error) {
	email = NormalizeEmail(email)

	tag, err := s.db.Exec(ctx,
		`DELETE FROM participants WHERE activity_name = $1 AND email = $2`,
		activity, email,
	)
	if err != nil {
		return "", fmt.Errorf("delete participant: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return removedMessage(activity, email), nil
	}

	var exists bool
	if err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM activities WHERE name = $1)`, activity,
	).Scan(&exists); err != nil {
		return "", fmt.Errorf("check activity: %w", err)
	}
	if !exists {
		return "", ErrActivityNotFound
	}
	return "", ErrParticipantNotFound
}

func (s *Postgres) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
