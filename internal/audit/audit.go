package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Entities that audit entries attach to.
const (
	EntityProject = "project"
	EntityNotice  = "notice"
	EntityBilling = "billing"
	EntityPush    = "push"
)

// Entry is one append-only lifecycle event.
type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entity_id"`
	Action    string    `json:"action"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Repo persists audit entries. It deliberately stays on database/sql: the
// table is append-only and never joins the pgx pool's hot paths.
type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Record inserts one entry. The id and created_at are assigned here so the
// caller can log the entry even when the insert fails.
func (r *Repo) Record(ctx context.Context, e *Entry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	const q = `
INSERT INTO audit_logs (id, user_id, entity, entity_id, action, details, created_at)
VALUES ($1, $2::uuid, $3, $4, $5, $6, $7);`

	_, err := r.db.ExecContext(ctx, q, e.ID, e.UserID, e.Entity, e.EntityID, e.Action, e.Details, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// ListByEntity returns entries for one entity, newest first.
func (r *Repo) ListByEntity(ctx context.Context, userID, entity, entityID string, limit int) ([]Entry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	const q = `
SELECT id, user_id::text, entity, entity_id, action, COALESCE(details, ''), created_at
FROM audit_logs
WHERE user_id = $1::uuid AND entity = $2 AND entity_id = $3
ORDER BY created_at DESC
LIMIT $4;`

	rows, err := r.db.QueryContext(ctx, q, userID, entity, entityID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ListByUser returns a user's entries across all entities, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Entry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	const q = `
SELECT id, user_id::text, entity, entity_id, action, COALESCE(details, ''), created_at
FROM audit_logs
WHERE user_id = $1::uuid
ORDER BY created_at DESC
LIMIT $2 OFFSET $3;`

	rows, err := r.db.QueryContext(ctx, q, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	out := make([]Entry, 0, 16)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Entity, &e.EntityID, &e.Action, &e.Details, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
