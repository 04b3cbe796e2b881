package notices

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prelimpro/prelimpro-backend/internal/projects"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const docCols = `public_id, project_id, state, title, body,
coalesce(storage_key, ''), status, coalesce(tracking_number, ''),
sent_at, delivered_at, coalesce(proof_key, ''), created_at, updated_at`

func scanDoc(row pgx.Row) (*Document, error) {
	var d Document
	err := row.Scan(&d.PublicID, &d.ProjectID, &d.State, &d.Title, &d.Body,
		&d.StorageKey, &d.Status, &d.TrackingNumber, &d.SentAt, &d.DeliveredAt,
		&d.ProofKey, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// Insert stores a freshly generated document.
func (r *Repo) Insert(ctx context.Context, userDBID string, d *Document) (*Document, error) {
	for i := 0; i < 5; i++ {
		publicID, err := projects.NewPublicID("notice")
		if err != nil {
			return nil, err
		}

		q := `
insert into notice_documents (public_id, user_id, project_id, state, title, body, storage_key, status)
values ($1, $2::uuid, $3, $4, $5, $6, nullif($7,''), $8)
returning ` + docCols + `;`

		out, err := scanDoc(r.db.QueryRow(ctx, q, publicID, userDBID,
			d.ProjectID, d.State, d.Title, d.Body, d.StorageKey, d.Status))
		if err == nil {
			return out, nil
		}

		// unique violation on public_id → retry
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("failed to generate unique notice id")
}

func (r *Repo) Get(ctx context.Context, userDBID, publicID string) (*Document, error) {
	q := `
select ` + docCols + `
from notice_documents
where user_id = $1::uuid and public_id = $2;`

	return scanDoc(r.db.QueryRow(ctx, q, userDBID, publicID))
}

// GetAnyUser looks a document up by public id alone, used by the delivery
// callback where there is no authenticated user. Returns the owner's id too.
func (r *Repo) GetAnyUser(ctx context.Context, publicID string) (*Document, string, error) {
	q := `
select ` + docCols + `, user_id::text
from notice_documents
where public_id = $1;`

	var d Document
	var userID string
	err := r.db.QueryRow(ctx, q, publicID).Scan(
		&d.PublicID, &d.ProjectID, &d.State, &d.Title, &d.Body,
		&d.StorageKey, &d.Status, &d.TrackingNumber, &d.SentAt, &d.DeliveredAt,
		&d.ProofKey, &d.CreatedAt, &d.UpdatedAt, &userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}
	return &d, userID, nil
}

func (r *Repo) ListByProject(ctx context.Context, userDBID, projectID string) ([]Document, error) {
	q := `
select ` + docCols + `
from notice_documents
where user_id = $1::uuid and project_id = $2
order by created_at desc;`

	rows, err := r.db.Query(ctx, q, userDBID, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Document, 0, 8)
	for rows.Next() {
		d, err := scanDoc(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

// statusUpdate applies one transition and the fields that travel with it.
type statusUpdate struct {
	Status         string
	TrackingNumber *string
	SentAt         *time.Time
	DeliveredAt    *time.Time
	ProofKey       *string
}

func (r *Repo) updateStatus(ctx context.Context, publicID string, u statusUpdate) (*Document, error) {
	q := `
update notice_documents
set status = $2,
    tracking_number = coalesce($3, tracking_number),
    sent_at = coalesce($4, sent_at),
    delivered_at = coalesce($5, delivered_at),
    proof_key = coalesce($6, proof_key),
    updated_at = now()
where public_id = $1
returning ` + docCols + `;`

	return scanDoc(r.db.QueryRow(ctx, q, publicID,
		u.Status, u.TrackingNumber, u.SentAt, u.DeliveredAt, u.ProofKey))
}
