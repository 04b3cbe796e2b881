package projects

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const projectCols = `public_id, name, owner_name, owner_address, gc_name,
coalesce(lender_name, ''), property_address, coalesce(legal_description, ''),
contract_amount_cents, state, furnishing_date, notice_deadline, status,
created_at, updated_at`

func scanProject(row pgx.Row) (*Project, error) {
	var p Project
	err := row.Scan(&p.PublicID, &p.Name, &p.OwnerName, &p.OwnerAddress,
		&p.GCName, &p.LenderName, &p.PropertyAddress, &p.LegalDescription,
		&p.ContractCents, &p.State, &p.FurnishingDate, &p.NoticeDeadline,
		&p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// NewProject carries the fields accepted at creation time.
type NewProject struct {
	Name             string
	OwnerName        string
	OwnerAddress     string
	GCName           string
	LenderName       string
	PropertyAddress  string
	LegalDescription string
	ContractCents    int64
	State            string
	FurnishingDate   *time.Time
	NoticeDeadline   *time.Time
}

func (r *Repo) Create(ctx context.Context, userDBID string, in NewProject) (*Project, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("name required")
	}
	if in.State == "" {
		return nil, fmt.Errorf("state required")
	}

	for i := 0; i < 5; i++ {
		publicID, err := NewPublicID("prelim")
		if err != nil {
			return nil, err
		}

		q := `
insert into projects (public_id, user_id, name, owner_name, owner_address,
  gc_name, lender_name, property_address, legal_description,
  contract_amount_cents, state, furnishing_date, notice_deadline, status)
values ($1, $2::uuid, $3, $4, $5, $6, nullif($7,''), $8, nullif($9,''), $10, $11, $12, $13, 'draft')
returning ` + projectCols + `;`

		p, err := scanProject(r.db.QueryRow(ctx, q, publicID, userDBID,
			in.Name, in.OwnerName, in.OwnerAddress, in.GCName, in.LenderName,
			in.PropertyAddress, in.LegalDescription, in.ContractCents,
			in.State, in.FurnishingDate, in.NoticeDeadline))
		if err == nil {
			return p, nil
		}

		// unique violation on public_id → retry
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("failed to generate unique project id")
}

func (r *Repo) List(ctx context.Context, userDBID string) ([]Project, error) {
	q := `
select ` + projectCols + `
from projects
where user_id = $1::uuid and deleted_at is null
order by created_at desc;`

	rows, err := r.db.Query(ctx, q, userDBID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, userDBID, publicID string) (*Project, error) {
	q := `
select ` + projectCols + `
from projects
where user_id = $1::uuid and public_id = $2 and deleted_at is null;`

	return scanProject(r.db.QueryRow(ctx, q, userDBID, publicID))
}

// UpdateFields carries the mutable project fields; nil pointers are left
// unchanged. ClearNoticeDeadline nulls the deadline out when the project
// moves to a state the rule table cannot compute one for.
type UpdateFields struct {
	Name                *string
	OwnerName           *string
	OwnerAddress        *string
	GCName              *string
	LenderName          *string
	PropertyAddress     *string
	LegalDescription    *string
	ContractCents       *int64
	State               *string
	FurnishingDate      *time.Time
	NoticeDeadline      *time.Time
	ClearNoticeDeadline bool
}

func (r *Repo) Update(ctx context.Context, userDBID, publicID string, f UpdateFields) (*Project, error) {
	q := `
update projects
set name = coalesce($3, name),
    owner_name = coalesce($4, owner_name),
    owner_address = coalesce($5, owner_address),
    gc_name = coalesce($6, gc_name),
    lender_name = coalesce($7, lender_name),
    property_address = coalesce($8, property_address),
    legal_description = coalesce($9, legal_description),
    contract_amount_cents = coalesce($10, contract_amount_cents),
    state = coalesce($11, state),
    furnishing_date = coalesce($12, furnishing_date),
    notice_deadline = case when $14 then null else coalesce($13, notice_deadline) end,
    updated_at = now()
where user_id = $1::uuid and public_id = $2 and deleted_at is null
returning ` + projectCols + `;`

	return scanProject(r.db.QueryRow(ctx, q, userDBID, publicID,
		f.Name, f.OwnerName, f.OwnerAddress, f.GCName, f.LenderName,
		f.PropertyAddress, f.LegalDescription, f.ContractCents, f.State,
		f.FurnishingDate, f.NoticeDeadline, f.ClearNoticeDeadline))
}

func (r *Repo) UpdateStatus(ctx context.Context, userDBID, publicID, status string) (*Project, error) {
	q := `
update projects
set status = $3, updated_at = now()
where user_id = $1::uuid and public_id = $2 and deleted_at is null
returning ` + projectCols + `;`

	return scanProject(r.db.QueryRow(ctx, q, userDBID, publicID, status))
}

func (r *Repo) SoftDelete(ctx context.Context, userDBID, publicID string) (bool, error) {
	const q = `
update projects
set deleted_at = now(), updated_at = now()
where user_id = $1::uuid and public_id = $2 and deleted_at is null;`

	ct, err := r.db.Exec(ctx, q, userDBID, publicID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// CountActive counts a user's non-deleted projects, used for plan limits.
func (r *Repo) CountActive(ctx context.Context, userDBID string) (int, error) {
	const q = `
select count(*) from projects
where user_id = $1::uuid and deleted_at is null;`

	var n int
	if err := r.db.QueryRow(ctx, q, userDBID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
