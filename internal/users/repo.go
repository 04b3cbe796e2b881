package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("user not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type UpsertUser struct {
	FirebaseUID string
	Email       string
}

// EnsureUser creates or refreshes the user row on login and returns our
// database id.
func (r *Repo) EnsureUser(ctx context.Context, u UpsertUser) (string, error) {
	if u.FirebaseUID == "" {
		return "", fmt.Errorf("firebase_uid required")
	}

	const q = `
insert into users (firebase_uid, email, updated_at)
values ($1, nullif($2,''), now())
on conflict (firebase_uid) do update
set
  email = coalesce(excluded.email, users.email),
  updated_at = now()
returning id::text;
`
	var id string
	if err := r.db.QueryRow(ctx, q, u.FirebaseUID, u.Email).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

// Profile is the per-user settings record whose fields feed the notice
// placeholder map.
type Profile struct {
	ID             string    `json:"id"`
	FirebaseUID    string    `json:"firebase_uid"`
	Email          string    `json:"email,omitempty"`
	CompanyName    string    `json:"company_name,omitempty"`
	CompanyAddress string    `json:"company_address,omitempty"`
	CompanyPhone   string    `json:"company_phone,omitempty"`
	LicenseNumber  string    `json:"license_number,omitempty"`
	ExpoPushToken  string    `json:"expo_push_token,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

const profileCols = `id::text, firebase_uid, coalesce(email, ''),
coalesce(company_name, ''), coalesce(company_address, ''),
coalesce(company_phone, ''), coalesce(license_number, ''),
coalesce(expo_push_token, ''), created_at, updated_at`

func scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	err := row.Scan(&p.ID, &p.FirebaseUID, &p.Email, &p.CompanyName,
		&p.CompanyAddress, &p.CompanyPhone, &p.LicenseNumber,
		&p.ExpoPushToken, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*Profile, error) {
	q := `select ` + profileCols + ` from users where id = $1::uuid;`
	return scanProfile(r.db.QueryRow(ctx, q, id))
}

// UpdateProfileFields carries the mutable profile fields; nil means unchanged.
type UpdateProfileFields struct {
	CompanyName    *string
	CompanyAddress *string
	CompanyPhone   *string
	LicenseNumber  *string
}

func (r *Repo) UpdateProfile(ctx context.Context, id string, f UpdateProfileFields) (*Profile, error) {
	q := `
update users
set company_name = coalesce($2, company_name),
    company_address = coalesce($3, company_address),
    company_phone = coalesce($4, company_phone),
    license_number = coalesce($5, license_number),
    updated_at = now()
where id = $1::uuid
returning ` + profileCols + `;`

	return scanProfile(r.db.QueryRow(ctx, q, id,
		f.CompanyName, f.CompanyAddress, f.CompanyPhone, f.LicenseNumber))
}

// SetPushToken stores (or clears, with empty token) the Expo push token.
func (r *Repo) SetPushToken(ctx context.Context, id, token string) error {
	const q = `
update users
set expo_push_token = nullif($2, ''), updated_at = now()
where id = $1::uuid;`

	ct, err := r.db.Exec(ctx, q, id, token)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
