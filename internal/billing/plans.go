package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	PlanFree = "free"
	PlanPro  = "pro"

	StatusActive   = "active"
	StatusPastDue  = "past_due"
	StatusCanceled = "canceled"
)

var ErrPlanNotFound = errors.New("plan not found")

// Plan is the billing-entitlement record, one row per user.
type Plan struct {
	UserID               string     `json:"user_id"`
	Plan                 string     `json:"plan"`
	Status               string     `json:"status"`
	StripeCustomerID     string     `json:"stripe_customer_id,omitempty"`
	StripeSubscriptionID string     `json:"stripe_subscription_id,omitempty"`
	CurrentPeriodEnd     *time.Time `json:"current_period_end,omitempty"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

type PlanRepo struct {
	db *pgxpool.Pool
}

func NewPlanRepo(db *pgxpool.Pool) *PlanRepo {
	return &PlanRepo{db: db}
}

const planCols = `user_id::text, plan, status, coalesce(stripe_customer_id, ''),
coalesce(stripe_subscription_id, ''), current_period_end, updated_at`

func scanPlan(row pgx.Row) (*Plan, error) {
	var p Plan
	err := row.Scan(&p.UserID, &p.Plan, &p.Status, &p.StripeCustomerID,
		&p.StripeSubscriptionID, &p.CurrentPeriodEnd, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetByUserID returns the user's plan; users without a row are on the free plan.
func (r *PlanRepo) GetByUserID(ctx context.Context, userID string) (*Plan, error) {
	q := `select ` + planCols + ` from user_plans where user_id = $1::uuid;`

	p, err := scanPlan(r.db.QueryRow(ctx, q, userID))
	if errors.Is(err, ErrPlanNotFound) {
		return &Plan{UserID: userID, Plan: PlanFree, Status: StatusActive}, nil
	}
	return p, err
}

// Activate upserts the paid plan after a completed checkout.
func (r *PlanRepo) Activate(ctx context.Context, userID, customerID, subscriptionID string, periodEnd *time.Time) error {
	const q = `
insert into user_plans (user_id, plan, status, stripe_customer_id, stripe_subscription_id, current_period_end, updated_at)
values ($1::uuid, 'pro', 'active', $2, $3, $4, now())
on conflict (user_id) do update
set plan = 'pro',
    status = 'active',
    stripe_customer_id = excluded.stripe_customer_id,
    stripe_subscription_id = excluded.stripe_subscription_id,
    current_period_end = excluded.current_period_end,
    updated_at = now();`

	_, err := r.db.Exec(ctx, q, userID, customerID, subscriptionID, periodEnd)
	if err != nil {
		return fmt.Errorf("activate plan: %w", err)
	}
	return nil
}

// SyncByCustomer updates status and period end from a subscription event.
func (r *PlanRepo) SyncByCustomer(ctx context.Context, customerID, status string, periodEnd *time.Time) error {
	const q = `
update user_plans
set status = $2,
    current_period_end = coalesce($3, current_period_end),
    updated_at = now()
where stripe_customer_id = $1;`

	_, err := r.db.Exec(ctx, q, customerID, status, periodEnd)
	if err != nil {
		return fmt.Errorf("sync plan by customer: %w", err)
	}
	return nil
}

// DowngradeByCustomer returns the user to the free plan after a cancellation.
func (r *PlanRepo) DowngradeByCustomer(ctx context.Context, customerID string) error {
	const q = `
update user_plans
set plan = 'free',
    status = 'canceled',
    stripe_subscription_id = null,
    current_period_end = null,
    updated_at = now()
where stripe_customer_id = $1;`

	_, err := r.db.Exec(ctx, q, customerID)
	if err != nil {
		return fmt.Errorf("downgrade plan by customer: %w", err)
	}
	return nil
}
