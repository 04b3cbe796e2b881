package billing

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stripe/stripe-go/v79"
)

// FailureRepo keeps webhook events that could not be processed. There is no
// automated reconciliation; the table exists for manual inspection.
type FailureRepo struct {
	db *pgxpool.Pool
}

func NewFailureRepo(db *pgxpool.Pool) *FailureRepo {
	return &FailureRepo{db: db}
}

// Record is best effort; a failure to record a failure is only logged.
func (r *FailureRepo) Record(ctx context.Context, event stripe.Event, procErr error) {
	if r == nil || r.db == nil {
		return
	}

	const q = `
insert into webhook_failures (event_id, event_type, error, payload)
values ($1, $2, $3, $4)
on conflict (event_id) do nothing;`

	_, err := r.db.Exec(ctx, q, event.ID, string(event.Type), procErr.Error(), event.Data.Raw)
	if err != nil {
		log.Printf("billing: failed to record webhook failure for event %s: %v", event.ID, err)
	}
}
