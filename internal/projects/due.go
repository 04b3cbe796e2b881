package projects

import (
	"context"
	"time"
)

// DueProject is a reminder-scan row: the project plus the owner's push token.
type DueProject struct {
	PublicID       string
	Name           string
	State          string
	NoticeDeadline time.Time
	UserDBID       string
	ExpoPushToken  string
}

// DueWithin returns projects still in draft or pending whose notice deadline
// falls between now and now+window. Projects whose owner has no push token
// registered are still returned so the scan can audit the missed reminder.
func (r *Repo) DueWithin(ctx context.Context, now time.Time, window time.Duration) ([]DueProject, error) {
	const q = `
select p.public_id, p.name, p.state, p.notice_deadline, p.user_id::text,
       coalesce(u.expo_push_token, '')
from projects p
join users u on u.id = p.user_id
where p.deleted_at is null
  and p.status in ('draft', 'pending')
  and p.notice_deadline is not null
  and p.notice_deadline >= $1
  and p.notice_deadline <= $2
order by p.notice_deadline asc;`

	rows, err := r.db.Query(ctx, q, now, now.Add(window))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]DueProject, 0, 16)
	for rows.Next() {
		var d DueProject
		if err := rows.Scan(&d.PublicID, &d.Name, &d.State, &d.NoticeDeadline, &d.UserDBID, &d.ExpoPushToken); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
