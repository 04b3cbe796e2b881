package projects

import (
	"time"

	"github.com/prelimpro/prelimpro-backend/internal/notices/rules"
)

// recomputedDeadline resolves the statutory deadline after the state or
// furnishing date changes. clear reports that the stored deadline must be
// removed: the state has no entry in the rule table, so no deadline can be
// computed for it. Without a furnishing date nothing changes.
func recomputedDeadline(state string, furnishing *time.Time) (deadline *time.Time, clear bool) {
	if furnishing == nil {
		return nil, false
	}
	dl, ok := rules.DeadlineFor(state, *furnishing)
	if !ok {
		return nil, true
	}
	return &dl, false
}
