package rules

import "time"

// Template describes the statutory notice document for one state: the
// document title, the bold warning block, the legal clauses that must appear,
// and the service requirements.
type Template struct {
	Title                 string   `json:"title"`
	WarningText           string   `json:"warning_text"`
	LegalClauses          []string `json:"legal_clauses"`
	CertifiedMailRequired bool     `json:"certified_mail_required"`
	NotaryRequired        bool     `json:"notary_required"`
}

// Rule is the per-state statutory record: how many days after first
// furnishing the notice must be served, whether the state requires a
// preliminary notice at all, and which template to use.
type Rule struct {
	State          string   `json:"state"`
	DeadlineDays   int      `json:"deadline_days"`
	NoticeRequired bool     `json:"notice_required"`
	Template       Template `json:"template"`
}

// TemplateFor returns the template for the given state, falling back to the
// generic template for states without a specific entry. It never fails.
func TemplateFor(state string) Template {
	if r, ok := stateRules[state]; ok {
		return r.Template
	}
	return defaultTemplate
}

// RuleFor returns the full rule record for a state, ok=false when the state
// has no entry in the table.
func RuleFor(state string) (Rule, bool) {
	r, ok := stateRules[state]
	return r, ok
}

// DeadlineFor computes the statutory service deadline: the furnishing date
// plus the state's day count, in calendar days. ok=false for unmapped states.
func DeadlineFor(state string, furnishing time.Time) (time.Time, bool) {
	r, ok := stateRules[state]
	if !ok {
		return time.Time{}, false
	}
	return furnishing.UTC().AddDate(0, 0, r.DeadlineDays), true
}

// Required reports whether the state mandates a preliminary notice to
// preserve lien rights. Unmapped states report false.
func Required(state string) bool {
	r, ok := stateRules[state]
	return ok && r.NoticeRequired
}

// States returns the names of all states in the table, in no particular order.
func States() []string {
	out := make([]string, 0, len(stateRules))
	for s := range stateRules {
		out = append(out, s)
	}
	return out
}
