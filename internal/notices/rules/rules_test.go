package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableCoversAllStates(t *testing.T) {
	// 50 states plus the District of Columbia.
	assert.Len(t, States(), 51)

	for _, s := range States() {
		r, ok := RuleFor(s)
		require.True(t, ok, "state %s missing from table", s)
		assert.Equal(t, s, r.State)
		assert.Greater(t, r.DeadlineDays, 0, "state %s has no deadline window", s)
		assert.NotEmpty(t, r.Template.Title, "state %s has an empty template title", s)
		assert.NotEmpty(t, r.Template.WarningText, "state %s has an empty warning block", s)
		assert.NotEmpty(t, r.Template.LegalClauses, "state %s has no legal clauses", s)
	}
}

func TestDeadlineFor(t *testing.T) {
	furnishing := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("adds the state's day count in calendar days", func(t *testing.T) {
		deadline, ok := DeadlineFor("California", furnishing)
		require.True(t, ok)
		assert.Equal(t, time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC), deadline)

		deadline, ok = DeadlineFor("Texas", furnishing)
		require.True(t, ok)
		assert.Equal(t, time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC), deadline)
	})

	t.Run("crosses month and year boundaries", func(t *testing.T) {
		deadline, ok := DeadlineFor("Tennessee", time.Date(2026, 11, 15, 0, 0, 0, 0, time.UTC))
		require.True(t, ok)
		assert.Equal(t, time.Date(2027, 2, 13, 0, 0, 0, 0, time.UTC), deadline)
	})

	t.Run("normalizes the furnishing date to UTC", func(t *testing.T) {
		loc := time.FixedZone("PST", -8*60*60)
		local := time.Date(2026, 3, 1, 22, 0, 0, 0, loc)

		deadline, ok := DeadlineFor("Oregon", local)
		require.True(t, ok)
		assert.Equal(t, time.UTC, deadline.Location())
		assert.Equal(t, local.UTC().AddDate(0, 0, 8), deadline)
	})

	t.Run("unmapped state reports not ok", func(t *testing.T) {
		deadline, ok := DeadlineFor("Puerto Rico", furnishing)
		assert.False(t, ok)
		assert.True(t, deadline.IsZero())
	})
}

func TestTemplateFor(t *testing.T) {
	t.Run("states with a statutory form get their own template", func(t *testing.T) {
		tpl := TemplateFor("California")
		assert.Equal(t, "CALIFORNIA 20-DAY PRELIMINARY NOTICE", tpl.Title)
		assert.True(t, tpl.CertifiedMailRequired)
		assert.False(t, tpl.NotaryRequired)
	})

	t.Run("notary states carry the notary flag", func(t *testing.T) {
		assert.True(t, TemplateFor("Georgia").NotaryRequired)
		assert.True(t, TemplateFor("Tennessee").NotaryRequired)
	})

	t.Run("states without a statute share the generic template", func(t *testing.T) {
		tpl := TemplateFor("New York")
		assert.Equal(t, defaultTemplate.Title, tpl.Title)
		assert.Equal(t, TemplateFor("Wyoming"), tpl)
	})

	t.Run("unknown state falls back to the generic template, never fails", func(t *testing.T) {
		tpl := TemplateFor("Atlantis")
		assert.Equal(t, defaultTemplate.Title, tpl.Title)
	})
}

func TestRequired(t *testing.T) {
	assert.True(t, Required("California"))
	assert.True(t, Required("Florida"))

	// Colorado has a detailed template but no preliminary-notice mandate.
	assert.False(t, Required("Colorado"))
	assert.False(t, Required("New York"))
	assert.False(t, Required("Atlantis"))
}
