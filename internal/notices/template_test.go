package notices

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFill(t *testing.T) {
	values := map[string]string{
		"project_name": "Riverside Plaza",
		"gc_name":      "Acme Builders LLC",
	}

	t.Run("substitutes known tokens", func(t *testing.T) {
		got := Fill("Work on {{project_name}} ordered by {{gc_name}}.", values)
		assert.Equal(t, "Work on Riverside Plaza ordered by Acme Builders LLC.", got)
	})

	t.Run("leaves unknown tokens visible", func(t *testing.T) {
		got := Fill("Lender: {{lender_name}}, project: {{project_name}}", values)
		assert.Equal(t, "Lender: {{lender_name}}, project: Riverside Plaza", got)
	})

	t.Run("ignores malformed braces", func(t *testing.T) {
		assert.Equal(t, "{project_name} {{Project}}", Fill("{project_name} {{Project}}", values))
	})

	t.Run("repeats a token everywhere it appears", func(t *testing.T) {
		got := Fill("{{gc_name}} and again {{gc_name}}", values)
		assert.Equal(t, "Acme Builders LLC and again Acme Builders LLC", got)
	})
}

func TestFillAll(t *testing.T) {
	got := FillAll([]string{"a {{x}}", "b {{y}}"}, map[string]string{"x": "1"})
	assert.Equal(t, []string{"a 1", "b {{y}}"}, got)
}

func TestPlaceholderValues(t *testing.T) {
	src := PlaceholderSource{
		ProjectName:     "Riverside Plaza",
		OwnerName:       "Jordan Reyes",
		GCName:          "Acme Builders LLC",
		PropertyAddress: "100 River Rd, Sacramento, CA",
		ContractCents:   1250000,
		State:           "California",
		FurnishingDate:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		DeadlineDate:    time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC),
		CompanyName:     "Delta Electric",
	}

	v := PlaceholderValues(src)

	assert.Equal(t, "Riverside Plaza", v["project_name"])
	assert.Equal(t, "$12,500.00", v["contract_amount"])
	assert.Equal(t, "March 1, 2026", v["furnishing_date"])
	assert.Equal(t, "March 21, 2026", v["deadline_date"])
	assert.NotEmpty(t, v["today"])

	// Empty fields produce no entry so their tokens stay visible in output.
	_, ok := v["lender_name"]
	assert.False(t, ok)
	_, ok = v["license_number"]
	assert.False(t, ok)
}

func TestFormatCents(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{150, "$1.50"},
		{123456, "$1,234.56"},
		{1250000, "$12,500.00"},
		{100000000, "$1,000,000.00"},
		{-5, "-$0.05"},
		{-50, "-$0.50"},
		{-123456, "-$1,234.56"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatCents(c.cents), "cents=%d", c.cents)
	}
}
