package notices

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var placeholderRe = regexp.MustCompile(`\{\{([a-z_]+)\}\}`)

// Fill substitutes {{token}} placeholders in text from the given value map.
// Tokens without a value are left untouched so a half-filled document is
// visibly incomplete rather than silently wrong.
func Fill(text string, values map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(text, func(match string) string {
		token := strings.Trim(match, "{}")
		if v, ok := values[token]; ok {
			return v
		}
		return match
	})
}

// FillAll applies Fill to every string in the slice.
func FillAll(texts []string, values map[string]string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = Fill(t, values)
	}
	return out
}

// PlaceholderSource carries the project and company fields that feed the
// notice templates.
type PlaceholderSource struct {
	ProjectName      string
	OwnerName        string
	OwnerAddress     string
	GCName           string
	LenderName       string
	PropertyAddress  string
	LegalDescription string
	ContractCents    int64
	State            string
	FurnishingDate   time.Time
	DeadlineDate     time.Time

	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
	LicenseNumber  string
}

// PlaceholderValues builds the token map consumed by Fill. Empty source
// fields produce no entry, which leaves their tokens visible in the output.
func PlaceholderValues(src PlaceholderSource) map[string]string {
	v := map[string]string{
		"today": time.Now().UTC().Format("January 2, 2006"),
	}

	put := func(token, val string) {
		if strings.TrimSpace(val) != "" {
			v[token] = val
		}
	}

	put("project_name", src.ProjectName)
	put("owner_name", src.OwnerName)
	put("owner_address", src.OwnerAddress)
	put("gc_name", src.GCName)
	put("lender_name", src.LenderName)
	put("property_address", src.PropertyAddress)
	put("legal_description", src.LegalDescription)
	put("state", src.State)
	put("company_name", src.CompanyName)
	put("company_address", src.CompanyAddress)
	put("company_phone", src.CompanyPhone)
	put("license_number", src.LicenseNumber)

	if src.ContractCents > 0 {
		v["contract_amount"] = FormatCents(src.ContractCents)
	}
	if !src.FurnishingDate.IsZero() {
		v["furnishing_date"] = src.FurnishingDate.UTC().Format("January 2, 2006")
	}
	if !src.DeadlineDate.IsZero() {
		v["deadline_date"] = src.DeadlineDate.UTC().Format("January 2, 2006")
	}

	return v
}

// FormatCents renders a cent amount as a dollar string, e.g. 1250000 -> "$12,500.00".
func FormatCents(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	dollars := cents / 100
	rem := cents % 100

	s := fmt.Sprintf("%d", dollars)

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%s$%s.%02d", sign, b.String(), rem)
}
