package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Notice is the fully resolved document handed to the renderer: every
// placeholder has already been substituted.
type Notice struct {
	Title                 string
	WarningText           string
	Clauses               []string
	ProjectName           string
	OwnerName             string
	OwnerAddress          string
	GCName                string
	LenderName            string
	PropertyAddress       string
	LegalDescription      string
	ContractAmount        string
	CompanyName           string
	CompanyAddress        string
	LicenseNumber         string
	FurnishingDate        string
	DeadlineDate          string
	CertifiedMailRequired bool
	NotaryRequired        bool
}

// PDF renders the notice as a single-column letter-format document and
// returns the raw bytes.
func PDF(n Notice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(0, 7, n.Title, "", "C", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.MultiCell(0, 5, n.WarningText, "1", "L", false)
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "", 10)
	party := func(label, value string) {
		if value == "" {
			return
		}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(45, 5, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, value, "", "L", false)
	}

	party("Project:", n.ProjectName)
	party("Property Owner:", joinNonEmpty(n.OwnerName, n.OwnerAddress))
	party("General Contractor:", n.GCName)
	party("Construction Lender:", n.LenderName)
	party("Property Address:", n.PropertyAddress)
	party("Legal Description:", n.LegalDescription)
	party("Claimant:", joinNonEmpty(n.CompanyName, n.CompanyAddress))
	party("License Number:", n.LicenseNumber)
	party("Contract Amount:", n.ContractAmount)
	party("First Furnishing:", n.FurnishingDate)
	party("Service Deadline:", n.DeadlineDate)
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "", 10)
	for i, clause := range n.Clauses {
		pdf.MultiCell(0, 5, fmt.Sprintf("%d. %s", i+1, clause), "", "L", false)
		pdf.Ln(1)
	}
	pdf.Ln(5)

	if n.CertifiedMailRequired {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, "Service of this notice by certified or registered mail, return receipt requested, is required.", "", "L", false)
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(80, 5, "Signature: ____________________________", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Date: ____________________", "", 1, "L", false, 0, "")

	if n.NotaryRequired {
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.MultiCell(0, 5, "NOTARY ACKNOWLEDGMENT", "", "L", false)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, "Subscribed and sworn to before me this ____ day of ____________, 20____.", "", "L", false)
		pdf.Ln(6)
		pdf.CellFormat(0, 5, "Notary Public: ____________________________", "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render notice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + "\n" + b
	}
}
