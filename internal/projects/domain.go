package projects

import (
	"errors"
	"time"
)

// Project statuses follow the lien-notice job lifecycle.
const (
	StatusDraft     = "draft"
	StatusPending   = "pending"
	StatusSent      = "sent"
	StatusDelivered = "delivered"
	StatusSigned    = "signed"
)

var ErrNotFound = errors.New("project not found")

// ValidStatus reports whether s is one of the known project statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusPending, StatusSent, StatusDelivered, StatusSigned:
		return true
	}
	return false
}

// Project is a single lien-notice job: the parties, the property, and the
// statutory deadline computed from the furnishing date.
type Project struct {
	PublicID         string     `json:"public_id"`
	Name             string     `json:"name"`
	OwnerName        string     `json:"owner_name"`
	OwnerAddress     string     `json:"owner_address"`
	GCName           string     `json:"gc_name"`
	LenderName       string     `json:"lender_name,omitempty"`
	PropertyAddress  string     `json:"property_address"`
	LegalDescription string     `json:"legal_description,omitempty"`
	ContractCents    int64      `json:"contract_amount_cents"`
	State            string     `json:"state"`
	FurnishingDate   *time.Time `json:"furnishing_date,omitempty"`
	NoticeDeadline   *time.Time `json:"notice_deadline,omitempty"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
