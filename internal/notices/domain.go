package notices

import (
	"errors"
	"time"
)

// Document statuses. Transitions only move forward through the lifecycle;
// Void is reachable from any non-terminal status.
const (
	StatusDraft          = "draft"
	StatusGenerated      = "generated"
	StatusSent           = "sent"
	StatusDelivered      = "delivered"
	StatusProofOfService = "proof_of_service"
	StatusVoid           = "void"
)

var (
	ErrNotFound          = errors.New("notice not found")
	ErrInvalidTransition = errors.New("invalid notice status transition")
)

// Document is one generated preliminary-notice document for a project.
type Document struct {
	PublicID       string     `json:"public_id"`
	ProjectID      string     `json:"project_id"`
	State          string     `json:"state"`
	Title          string     `json:"title"`
	Body           string     `json:"body"`
	StorageKey     string     `json:"storage_key,omitempty"`
	Status         string     `json:"status"`
	TrackingNumber string     `json:"tracking_number,omitempty"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`
	ProofKey       string     `json:"proof_key,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

var statusRank = map[string]int{
	StatusDraft:          0,
	StatusGenerated:      1,
	StatusSent:           2,
	StatusDelivered:      3,
	StatusProofOfService: 4,
}

// CanTransition reports whether a document may move from one status to the
// next. Forward steps of exactly one rank are allowed, plus void from any
// non-terminal status.
func CanTransition(from, to string) bool {
	if to == StatusVoid {
		return from != StatusVoid && from != StatusProofOfService
	}
	fr, ok1 := statusRank[from]
	tr, ok2 := statusRank[to]
	return ok1 && ok2 && tr == fr+1
}
