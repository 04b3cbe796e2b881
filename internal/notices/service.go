package notices

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/prelimpro/prelimpro-backend/internal/audit"
	"github.com/prelimpro/prelimpro-backend/internal/notices/render"
	"github.com/prelimpro/prelimpro-backend/internal/notices/rules"
	"github.com/prelimpro/prelimpro-backend/internal/projects"
	"github.com/prelimpro/prelimpro-backend/internal/users"
)

// Storage is the slice of the S3 adapter the service needs.
type Storage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	PresignGet(ctx context.Context, key string) (string, error)
}

type Service struct {
	repo        *Repo
	projectRepo *projects.Repo
	userRepo    *users.Repo
	store       Storage
	auditRepo   *audit.Repo
	events      *Publisher
}

func NewService(repo *Repo, projectRepo *projects.Repo, userRepo *users.Repo, store Storage, auditRepo *audit.Repo, events *Publisher) *Service {
	return &Service{
		repo:        repo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		store:       store,
		auditRepo:   auditRepo,
		events:      events,
	}
}

// Generate resolves the project's state template, fills it from project and
// profile fields, renders the PDF, uploads it, and records the document.
func (s *Service) Generate(ctx context.Context, userDBID, projectPublicID string) (*Document, error) {
	p, err := s.projectRepo.Get(ctx, userDBID, projectPublicID)
	if err != nil {
		return nil, err
	}

	profile, err := s.userRepo.GetByID(ctx, userDBID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	tpl := rules.TemplateFor(p.State)

	src := PlaceholderSource{
		ProjectName:      p.Name,
		OwnerName:        p.OwnerName,
		OwnerAddress:     p.OwnerAddress,
		GCName:           p.GCName,
		LenderName:       p.LenderName,
		PropertyAddress:  p.PropertyAddress,
		LegalDescription: p.LegalDescription,
		ContractCents:    p.ContractCents,
		State:            p.State,
		CompanyName:      profile.CompanyName,
		CompanyAddress:   profile.CompanyAddress,
		CompanyPhone:     profile.CompanyPhone,
		LicenseNumber:    profile.LicenseNumber,
	}
	if p.FurnishingDate != nil {
		src.FurnishingDate = *p.FurnishingDate
	}
	if p.NoticeDeadline != nil {
		src.DeadlineDate = *p.NoticeDeadline
	}

	values := PlaceholderValues(src)
	title := Fill(tpl.Title, values)
	warning := Fill(tpl.WarningText, values)
	clauses := FillAll(tpl.LegalClauses, values)

	doc := &Document{
		ProjectID: p.PublicID,
		State:     p.State,
		Title:     title,
		Body:      warning + "\n\n" + strings.Join(clauses, "\n"),
		Status:    StatusGenerated,
	}

	if s.store != nil {
		pdfBytes, err := render.PDF(render.Notice{
			Title:                 title,
			WarningText:           warning,
			Clauses:               clauses,
			ProjectName:           p.Name,
			OwnerName:             p.OwnerName,
			OwnerAddress:          p.OwnerAddress,
			GCName:                p.GCName,
			LenderName:            p.LenderName,
			PropertyAddress:       p.PropertyAddress,
			LegalDescription:      p.LegalDescription,
			ContractAmount:        values["contract_amount"],
			CompanyName:           profile.CompanyName,
			CompanyAddress:        profile.CompanyAddress,
			LicenseNumber:         profile.LicenseNumber,
			FurnishingDate:        values["furnishing_date"],
			DeadlineDate:          values["deadline_date"],
			CertifiedMailRequired: tpl.CertifiedMailRequired,
			NotaryRequired:        tpl.NotaryRequired,
		})
		if err != nil {
			return nil, err
		}

		key := fmt.Sprintf("notices/%s/%s.pdf", userDBID, uuid.New().String())
		if err := s.store.Upload(ctx, key, pdfBytes, "application/pdf"); err != nil {
			return nil, err
		}
		doc.StorageKey = key
	}

	out, err := s.repo.Insert(ctx, userDBID, doc)
	if err != nil {
		return nil, err
	}

	audit.MustRecord(ctx, s.auditRepo, audit.Entry{
		UserID:   userDBID,
		Entity:   audit.EntityNotice,
		EntityID: out.PublicID,
		Action:   "generate",
		Details:  fmt.Sprintf("project=%s state=%s", p.PublicID, p.State),
	})
	s.events.Publish(ctx, Event{NoticeID: out.PublicID, ProjectID: out.ProjectID, Status: out.Status})

	return out, nil
}

// DownloadURL returns a presigned URL for the stored PDF.
func (s *Service) DownloadURL(ctx context.Context, userDBID, publicID string) (string, error) {
	d, err := s.repo.Get(ctx, userDBID, publicID)
	if err != nil {
		return "", err
	}
	if d.StorageKey == "" {
		return "", fmt.Errorf("notice %s has no stored document", publicID)
	}
	if s.store == nil {
		return "", fmt.Errorf("storage not configured")
	}
	return s.store.PresignGet(ctx, d.StorageKey)
}

// MarkSent records service of the notice, optionally with a certified-mail
// tracking number.
func (s *Service) MarkSent(ctx context.Context, userDBID, publicID, trackingNumber string) (*Document, error) {
	d, err := s.repo.Get(ctx, userDBID, publicID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(d.Status, StatusSent) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, d.Status, StatusSent)
	}

	now := time.Now().UTC()
	u := statusUpdate{Status: StatusSent, SentAt: &now}
	if trackingNumber != "" {
		u.TrackingNumber = &trackingNumber
	}

	out, err := s.repo.updateStatus(ctx, publicID, u)
	if err != nil {
		return nil, err
	}

	audit.MustRecord(ctx, s.auditRepo, audit.Entry{
		UserID:   userDBID,
		Entity:   audit.EntityNotice,
		EntityID: publicID,
		Action:   "sent",
		Details:  "tracking=" + trackingNumber,
	})
	s.events.Publish(ctx, Event{NoticeID: out.PublicID, ProjectID: out.ProjectID, Status: out.Status})

	return out, nil
}

// MarkDelivered is invoked by the mail vendor's delivery callback.
func (s *Service) MarkDelivered(ctx context.Context, publicID string, deliveredAt time.Time) (*Document, error) {
	d, userID, err := s.repo.GetAnyUser(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(d.Status, StatusDelivered) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, d.Status, StatusDelivered)
	}

	if deliveredAt.IsZero() {
		deliveredAt = time.Now().UTC()
	}

	out, err := s.repo.updateStatus(ctx, publicID, statusUpdate{Status: StatusDelivered, DeliveredAt: &deliveredAt})
	if err != nil {
		return nil, err
	}

	audit.MustRecord(ctx, s.auditRepo, audit.Entry{
		UserID:   userID,
		Entity:   audit.EntityNotice,
		EntityID: publicID,
		Action:   "delivered",
	})
	s.events.Publish(ctx, Event{NoticeID: out.PublicID, ProjectID: out.ProjectID, Status: out.Status})

	return out, nil
}

// AttachProof stores the proof-of-service scan and completes the lifecycle.
func (s *Service) AttachProof(ctx context.Context, userDBID, publicID string, proof []byte, contentType string) (*Document, error) {
	d, err := s.repo.Get(ctx, userDBID, publicID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(d.Status, StatusProofOfService) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, d.Status, StatusProofOfService)
	}
	if s.store == nil {
		return nil, fmt.Errorf("storage not configured")
	}

	key := fmt.Sprintf("proofs/%s/%s", userDBID, uuid.New().String())
	if err := s.store.Upload(ctx, key, proof, contentType); err != nil {
		return nil, err
	}

	out, err := s.repo.updateStatus(ctx, publicID, statusUpdate{Status: StatusProofOfService, ProofKey: &key})
	if err != nil {
		return nil, err
	}

	audit.MustRecord(ctx, s.auditRepo, audit.Entry{
		UserID:   userDBID,
		Entity:   audit.EntityNotice,
		EntityID: publicID,
		Action:   "proof_of_service",
	})
	s.events.Publish(ctx, Event{NoticeID: out.PublicID, ProjectID: out.ProjectID, Status: out.Status})

	return out, nil
}

// Void cancels a document that has not completed its lifecycle.
func (s *Service) Void(ctx context.Context, userDBID, publicID string) (*Document, error) {
	d, err := s.repo.Get(ctx, userDBID, publicID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(d.Status, StatusVoid) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, d.Status, StatusVoid)
	}

	out, err := s.repo.updateStatus(ctx, publicID, statusUpdate{Status: StatusVoid})
	if err != nil {
		return nil, err
	}

	audit.MustRecord(ctx, s.auditRepo, audit.Entry{
		UserID:   userDBID,
		Entity:   audit.EntityNotice,
		EntityID: publicID,
		Action:   "void",
	})
	s.events.Publish(ctx, Event{NoticeID: out.PublicID, ProjectID: out.ProjectID, Status: out.Status})

	return out, nil
}

func (s *Service) Get(ctx context.Context, userDBID, publicID string) (*Document, error) {
	return s.repo.Get(ctx, userDBID, publicID)
}

func (s *Service) ListByProject(ctx context.Context, userDBID, projectID string) ([]Document, error) {
	return s.repo.ListByProject(ctx, userDBID, projectID)
}
