package reminders

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/prelimpro/prelimpro-backend/internal/audit"
	"github.com/prelimpro/prelimpro-backend/internal/projects"
	"github.com/prelimpro/prelimpro-backend/internal/push"
)

// Pusher is the slice of the push client the scan needs.
type Pusher interface {
	Send(ctx context.Context, msg push.Message) error
}

// Service runs the deadline reminder scan: projects still in draft or
// pending whose statutory deadline is inside the warning window get one push
// notification to the owner.
type Service struct {
	projectRepo *projects.Repo
	markers     *MarkerRepo
	pusher      Pusher
	auditRepo   *audit.Repo
	window      time.Duration
}

func NewService(projectRepo *projects.Repo, markers *MarkerRepo, pusher Pusher, auditRepo *audit.Repo, windowDays int) *Service {
	if windowDays <= 0 {
		windowDays = 7
	}
	return &Service{
		projectRepo: projectRepo,
		markers:     markers,
		pusher:      pusher,
		auditRepo:   auditRepo,
		window:      time.Duration(windowDays) * 24 * time.Hour,
	}
}

// Scan runs one pass and returns how many reminders were sent.
func (s *Service) Scan(ctx context.Context, now time.Time) (int, error) {
	due, err := s.projectRepo.DueWithin(ctx, now, s.window)
	if err != nil {
		return 0, fmt.Errorf("list due projects: %w", err)
	}

	sent := 0
	for _, d := range due {
		claimed, err := s.markers.TryMark(ctx, d.PublicID, d.NoticeDeadline)
		if err != nil {
			log.Printf("reminders: marker check failed for %s: %v", d.PublicID, err)
			continue
		}
		if !claimed {
			continue
		}

		daysLeft := int(d.NoticeDeadline.Sub(now).Hours() / 24)

		if d.ExpoPushToken == "" {
			log.Printf("reminders: %s due in %d days but owner has no push token", d.PublicID, daysLeft)
			audit.MustRecord(ctx, s.auditRepo, audit.Entry{
				UserID:   d.UserDBID,
				Entity:   audit.EntityPush,
				EntityID: d.PublicID,
				Action:   "reminder_skipped",
				Details:  "no push token registered",
			})
			continue
		}

		msg := push.Message{
			To:    d.ExpoPushToken,
			Title: "Preliminary notice deadline approaching",
			Body:  fmt.Sprintf("%s: the %s notice deadline is in %d days.", d.Name, d.State, daysLeft),
			Data: map[string]interface{}{
				"project_id": d.PublicID,
				"deadline":   d.NoticeDeadline.Format("2006-01-02"),
			},
			Sound: "default",
		}

		// Best effort: a failed push still consumed the marker, matching the
		// original app's fire-and-forget behavior.
		if err := s.pusher.Send(ctx, msg); err != nil {
			log.Printf("reminders: push failed for %s: %v", d.PublicID, err)
			continue
		}

		audit.MustRecord(ctx, s.auditRepo, audit.Entry{
			UserID:   d.UserDBID,
			Entity:   audit.EntityPush,
			EntityID: d.PublicID,
			Action:   "reminder_sent",
			Details:  fmt.Sprintf("deadline=%s days_left=%d", d.NoticeDeadline.Format("2006-01-02"), daysLeft),
		})
		sent++
	}

	return sent, nil
}
