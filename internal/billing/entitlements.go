package billing

import (
	"context"
	"fmt"
)

// ProjectCounter is the slice of the projects repo the entitlement check needs.
type ProjectCounter interface {
	CountActive(ctx context.Context, userDBID string) (int, error)
}

// Entitlements enforces per-plan limits. Free-plan users are limited to a
// fixed number of active projects; pro users are unlimited.
type Entitlements struct {
	plans         *PlanRepo
	projects      ProjectCounter
	freePlanLimit int
}

func NewEntitlements(plans *PlanRepo, projects ProjectCounter, freePlanLimit int) *Entitlements {
	return &Entitlements{plans: plans, projects: projects, freePlanLimit: freePlanLimit}
}

func (e *Entitlements) CanCreateProject(ctx context.Context, userDBID string) error {
	p, err := e.plans.GetByUserID(ctx, userDBID)
	if err != nil {
		return err
	}
	if p.Plan == PlanPro && p.Status != StatusCanceled {
		return nil
	}

	n, err := e.projects.CountActive(ctx, userDBID)
	if err != nil {
		return err
	}
	if n >= e.freePlanLimit {
		return fmt.Errorf("free plan is limited to %d active projects, upgrade to create more", e.freePlanLimit)
	}
	return nil
}
