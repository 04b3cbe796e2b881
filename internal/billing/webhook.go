package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/stripe/stripe-go/v79"

	"github.com/prelimpro/prelimpro-backend/internal/audit"
)

// Event types this service acts on. Everything else is acknowledged and ignored.
const (
	EventCheckoutCompleted   = "checkout.session.completed"
	EventSubscriptionUpdated = "customer.subscription.updated"
	EventSubscriptionDeleted = "customer.subscription.deleted"
	EventPaymentFailed       = "invoice.payment_failed"
)

// WebhookProcessor applies verified Stripe events to the plan table.
type WebhookProcessor struct {
	plans     *PlanRepo
	failures  *FailureRepo
	auditRepo *audit.Repo
}

func NewWebhookProcessor(plans *PlanRepo, failures *FailureRepo, auditRepo *audit.Repo) *WebhookProcessor {
	return &WebhookProcessor{plans: plans, failures: failures, auditRepo: auditRepo}
}

// HandleEvent dispatches one event. The returned tag names the event type for
// handled events and is empty otherwise; processing errors are recorded to
// the failure table for manual inspection, never retried here.
func (p *WebhookProcessor) HandleEvent(ctx context.Context, event stripe.Event) (tag string, handled bool) {
	var err error

	switch string(event.Type) {
	case EventCheckoutCompleted:
		err = p.handleCheckoutCompleted(ctx, event)
	case EventSubscriptionUpdated:
		err = p.handleSubscriptionUpdated(ctx, event)
	case EventSubscriptionDeleted:
		err = p.handleSubscriptionDeleted(ctx, event)
	case EventPaymentFailed:
		err = p.handlePaymentFailed(ctx, event)
	default:
		return "", false
	}

	if err != nil {
		log.Printf("billing: failed to process %s event %s: %v", event.Type, event.ID, err)
		p.failures.Record(ctx, event, err)
	}

	return string(event.Type), true
}

func (p *WebhookProcessor) handleCheckoutCompleted(ctx context.Context, event stripe.Event) error {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return fmt.Errorf("unmarshal checkout session: %w", err)
	}

	userID := sess.ClientReferenceID
	if userID == "" {
		return fmt.Errorf("checkout session %s has no client reference id", sess.ID)
	}

	var customerID, subscriptionID string
	if sess.Customer != nil {
		customerID = sess.Customer.ID
	}
	if sess.Subscription != nil {
		subscriptionID = sess.Subscription.ID
	}

	if err := p.plans.Activate(ctx, userID, customerID, subscriptionID, nil); err != nil {
		return err
	}

	audit.MustRecord(ctx, p.auditRepo, audit.Entry{
		UserID:   userID,
		Entity:   audit.EntityBilling,
		EntityID: sess.ID,
		Action:   "plan_activated",
		Details:  "plan=pro",
	})
	return nil
}

func (p *WebhookProcessor) handleSubscriptionUpdated(ctx context.Context, event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("unmarshal subscription: %w", err)
	}
	if sub.Customer == nil {
		return fmt.Errorf("subscription %s has no customer", sub.ID)
	}

	status := StatusActive
	switch sub.Status {
	case stripe.SubscriptionStatusPastDue, stripe.SubscriptionStatusUnpaid:
		status = StatusPastDue
	case stripe.SubscriptionStatusCanceled, stripe.SubscriptionStatusIncompleteExpired:
		status = StatusCanceled
	}

	var periodEnd *time.Time
	if sub.CurrentPeriodEnd > 0 {
		t := time.Unix(sub.CurrentPeriodEnd, 0).UTC()
		periodEnd = &t
	}

	return p.plans.SyncByCustomer(ctx, sub.Customer.ID, status, periodEnd)
}

func (p *WebhookProcessor) handleSubscriptionDeleted(ctx context.Context, event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("unmarshal subscription: %w", err)
	}
	if sub.Customer == nil {
		return fmt.Errorf("subscription %s has no customer", sub.ID)
	}
	return p.plans.DowngradeByCustomer(ctx, sub.Customer.ID)
}

func (p *WebhookProcessor) handlePaymentFailed(ctx context.Context, event stripe.Event) error {
	var inv stripe.Invoice
	if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
		return fmt.Errorf("unmarshal invoice: %w", err)
	}
	if inv.Customer == nil {
		return fmt.Errorf("invoice %s has no customer", inv.ID)
	}
	return p.plans.SyncByCustomer(ctx, inv.Customer.ID, StatusPastDue, nil)
}
