package billing

import (
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/prelimpro/prelimpro-backend/config"
)

// Checkout creates Stripe Checkout Sessions for plan upgrades. Everything
// payment related (idempotency, retries, card handling) is Stripe's problem.
type Checkout struct {
	sc  *client.API
	cfg config.StripeConfig
}

func NewCheckout(cfg config.StripeConfig) *Checkout {
	sc := &client.API{}
	sc.Init(cfg.SecretKey, nil)
	return &Checkout{sc: sc, cfg: cfg}
}

// CreateSession starts a subscription checkout for the given interval
// ("monthly" or "yearly") and returns the hosted checkout URL. The user's
// database id rides along as the client reference so the webhook can map the
// completed session back to a user.
func (c *Checkout) CreateSession(userDBID, email, interval, successURL, cancelURL string) (string, error) {
	var priceID string
	switch interval {
	case "monthly":
		priceID = c.cfg.PriceMonthlyID
	case "yearly":
		priceID = c.cfg.PriceYearlyID
	default:
		return "", fmt.Errorf("unknown billing interval %q", interval)
	}
	if priceID == "" {
		return "", fmt.Errorf("no Stripe price configured for interval %q", interval)
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(successURL),
		CancelURL:         stripe.String(cancelURL),
		ClientReferenceID: stripe.String(userDBID),
	}
	if email != "" {
		params.CustomerEmail = stripe.String(email)
	}

	sess, err := c.sc.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return sess.URL, nil
}
