package unit

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"

	"github.com/prelimpro/prelimpro-backend/internal/billing"
)

func TestWebhookProcessor_HandlesDocumentedEventTypes(t *testing.T) {
	processor := billing.NewWebhookProcessor(nil, nil, nil)

	// Payloads parse but fail domain validation before any repository is
	// touched, so the dispatch result can be asserted without a database.
	cases := []struct {
		eventType string
		raw       string
	}{
		{"checkout.session.completed", `{"id":"cs_test_1"}`},
		{"customer.subscription.updated", `{"id":"sub_1"}`},
		{"customer.subscription.deleted", `{"id":"sub_1"}`},
		{"invoice.payment_failed", `{"id":"in_1"}`},
	}

	for _, tc := range cases {
		t.Run(tc.eventType, func(t *testing.T) {
			event := stripe.Event{
				ID:   "evt_1",
				Type: stripe.EventType(tc.eventType),
				Data: &stripe.EventData{Raw: []byte(tc.raw)},
			}

			tag, handled := processor.HandleEvent(context.Background(), event)
			assert.True(t, handled)
			assert.Equal(t, tc.eventType, tag)
		})
	}
}

func TestWebhookProcessor_IgnoresUnknownEvents(t *testing.T) {
	processor := billing.NewWebhookProcessor(nil, nil, nil)

	for _, typ := range []string{
		"payment_intent.succeeded",
		"charge.refunded",
		"customer.created",
		"invoice.paid",
	} {
		event := stripe.Event{ID: "evt_1", Type: stripe.EventType(typ)}
		tag, handled := processor.HandleEvent(context.Background(), event)
		assert.False(t, handled, "event type %s should not be handled", typ)
		assert.Empty(t, tag)
	}
}

func TestStripeWebhookEndpoint_RejectsBadSignature(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	handler := billing.NewHandler(nil, nil, billing.NewWebhookProcessor(nil, nil, nil), "whsec_test")
	handler.RegisterWebhook(router)

	payload, _ := json.Marshal(gin.H{"id": "evt_1", "type": "checkout.session.completed"})

	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "invalid signature", body["error"])
}

func TestStripeWebhookEndpoint_RequiresSignatureHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	handler := billing.NewHandler(nil, nil, billing.NewWebhookProcessor(nil, nil, nil), "whsec_test")
	handler.RegisterWebhook(router)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", bytes.NewReader([]byte(`{}`)))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
