package billing

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/prelimpro/prelimpro-backend/internal/auth"
)

// Stripe recommends capping webhook payload reads.
const maxWebhookBody = 64 << 10

type Handler struct {
	plans         *PlanRepo
	checkout      *Checkout
	processor     *WebhookProcessor
	webhookSecret string
}

func NewHandler(plans *PlanRepo, checkout *Checkout, processor *WebhookProcessor, webhookSecret string) *Handler {
	return &Handler{
		plans:         plans,
		checkout:      checkout,
		processor:     processor,
		webhookSecret: webhookSecret,
	}
}

// Register attaches the authenticated billing routes.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/plan", h.getPlan)
	rg.POST("/checkout", h.createCheckout)
}

// RegisterWebhook attaches the unauthenticated Stripe webhook endpoint.
func (h *Handler) RegisterWebhook(r gin.IRouter) {
	r.POST("/webhooks/stripe", h.stripeWebhook)
}

func (h *Handler) getPlan(c *gin.Context) {
	p, err := h.plans.GetByUserID(c.Request.Context(), auth.UserDBID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "plan": p})
}

type checkoutReq struct {
	Interval   string `json:"interval"`
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
}

func (h *Handler) createCheckout(c *gin.Context) {
	var req checkoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if strings.TrimSpace(req.SuccessURL) == "" || strings.TrimSpace(req.CancelURL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "success_url and cancel_url required"})
		return
	}

	url, err := h.checkout.CreateSession(auth.UserDBID(c), c.GetString(auth.CtxEmail), req.Interval, req.SuccessURL, req.CancelURL)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "url": url})
}

// stripeWebhook verifies the event signature and dispatches it. Parseable
// events are always acknowledged with 200 so Stripe does not retry forever;
// processing failures land in the failure table instead.
func (h *Handler) stripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read payload"})
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), h.webhookSecret)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	tag, handled := h.processor.HandleEvent(c.Request.Context(), event)
	if !handled {
		c.JSON(http.StatusOK, gin.H{"handled": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"handled": tag})
}
