package notices

import (
	"crypto/subtle"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prelimpro/prelimpro-backend/internal/auth"
	"github.com/prelimpro/prelimpro-backend/internal/projects"
)

const maxProofSize = 10 << 20 // 10 MiB

type Handler struct {
	svc            *Service
	callbackSecret string
}

func NewHandler(svc *Service, callbackSecret string) *Handler {
	return &Handler{svc: svc, callbackSecret: callbackSecret}
}

// Register attaches the authenticated notice routes.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/projects/:public_id/notices", h.generate)
	rg.GET("/projects/:public_id/notices", h.listByProject)
	rg.GET("/notices/:public_id", h.get)
	rg.GET("/notices/:public_id/download", h.download)
	rg.POST("/notices/:public_id/sent", h.markSent)
	rg.POST("/notices/:public_id/proof", h.attachProof)
	rg.POST("/notices/:public_id/void", h.void)
}

// RegisterCallback attaches the unauthenticated delivery callback, guarded by
// a shared secret.
func (h *Handler) RegisterCallback(r gin.IRouter) {
	r.POST("/callbacks/delivery/:public_id", h.deliveryCallback)
}

func (h *Handler) generate(c *gin.Context) {
	d, err := h.svc.Generate(c.Request.Context(), auth.UserDBID(c), c.Param("public_id"))
	if err != nil {
		if errors.Is(err, projects.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "notice": d})
}

func (h *Handler) listByProject(c *gin.Context) {
	items, err := h.svc.ListByProject(c.Request.Context(), auth.UserDBID(c), c.Param("public_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "notices": items})
}

func (h *Handler) get(c *gin.Context) {
	d, err := h.svc.Get(c.Request.Context(), auth.UserDBID(c), c.Param("public_id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "notice not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "notice": d})
}

func (h *Handler) download(c *gin.Context) {
	url, err := h.svc.DownloadURL(c.Request.Context(), auth.UserDBID(c), c.Param("public_id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "notice not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "url": url})
}

type markSentReq struct {
	TrackingNumber string `json:"tracking_number"`
}

func (h *Handler) markSent(c *gin.Context) {
	var req markSentReq
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	d, err := h.svc.MarkSent(c.Request.Context(), auth.UserDBID(c), c.Param("public_id"), strings.TrimSpace(req.TrackingNumber))
	if err != nil {
		h.transitionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "notice": d})
}

func (h *Handler) attachProof(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxProofSize+1))
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "proof document required"})
		return
	}
	if len(body) > maxProofSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"ok": false, "error": "proof document too large"})
		return
	}

	contentType := c.ContentType()
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	d, err := h.svc.AttachProof(c.Request.Context(), auth.UserDBID(c), c.Param("public_id"), body, contentType)
	if err != nil {
		h.transitionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "notice": d})
}

func (h *Handler) void(c *gin.Context) {
	d, err := h.svc.Void(c.Request.Context(), auth.UserDBID(c), c.Param("public_id"))
	if err != nil {
		h.transitionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "notice": d})
}

type deliveryCallbackBody struct {
	DeliveredAtUnix int64 `json:"delivered_at_unix"`
}

// deliveryCallback is called by the certified-mail vendor when a notice is
// delivered. Authenticated by X-Delivery-Callback-Secret; if no secret is
// configured the callback is open, for local development only.
func (h *Handler) deliveryCallback(c *gin.Context) {
	if h.callbackSecret != "" {
		secret := c.GetHeader("X-Delivery-Callback-Secret")
		if subtle.ConstantTimeCompare([]byte(secret), []byte(h.callbackSecret)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized: invalid callback secret"})
			return
		}
	}

	var body deliveryCallbackBody
	if err := c.ShouldBindJSON(&body); err != nil && err != io.EOF {
		log.Printf("Delivery callback JSON binding error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var deliveredAt time.Time
	if body.DeliveredAtUnix > 0 {
		deliveredAt = time.Unix(body.DeliveredAtUnix, 0).UTC()
	}

	d, err := h.svc.MarkDelivered(c.Request.Context(), c.Param("public_id"), deliveredAt)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notice not found"})
			return
		}
		if errors.Is(err, ErrInvalidTransition) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Delivery callback: failed to update notice %s: %v", c.Param("public_id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update notice"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "callback processed", "notice_id": d.PublicID})
}

func (h *Handler) transitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "notice not found"})
	case errors.Is(err, ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
