package projects

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prelimpro/prelimpro-backend/internal/audit"
	"github.com/prelimpro/prelimpro-backend/internal/auth"
	"github.com/prelimpro/prelimpro-backend/internal/notices/rules"
)

// EntitlementChecker gates project creation on the user's plan.
type EntitlementChecker interface {
	CanCreateProject(ctx context.Context, userDBID string) error
}

type Handler struct {
	repo         *Repo
	auditRepo    *audit.Repo
	entitlements EntitlementChecker
}

func Register(rg *gin.RouterGroup, repo *Repo, auditRepo *audit.Repo, ent EntitlementChecker) {
	h := &Handler{repo: repo, auditRepo: auditRepo, entitlements: ent}

	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:public_id", h.get)
	rg.PATCH("/:public_id", h.update)
	rg.PUT("/:public_id/status", h.updateStatus)
	rg.DELETE("/:public_id", h.delete)
}

type createReq struct {
	Name             string `json:"name"`
	OwnerName        string `json:"owner_name"`
	OwnerAddress     string `json:"owner_address"`
	GCName           string `json:"gc_name"`
	LenderName       string `json:"lender_name"`
	PropertyAddress  string `json:"property_address"`
	LegalDescription string `json:"legal_description"`
	ContractCents    int64  `json:"contract_amount_cents"`
	State            string `json:"state"`
	FurnishingDate   string `json:"furnishing_date"` // YYYY-MM-DD
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.State) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserDBID(c)

	if h.entitlements != nil {
		if err := h.entitlements.CanCreateProject(c.Request.Context(), userID); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": err.Error()})
			return
		}
	}

	in := NewProject{
		Name:             strings.TrimSpace(req.Name),
		OwnerName:        strings.TrimSpace(req.OwnerName),
		OwnerAddress:     strings.TrimSpace(req.OwnerAddress),
		GCName:           strings.TrimSpace(req.GCName),
		LenderName:       strings.TrimSpace(req.LenderName),
		PropertyAddress:  strings.TrimSpace(req.PropertyAddress),
		LegalDescription: strings.TrimSpace(req.LegalDescription),
		ContractCents:    req.ContractCents,
		State:            strings.TrimSpace(req.State),
	}

	if req.FurnishingDate != "" {
		fd, err := time.Parse("2006-01-02", req.FurnishingDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "furnishing_date must be YYYY-MM-DD"})
			return
		}
		in.FurnishingDate = &fd

		// The deadline stays null for states missing from the rule table.
		if dl, ok := rules.DeadlineFor(in.State, fd); ok {
			in.NoticeDeadline = &dl
		}
	}

	p, err := h.repo.Create(c.Request.Context(), userID, in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	audit.MustRecord(c.Request.Context(), h.auditRepo, audit.Entry{
		UserID:   userID,
		Entity:   audit.EntityProject,
		EntityID: p.PublicID,
		Action:   "create",
		Details:  fmt.Sprintf("state=%s", p.State),
	})

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context(), auth.UserDBID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.repo.Get(c.Request.Context(), auth.UserDBID(c), c.Param("public_id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

type updateReq struct {
	Name             *string `json:"name"`
	OwnerName        *string `json:"owner_name"`
	OwnerAddress     *string `json:"owner_address"`
	GCName           *string `json:"gc_name"`
	LenderName       *string `json:"lender_name"`
	PropertyAddress  *string `json:"property_address"`
	LegalDescription *string `json:"legal_description"`
	ContractCents    *int64  `json:"contract_amount_cents"`
	State            *string `json:"state"`
	FurnishingDate   *string `json:"furnishing_date"`
}

func (h *Handler) update(c *gin.Context) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserDBID(c)
	publicID := c.Param("public_id")

	f := UpdateFields{
		Name:             req.Name,
		OwnerName:        req.OwnerName,
		OwnerAddress:     req.OwnerAddress,
		GCName:           req.GCName,
		LenderName:       req.LenderName,
		PropertyAddress:  req.PropertyAddress,
		LegalDescription: req.LegalDescription,
		ContractCents:    req.ContractCents,
		State:            req.State,
	}

	if req.FurnishingDate != nil {
		fd, err := time.Parse("2006-01-02", *req.FurnishingDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "furnishing_date must be YYYY-MM-DD"})
			return
		}
		f.FurnishingDate = &fd
	}

	// Recompute the deadline when the state or furnishing date moves.
	if req.State != nil || f.FurnishingDate != nil {
		cur, err := h.repo.Get(c.Request.Context(), userID, publicID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
			return
		}

		state := cur.State
		if req.State != nil {
			state = *req.State
		}
		furnishing := cur.FurnishingDate
		if f.FurnishingDate != nil {
			furnishing = f.FurnishingDate
		}
		f.NoticeDeadline, f.ClearNoticeDeadline = recomputedDeadline(state, furnishing)
	}

	p, err := h.repo.Update(c.Request.Context(), userID, publicID, f)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	audit.MustRecord(c.Request.Context(), h.auditRepo, audit.Entry{
		UserID:   userID,
		Entity:   audit.EntityProject,
		EntityID: p.PublicID,
		Action:   "update",
	})

	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

type statusReq struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(c *gin.Context) {
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil || !ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid status"})
		return
	}

	userID := auth.UserDBID(c)
	p, err := h.repo.UpdateStatus(c.Request.Context(), userID, c.Param("public_id"), req.Status)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	audit.MustRecord(c.Request.Context(), h.auditRepo, audit.Entry{
		UserID:   userID,
		Entity:   audit.EntityProject,
		EntityID: p.PublicID,
		Action:   "status_change",
		Details:  "status=" + req.Status,
	})

	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) delete(c *gin.Context) {
	userID := auth.UserDBID(c)
	publicID := c.Param("public_id")

	ok, err := h.repo.SoftDelete(c.Request.Context(), userID, publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}

	audit.MustRecord(c.Request.Context(), h.auditRepo, audit.Entry{
		UserID:   userID,
		Entity:   audit.EntityProject,
		EntityID: publicID,
		Action:   "delete",
	})

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
