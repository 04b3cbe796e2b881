package audit

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/prelimpro/prelimpro-backend/internal/auth"
)

type Handler struct {
	repo *Repo
}

func Register(rg *gin.RouterGroup, repo *Repo) {
	h := &Handler{repo: repo}

	rg.GET("", h.listByUser)
	rg.GET("/:entity/:entity_id", h.listByEntity)
}

func (h *Handler) listByUser(c *gin.Context) {
	userID := auth.UserDBID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, err := h.repo.ListByUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "entries": items})
}

func (h *Handler) listByEntity(c *gin.Context) {
	userID := auth.UserDBID(c)
	entity := c.Param("entity")
	entityID := c.Param("entity_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	items, err := h.repo.ListByEntity(c.Request.Context(), userID, entity, entityID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "entries": items})
}

// MustRecord records an entry and only logs on failure. Audit writes never
// fail the action they describe.
func MustRecord(ctx context.Context, repo *Repo, e Entry) {
	if repo == nil {
		return
	}
	if err := repo.Record(ctx, &e); err != nil {
		log.Printf("audit: failed to record %s/%s %s: %v", e.Entity, e.EntityID, e.Action, err)
	}
}
