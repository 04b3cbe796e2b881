package exports

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prelimpro/prelimpro-backend/internal/auth"
	"github.com/prelimpro/prelimpro-backend/internal/projects"
)

var csvHeader = []string{
	"public_id", "name", "owner_name", "gc_name", "lender_name",
	"property_address", "state", "contract_amount_cents",
	"furnishing_date", "notice_deadline", "status", "created_at",
}

type Handler struct {
	projectRepo *projects.Repo
}

func Register(rg *gin.RouterGroup, projectRepo *projects.Repo) {
	h := &Handler{projectRepo: projectRepo}

	rg.GET("/projects.csv", h.projectsCSV)
}

// projectsCSV streams the user's projects as a CSV attachment.
func (h *Handler) projectsCSV(c *gin.Context) {
	items, err := h.projectRepo.List(c.Request.Context(), auth.UserDBID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	filename := fmt.Sprintf("prelimpro-projects-%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write(csvHeader)

	for _, p := range items {
		row := []string{
			p.PublicID, p.Name, p.OwnerName, p.GCName, p.LenderName,
			p.PropertyAddress, p.State, strconv.FormatInt(p.ContractCents, 10),
			dateOrEmpty(p.FurnishingDate), dateOrEmpty(p.NoticeDeadline),
			p.Status, p.CreatedAt.UTC().Format(time.RFC3339),
		}
		_ = w.Write(row)
	}
	w.Flush()
}

func dateOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
