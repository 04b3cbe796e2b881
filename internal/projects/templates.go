package projects

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prelimpro/prelimpro-backend/internal/auth"
)

// ProjectTemplate is a per-user saved prefill: a named bundle of project
// fields the mobile app applies when creating a new job.
type ProjectTemplate struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Prefill   json.RawMessage `json:"prefill"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type TemplateRepo struct {
	db *pgxpool.Pool
}

func NewTemplateRepo(db *pgxpool.Pool) *TemplateRepo {
	return &TemplateRepo{db: db}
}

func (r *TemplateRepo) Create(ctx context.Context, userDBID, name string, prefill json.RawMessage) (*ProjectTemplate, error) {
	const q = `
insert into project_templates (user_id, name, prefill)
values ($1::uuid, $2, $3)
returning id::text, name, prefill, created_at, updated_at;`

	var t ProjectTemplate
	err := r.db.QueryRow(ctx, q, userDBID, name, prefill).
		Scan(&t.ID, &t.Name, &t.Prefill, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TemplateRepo) List(ctx context.Context, userDBID string) ([]ProjectTemplate, error) {
	const q = `
select id::text, name, prefill, created_at, updated_at
from project_templates
where user_id = $1::uuid
order by name asc;`

	rows, err := r.db.Query(ctx, q, userDBID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ProjectTemplate, 0, 8)
	for rows.Next() {
		var t ProjectTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.Prefill, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TemplateRepo) Update(ctx context.Context, userDBID, id, name string, prefill json.RawMessage) (*ProjectTemplate, error) {
	const q = `
update project_templates
set name = coalesce(nullif($3, ''), name),
    prefill = coalesce($4, prefill),
    updated_at = now()
where user_id = $1::uuid and id = $2::uuid
returning id::text, name, prefill, created_at, updated_at;`

	var t ProjectTemplate
	err := r.db.QueryRow(ctx, q, userDBID, id, name, prefill).
		Scan(&t.ID, &t.Name, &t.Prefill, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TemplateRepo) Delete(ctx context.Context, userDBID, id string) (bool, error) {
	const q = `delete from project_templates where user_id = $1::uuid and id = $2::uuid;`

	ct, err := r.db.Exec(ctx, q, userDBID, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

type templateHandler struct {
	repo *TemplateRepo
}

// RegisterTemplates attaches the saved-template routes.
func RegisterTemplates(rg *gin.RouterGroup, repo *TemplateRepo) {
	h := &templateHandler{repo: repo}

	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.PATCH("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}

type templateReq struct {
	Name    string          `json:"name"`
	Prefill json.RawMessage `json:"prefill"`
}

func (h *templateHandler) create(c *gin.Context) {
	var req templateReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if len(req.Prefill) == 0 {
		req.Prefill = json.RawMessage(`{}`)
	}

	t, err := h.repo.Create(c.Request.Context(), auth.UserDBID(c), strings.TrimSpace(req.Name), req.Prefill)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "template": t})
}

func (h *templateHandler) list(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context(), auth.UserDBID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "templates": items})
}

func (h *templateHandler) update(c *gin.Context) {
	var req templateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	t, err := h.repo.Update(c.Request.Context(), auth.UserDBID(c), c.Param("id"), strings.TrimSpace(req.Name), req.Prefill)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "template": t})
}

func (h *templateHandler) delete(c *gin.Context) {
	ok, err := h.repo.Delete(c.Request.Context(), auth.UserDBID(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "template not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
