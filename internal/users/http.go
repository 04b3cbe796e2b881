package users

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// userDBID mirrors auth.UserDBID; it is inlined here (same context key set by
// auth.WithUser) so this package does not import auth, which imports users.
func userDBID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString("user_db_id"))
}

type Handler struct {
	repo *Repo
}

func Register(rg *gin.RouterGroup, repo *Repo) {
	h := &Handler{repo: repo}

	rg.GET("/me", h.me)
	rg.PATCH("/me", h.updateProfile)
	rg.POST("/me/push-token", h.registerPushToken)
	rg.DELETE("/me/push-token", h.unregisterPushToken)
}

func (h *Handler) me(c *gin.Context) {
	p, err := h.repo.GetByID(c.Request.Context(), userDBID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "profile": p})
}

type updateProfileReq struct {
	CompanyName    *string `json:"company_name"`
	CompanyAddress *string `json:"company_address"`
	CompanyPhone   *string `json:"company_phone"`
	LicenseNumber  *string `json:"license_number"`
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.repo.UpdateProfile(c.Request.Context(), userDBID(c), UpdateProfileFields{
		CompanyName:    req.CompanyName,
		CompanyAddress: req.CompanyAddress,
		CompanyPhone:   req.CompanyPhone,
		LicenseNumber:  req.LicenseNumber,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "profile": p})
}

type pushTokenReq struct {
	Token string `json:"token"`
}

func (h *Handler) registerPushToken(c *gin.Context) {
	var req pushTokenReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Token) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	if err := h.repo.SetPushToken(c.Request.Context(), userDBID(c), strings.TrimSpace(req.Token)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) unregisterPushToken(c *gin.Context) {
	if err := h.repo.SetPushToken(c.Request.Context(), userDBID(c), ""); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
