package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintracker/internal/achievement"
)

type AchievementHandler struct {
	Service *achievement.Service
}

func (h *AchievementHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/achievements")
	g.GET("", h.list)
	g.DELETE("/reset", h.reset)
}

// list triggers a resolver pass as a side effect of the read; the pass is
// idempotent, so repeated reads are harmless.
func (h *AchievementHandler) list(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "achievements unavailable", nil)
		return
	}
	items, err := h.Service.List(c.Request.Context())
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}

func (h *AchievementHandler) reset(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "achievements unavailable", nil)
		return
	}
	if err := h.Service.Reset(c.Request.Context()); err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, nil, nil)
}
