package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintracker/internal/dashboard"
)

type DashboardHandler struct {
	Service *dashboard.Service
}

func (h *DashboardHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/dashboard", h.get)
}

func (h *DashboardHandler) get(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "dashboard unavailable", nil)
		return
	}
	overview, err := h.Service.Get(c.Request.Context())
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, overview, nil)
}
