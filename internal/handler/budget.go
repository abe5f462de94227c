package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fintracker/internal/budget"
)

type BudgetHandler struct {
	Service *budget.Service
}

func (h *BudgetHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/budget")
	g.GET("", h.get)
	g.PUT("", h.set)
}

func (h *BudgetHandler) get(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "budget unavailable", nil)
		return
	}
	status, err := h.Service.Get(c.Request.Context())
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, status, nil)
}

type setBudgetRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

func (h *BudgetHandler) set(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "budget unavailable", nil)
		return
	}
	var req setBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	status, err := h.Service.Set(c.Request.Context(), req.Amount)
	var locked *budget.LockedError
	switch {
	case err == nil:
		Ok(c, status, nil)
	case errors.As(err, &locked):
		Error(c, http.StatusBadRequest, locked.Error(), map[string]any{
			"days_remaining":   locked.DaysRemaining,
			"next_update_date": locked.NextUpdate,
		})
	default:
		Error(c, http.StatusBadRequest, err.Error(), nil)
	}
}
