package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fintracker/internal/ledger"
	"fintracker/internal/repository"
)

const dateLayout = "2006-01-02"

type RecordHandler struct {
	Service *ledger.Service
}

func (h *RecordHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/records")
	g.POST("", h.create)
	g.GET("", h.list)
	g.DELETE("/:id", h.delete)
	g.GET("/annual-summary", h.annualSummary)
}

type createRecordRequest struct {
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	Category    string `json:"category" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"`
	Kind        string `json:"kind"`
}

func (h *RecordHandler) create(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "ledger unavailable", nil)
		return
	}
	var req createRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid date, want YYYY-MM-DD", nil)
		return
	}
	item, err := h.Service.Add(c.Request.Context(), ledger.AddParams{
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
		Kind:        req.Kind,
	})
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	Ok(c, item, nil)
}

func (h *RecordHandler) list(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "ledger unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 100)
	offset := intQuery(c, "offset", 0)
	params := repository.ListLedgerRecordsParams{
		Limit:  limit,
		Offset: offset,
	}
	items, total, err := h.Service.List(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

func (h *RecordHandler) delete(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "ledger unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	err := h.Service.Delete(c.Request.Context(), id)
	var locked *ledger.LockedError
	switch {
	case err == nil:
		Ok(c, nil, nil)
	case errors.Is(err, ledger.ErrNotFound):
		Error(c, http.StatusNotFound, "record not found", nil)
	case errors.As(err, &locked):
		Error(c, http.StatusBadRequest, locked.Error(), map[string]any{
			"lock_hours": int(locked.Lock.Hours()),
		})
	default:
		Error(c, http.StatusInternalServerError, err.Error(), nil)
	}
}

func (h *RecordHandler) annualSummary(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "ledger unavailable", nil)
		return
	}
	items, err := h.Service.AnnualSummary(c.Request.Context())
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}
