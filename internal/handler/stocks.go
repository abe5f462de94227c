package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"fintracker/internal/stocks"
)

type StockHandler struct {
	Service *stocks.Service
}

func (h *StockHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/stocks")
	g.POST("", h.buy)
	g.GET("", h.list)
	g.POST("/:id/sell", h.sellLot)
	g.POST("/sell", h.sellSmart)
}

type buyStockRequest struct {
	Symbol string  `json:"symbol" binding:"required"`
	Shares int64   `json:"shares" binding:"required,gt=0"`
	Price  float64 `json:"price" binding:"required,gt=0"`
}

func (h *StockHandler) buy(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "stocks unavailable", nil)
		return
	}
	var req buyStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	lot, err := h.Service.Buy(c.Request.Context(), req.Symbol, req.Shares, decimal.NewFromFloat(req.Price))
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	Ok(c, lot, nil)
}

func (h *StockHandler) list(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "stocks unavailable", nil)
		return
	}
	holdings, err := h.Service.List(c.Request.Context())
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, holdings, nil)
}

type sellLotRequest struct {
	Shares int64   `json:"shares" binding:"required,gt=0"`
	Price  float64 `json:"price" binding:"required,gt=0"`
}

func (h *StockHandler) sellLot(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "stocks unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	var req sellLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	result, err := h.Service.SellLot(c.Request.Context(), id, req.Shares, decimal.NewFromFloat(req.Price))
	h.respondSale(c, result, err)
}

type sellSmartRequest struct {
	Symbol string  `json:"symbol" binding:"required"`
	Shares int64   `json:"shares" binding:"required,gt=0"`
	Price  float64 `json:"price" binding:"required,gt=0"`
}

func (h *StockHandler) sellSmart(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "stocks unavailable", nil)
		return
	}
	var req sellSmartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	result, err := h.Service.SellSmart(c.Request.Context(), req.Symbol, req.Shares, decimal.NewFromFloat(req.Price))
	h.respondSale(c, result, err)
}

func (h *StockHandler) respondSale(c *gin.Context, result stocks.SaleResult, err error) {
	switch {
	case err == nil:
		Ok(c, result, nil)
	case errors.Is(err, stocks.ErrLotNotFound):
		Error(c, http.StatusNotFound, "stock lot not found", nil)
	case errors.Is(err, stocks.ErrInsufficientInventory):
		Error(c, http.StatusBadRequest, "insufficient shares to sell", nil)
	default:
		Error(c, http.StatusInternalServerError, err.Error(), nil)
	}
}
