package quote

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"nhooyr.io/websocket"
)

// Stream consumes a push feed of price ticks and folds them into the
// cache. It is optional plumbing: valuation still works purely off the
// polling provider when no stream is configured.
type Stream struct {
	URL    string
	Cache  *Cache
	Logger *zap.Logger
}

type priceTick struct {
	Symbol string          `json:"symbol"`
	Price  decimal.Decimal `json:"price"`
}

// Run connects and keeps reading ticks until ctx is done, reconnecting
// with a flat backoff on any failure.
func (s *Stream) Run(ctx context.Context) error {
	if s == nil || s.Cache == nil || strings.TrimSpace(s.URL) == "" {
		return nil
	}

	for {
		if err := s.readLoop(ctx); err != nil && s.Logger != nil {
			s.Logger.Warn("quote stream disconnected", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Second):
		}
	}
}

func (s *Stream) readLoop(ctx context.Context) error {
	conn, _, err := websocket.Dial(ctx, s.URL, nil)
	if err != nil {
		return err
	}
	defer conn.Close(websocket.StatusNormalClosure, "shutting down")

	conn.SetReadLimit(1 << 20)
	if s.Logger != nil {
		s.Logger.Info("quote stream connected", zap.String("url", s.URL))
	}

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}
		var tick priceTick
		if err := json.Unmarshal(data, &tick); err != nil {
			continue
		}
		if tick.Symbol == "" || tick.Price.IsZero() {
			continue
		}
		s.Cache.Set(NormalizeSymbol(tick.Symbol), tick.Price)
	}
}
