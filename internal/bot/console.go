package bot

import (
	"context"
	"log/slog"
	"time"

	"github.com/Spok95/kit-inventory/internal/domain/stock"
)

// Console пишет уведомление в лог. Используется, когда токен Telegram не задан.
type Console struct {
	log *slog.Logger
	now func() time.Time
}

func NewConsole(log *slog.Logger) *Console {
	return &Console{log: log, now: time.Now}
}

func (c *Console) NotifyLowStock(_ context.Context, items []stock.Item) error {
	if len(items) == 0 {
		return nil
	}
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	c.log.Warn("LOW STOCK ALERT", "items", names, "text", LowStockText(items, c.now()))
	return nil
}
