package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"github.com/Spok95/kit-inventory/internal/domain/stock"
)

// Sender - то, что нотификатору нужно от *tgbotapi.BotAPI.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot шлёт уведомления о низких остатках в админские чаты.
type Bot struct {
	api     Sender
	log     *slog.Logger
	chats   []int64
	limiter *rate.Limiter
	now     func() time.Time
}

// New оставляет первое вхождение каждого ненулевого chat id. perSecond <= 0 - без ограничения темпа.
func New(api Sender, log *slog.Logger, chatIDs []int64, perSecond float64) *Bot {
	seen := map[int64]struct{}{}
	chats := make([]int64, 0, len(chatIDs))
	for _, id := range chatIDs {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		chats = append(chats, id)
	}

	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &Bot{
		api:     api,
		log:     log,
		chats:   chats,
		limiter: rate.NewLimiter(limit, 1),
		now:     time.Now,
	}
}

// Connect логинится по токену и возвращает клиента API.
func Connect(token string) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram login: %w", err)
	}
	return api, nil
}

// NotifyLowStock шлёт по сообщению в каждый чат. Сбой в одном чате не останавливает остальные.
func (b *Bot) NotifyLowStock(ctx context.Context, items []stock.Item) error {
	if len(items) == 0 {
		return nil
	}
	if len(b.chats) == 0 {
		return errors.New("telegram: no admin chats configured")
	}

	text := LowStockText(items, b.now())
	var failed []error
	for _, chatID := range b.chats {
		if err := b.limiter.Wait(ctx); err != nil {
			failed = append(failed, fmt.Errorf("chat %d: %w", chatID, err))
			break
		}
		if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
			b.log.Warn("telegram send failed", "chat_id", chatID, "err", err)
			failed = append(failed, fmt.Errorf("chat %d: %w", chatID, err))
			continue
		}
		b.log.Debug("low stock alert delivered", "chat_id", chatID, "items", len(items))
	}
	return errors.Join(failed...)
}
