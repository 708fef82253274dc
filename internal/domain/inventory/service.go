package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Spok95/kit-inventory/internal/domain/errs"
	"github.com/Spok95/kit-inventory/internal/domain/stock"
	"github.com/Spok95/kit-inventory/internal/infra/metrics"
)

type Service struct {
	store    Store
	notifier Notifier
	log      *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer
	now      func() time.Time

	seedQuantity    int
	seedDangerLevel int
	notifyTimeout   time.Duration
}

// DefaultNotifyTimeout - предел на отправку одного уведомления.
const DefaultNotifyTimeout = 30 * time.Second

type Option func(*Service)

// WithSeed задаёт количество и danger level для Bootstrap.
func WithSeed(quantity, dangerLevel int) Option {
	return func(s *Service) {
		s.seedQuantity = quantity
		s.seedDangerLevel = dangerLevel
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithNotifyTimeout(d time.Duration) Option {
	return func(s *Service) { s.notifyTimeout = d }
}

func New(store Store, notifier Notifier, log *slog.Logger, m *metrics.Metrics, opts ...Option) *Service {
	s := &Service{
		store:           store,
		notifier:        notifier,
		log:             log,
		metrics:         m,
		tracer:          otel.Tracer("github.com/Spok95/kit-inventory/inventory"),
		now:             time.Now,
		seedQuantity:    stock.DefaultQuantity,
		seedDangerLevel: stock.DefaultDangerLevel,
		notifyTimeout:   DefaultNotifyTimeout,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "inventory."+op, trace.WithAttributes(attrs...))
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Bootstrap засевает пустой склад позициями по умолчанию и возвращает, сколько добавил.
func (s *Service) Bootstrap(ctx context.Context) (seeded int, err error) {
	ctx, span := s.start(ctx, "Bootstrap")
	defer func() { finish(span, err) }()

	err = s.store.InTx(ctx, func(tx Tx) error {
		n, err := tx.Stock().Count(ctx)
		if err != nil || n > 0 {
			return err
		}
		for _, it := range stock.Defaults(s.seedQuantity, s.seedDangerLevel) {
			if _, err := tx.Stock().Insert(ctx, it); err != nil {
				return fmt.Errorf("seed %s: %w", it.Name, err)
			}
			seeded++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if seeded > 0 {
		s.log.Info("stock ledger seeded", "items", seeded, "quantity", s.seedQuantity, "danger_level", s.seedDangerLevel)
	}
	return seeded, nil
}

// alertLowStock проверяет весь склад и, если что-то на исходе, шлёт одно уведомление со всем списком.
func (s *Service) alertLowStock(ctx context.Context) {
	ctx, cancel := s.detach(ctx)
	defer cancel()

	low, err := s.store.Stock().ListLow(ctx)
	if err != nil {
		s.log.Error("low stock check failed", "err", err)
		return
	}
	s.metrics.LowStockItems.Set(float64(len(low)))
	if len(low) > 0 {
		s.notifyLow(ctx, low)
	}
}

// detach отвязывает уведомление от отмены запроса: ушедший клиент его не обрывает,
// ограничивает только notifyTimeout.
func (s *Service) detach(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
}

// notifyLow отдаёт позиции нотификатору. Ошибки только логируются и считаются.
func (s *Service) notifyLow(ctx context.Context, low []stock.Item) {
	ctx, cancel := s.detach(ctx)
	defer cancel()

	if err := s.notifier.NotifyLowStock(ctx, low); err != nil {
		s.metrics.LowStockAlerts.WithLabelValues("failed").Inc()
		s.log.Error("low stock alert not delivered",
			"items", len(low),
			"err", fmt.Errorf("%w: %w", errs.ErrNotification, err),
		)
		return
	}
	s.metrics.LowStockAlerts.WithLabelValues("sent").Inc()
	s.log.Info("low stock alert sent", "items", len(low))
}
