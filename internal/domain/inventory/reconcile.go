package inventory

import (
	"context"
	"errors"
	"maps"
	"slices"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Spok95/kit-inventory/internal/domain/errs"
	"github.com/Spok95/kit-inventory/internal/domain/stock"
)

// clamp - единицы, которые не удалось списать (остаток упёрся в ноль)
// или принять (остаток упёрся в MaxQuantity).
type clamp struct {
	item    string
	deficit int
	surplus int
}

// reconcile применяет дельты выдачи (позиция -> выдано единиц, возврат со знаком минус) к складу.
// Неизвестные складу позиции пропускаются. Строки блокируются в порядке имён,
// поэтому два параллельных пакета по одним позициям не встанут в deadlock.
func reconcile(ctx context.Context, ledger Ledger, deltas map[string]int) ([]clamp, error) {
	var clamps []clamp
	for _, name := range slices.Sorted(maps.Keys(deltas)) {
		delta := deltas[name]
		if delta == 0 {
			continue
		}
		if delta > stock.MaxQuantity || delta < -stock.MaxQuantity {
			return nil, errs.InvalidArgument("%s: change of %d is out of range", name, delta)
		}

		it, err := ledger.Lock(ctx, name)
		if errors.Is(err, errs.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		next, deficit := stock.Clamp(it.Quantity, delta)
		surplus := 0
		if next > stock.MaxQuantity {
			next, surplus = stock.MaxQuantity, next-stock.MaxQuantity
		}
		it.Quantity = next
		if err := ledger.Update(ctx, *it); err != nil {
			return nil, err
		}
		if deficit > 0 || surplus > 0 {
			clamps = append(clamps, clamp{item: name, deficit: deficit, surplus: surplus})
		}
	}
	return clamps, nil
}

// reconciled выполняет fn в одной транзакции. fn сам пишет в реестр и отдаёт получившиеся
// дельты через apply. Только после коммита сообщаем о зажатых в ноль остатках и, если
// сверка действительно была, проверяем низкие остатки.
func (s *Service) reconciled(ctx context.Context, fn func(tx Tx, apply func(deltas map[string]int) error) error) error {
	var (
		clamps []clamp
		ran    bool
	)
	err := s.store.InTx(ctx, func(tx Tx) error {
		clamps, ran = nil, false
		return fn(tx, func(deltas map[string]int) error {
			ran = true
			c, err := reconcile(ctx, tx.Stock(), deltas)
			if err != nil {
				return err
			}
			clamps = append(clamps, c...)
			return nil
		})
	})
	if err != nil {
		if ran {
			s.metrics.Reconciliations.WithLabelValues("rollback").Inc()
		}
		return err
	}
	if !ran {
		return nil
	}

	s.metrics.Reconciliations.WithLabelValues("commit").Inc()
	for _, c := range clamps {
		if c.surplus > 0 {
			s.log.Warn("stock capped at maximum", "item", c.item, "surplus", c.surplus)
			continue
		}
		s.metrics.StockClamped.WithLabelValues(c.item).Add(float64(c.deficit))
		s.log.Warn("stock clamped at zero", "item", c.item, "deficit", c.deficit)
	}
	s.alertLowStock(ctx)
	return nil
}

// Reconcile атомарно применяет отдельный пакет дельт.
func (s *Service) Reconcile(ctx context.Context, deltas map[string]int) (err error) {
	ctx, span := s.start(ctx, "Reconcile", attribute.Int("deltas", len(deltas)))
	defer func() { finish(span, err) }()

	return s.reconciled(ctx, func(_ Tx, apply func(map[string]int) error) error {
		return apply(deltas)
	})
}
