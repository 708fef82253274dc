package inventory

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Spok95/kit-inventory/internal/domain/errs"
	"github.com/Spok95/kit-inventory/internal/domain/stock"
)

// ListStock отдаёт весь склад и ту его часть, что на danger level или ниже.
func (s *Service) ListStock(ctx context.Context) (all, low []stock.Item, err error) {
	ctx, span := s.start(ctx, "ListStock")
	defer func() { finish(span, err) }()

	if all, err = s.store.Stock().List(ctx); err != nil {
		return nil, nil, err
	}
	if low, err = s.store.Stock().ListLow(ctx); err != nil {
		return nil, nil, err
	}
	s.metrics.LowStockItems.Set(float64(len(low)))
	return all, low, nil
}

func (s *Service) GetStock(ctx context.Context, name string) (*stock.Item, error) {
	return s.store.Stock().Get(ctx, name)
}

// LowStock - позиции с quantity <= danger level в порядке хранения.
func (s *Service) LowStock(ctx context.Context) ([]stock.Item, error) {
	return s.store.Stock().ListLow(ctx)
}

// CreateStock добавляет позицию. Существующую с тем же именем не трогаем.
func (s *Service) CreateStock(ctx context.Context, it stock.Item) (out *stock.Item, err error) {
	ctx, span := s.start(ctx, "CreateStock", attribute.String("item", it.Name))
	defer func() { finish(span, err) }()

	it.Name = strings.TrimSpace(it.Name)
	if err := it.Validate(); err != nil {
		return nil, err
	}

	err = s.store.InTx(ctx, func(tx Tx) error {
		_, err := tx.Stock().Get(ctx, it.Name)
		if err == nil {
			return errs.AlreadyExists("item %q already exists", it.Name)
		}
		if !errors.Is(err, errs.ErrNotFound) {
			return err
		}
		out, err = tx.Stock().Insert(ctx, it)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("stock item created", "item", out.Name, "quantity", out.Quantity, "danger_level", out.DangerLevel)
	return out, nil
}

// UpdateStock перезаписывает количество и/или danger level, затем проверяет низкие остатки.
// Неизвестная позиция - NotFound ещё до проверки полей.
func (s *Service) UpdateStock(ctx context.Context, name string, u stock.Update) (out *stock.Item, err error) {
	ctx, span := s.start(ctx, "UpdateStock", attribute.String("item", name))
	defer func() { finish(span, err) }()

	err = s.store.InTx(ctx, func(tx Tx) error {
		it, err := tx.Stock().Lock(ctx, name)
		if err != nil {
			return err
		}
		if err := u.Validate(); err != nil {
			return err
		}
		u.Apply(it)
		if err := tx.Stock().Update(ctx, *it); err != nil {
			return err
		}
		out = it
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.alertLowStock(ctx)
	return out, nil
}

// SetQuantity перезаписывает количество позиции.
func (s *Service) SetQuantity(ctx context.Context, name string, quantity int) (*stock.Item, error) {
	return s.UpdateStock(ctx, name, stock.Update{Quantity: &quantity})
}

// AddQuantity приходует ещё delta единиц существующей позиции. delta > 0.
func (s *Service) AddQuantity(ctx context.Context, name string, delta int) (out *stock.Item, err error) {
	ctx, span := s.start(ctx, "AddQuantity", attribute.String("item", name), attribute.Int("delta", delta))
	defer func() { finish(span, err) }()

	err = s.store.InTx(ctx, func(tx Tx) error {
		it, err := tx.Stock().Lock(ctx, name)
		if err != nil {
			return err
		}
		if delta <= 0 {
			return errs.InvalidArgument("quantity to add must be positive")
		}
		if delta > stock.MaxQuantity-it.Quantity {
			return errs.InvalidArgument("quantity cannot exceed %d", stock.MaxQuantity)
		}
		it.Quantity += delta
		if err := tx.Stock().Update(ctx, *it); err != nil {
			return err
		}
		out = it
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) DeleteStock(ctx context.Context, name string) (err error) {
	ctx, span := s.start(ctx, "DeleteStock", attribute.String("item", name))
	defer func() { finish(span, err) }()

	if err := s.store.Stock().Delete(ctx, name); err != nil {
		return err
	}
	s.log.Info("stock item deleted", "item", name)
	return nil
}

// CheckLowStock - ручной запуск: собирает низкие остатки и уведомляет, если они есть.
func (s *Service) CheckLowStock(ctx context.Context) (low []stock.Item, err error) {
	ctx, span := s.start(ctx, "CheckLowStock")
	defer func() { finish(span, err) }()

	if low, err = s.store.Stock().ListLow(ctx); err != nil {
		return nil, err
	}
	s.metrics.LowStockItems.Set(float64(len(low)))
	if len(low) > 0 {
		s.notifyLow(ctx, low)
	}
	return low, nil
}
