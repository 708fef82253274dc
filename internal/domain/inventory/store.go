package inventory

import (
	"context"

	"github.com/Spok95/kit-inventory/internal/domain/employees"
	"github.com/Spok95/kit-inventory/internal/domain/stock"
)

// Ledger - таблица склада. Get/Lock на неизвестное имя отдают errs.ErrNotFound.
type Ledger interface {
	Get(ctx context.Context, name string) (*stock.Item, error)
	Lock(ctx context.Context, name string) (*stock.Item, error)
	List(ctx context.Context) ([]stock.Item, error)
	ListLow(ctx context.Context) ([]stock.Item, error)
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, it stock.Item) (*stock.Item, error)
	Update(ctx context.Context, it stock.Item) error
	Delete(ctx context.Context, name string) error
}

// Registry - таблица сотрудников. Get/Lock на неизвестный id отдают errs.ErrNotFound.
type Registry interface {
	Get(ctx context.Context, id string) (*employees.Employee, error)
	Lock(ctx context.Context, id string) (*employees.Employee, error)
	Search(ctx context.Context, query string) ([]employees.Employee, error)
	Insert(ctx context.Context, e employees.Employee) (*employees.Employee, error)
	Update(ctx context.Context, e employees.Employee) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (employees.Stats, error)
}

type Tx interface {
	Stock() Ledger
	Employees() Registry
}

// Store выдаёт репозитории вне транзакции и выполняет fn внутри неё.
// Если fn вернул ошибку, ничего из записанного им не сохраняется.
type Store interface {
	Tx
	InTx(ctx context.Context, fn func(tx Tx) error) error
}

// Notifier доставляет уведомление о низких остатках. Его ошибки логируются, вызывающему не возвращаются.
type Notifier interface {
	NotifyLowStock(ctx context.Context, items []stock.Item) error
}

type NotifierFunc func(ctx context.Context, items []stock.Item) error

func (f NotifierFunc) NotifyLowStock(ctx context.Context, items []stock.Item) error {
	return f(ctx, items)
}
