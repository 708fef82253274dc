package memstore

import (
	"context"

	"github.com/Spok95/kit-inventory/internal/domain/employees"
	"github.com/Spok95/kit-inventory/internal/domain/stock"
)

type autoLedger struct{ s *Store }

func (a autoLedger) Get(ctx context.Context, name string) (*stock.Item, error) {
	return run(ctx, a.s, func(v view) (*stock.Item, error) { return ledger{v.st}.Get(ctx, name) })
}

func (a autoLedger) Lock(ctx context.Context, name string) (*stock.Item, error) {
	return a.Get(ctx, name)
}

func (a autoLedger) List(ctx context.Context) ([]stock.Item, error) {
	return run(ctx, a.s, func(v view) ([]stock.Item, error) { return ledger{v.st}.List(ctx) })
}

func (a autoLedger) ListLow(ctx context.Context) ([]stock.Item, error) {
	return run(ctx, a.s, func(v view) ([]stock.Item, error) { return ledger{v.st}.ListLow(ctx) })
}

func (a autoLedger) Count(ctx context.Context) (int, error) {
	return run(ctx, a.s, func(v view) (int, error) { return ledger{v.st}.Count(ctx) })
}

func (a autoLedger) Insert(ctx context.Context, it stock.Item) (*stock.Item, error) {
	return run(ctx, a.s, func(v view) (*stock.Item, error) { return ledger{v.st}.Insert(ctx, it) })
}

func (a autoLedger) Update(ctx context.Context, it stock.Item) error {
	_, err := run(ctx, a.s, func(v view) (struct{}, error) { return struct{}{}, ledger{v.st}.Update(ctx, it) })
	return err
}

func (a autoLedger) Delete(ctx context.Context, name string) error {
	_, err := run(ctx, a.s, func(v view) (struct{}, error) { return struct{}{}, ledger{v.st}.Delete(ctx, name) })
	return err
}

type autoRegistry struct{ s *Store }

func (a autoRegistry) Get(ctx context.Context, id string) (*employees.Employee, error) {
	return run(ctx, a.s, func(v view) (*employees.Employee, error) { return registry{v.st}.Get(ctx, id) })
}

func (a autoRegistry) Lock(ctx context.Context, id string) (*employees.Employee, error) {
	return a.Get(ctx, id)
}

func (a autoRegistry) Search(ctx context.Context, query string) ([]employees.Employee, error) {
	return run(ctx, a.s, func(v view) ([]employees.Employee, error) { return registry{v.st}.Search(ctx, query) })
}

func (a autoRegistry) Insert(ctx context.Context, e employees.Employee) (*employees.Employee, error) {
	return run(ctx, a.s, func(v view) (*employees.Employee, error) { return registry{v.st}.Insert(ctx, e) })
}

func (a autoRegistry) Update(ctx context.Context, e employees.Employee) error {
	_, err := run(ctx, a.s, func(v view) (struct{}, error) { return struct{}{}, registry{v.st}.Update(ctx, e) })
	return err
}

func (a autoRegistry) Delete(ctx context.Context, id string) error {
	_, err := run(ctx, a.s, func(v view) (struct{}, error) { return struct{}{}, registry{v.st}.Delete(ctx, id) })
	return err
}

func (a autoRegistry) Stats(ctx context.Context) (employees.Stats, error) {
	return run(ctx, a.s, func(v view) (employees.Stats, error) { return registry{v.st}.Stats(ctx) })
}
