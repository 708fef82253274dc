// Package pgstore - склад и реестр на Postgres.
package pgstore

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/kit-inventory/internal/domain/employees"
	"github.com/Spok95/kit-inventory/internal/domain/errs"
	"github.com/Spok95/kit-inventory/internal/domain/inventory"
	"github.com/Spok95/kit-inventory/internal/domain/stock"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store { return &Store{pool: pool} }

func (s *Store) Stock() inventory.Ledger { return stock.NewRepo(s.pool) }
func (s *Store) Employees() inventory.Registry { return employees.NewRepo(s.pool) }

// InTx коммитит, если fn вернул nil, иначе откатывает.
func (s *Store) InTx(ctx context.Context, fn func(tx inventory.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return errs.Persistence("begin tx", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(txRepos{tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return errs.Persistence("commit tx", err)
	}
	return nil
}

type txRepos struct{ tx pgx.Tx }

func (t txRepos) Stock() inventory.Ledger { return stock.NewRepo(t.tx) }
func (t txRepos) Employees() inventory.Registry { return employees.NewRepo(t.tx) }
