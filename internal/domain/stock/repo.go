package stock

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Spok95/kit-inventory/internal/domain/errs"
	"github.com/Spok95/kit-inventory/internal/infra/db"
)

type Repo struct{ q db.Querier }

// NewRepo работает и с пулом, и с транзакцией.
func NewRepo(q db.Querier) *Repo { return &Repo{q: q} }

const columns = `id, item_name, quantity, danger_level`

func (r *Repo) Get(ctx context.Context, name string) (*Item, error) {
	return r.get(ctx, `SELECT `+columns+` FROM stock_items WHERE item_name = $1`, name)
}

// Lock читает позицию и держит строку до конца транзакции.
func (r *Repo) Lock(ctx context.Context, name string) (*Item, error) {
	return r.get(ctx, `SELECT `+columns+` FROM stock_items WHERE item_name = $1 FOR UPDATE`, name)
}

func (r *Repo) get(ctx context.Context, q, name string) (*Item, error) {
	var it Item
	err := r.q.QueryRow(ctx, q, name).Scan(&it.ID, &it.Name, &it.Quantity, &it.DangerLevel)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.NotFound("item %q not found", name)
	}
	if err != nil {
		return nil, errs.Persistence("select stock item", err)
	}
	return &it, nil
}

func (r *Repo) List(ctx context.Context) ([]Item, error) {
	return r.list(ctx, `SELECT `+columns+` FROM stock_items ORDER BY id`)
}

func (r *Repo) ListLow(ctx context.Context) ([]Item, error) {
	return r.list(ctx, `SELECT `+columns+` FROM stock_items WHERE quantity <= danger_level ORDER BY id`)
}

func (r *Repo) list(ctx context.Context, q string) ([]Item, error) {
	rows, err := r.q.Query(ctx, q)
	if err != nil {
		return nil, errs.Persistence("list stock items", err)
	}
	defer rows.Close()

	out := []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Quantity, &it.DangerLevel); err != nil {
			return nil, errs.Persistence("scan stock item", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Persistence("list stock items", err)
	}
	return out, nil
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_items`).Scan(&n); err != nil {
		return 0, errs.Persistence("count stock items", err)
	}
	return n, nil
}

func (r *Repo) Insert(ctx context.Context, it Item) (*Item, error) {
	row := r.q.QueryRow(ctx, `
		INSERT INTO stock_items (item_name, quantity, danger_level)
		VALUES ($1,$2,$3)
		RETURNING `+columns, it.Name, it.Quantity, it.DangerLevel)

	var out Item
	if err := row.Scan(&out.ID, &out.Name, &out.Quantity, &out.DangerLevel); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, errs.AlreadyExists("item %q already exists", it.Name)
		}
		return nil, errs.Persistence("insert stock item", err)
	}
	return &out, nil
}

// Update пишет quantity и danger level; имя - ключ и не меняется.
func (r *Repo) Update(ctx context.Context, it Item) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE stock_items SET quantity = $2, danger_level = $3
		WHERE item_name = $1
	`, it.Name, it.Quantity, it.DangerLevel)
	if err != nil {
		return errs.Persistence("update stock item", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("item %q not found", it.Name)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, name string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_items WHERE item_name = $1`, name)
	if err != nil {
		return errs.Persistence("delete stock item", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("item %q not found", name)
	}
	return nil
}
