package pgstore

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/kit-inventory/internal/domain/employees"
	"github.com/Spok95/kit-inventory/internal/domain/errs"
	"github.com/Spok95/kit-inventory/internal/domain/inventory"
	"github.com/Spok95/kit-inventory/internal/domain/stock"
	"github.com/Spok95/kit-inventory/internal/infra/db"
)

// newStore нужна одноразовая база: TEST_POSTGRES_DSN=postgres://...
func newStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}
	require.NoError(t, db.Migrate(dsn))

	ctx := context.Background()
	pool, err := db.Connect(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE stock_items, employees RESTART IDENTITY`)
	require.NoError(t, err)
	return New(pool)
}

func TestStockRoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	for _, it := range stock.Defaults(100, 30) {
		_, err := s.Stock().Insert(ctx, it)
		require.NoError(t, err)
	}
	_, err := s.Stock().Insert(ctx, stock.Item{Name: "bag", Quantity: 1})
	assert.ErrorIs(t, err, errs.ErrAlreadyExists)

	require.NoError(t, s.Stock().Update(ctx, stock.Item{Name: "pen", Quantity: 10, DangerLevel: 30}))
	low, err := s.Stock().ListLow(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "pen", low[0].Name)
	assert.Equal(t, int64(2), low[0].ID)

	err = s.Stock().Update(ctx, stock.Item{Name: "pen", Quantity: -1})
	assert.ErrorIs(t, err, errs.ErrPersistence, "the CHECK constraint rejects negative stock")

	n, err := s.Stock().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	require.NoError(t, s.Stock().Delete(ctx, "pen"))
	_, err = s.Stock().Get(ctx, "pen")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestInTxRollsBack(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	_, err := s.Stock().Insert(ctx, stock.Item{Name: "bag", Quantity: 100, DangerLevel: 30})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.InTx(ctx, func(tx inventory.Tx) error {
		it, err := tx.Stock().Lock(ctx, "bag")
		require.NoError(t, err)
		it.Quantity = 0
		require.NoError(t, tx.Stock().Update(ctx, *it))
		_, err = tx.Employees().Insert(ctx, employees.Employee{EmployeeID: "E1", BloodGroup: "O+"})
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	it, err := s.Stock().Get(ctx, "bag")
	require.NoError(t, err)
	assert.Equal(t, 100, it.Quantity)
	_, err = s.Employees().Get(ctx, "E1")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestEmployeesRoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	e := employees.Employee{
		EmployeeID: "E1", FirstName: "Ann", LastName: "Lee", EmergencyNo: "555",
		BloodGroup: "A+", DepartmentName: "R&D_100%", BagQuantity: 2, TshirtXXLQuantity: 1,
	}
	out, err := s.Employees().Insert(ctx, e)
	require.NoError(t, err)
	assert.False(t, out.CreatedAt.IsZero())
	_, err = s.Employees().Insert(ctx, e)
	assert.ErrorIs(t, err, errs.ErrAlreadyExists)

	got, err := s.Employees().Search(ctx, "_100%")
	require.NoError(t, err)
	require.Len(t, got, 1)
	got, err = s.Employees().Search(ctx, "D%1")
	require.NoError(t, err)
	assert.Empty(t, got, "wildcards in the query are literal")

	e.PenQuantity = 4
	require.NoError(t, s.Employees().Update(ctx, e))
	locked, err := s.Employees().Lock(ctx, "E1")
	require.NoError(t, err)
	assert.Equal(t, 4, locked.PenQuantity)

	st, err := s.Employees().Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.TotalEmployees)
	assert.Equal(t, 2, st.BagsDistributed)
	assert.Equal(t, 1, st.TshirtSizesDistributed["XXL"])

	require.NoError(t, s.Employees().Delete(ctx, "E1"))
	assert.ErrorIs(t, s.Employees().Delete(ctx, "E1"), errs.ErrNotFound)
}

func TestEmployeeInsertKeepsCreatedAt(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	e := employees.Employee{
		EmployeeID: "E7", FirstName: "Ann", LastName: "Lee", EmergencyNo: "555",
		BloodGroup: "O-", DepartmentName: "Ops", CreatedAt: at,
	}
	out, err := s.Employees().Insert(ctx, e)
	require.NoError(t, err)
	assert.True(t, at.Equal(out.CreatedAt), "created_at = %s", out.CreatedAt)

	got, err := s.Employees().Get(ctx, "E7")
	require.NoError(t, err)
	assert.True(t, at.Equal(got.CreatedAt))
}
