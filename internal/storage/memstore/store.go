// Package memstore держит склад и реестр сотрудников в памяти процесса.
// Транзакция работает с собственной копией состояния, которая заменяет живую, только если fn успешен.
package memstore

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/Spok95/kit-inventory/internal/domain/employees"
	"github.com/Spok95/kit-inventory/internal/domain/errs"
	"github.com/Spok95/kit-inventory/internal/domain/inventory"
	"github.com/Spok95/kit-inventory/internal/domain/stock"
)

type state struct {
	items  []stock.Item
	staff  []employees.Employee
	nextID int64
}

func (st *state) clone() *state {
	return &state{
		items:  slices.Clone(st.items),
		staff:  slices.Clone(st.staff),
		nextID: st.nextID,
	}
}

type Store struct {
	mu sync.Mutex
	st *state
}

func New() *Store {
	return &Store{st: &state{nextID: 1}}
}

// InTx выполняет транзакции по одной. fn видит свои записи; наружу они попадают, только если вернулся nil.
func (s *Store) InTx(ctx context.Context, fn func(tx inventory.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.st.clone()
	if err := fn(view{st: work}); err != nil {
		return err
	}
	s.st = work
	return nil
}

// Stock и Employees выполняют каждый вызов отдельной транзакцией.
func (s *Store) Stock() inventory.Ledger { return autoLedger{s} }
func (s *Store) Employees() inventory.Registry { return autoRegistry{s} }

func run[T any](ctx context.Context, s *Store, fn func(v view) (T, error)) (T, error) {
	var out T
	err := s.InTx(ctx, func(tx inventory.Tx) error {
		var err error
		out, err = fn(tx.(view))
		return err
	})
	return out, err
}

type view struct{ st *state }

func (v view) Stock() inventory.Ledger { return ledger{v.st} }
func (v view) Employees() inventory.Registry { return registry{v.st} }

type ledger struct{ st *state }

func (l ledger) index(name string) int {
	return slices.IndexFunc(l.st.items, func(it stock.Item) bool { return it.Name == name })
}

func (l ledger) Get(_ context.Context, name string) (*stock.Item, error) {
	i := l.index(name)
	if i < 0 {
		return nil, errs.NotFound("item %q not found", name)
	}
	it := l.st.items[i]
	return &it, nil
}

// Lock - это Get: транзакции и так идут по одной.
func (l ledger) Lock(ctx context.Context, name string) (*stock.Item, error) {
	return l.Get(ctx, name)
}

func (l ledger) List(context.Context) ([]stock.Item, error) {
	return append([]stock.Item{}, l.st.items...), nil
}

func (l ledger) ListLow(context.Context) ([]stock.Item, error) {
	out := []stock.Item{}
	for _, it := range l.st.items {
		if it.Low() {
			out = append(out, it)
		}
	}
	return out, nil
}

func (l ledger) Count(context.Context) (int, error) { return len(l.st.items), nil }

func (l ledger) Insert(_ context.Context, it stock.Item) (*stock.Item, error) {
	if l.index(it.Name) >= 0 {
		return nil, errs.AlreadyExists("item %q already exists", it.Name)
	}
	if err := it.Validate(); err != nil {
		return nil, err
	}
	it.ID = l.st.nextID
	l.st.nextID++
	l.st.items = append(l.st.items, it)
	return &it, nil
}

func (l ledger) Update(_ context.Context, it stock.Item) error {
	i := l.index(it.Name)
	if i < 0 {
		return errs.NotFound("item %q not found", it.Name)
	}
	if err := it.Validate(); err != nil {
		return err
	}
	it.ID = l.st.items[i].ID
	l.st.items[i] = it
	return nil
}

func (l ledger) Delete(_ context.Context, name string) error {
	i := l.index(name)
	if i < 0 {
		return errs.NotFound("item %q not found", name)
	}
	l.st.items = slices.Delete(l.st.items, i, i+1)
	return nil
}

type registry struct{ st *state }

func (r registry) index(id string) int {
	return slices.IndexFunc(r.st.staff, func(e employees.Employee) bool { return e.EmployeeID == id })
}

func (r registry) Get(_ context.Context, id string) (*employees.Employee, error) {
	i := r.index(id)
	if i < 0 {
		return nil, errs.NotFound("employee %q not found", id)
	}
	e := r.st.staff[i]
	return &e, nil
}

func (r registry) Lock(ctx context.Context, id string) (*employees.Employee, error) {
	return r.Get(ctx, id)
}

func (r registry) Search(_ context.Context, query string) ([]employees.Employee, error) {
	q := strings.ToLower(query)
	out := []employees.Employee{}
	for _, e := range r.st.staff {
		if q == "" || matches(e, q) {
			out = append(out, e)
		}
	}
	return out, nil
}

func matches(e employees.Employee, q string) bool {
	for _, f := range []string{e.EmployeeID, e.FirstName, e.LastName, e.EmergencyNo, e.BloodGroup, e.DepartmentName} {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func (r registry) Insert(_ context.Context, e employees.Employee) (*employees.Employee, error) {
	if r.index(e.EmployeeID) >= 0 {
		return nil, errs.AlreadyExists("employee ID %q already exists", e.EmployeeID)
	}
	r.st.staff = append(r.st.staff, e)
	return &e, nil
}

func (r registry) Update(_ context.Context, e employees.Employee) error {
	i := r.index(e.EmployeeID)
	if i < 0 {
		return errs.NotFound("employee %q not found", e.EmployeeID)
	}
	e.CreatedAt = r.st.staff[i].CreatedAt
	r.st.staff[i] = e
	return nil
}

func (r registry) Delete(_ context.Context, id string) error {
	i := r.index(id)
	if i < 0 {
		return errs.NotFound("employee %q not found", id)
	}
	r.st.staff = slices.Delete(r.st.staff, i, i+1)
	return nil
}

func (r registry) Stats(context.Context) (employees.Stats, error) {
	return employees.Tally(r.st.staff), nil
}
