package inventory

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Spok95/kit-inventory/internal/domain/employees"
	"github.com/Spok95/kit-inventory/internal/domain/errs"
)

// SearchEmployees ищет query без учёта регистра по полям сотрудника; "" - все.
func (s *Service) SearchEmployees(ctx context.Context, query string) ([]employees.Employee, error) {
	return s.store.Employees().Search(ctx, strings.TrimSpace(query))
}

func (s *Service) GetEmployee(ctx context.Context, id string) (*employees.Employee, error) {
	return s.store.Employees().Get(ctx, id)
}

func (s *Service) EmployeeStats(ctx context.Context) (employees.Stats, error) {
	return s.store.Employees().Stats(ctx)
}

// CreateEmployee заводит сотрудника и списывает выданное со склада в одной транзакции.
func (s *Service) CreateEmployee(ctx context.Context, e employees.Employee) (out *employees.Employee, err error) {
	ctx, span := s.start(ctx, "CreateEmployee", attribute.String("employee", e.EmployeeID))
	defer func() { finish(span, err) }()

	if err := employees.ValidateNew(e); err != nil {
		return nil, err
	}
	e.CreatedAt = s.now().UTC()

	err = s.reconciled(ctx, func(tx Tx, apply func(map[string]int) error) error {
		_, err := tx.Employees().Get(ctx, e.EmployeeID)
		if err == nil {
			return errs.AlreadyExists("employee ID %q already exists", e.EmployeeID)
		}
		if !errors.Is(err, errs.ErrNotFound) {
			return err
		}
		if out, err = tx.Employees().Insert(ctx, e); err != nil {
			return err
		}
		return apply(e.Issuance())
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("employee created", "employee", out.EmployeeID)
	return out, nil
}

// UpdateEmployee применяет пришедшие поля. Каждое пришедшее количество двигает склад на new-old,
// где old берётся из заблокированной строки, а не из того, что видел клиент.
// Неизвестный сотрудник - NotFound ещё до проверки полей.
func (s *Service) UpdateEmployee(ctx context.Context, id string, u employees.Update) (out *employees.Employee, err error) {
	ctx, span := s.start(ctx, "UpdateEmployee", attribute.String("employee", id))
	defer func() { finish(span, err) }()

	err = s.reconciled(ctx, func(tx Tx, apply func(map[string]int) error) error {
		e, err := tx.Employees().Lock(ctx, id)
		if err != nil {
			return err
		}
		if err := u.Validate(); err != nil {
			return err
		}
		if u.EmployeeID != nil && *u.EmployeeID != id {
			return errs.Validation([]string{"employee_id cannot be changed"})
		}
		deltas := u.Apply(e)
		if err := tx.Employees().Update(ctx, *e); err != nil {
			return err
		}
		out = e
		if len(deltas) == 0 {
			return nil
		}
		return apply(deltas)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("employee updated", "employee", id)
	return out, nil
}

// DeleteEmployee удаляет сотрудника и возвращает на склад всё выданное.
func (s *Service) DeleteEmployee(ctx context.Context, id string) (err error) {
	ctx, span := s.start(ctx, "DeleteEmployee", attribute.String("employee", id))
	defer func() { finish(span, err) }()

	err = s.reconciled(ctx, func(tx Tx, apply func(map[string]int) error) error {
		e, err := tx.Employees().Lock(ctx, id)
		if err != nil {
			return err
		}
		if err := apply(e.Returns()); err != nil {
			return err
		}
		return tx.Employees().Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.log.Info("employee deleted", "employee", id)
	return nil
}
