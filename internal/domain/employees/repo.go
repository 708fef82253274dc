package employees

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Spok95/kit-inventory/internal/domain/errs"
	"github.com/Spok95/kit-inventory/internal/infra/db"
)

type Repo struct{ q db.Querier }

// NewRepo работает и с пулом, и с транзакцией.
func NewRepo(q db.Querier) *Repo { return &Repo{q: q} }

var quantityColumns = func() []string {
	out := make([]string, 0, len(Items))
	for _, it := range Items {
		out = append(out, it.Field())
	}
	return out
}()

var columns = `employee_id, first_name, last_name, emergency_no, blood_group, department_name, ` +
	strings.Join(quantityColumns, ", ") + `, created_at`

func scanTargets(e *Employee) []any {
	dst := []any{&e.EmployeeID, &e.FirstName, &e.LastName, &e.EmergencyNo, &e.BloodGroup, &e.DepartmentName}
	for _, it := range Items {
		dst = append(dst, e.slot(it))
	}
	return append(dst, &e.CreatedAt)
}

func (r *Repo) Get(ctx context.Context, id string) (*Employee, error) {
	return r.get(ctx, `SELECT `+columns+` FROM employees WHERE employee_id = $1`, id)
}

// Lock читает сотрудника и держит строку до конца транзакции.
func (r *Repo) Lock(ctx context.Context, id string) (*Employee, error) {
	return r.get(ctx, `SELECT `+columns+` FROM employees WHERE employee_id = $1 FOR UPDATE`, id)
}

func (r *Repo) get(ctx context.Context, q, id string) (*Employee, error) {
	var e Employee
	err := r.q.QueryRow(ctx, q, id).Scan(scanTargets(&e)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.NotFound("employee %q not found", id)
	}
	if err != nil {
		return nil, errs.Persistence("select employee", err)
	}
	return &e, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search ищет query как подстроку любого поля сотрудника без учёта регистра.
func (r *Repo) Search(ctx context.Context, query string) ([]Employee, error) {
	q := `SELECT ` + columns + ` FROM employees`
	var args []any
	if query != "" {
		q += `
		WHERE employee_id ILIKE $1 OR first_name ILIKE $1 OR last_name ILIKE $1
		   OR emergency_no ILIKE $1 OR blood_group ILIKE $1 OR department_name ILIKE $1`
		args = append(args, "%"+likeEscaper.Replace(query)+"%")
	}
	q += ` ORDER BY created_at, employee_id`

	rows, err := r.q.Query(ctx, q, args...)
	if err != nil {
		return nil, errs.Persistence("search employees", err)
	}
	defer rows.Close()

	out := []Employee{}
	for rows.Next() {
		var e Employee
		if err := rows.Scan(scanTargets(&e)...); err != nil {
			return nil, errs.Persistence("scan employee", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Persistence("search employees", err)
	}
	return out, nil
}

func placeholders(from, n int) string {
	ps := make([]string, n)
	for i := range ps {
		ps[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(ps, ",")
}

// Insert пишет created_at из e; нулевое время заменяет now() базы.
func (r *Repo) Insert(ctx context.Context, e Employee) (*Employee, error) {
	args := []any{e.EmployeeID, e.FirstName, e.LastName, e.EmergencyNo, e.BloodGroup, e.DepartmentName}
	for _, it := range Items {
		args = append(args, e.Issued(it))
	}
	var createdAt any
	if !e.CreatedAt.IsZero() {
		createdAt = e.CreatedAt
	}
	args = append(args, createdAt)

	q := `INSERT INTO employees (` + columns + `)
		VALUES (` + placeholders(1, len(args)-1) + fmt.Sprintf(`, COALESCE($%d::timestamptz, now()))`, len(args)) + `
		RETURNING ` + columns

	var out Employee
	if err := r.q.QueryRow(ctx, q, args...).Scan(scanTargets(&out)...); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, errs.AlreadyExists("employee ID %q already exists", e.EmployeeID)
		}
		return nil, errs.Persistence("insert employee", err)
	}
	return &out, nil
}

// Update перезаписывает все изменяемые колонки строки с ключом EmployeeID.
func (r *Repo) Update(ctx context.Context, e Employee) error {
	sets := []string{"first_name = $2", "last_name = $3", "emergency_no = $4", "blood_group = $5", "department_name = $6"}
	args := []any{e.EmployeeID, e.FirstName, e.LastName, e.EmergencyNo, e.BloodGroup, e.DepartmentName}
	for _, it := range Items {
		args = append(args, e.Issued(it))
		sets = append(sets, fmt.Sprintf("%s = $%d", it.Field(), len(args)))
	}

	tag, err := r.q.Exec(ctx, `UPDATE employees SET `+strings.Join(sets, ", ")+` WHERE employee_id = $1`, args...)
	if err != nil {
		return errs.Persistence("update employee", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("employee %q not found", e.EmployeeID)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM employees WHERE employee_id = $1`, id)
	if err != nil {
		return errs.Persistence("delete employee", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("employee %q not found", id)
	}
	return nil
}

func (r *Repo) Stats(ctx context.Context) (Stats, error) {
	sums := make([]string, 0, len(Items))
	for _, c := range quantityColumns {
		sums = append(sums, "COALESCE(SUM("+c+"), 0)")
	}

	total := 0
	values := make([]int, len(Items))
	dst := []any{&total}
	for i := range values {
		dst = append(dst, &values[i])
	}
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*), `+strings.Join(sums, ", ")+` FROM employees`).Scan(dst...); err != nil {
		return Stats{}, errs.Persistence("employee stats", err)
	}

	byItem := make(map[Item]int, len(Items))
	for i, it := range Items {
		byItem[it] = values[i]
	}
	return NewStats(total, byItem), nil
}
