package employees

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Spok95/kit-inventory/internal/domain/errs"
)

// MaxQuantity - больше в колонку INTEGER не поместится.
const MaxQuantity = math.MaxInt32

var quantityRule = fmt.Sprintf("gte=0,lte=%d", MaxQuantity)

// validate называет поля по json-тегам, чтобы сообщения совпадали с ключами запроса.
var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}()

// Raw - JSON-объект, значения которого ещё не приведены к типам.
type Raw map[string]json.RawMessage

type textField struct {
	name string
	get  func(*Employee) *string
}

var textFields = []textField{
	{"employee_id", func(e *Employee) *string { return &e.EmployeeID }},
	{"first_name", func(e *Employee) *string { return &e.FirstName }},
	{"last_name", func(e *Employee) *string { return &e.LastName }},
	{"emergency_no", func(e *Employee) *string { return &e.EmergencyNo }},
	{"blood_group", func(e *Employee) *string { return &e.BloodGroup }},
	{"department_name", func(e *Employee) *string { return &e.DepartmentName }},
}

var bloodGroupProblem = "blood_group must be one of " + strings.Join(BloodGroups, ", ")

type mode int

const (
	creating mode = iota
	updating
)

// problems копит сообщения и помнит поля, которые не разобрались по типу,
// чтобы правило валидатора не ругалось на то же поле второй раз.
type problems struct {
	list []string
	bad  map[string]bool
}

func (p *problems) add(field, msg string) {
	if p.bad == nil {
		p.bad = map[string]bool{}
	}
	p.bad[field] = true
	p.list = append(p.list, msg)
}

func present(raw Raw, field string) (json.RawMessage, bool) {
	v, ok := raw[field]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return nil, false
	}
	return v, true
}

func (p *problems) text(raw Raw, field string) (string, bool) {
	v, ok := present(raw, field)
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		p.add(field, field+" must be a string")
		return "", false
	}
	return s, true
}

func (p *problems) integer(raw Raw, field string) (int, bool) {
	v, ok := present(raw, field)
	if !ok {
		return 0, false
	}
	var n int
	if err := json.Unmarshal(v, &n); err != nil {
		p.add(field, field+" must be an integer")
		return 0, false
	}
	return n, true
}

func describe(field, tag, param string, m mode) string {
	switch tag {
	case "notblank":
		if m == updating {
			return field + " cannot be empty"
		}
		return field + " is required"
	case "oneof":
		return field + " must be one of " + strings.Join(strings.Fields(param), ", ")
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, param)
	case "gte":
		return field + " cannot be negative"
	case "lte":
		return fmt.Sprintf("%s cannot exceed %s", field, param)
	}
	return fmt.Sprintf("%s is invalid (%s)", field, tag)
}

// collect переводит ошибки валидатора в сообщения для клиента.
func (p *problems) collect(err error, m mode) {
	if err == nil {
		return
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		p.list = append(p.list, err.Error())
		return
	}
	for _, fe := range ves {
		if p.bad[fe.Field()] {
			continue
		}
		p.add(fe.Field(), describe(fe.Field(), fe.Tag(), fe.Param(), m))
	}
}

// ValidateNew сообщает обо всех проблемах сотрудника перед созданием.
func ValidateNew(e Employee) error {
	var p problems
	p.collect(validate.Struct(e), creating)
	return errs.Validation(p.list)
}

// ParseNew приводит к типам тело создания. Отсутствующие количества равны нулю.
func ParseNew(raw Raw) (Employee, error) {
	var (
		p problems
		e Employee
	)
	for _, f := range textFields {
		if s, ok := p.text(raw, f.name); ok {
			*f.get(&e) = s
		}
	}
	for _, it := range Items {
		if n, ok := p.integer(raw, it.Field()); ok {
			e.SetIssued(it, n)
		}
	}
	p.collect(validate.Struct(e), creating)
	return e, errs.Validation(p.list)
}

func (p *problems) checkUpdate(u Update) {
	p.collect(validate.Struct(u), updating)
	for _, it := range Items {
		n := u.quantity(it)
		if n == nil || p.bad[it.Field()] {
			continue
		}
		var ves validator.ValidationErrors
		if errors.As(validate.Var(*n, quantityRule), &ves) {
			p.add(it.Field(), describe(it.Field(), ves[0].Tag(), ves[0].Param(), updating))
		}
	}
}

// Validate сообщает обо всех проблемах в пришедших полях.
func (u Update) Validate() error {
	if u.Empty() {
		return errs.Validation([]string{"no fields to update"})
	}
	var p problems
	p.checkUpdate(u)
	return errs.Validation(p.list)
}

// ParseUpdate разбирает частичное изменение: в Update попадают только ключи из raw.
func ParseUpdate(raw Raw) (Update, error) {
	var (
		p problems
		u Update
	)
	ptr := func(field string) *string {
		if s, ok := p.text(raw, field); ok {
			return &s
		}
		return nil
	}
	u.EmployeeID = ptr("employee_id")
	u.FirstName = ptr("first_name")
	u.LastName = ptr("last_name")
	u.EmergencyNo = ptr("emergency_no")
	u.BloodGroup = ptr("blood_group")
	u.DepartmentName = ptr("department_name")
	for _, it := range Items {
		if n, ok := p.integer(raw, it.Field()); ok {
			u.SetQuantity(it, n)
		}
	}

	if len(p.list) == 0 && u.Empty() {
		return u, errs.Validation([]string{"no fields to update"})
	}
	p.checkUpdate(u)
	return u, errs.Validation(p.list)
}
