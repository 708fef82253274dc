package stock

import (
	"errors"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Spok95/kit-inventory/internal/domain/errs"
)

// MaxQuantity - больше в колонку INTEGER не поместится.
const MaxQuantity = math.MaxInt32

var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	return v
}()

// Validate проверяет новую позицию склада.
func (i Item) Validate() error { return check(i) }

// check возвращает первую нарушенную проверку как InvalidArgument.
func check(v any) error {
	err := validate.Struct(v)
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	fe := ves[0]
	label := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "notblank":
		return errs.InvalidArgument("%s is required", label)
	case "max":
		return errs.InvalidArgument("%s must be at most %s characters", label, fe.Param())
	case "gte":
		return errs.InvalidArgument("%s cannot be negative", label)
	case "lte":
		return errs.InvalidArgument("%s cannot exceed %s", label, fe.Param())
	}
	return errs.InvalidArgument("%s is invalid", label)
}
