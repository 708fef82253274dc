package errs

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrPersistence     = errors.New("persistence failure")
	ErrNotification    = errors.New("notification failure")
)

// ValidationError собирает все проблемы запроса, а не только первую.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

// Validation возвращает nil, если сообщать не о чем.
func Validation(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

// Persistence помечает ошибку слоя хранения, чтобы её можно было отличить от доменных.
func Persistence(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
}

// kindError: текст для клиента плюс sentinel, до которого доходит errors.Is.
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func NotFound(format string, args ...any) error {
	return &kindError{msg: fmt.Sprintf(format, args...), kind: ErrNotFound}
}

func AlreadyExists(format string, args ...any) error {
	return &kindError{msg: fmt.Sprintf(format, args...), kind: ErrAlreadyExists}
}

func InvalidArgument(format string, args ...any) error {
	return &kindError{msg: fmt.Sprintf(format, args...), kind: ErrInvalidArgument}
}

// Public - сообщение для ответа клиенту: без обёрток, с заглавной буквы.
func Public(err error) string {
	msg := err.Error()
	var ke *kindError
	if errors.As(err, &ke) {
		msg = ke.msg
	}
	r, n := utf8.DecodeRuneInString(msg)
	if n == 0 {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[n:]
}
