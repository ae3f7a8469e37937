package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/Skotchmaster/online_bookstore/internal/models"
)

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
			_, err := models.ParseMoneyMax(fl.Field().String(), models.MaxPrice)
			return err == nil
		})
		_ = v.RegisterValidation("total", func(fl validator.FieldLevel) bool {
			_, err := models.ParseMoneyMax(fl.Field().String(), models.MaxTotal)
			return err == nil
		})
		_ = v.RegisterValidation("order_status", func(fl validator.FieldLevel) bool {
			return models.OrderStatus(fl.Field().String()).Valid()
		})
	})
	return v
}

// Struct validates s against its `validate` tags and flattens the failures into
// one readable error.
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, describe(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "price":
		return fmt.Sprintf("%s must be a decimal with 2 fraction digits, at most %s", field, models.MaxPrice)
	case "total":
		return fmt.Sprintf("%s must be a decimal with 2 fraction digits, at most %s", field, models.MaxTotal)
	case "order_status":
		names := make([]string, 0, len(models.OrderStatuses()))
		for _, st := range models.OrderStatuses() {
			names = append(names, string(st))
		}
		return fmt.Sprintf("%s must be one of %s", field, strings.Join(names, ", "))
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
