package exts

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validation = validator.New(validator.WithRequiredStructEnabled())

func init() {
	validation.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidationError carries per-field failures; the server's error handler
// renders it as a 400 with a details map.
type ValidationError struct {
	Details map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func BindAndValidate(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "unable to parse request body")
	}

	if err := validation.Struct(out); err != nil {
		var fields validator.ValidationErrors
		if errors.As(err, &fields) {
			details := make(map[string]string, len(fields))
			for _, field := range fields {
				details[field.Field()] = fmt.Sprintf("failed on the %s rule", field.Tag())
			}
			return &ValidationError{Details: details}
		}
		return fiber.NewError(fiber.StatusBadRequest, "unable to validate request body")
	}

	return nil
}
