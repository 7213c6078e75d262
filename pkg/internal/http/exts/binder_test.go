package exts

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestBindAndValidate(t *testing.T) {
	type payload struct {
		Title   string `json:"title" validate:"required,min=1"`
		Content string `json:"content" validate:"required"`
	}

	tests := []struct {
		name       string
		body       string
		wantFields []string
	}{
		{"valid body", `{"title":"T","content":"C"}`, nil},
		{"missing title", `{"content":"C"}`, []string{"title"}},
		{"missing both", `{}`, []string{"title", "content"}},
		{"empty title", `{"title":"","content":"C"}`, []string{"title"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got error

			app := fiber.New()
			app.Post("/", func(c *fiber.Ctx) error {
				var data payload
				got = BindAndValidate(c, &data)
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest(fiber.MethodPost, "/", strings.NewReader(tt.body))
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			if _, err := app.Test(req); err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}

			if tt.wantFields == nil {
				if got != nil {
					t.Fatalf("BindAndValidate() error = %v, want nil", got)
				}
				return
			}

			var invalid *ValidationError
			if !errors.As(got, &invalid) {
				t.Fatalf("BindAndValidate() error = %v, want *ValidationError", got)
			}
			for _, field := range tt.wantFields {
				if _, ok := invalid.Details[field]; !ok {
					t.Errorf("Details missing field %q: %v", field, invalid.Details)
				}
			}
		})
	}
}

func TestBindAndValidateMalformedBody(t *testing.T) {
	var got error

	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		var data struct {
			Title string `json:"title"`
		}
		got = BindAndValidate(c, &data)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(fiber.MethodPost, "/", strings.NewReader("{not json"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if _, err := app.Test(req); err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}

	var failure *fiber.Error
	if !errors.As(got, &failure) || failure.Code != fiber.StatusBadRequest {
		t.Fatalf("BindAndValidate() error = %v, want 400 fiber error", got)
	}
}
