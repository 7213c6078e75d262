package sec

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/paperlark/paperlark/pkg/internal/security"
)

func testGate() *Gate {
	return NewGate(&security.TokenPolicy{Secret: []byte("test-secret"), TTL: time.Hour})
}

func TestGateRequired(t *testing.T) {
	gate := testGate()
	token, err := gate.Tokens.Sign(security.Identity{ID: 7, Email: "a@x.com"})
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	var seen *security.Identity
	var handlerRuns int

	app := fiber.New()
	app.Get("/protected", gate.Required, func(c *fiber.Ctx) error {
		handlerRuns++
		if identity, ok := Authenticated(c); ok {
			seen = &identity
		}
		return c.SendStatus(fiber.StatusOK)
	})

	tests := []struct {
		name       string
		header     string
		cookie     string
		wantStatus int
		wantRun    bool
	}{
		{"no token", "", "", fiber.StatusUnauthorized, false},
		{"malformed header", "Basic abc", "", fiber.StatusUnauthorized, false},
		{"garbage header token", "Bearer not-a-token", "", fiber.StatusUnauthorized, false},
		{"garbage cookie token", "", "not-a-token", fiber.StatusUnauthorized, false},
		{"valid header token", "Bearer " + token, "", fiber.StatusOK, true},
		{"cookie fallback", "", token, fiber.StatusOK, true},
		{"header wins over bad cookie", "Bearer " + token, "garbage", fiber.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			handlerRuns = 0

			req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
			if len(tt.header) > 0 {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}
			if len(tt.cookie) > 0 {
				req.AddCookie(&http.Cookie{Name: CookieName, Value: tt.cookie})
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if (handlerRuns > 0) != tt.wantRun {
				t.Errorf("handler ran = %v, want %v", handlerRuns > 0, tt.wantRun)
			}
			if tt.wantRun {
				if seen == nil || seen.ID != 7 || seen.Email != "a@x.com" {
					t.Errorf("identity = %+v, want {7 a@x.com}", seen)
				}
			}
		})
	}
}

func TestGateOptional(t *testing.T) {
	gate := testGate()
	token, err := gate.Tokens.Sign(security.Identity{ID: 3, Email: "b@x.com"})
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	app := fiber.New()
	app.Get("/open", gate.Optional, func(c *fiber.Ctx) error {
		if _, ok := Authenticated(c); ok {
			return c.SendString("known")
		}
		return c.SendString("anonymous")
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no token passes", "", fiber.StatusOK},
		{"bad token passes", "Bearer junk", fiber.StatusOK},
		{"valid token passes", "Bearer " + token, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/open", nil)
			if len(tt.header) > 0 {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}
