package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/paperlark/paperlark/pkg/internal/http/sec"
	"github.com/paperlark/paperlark/pkg/internal/security"
)

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details"`
}

func testServer(t *testing.T) (*App, *security.TokenPolicy) {
	t.Helper()
	tokens := &security.TokenPolicy{Secret: []byte("test-secret"), TTL: time.Hour}
	return NewServer(nil, tokens), tokens
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	var body envelope
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return body
}

func TestAuthGateEnvelope(t *testing.T) {
	server, tokens := testServer(t)
	token, err := tokens.Sign(security.Identity{ID: 7, Email: "a@x.com"})
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	tests := []struct {
		name       string
		header     string
		cookie     string
		wantStatus int
		wantError  string
	}{
		{"missing token", "", "", fiber.StatusUnauthorized, "Authentication required"},
		{"invalid token", "Bearer junk", "", fiber.StatusUnauthorized, "Invalid or expired token"},
		{"valid header token", "Bearer " + token, "", fiber.StatusOK, ""},
		{"valid cookie token", "", token, fiber.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodPost, "/api/auth/logout", nil)
			if len(tt.header) > 0 {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}
			if len(tt.cookie) > 0 {
				req.AddCookie(&http.Cookie{Name: sec.CookieName, Value: tt.cookie})
			}

			resp, err := server.app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}

			body := decodeEnvelope(t, resp)
			if len(tt.wantError) > 0 {
				if body.Success {
					t.Error("success = true, want false")
				}
				if body.Error != tt.wantError {
					t.Errorf("error = %q, want %q", body.Error, tt.wantError)
				}
			} else {
				if !body.Success {
					t.Error("success = false, want true")
				}
				if body.Message != "Logout successful" {
					t.Errorf("message = %q, want %q", body.Message, "Logout successful")
				}
			}
		})
	}
}

func TestValidationEnvelope(t *testing.T) {
	server, tokens := testServer(t)
	token, err := tokens.Sign(security.Identity{ID: 7, Email: "a@x.com"})
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	// An empty object fails field validation before the store is ever touched.
	req := httptest.NewRequest(fiber.MethodPost, "/api/posts/", strings.NewReader("{}"))
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := server.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusBadRequest)
	}

	body := decodeEnvelope(t, resp)
	if body.Success {
		t.Error("success = true, want false")
	}

	var details map[string]string
	if err := json.Unmarshal(body.Details, &details); err != nil {
		t.Fatalf("decode details: %v", err)
	}
	for _, field := range []string{"title", "content"} {
		if _, ok := details[field]; !ok {
			t.Errorf("details missing field %q: %v", field, details)
		}
	}
}

func TestCommentBodyFieldNames(t *testing.T) {
	server, tokens := testServer(t)
	token, err := tokens.Sign(security.Identity{ID: 7, Email: "a@x.com"})
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	req := httptest.NewRequest(fiber.MethodPost, "/api/comments/", strings.NewReader("{}"))
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := server.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusBadRequest)
	}

	var details map[string]string
	body := decodeEnvelope(t, resp)
	if err := json.Unmarshal(body.Details, &details); err != nil {
		t.Fatalf("decode details: %v", err)
	}
	// The body binds the post reference under the same name the list
	// endpoint filters by.
	for _, field := range []string{"content", "postId"} {
		if _, ok := details[field]; !ok {
			t.Errorf("details missing field %q: %v", field, details)
		}
	}
}

func TestPublicReadsWithoutToken(t *testing.T) {
	server, _ := testServer(t)

	// A malformed id answers before the store is touched, which is enough to
	// show the read routes admit anonymous callers.
	tests := []struct {
		name      string
		path      string
		wantError string
	}{
		{"post", "/api/posts/abc", "Invalid post id"},
		{"task", "/api/tasks/abc", "Invalid task id"},
		{"comment", "/api/comments/abc", "Invalid comment id"},
		{"user", "/api/users/abc", "Invalid user id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := server.app.Test(httptest.NewRequest(fiber.MethodGet, tt.path, nil))
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			if resp.StatusCode != fiber.StatusBadRequest {
				t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusBadRequest)
			}
			if body := decodeEnvelope(t, resp); body.Error != tt.wantError {
				t.Errorf("error = %q, want %q", body.Error, tt.wantError)
			}
		})
	}
}
