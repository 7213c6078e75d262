package security

import (
	"strings"
	"testing"
	"time"
)

func testPolicy(ttl time.Duration) *TokenPolicy {
	return &TokenPolicy{Secret: []byte("test-secret"), TTL: ttl, Now: time.Now}
}

func TestTokenPolicy_SignVerifyRoundTrip(t *testing.T) {
	policy := testPolicy(time.Hour)

	token, err := policy.Sign(Identity{ID: 7, Email: "a@x.com"})
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	identity, ok := policy.Verify(token)
	if !ok {
		t.Fatal("Verify() ok = false, want true")
	}
	if identity.ID != 7 || identity.Email != "a@x.com" {
		t.Errorf("Verify() identity = %+v, want {7 a@x.com}", identity)
	}
}

func TestTokenPolicy_SignWithoutSecret(t *testing.T) {
	policy := &TokenPolicy{TTL: time.Hour}
	if _, err := policy.Sign(Identity{ID: 1}); err == nil {
		t.Fatal("Sign() with empty secret should fail")
	}
}

func TestTokenPolicy_VerifyRejections(t *testing.T) {
	policy := testPolicy(time.Hour)
	valid, err := policy.Sign(Identity{ID: 3, Email: "b@x.com"})
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	expiredPolicy := testPolicy(-time.Minute)
	expired, err := expiredPolicy.Sign(Identity{ID: 3, Email: "b@x.com"})
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	otherPolicy := &TokenPolicy{Secret: []byte("other-secret"), TTL: time.Hour}
	foreign, err := otherPolicy.Sign(Identity{ID: 3, Email: "b@x.com"})
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	segments := strings.Split(valid, ".")
	tampered := segments[0] + "." + segments[1] + ".AAAA" + segments[2]

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"expired", expired},
		{"wrong secret", foreign},
		{"tampered signature", tampered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := policy.Verify(tt.token); ok {
				t.Errorf("Verify(%q) ok = true, want false", tt.name)
			}
		})
	}
}
