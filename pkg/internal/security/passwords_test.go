package security

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hashed, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hashed == "secret123" {
		t.Fatal("HashPassword() returned the plain password")
	}

	if !VerifyPassword("secret123", hashed) {
		t.Error("VerifyPassword() with correct password = false, want true")
	}
	if VerifyPassword("wrong-password", hashed) {
		t.Error("VerifyPassword() with wrong password = true, want false")
	}
}

func TestVerifyPasswordMalformedDigest(t *testing.T) {
	if VerifyPassword("secret123", "not-a-bcrypt-digest") {
		t.Error("VerifyPassword() with malformed digest = true, want false")
	}
}
