package security_test

import (
	"testing"

	"github.com/lifeforge/lifeforge/internal/security"
)

func TestPassword_HashAndVerify(t *testing.T) {
	hash, err := security.HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "hunter2" {
		t.Fatal("password stored in the clear")
	}

	if !security.VerifyPassword(hash, "hunter2") {
		t.Error("correct password rejected")
	}
	if security.VerifyPassword(hash, "wrong") {
		t.Error("wrong password accepted")
	}
}

func TestPassword_EmptyRejected(t *testing.T) {
	if _, err := security.HashPassword(""); err == nil {
		t.Error("empty password should be rejected")
	}
}

func TestSessionToken_UniqueAndLong(t *testing.T) {
	a, err := security.NewSessionToken()
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	b, err := security.NewSessionToken()
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if a == b {
		t.Error("two tokens collided")
	}
	if len(a) != security.TokenBytes*2 { // hex encoding
		t.Errorf("token length %d, want %d", len(a), security.TokenBytes*2)
	}
}
