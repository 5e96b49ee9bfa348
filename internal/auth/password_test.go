package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestCreateAndVerifyPasswordHash(t *testing.T) {
	t.Parallel()

	hash, err := CreatePasswordHash("正しいパスワード", DefaultArgon2idParams)
	if err != nil {
		t.Fatalf("CreatePasswordHash failed: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$") {
		t.Fatalf("unexpected hash format: %s", hash)
	}

	if err := VerifyPassword(hash, "正しいパスワード"); err != nil {
		t.Fatalf("expected matching password to verify: %v", err)
	}
	if err := VerifyPassword(hash, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	t.Parallel()

	for _, hash := range []string{"", "plain", "$bcrypt$v=19$x$y$z"} {
		if err := VerifyPassword(hash, "password"); !errors.Is(err, ErrInvalidPasswordHash) {
			t.Errorf("VerifyPassword(%q) = %v, want ErrInvalidPasswordHash", hash, err)
		}
	}
}
