package auth

import (
	"errors"
	"testing"

	"github.com/mhasan/show-catalog/internal/apperror"
)

func TestStaticCredentials_Verify(t *testing.T) {
	creds, err := NewStaticCredentials("admin@example.com", "admin123", 1)
	if err != nil {
		t.Fatalf("NewStaticCredentials() error = %v", err)
	}

	t.Run("correct pair", func(t *testing.T) {
		userID, err := creds.Verify("admin@example.com", "admin123")
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		if userID != 1 {
			t.Errorf("userID = %d, want 1", userID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := creds.Verify("admin@example.com", "hunter2")
		if !errors.Is(err, apperror.ErrUnauthorized) {
			t.Errorf("Verify() should wrap ErrUnauthorized, got %v", err)
		}
	})

	t.Run("wrong email", func(t *testing.T) {
		_, err := creds.Verify("intruder@example.com", "admin123")
		if !errors.Is(err, apperror.ErrUnauthorized) {
			t.Errorf("Verify() should wrap ErrUnauthorized, got %v", err)
		}
	})

	t.Run("same message either way", func(t *testing.T) {
		// The response must not reveal which half of the pair was wrong.
		_, emailErr := creds.Verify("intruder@example.com", "admin123")
		_, passErr := creds.Verify("admin@example.com", "hunter2")
		if emailErr.Error() != passErr.Error() {
			t.Errorf("error messages differ: %q vs %q", emailErr, passErr)
		}
	})
}

func TestNewStaticCredentials_RequiresBothValues(t *testing.T) {
	if _, err := NewStaticCredentials("", "admin123", 1); err == nil {
		t.Error("empty email should be rejected")
	}
	if _, err := NewStaticCredentials("admin@example.com", "", 1); err == nil {
		t.Error("empty password should be rejected")
	}
}
