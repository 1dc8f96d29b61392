package service

import (
	"errors"
	"testing"

	"github.com/littlelemon-api/internal/config"
)

func TestValidatePasswordDisabledPolicy(t *testing.T) {
	if err := validatePassword(config.PasswordPolicyConfig{}, "x"); err != nil {
		t.Fatalf("expected nil for disabled policy, got: %v", err)
	}
}

func TestValidatePasswordMinLength(t *testing.T) {
	policy := config.PasswordPolicyConfig{MinLength: 8}
	err := validatePassword(policy, "short")
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got: %v", err)
	}
	if err := validatePassword(policy, "longenough"); err != nil {
		t.Fatalf("expected nil, got: %v", err)
	}
}

func TestValidatePasswordCharacterClasses(t *testing.T) {
	policy := config.PasswordPolicyConfig{
		RequireLower:  true,
		RequireNumber: true,
	}
	if err := validatePassword(policy, "ONLYUPPER1"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword for missing lower, got: %v", err)
	}
	if err := validatePassword(policy, "lowercase"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword for missing number, got: %v", err)
	}
	if err := validatePassword(policy, "lemon2024"); err != nil {
		t.Fatalf("expected nil, got: %v", err)
	}
}
