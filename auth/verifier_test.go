package auth

import (
	"context"
	"testing"
)

func TestMockVerifierLogin(t *testing.T) {
	v := MockVerifier{}
	ctx := context.Background()

	if err := v.VerifyLogin(ctx, "shopper@example.com", "anything"); err != nil {
		t.Errorf("non-empty credentials should pass, got %v", err)
	}
	if err := v.VerifyLogin(ctx, "", "secret"); err != ErrInvalidCredentials {
		t.Errorf("empty email should fail, got %v", err)
	}
	if err := v.VerifyLogin(ctx, "shopper@example.com", ""); err != ErrInvalidCredentials {
		t.Errorf("empty password should fail, got %v", err)
	}
}

func TestMockVerifierRegistration(t *testing.T) {
	v := MockVerifier{}
	ctx := context.Background()

	if err := v.VerifyRegistration(ctx, "Shopper", "shopper@example.com", "secret"); err != nil {
		t.Errorf("complete registration should pass, got %v", err)
	}
	if err := v.VerifyRegistration(ctx, "", "shopper@example.com", "secret"); err != ErrInvalidCredentials {
		t.Errorf("missing name should fail, got %v", err)
	}
}
