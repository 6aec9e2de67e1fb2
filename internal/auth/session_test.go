package auth

import (
	"errors"
	"testing"
)

func TestManager_Accepts(t *testing.T) {
	t.Parallel()

	m := NewManager("1234", 4)
	tests := map[string]bool{
		"1234":  true,
		"9876":  true,
		"abcde": true,
		"123":   false,
		"":      false,
		"äöü":   false,
		"äöüß":  true,
	}
	for otp, want := range tests {
		if got := m.Accepts(otp); got != want {
			t.Fatalf("Accepts(%q) = %v, want %v", otp, got, want)
		}
	}
}

func TestManager_ConfiguredCodeShorterThanMinimum(t *testing.T) {
	t.Parallel()

	m := NewManager("42", 6)
	if !m.Accepts("42") {
		t.Fatalf("configured code must always be accepted")
	}
	if m.Accepts("4242") {
		t.Fatalf("short codes other than the configured one must be rejected")
	}
}

func TestManager_LoginLogout(t *testing.T) {
	t.Parallel()

	m := NewManager("1234", 4)

	if _, err := m.Login("12"); !errors.Is(err, ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP, got %v", err)
	}
	if m.Authenticated() {
		t.Fatalf("failed login must not authenticate")
	}

	token, err := m.Login("1234")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if !m.Validate(token) || !m.Authenticated() {
		t.Fatalf("expected token to be valid")
	}
	if m.Validate("") || m.Validate("other") {
		t.Fatalf("unexpected token accepted")
	}

	if err := m.Logout("other"); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
	if err := m.Logout(token); err != nil {
		t.Fatalf("Logout() error: %v", err)
	}
	if m.Validate(token) || m.Authenticated() {
		t.Fatalf("expected session to be gone after logout")
	}
}

func TestManager_NewLoginReplacesSession(t *testing.T) {
	t.Parallel()

	m := NewManager("1234", 4)
	first, _ := m.Login("1234")
	second, _ := m.Login("1234")

	if first == second {
		t.Fatalf("expected distinct tokens")
	}
	if m.Validate(first) {
		t.Fatalf("old token should be replaced")
	}
	if !m.Validate(second) {
		t.Fatalf("new token should be valid")
	}
}
