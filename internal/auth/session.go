// Package auth implements the console's mock one-time-password login.
// There is a single operator, so at most one session is live at a time.
package auth

import (
	"errors"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrInvalidOTP     = errors.New("invalid OTP, please try again with 1234")
	ErrInvalidSession = errors.New("not logged in")
)

type Manager struct {
	otpCode   string
	minLength int

	mu    sync.Mutex
	token string
}

func NewManager(otpCode string, minLength int) *Manager {
	return &Manager{otpCode: otpCode, minLength: minLength}
}

// Accepts reports whether otp passes the mock check: the configured code, or
// anything at least minLength characters long.
func (m *Manager) Accepts(otp string) bool {
	return otp == m.otpCode || utf8.RuneCountInString(otp) >= m.minLength
}

// Login issues a fresh token, replacing any previous session.
func (m *Manager) Login(otp string) (string, error) {
	if !m.Accepts(otp) {
		return "", ErrInvalidOTP
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = uuid.NewString()
	return m.token, nil
}

func (m *Manager) Validate(token string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return token != "" && token == m.token
}

func (m *Manager) Logout(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if token == "" || token != m.token {
		return ErrInvalidSession
	}
	m.token = ""
	return nil
}

func (m *Manager) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token != ""
}
