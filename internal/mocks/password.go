package mocks

import (
	"errors"

	"github.com/oleh-26-01/TaskManagementAPI/internal/service/auth"
)

// ErrMockPasswordMismatch is returned by MockPasswordVerifier when
// ShouldSucceed is false.
var ErrMockPasswordMismatch = errors.New("mock password mismatch")

// MockPasswordVerifier implements auth.PasswordHasher and
// auth.PasswordVerifier for testing
type MockPasswordVerifier struct {
	// ShouldSucceed controls whether Compare reports a match
	ShouldSucceed bool
	// HashResult is the value returned by Hash; defaults to "hashed:" + password
	HashResult string
	// HashError is the error to return from Hash
	HashError error
}

// Ensure MockPasswordVerifier implements both auth interfaces
var (
	_ auth.PasswordHasher   = (*MockPasswordVerifier)(nil)
	_ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)
)

// Hash implements the PasswordHasher interface
func (m *MockPasswordVerifier) Hash(password string) (string, error) {
	if m.HashError != nil {
		return "", m.HashError
	}
	if m.HashResult != "" {
		return m.HashResult, nil
	}
	return "hashed:" + password, nil
}

// Compare implements the PasswordVerifier interface
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	if m.ShouldSucceed {
		return nil
	}
	return ErrMockPasswordMismatch
}
