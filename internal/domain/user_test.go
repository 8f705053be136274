package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		username       string
		email          string
		hashedPassword string
		wantErr        error
	}{
		{
			name:           "valid user",
			username:       "alice",
			email:          "alice@example.com",
			hashedPassword: "$2a$10$somehashedvalue",
			wantErr:        nil,
		},
		{
			name:           "empty username",
			username:       "",
			email:          "alice@example.com",
			hashedPassword: "$2a$10$somehashedvalue",
			wantErr:        ErrEmptyUsername,
		},
		{
			name:           "username too long",
			username:       strings.Repeat("a", MaxUsernameLength+1),
			email:          "alice@example.com",
			hashedPassword: "$2a$10$somehashedvalue",
			wantErr:        ErrUsernameTooLong,
		},
		{
			name:           "multibyte username at the limit counts runes",
			username:       strings.Repeat("ё", MaxUsernameLength),
			email:          "alice@example.com",
			hashedPassword: "$2a$10$somehashedvalue",
			wantErr:        nil,
		},
		{
			name:           "empty email",
			username:       "alice",
			email:          "",
			hashedPassword: "$2a$10$somehashedvalue",
			wantErr:        ErrEmptyEmail,
		},
		{
			name:           "email too long",
			username:       "alice",
			email:          strings.Repeat("a", MaxEmailLength) + "@example.com",
			hashedPassword: "$2a$10$somehashedvalue",
			wantErr:        ErrEmailTooLong,
		},
		{
			name:           "malformed email",
			username:       "alice",
			email:          "not-an-email",
			hashedPassword: "$2a$10$somehashedvalue",
			wantErr:        ErrInvalidEmail,
		},
		{
			name:           "missing hashed password",
			username:       "alice",
			email:          "alice@example.com",
			hashedPassword: "",
			wantErr:        ErrEmptyHashedPassword,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			user, err := NewUser(tt.username, tt.email, tt.hashedPassword)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, user)
			assert.NotEmpty(t, user.ID)
			assert.Equal(t, tt.username, user.Username)
			assert.Equal(t, tt.email, user.Email)
			assert.Equal(t, tt.hashedPassword, user.HashedPassword)
			assert.False(t, user.CreatedAt.IsZero())
			assert.False(t, user.UpdatedAt.IsZero())
		})
	}
}

func TestValidPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"meets all requirements", "Sup3r$ecret", true},
		{"minimum length boundary", "Aa1!bcde", true},
		{"too short", "Aa1!bcd", false},
		{"missing uppercase", "sup3r$ecret", false},
		{"missing lowercase", "SUP3R$ECRET", false},
		{"missing digit", "Super$ecret", false},
		{"missing symbol", "Sup3rSecret", false},
		{"empty", "", false},
		{"unicode symbol counts", "Sup3r€ecret", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ValidPassword(tt.password))
		})
	}
}

func TestValidateEmailFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		email string
		want  bool
	}{
		{"alice@example.com", true},
		{"a@b.co", true},
		{"no-at-sign", false},
		{"@example.com", false},
		{"alice@", false},
		{"alice@nodot", false},
		{"alice@example.", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.email, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, validateEmailFormat(tt.email))
		})
	}
}
