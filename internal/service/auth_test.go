package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthRegister(t *testing.T) {
	t.Run("creates a user with a hashed password", func(t *testing.T) {
		database := newTestDB(t)
		svc := newTestAuthService(database)

		user, err := svc.Register("Alice@Example.com", testPassword)
		require.NoError(t, err)

		// Email is normalized, password never stored in the clear.
		assert.Equal(t, "alice@example.com", user.Email)
		assert.NotEqual(t, testPassword, user.PasswordHash)
		assert.NoError(t, svc.ComparePassword(testPassword, user.PasswordHash))
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		database := newTestDB(t)
		svc := newTestAuthService(database)

		_, err := svc.Register("alice@example.com", testPassword)
		require.NoError(t, err)

		_, err = svc.Register("alice@example.com", "another-long-passphrase")
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		database := newTestDB(t)
		svc := newTestAuthService(database)

		_, err := svc.Register("not-an-email", testPassword)
		assert.ErrorIs(t, err, ErrInvalidEmail)
	})

	t.Run("rejects weak password", func(t *testing.T) {
		database := newTestDB(t)
		svc := newTestAuthService(database)

		_, err := svc.Register("alice@example.com", "short")
		assert.Error(t, err)

		// Long enough, but contains a blocklisted pattern.
		_, err = svc.Register("alice@example.com", "my-Password-for-2026")
		assert.Error(t, err)
	})
}

func TestAuthLogin(t *testing.T) {
	t.Run("valid credentials return the user", func(t *testing.T) {
		database := newTestDB(t)
		svc := newTestAuthService(database)
		registered := registerTestUser(t, database, "alice@example.com")

		user, err := svc.Login("alice@example.com", testPassword)
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("wrong password and unknown user fail identically", func(t *testing.T) {
		database := newTestDB(t)
		svc := newTestAuthService(database)
		registerTestUser(t, database, "alice@example.com")

		_, err := svc.Login("alice@example.com", "wrong-password-entirely")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = svc.Login("nobody@example.com", testPassword)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthJWT(t *testing.T) {
	t.Run("round trip preserves identity claims", func(t *testing.T) {
		database := newTestDB(t)
		svc := newTestAuthService(database)
		user := registerTestUser(t, database, "alice@example.com")

		token, err := svc.GenerateJWT(user)
		require.NoError(t, err)

		claims, err := svc.VerifyJWT(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims["user_id"])
		assert.Equal(t, user.Email, claims["email"])
	})

	t.Run("tampered token is rejected", func(t *testing.T) {
		database := newTestDB(t)
		svc := newTestAuthService(database)
		user := registerTestUser(t, database, "alice@example.com")

		token, err := svc.GenerateJWT(user)
		require.NoError(t, err)

		_, err = svc.VerifyJWT(token + "x")
		assert.Error(t, err)
	})
}
