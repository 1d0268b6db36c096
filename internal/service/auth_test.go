package service

import (
	"errors"
	"testing"
	"time"

	"pawplan-backend/internal/crypto"
	"pawplan-backend/internal/models"
	"pawplan-backend/internal/repository"
	"pawplan-backend/internal/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeUserRepo enforces username/email uniqueness the way the database unique
// indexes do, so registration races surface as the per-field duplicate errors.
type fakeUserRepo struct {
	repository.UserRepository
	nextID int64
	users  []*models.User
}

func (f *fakeUserRepo) CreateUser(user *models.User) error {
	for _, existing := range f.users {
		if existing.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	f.nextID++
	user.ID = f.nextID
	stored := *user
	f.users = append(f.users, &stored)
	return nil
}

func (f *fakeUserRepo) GetUserByUsername(username string) (*models.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func newTestAuthService(t *testing.T) (AuthService, *fakeUserRepo, *token.Service) {
	t.Helper()
	repo := &fakeUserRepo{}
	tokens := token.NewService("test-secret", time.Hour)
	return NewAuthService(repo, tokens, zap.NewNop()), repo, tokens
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestAuthService(t)

	user, err := svc.Register("alice", "alice@x.com", "Abcd123!")
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@x.com", user.Email)
	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "Abcd123!", user.PasswordHash)
	assert.NoError(t, crypto.VerifyPassword("Abcd123!", user.PasswordHash))
	assert.Len(t, repo.users, 1)
}

func TestRegister_FormatErrorsPerField(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestAuthService(t)

	tests := []struct {
		name     string
		username string
		email    string
		password string
		field    string
	}{
		{"short username", "ab", "alice@x.com", "Abcd123!", "username"},
		{"bad email", "alice", "not-an-email", "Abcd123!", "email"},
		{"weak password", "alice", "alice@x.com", "password", "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(tt.username, tt.email, tt.password)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	// Format checks run before persistence is touched.
	assert.Empty(t, repo.users)
}

func TestRegister_Duplicates(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestAuthService(t)

	_, err := svc.Register("alice", "alice@x.com", "Abcd123!")
	require.NoError(t, err)

	// Same username, different email.
	_, err = svc.Register("alice", "other@x.com", "Abcd123!")
	assert.ErrorIs(t, err, repository.ErrDuplicateUsername)

	// Same email, different username.
	_, err = svc.Register("alice2", "alice@x.com", "Abcd123!")
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestAuthenticate_Success(t *testing.T) {
	t.Parallel()

	svc, _, tokens := newTestAuthService(t)

	user, err := svc.Register("alice", "alice@x.com", "Abcd123!")
	require.NoError(t, err)

	tok, err := svc.Authenticate("alice", "Abcd123!")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := tokens.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestAuthenticate_EnumerationResistance(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestAuthService(t)

	_, err := svc.Register("alice", "alice@x.com", "Abcd123!")
	require.NoError(t, err)

	_, wrongPassword := svc.Authenticate("alice", "WrongPass1!")
	_, unknownUser := svc.Authenticate("nobody", "WrongPass1!")

	// Identical error either way: wrong password and unknown username must be
	// indistinguishable to the caller.
	require.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	require.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())

	// No side effects on failure.
	assert.Len(t, repo.users, 1)
}

func TestAuthenticate_MalformedStoredHash(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestAuthService(t)
	repo.users = append(repo.users, &models.User{
		ID:           1,
		Username:     "corrupt",
		Email:        "corrupt@x.com",
		PasswordHash: "not-a-bcrypt-hash",
	})

	// A broken stored hash must look exactly like a wrong password.
	_, err := svc.Authenticate("corrupt", "Abcd123!")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}
