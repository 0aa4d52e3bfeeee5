package impl

import (
	"context"
	"testing"
	"time"

	"github.com/hcplayer1988/coderr/internal/domain/entity"
	domainerrors "github.com/hcplayer1988/coderr/internal/domain/errors"
	"github.com/hcplayer1988/coderr/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authServiceFixtures struct {
	service usecase.AuthUsecase
	store   *fakeStore
	tokens  *fakeTokenService
}

func createTestAuthService(t *testing.T) *authServiceFixtures {
	t.Helper()

	store := newFakeStore()
	tokens := newFakeTokenService()
	service := NewAuthService(&fakeTxManager{store: store}, fakeHasher{}, tokens, newDiscardLogger())

	return &authServiceFixtures{
		service: service,
		store:   store,
		tokens:  tokens,
	}
}

func registerInput() *usecase.RegisterInput {
	return &usecase.RegisterInput{
		Username:         "alice",
		Email:            "alice@example.com",
		Password:         "supersecret",
		RepeatedPassword: "supersecret",
		Type:             "customer",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	t.Parallel()

	fixtures := createTestAuthService(t)

	output, err := fixtures.service.Register(context.Background(), registerInput())

	require.NoError(t, err)
	assert.Equal(t, "alice", output.Username)
	assert.Equal(t, "alice@example.com", output.Email)
	assert.Equal(t, "customer", output.Type)
	assert.NotEmpty(t, output.Token)
	assert.NotEmpty(t, output.RefreshToken)

	user, ok := fixtures.store.users[output.UserID]
	require.True(t, ok)
	assert.Equal(t, entity.UserTypeCustomer, user.Type)
	require.NotNil(t, user.Profile, "registration must create an empty profile")

	cred, ok := fixtures.store.credentials["alice@example.com"]
	require.True(t, ok)
	assert.Equal(t, "hashed:supersecret", cred.PasswordHash)

	_, ok = fixtures.store.refreshTokens[hashRefreshToken(output.RefreshToken)]
	assert.True(t, ok, "the refresh token must be stored hashed")
}

func TestAuthService_Register_PasswordMismatch(t *testing.T) {
	t.Parallel()

	fixtures := createTestAuthService(t)

	input := registerInput()
	input.RepeatedPassword = "different"

	_, err := fixtures.service.Register(context.Background(), input)

	var vErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.FieldErrors(), "password")
	assert.Empty(t, fixtures.store.users)
}

func TestAuthService_Register_InvalidType(t *testing.T) {
	t.Parallel()

	fixtures := createTestAuthService(t)

	input := registerInput()
	input.Type = "admin"

	_, err := fixtures.service.Register(context.Background(), input)

	var vErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.FieldErrors(), "type")
}

func TestAuthService_Register_UsernameAndEmailTaken(t *testing.T) {
	t.Parallel()

	fixtures := createTestAuthService(t)
	fixtures.store.addUser(&entity.User{
		Username: "alice",
		Email:    "alice@example.com",
		Type:     entity.UserTypeCustomer,
	})

	_, err := fixtures.service.Register(context.Background(), registerInput())

	var vErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.FieldErrors(), "username")
	assert.Contains(t, vErr.FieldErrors(), "email")
}

func TestAuthService_Login_Success(t *testing.T) {
	t.Parallel()

	fixtures := createTestAuthService(t)
	registered, err := fixtures.service.Register(context.Background(), registerInput())
	require.NoError(t, err)

	output, err := fixtures.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "supersecret",
	})

	require.NoError(t, err)
	assert.Equal(t, registered.UserID, output.UserID)
	assert.Equal(t, "customer", output.Type)
	assert.NotEqual(t, registered.Token, output.Token, "each login issues a fresh access token")
	_, ok := fixtures.store.refreshTokens[hashRefreshToken(output.RefreshToken)]
	assert.True(t, ok)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	t.Parallel()

	fixtures := createTestAuthService(t)
	_, err := fixtures.service.Register(context.Background(), registerInput())
	require.NoError(t, err)

	_, err = fixtures.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	t.Parallel()

	fixtures := createTestAuthService(t)

	_, err := fixtures.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "supersecret",
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Refresh_RotatesToken(t *testing.T) {
	t.Parallel()

	fixtures := createTestAuthService(t)
	registered, err := fixtures.service.Register(context.Background(), registerInput())
	require.NoError(t, err)

	output, err := fixtures.service.Refresh(context.Background(), registered.RefreshToken)

	require.NoError(t, err)
	assert.Equal(t, registered.UserID, output.UserID)
	assert.NotEqual(t, registered.RefreshToken, output.RefreshToken)

	_, ok := fixtures.store.refreshTokens[hashRefreshToken(registered.RefreshToken)]
	assert.False(t, ok, "the presented refresh token must be revoked")
	_, ok = fixtures.store.refreshTokens[hashRefreshToken(output.RefreshToken)]
	assert.True(t, ok)
}

func TestAuthService_Refresh_UnknownToken(t *testing.T) {
	t.Parallel()

	fixtures := createTestAuthService(t)

	_, err := fixtures.service.Refresh(context.Background(), "garbage")

	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestAuthService_Refresh_ExpiredSession(t *testing.T) {
	t.Parallel()

	fixtures := createTestAuthService(t)
	registered, err := fixtures.service.Register(context.Background(), registerInput())
	require.NoError(t, err)

	hash := hashRefreshToken(registered.RefreshToken)
	fixtures.store.refreshTokens[hash].ExpiresAt = time.Now().Add(-time.Minute)

	_, err = fixtures.service.Refresh(context.Background(), registered.RefreshToken)

	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
	_, ok := fixtures.store.refreshTokens[hash]
	assert.False(t, ok, "expired sessions are removed on sight")
}

func TestAuthService_Refresh_RevokedSession(t *testing.T) {
	t.Parallel()

	fixtures := createTestAuthService(t)
	registered, err := fixtures.service.Register(context.Background(), registerInput())
	require.NoError(t, err)

	require.NoError(t, fixtures.service.Logout(context.Background(), registered.RefreshToken))

	// The JWT itself is still valid, but the session is gone.
	_, err = fixtures.service.Refresh(context.Background(), registered.RefreshToken)

	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestAuthService_Logout_Idempotent(t *testing.T) {
	t.Parallel()

	fixtures := createTestAuthService(t)
	registered, err := fixtures.service.Register(context.Background(), registerInput())
	require.NoError(t, err)

	require.NoError(t, fixtures.service.Logout(context.Background(), registered.RefreshToken))
	assert.Empty(t, fixtures.store.refreshTokens)

	assert.NoError(t, fixtures.service.Logout(context.Background(), registered.RefreshToken))
}

func TestAuthService_Register_TransactionFailure(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	txManager := &fakeTxManager{store: store, executeErr: errors.New("connection lost")}
	service := NewAuthService(txManager, fakeHasher{}, newFakeTokenService(), newDiscardLogger())

	_, err := service.Register(context.Background(), registerInput())

	require.Error(t, err)
	assert.Empty(t, store.users)
}
