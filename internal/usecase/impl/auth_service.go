// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/hcplayer1988/coderr/internal/domain/entity"
	domainerrors "github.com/hcplayer1988/coderr/internal/domain/errors"
	"github.com/hcplayer1988/coderr/internal/domain/repository"
	"github.com/hcplayer1988/coderr/internal/domain/service"
	"github.com/hcplayer1988/coderr/internal/usecase"

	"github.com/pkg/errors"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	tokens    service.TokenService
	logger    *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	tokens service.TokenService,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		txManager: txManager,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger,
	}
}

// hashRefreshToken derives the storage key for a raw refresh token. Only the
// SHA-256 hash ever reaches the database.
func hashRefreshToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))

	return hex.EncodeToString(sum[:])
}

// Register creates the user, an empty profile and a credential, then issues
// the first token pair. Uniqueness checks and inserts share one transaction
// so concurrent registrations cannot race past the checks.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	srv.logger.Info("Registering user", "username", input.Username)

	userType := entity.UserType(input.Type)

	vErr := domainerrors.NewValidationError()
	if input.Password != input.RepeatedPassword {
		vErr.AddFieldError("password", "Passwords do not match.")
	}
	if !userType.IsValid() {
		vErr.AddFieldError("type", "Type must be either 'customer' or 'business'.")
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	// Hash before the transaction; bcrypt is deliberately slow.
	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	var output *usecase.AuthOutput

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		authRepo := repoFactory.AuthRepo()

		// 1. Reject taken usernames and emails with field-level errors.
		if _, err := userRepo.FindByUsername(ctx, input.Username); err == nil {
			vErr.AddFieldError("username", "This username is already taken.")
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check username")
		}

		if _, err := userRepo.FindByEmail(ctx, input.Email); err == nil {
			vErr.AddFieldError("email", "This email address is already in use.")
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check email")
		}

		if vErr.HasErrors() {
			return vErr
		}

		// 2. Create the user together with an empty profile.
		user := &entity.User{
			Username: input.Username,
			Email:    input.Email,
			Type:     userType,
			Profile:  &entity.Profile{},
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return errors.Wrap(err, "failed to create user")
		}

		// 3. Store the login credential.
		cred := &entity.Credential{
			UserID:       user.ID,
			Email:        user.Email,
			PasswordHash: passwordHash,
		}
		if err := authRepo.CreateCredential(ctx, cred); err != nil {
			return errors.Wrap(err, "failed to create credential")
		}

		// 4. Log the new user in.
		out, err := srv.issueSession(ctx, authRepo, user)
		if err != nil {
			return err
		}
		output = out

		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// Login verifies the credentials and issues a fresh token pair. All failure
// modes collapse into ErrInvalidCredentials so callers cannot probe which
// part was wrong.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.logger.Debug("Logging in user", "email", input.Email)

	var output *usecase.AuthOutput

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		authRepo := repoFactory.AuthRepo()

		user, err := userRepo.FindByEmail(ctx, input.Email)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrInvalidCredentials
			}

			return errors.Wrap(err, "failed to find user")
		}

		cred, err := authRepo.FindCredentialByEmail(ctx, user.Email)
		if err != nil {
			if errors.Is(err, repository.ErrCredentialNotFound) {
				return domainerrors.ErrInvalidCredentials
			}

			return errors.Wrap(err, "failed to find credential")
		}

		if !srv.hasher.Check(input.Password, cred.PasswordHash) {
			return domainerrors.ErrInvalidCredentials
		}

		out, err := srv.issueSession(ctx, authRepo, user)
		if err != nil {
			return err
		}
		output = out

		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued in the same transaction.
func (srv *authService) Refresh(ctx context.Context, refreshToken string) (*usecase.AuthOutput, error) {
	claims, err := srv.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	tokenHash := hashRefreshToken(refreshToken)

	var output *usecase.AuthOutput

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		authRepo := repoFactory.AuthRepo()

		stored, err := authRepo.FindRefreshTokenByHash(ctx, tokenHash)
		if err != nil {
			if errors.Is(err, repository.ErrTokenNotFound) {
				return domainerrors.ErrRefreshTokenInvalid
			}

			return errors.Wrap(err, "failed to find refresh token")
		}

		if time.Now().After(stored.ExpiresAt) {
			// Expired sessions are cleaned up on sight.
			if err := authRepo.DeleteRefreshTokenByHash(ctx, tokenHash); err != nil && !errors.Is(err, repository.ErrTokenNotFound) {
				return errors.Wrap(err, "failed to delete expired refresh token")
			}

			return domainerrors.ErrRefreshTokenInvalid
		}

		user, err := userRepo.FindByID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrRefreshTokenInvalid
			}

			return errors.Wrap(err, "failed to find user")
		}

		if err := authRepo.DeleteRefreshTokenByHash(ctx, tokenHash); err != nil && !errors.Is(err, repository.ErrTokenNotFound) {
			return errors.Wrap(err, "failed to revoke refresh token")
		}

		out, err := srv.issueSession(ctx, authRepo, user)
		if err != nil {
			return err
		}
		output = out

		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// Logout revokes the session behind the refresh token. Unknown tokens are
// treated as already logged out.
func (srv *authService) Logout(ctx context.Context, refreshToken string) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		err := repoFactory.AuthRepo().DeleteRefreshTokenByHash(ctx, hashRefreshToken(refreshToken))
		if err != nil && !errors.Is(err, repository.ErrTokenNotFound) {
			return errors.Wrap(err, "failed to revoke refresh token")
		}

		return nil
	})
}

// issueSession generates a token pair for the user and persists the refresh
// half as a session record.
func (srv *authService) issueSession(ctx context.Context, authRepo repository.AuthRepository, user *entity.User) (*usecase.AuthOutput, error) {
	accessToken, refreshToken, err := srv.tokens.GenerateTokens(user)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	session := &entity.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashRefreshToken(refreshToken),
		ExpiresAt: time.Now().Add(srv.tokens.GetRefreshTokenDuration()),
	}
	if err := authRepo.CreateRefreshToken(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to store session")
	}

	return &usecase.AuthOutput{
		Token:        accessToken,
		RefreshToken: refreshToken,
		Username:     user.Username,
		Email:        user.Email,
		Type:         user.Type.String(),
		UserID:       user.ID,
	}, nil
}
