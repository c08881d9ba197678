package usecases

import (
	"context"
	"fmt"

	"pulsefit/internal/domain/user"
	apperrors "pulsefit/internal/shared/errors"
	"pulsefit/internal/shared/logger"
)

type LoginCommand struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token              string `json:"token"`
	ExpiresIn          int64  `json:"expires_in"`
	Role               string `json:"role"`
	MustChangePassword bool   `json:"must_change_password"`
}

type LoginUseCase struct {
	userRepo user.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	logger   logger.Interface
}

func NewLoginUseCase(userRepo user.UserRepository, hasher PasswordHasher, tokens TokenIssuer, logger logger.Interface) *LoginUseCase {
	return &LoginUseCase{userRepo: userRepo, hasher: hasher, tokens: tokens, logger: logger}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	u, err := uc.userRepo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		uc.logger.Errorw("failed to get user for login", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	// Identical failure for unknown email and wrong password so the
	// endpoint cannot be used to probe which emails have accounts.
	if u == nil {
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}
	if err := uc.hasher.Verify(u.PasswordHash(), cmd.Password); err != nil {
		uc.logger.Warnw("failed login attempt", "email", cmd.Email)
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}

	token, expiresIn, err := uc.tokens.Issue(u.ID(), u.Email(), string(u.Role()))
	if err != nil {
		uc.logger.Errorw("failed to issue token", "error", err, "user_id", u.ID())
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	uc.logger.Infow("user logged in", "user_id", u.ID(), "role", u.Role())
	return &LoginResult{
		Token:              token,
		ExpiresIn:          expiresIn,
		Role:               string(u.Role()),
		MustChangePassword: u.MustChangePassword(),
	}, nil
}
