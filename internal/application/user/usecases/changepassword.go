package usecases

import (
	"context"
	"fmt"
	"unicode"

	"pulsefit/internal/domain/user"
	apperrors "pulsefit/internal/shared/errors"
	"pulsefit/internal/shared/logger"
)

type ChangePasswordCommand struct {
	UserID      uint
	OldPassword string
	NewPassword string
}

// ChangePasswordUseCase installs a member-chosen password. A successful
// change consumes the must_change_password flag, which is what lets the
// access gate drop the FORCE_PASSWORD_RESET verdict.
type ChangePasswordUseCase struct {
	userRepo user.UserRepository
	hasher   PasswordHasher
	logger   logger.Interface
}

func NewChangePasswordUseCase(userRepo user.UserRepository, hasher PasswordHasher, logger logger.Interface) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{userRepo: userRepo, hasher: hasher, logger: logger}
}

func (uc *ChangePasswordUseCase) Execute(ctx context.Context, cmd ChangePasswordCommand) error {
	if reason := validatePassword(cmd.NewPassword); reason != "" {
		return apperrors.NewValidationError("weak password", reason)
	}

	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "error", err, "user_id", cmd.UserID)
		return fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return apperrors.NewUnauthorizedError("account not found")
	}

	if err := uc.hasher.Verify(u.PasswordHash(), cmd.OldPassword); err != nil {
		return apperrors.NewUnauthorizedError("current password is incorrect")
	}

	hash, err := uc.hasher.Hash(cmd.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := u.ChangePassword(hash); err != nil {
		return apperrors.NewValidationError("invalid password", err.Error())
	}

	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to update password", "error", err, "user_id", cmd.UserID)
		return fmt.Errorf("failed to update password: %w", err)
	}

	uc.logger.Infow("password changed", "user_id", cmd.UserID)
	return nil
}

func validatePassword(password string) string {
	if len(password) < 8 {
		return "password must be at least 8 characters"
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return "password must contain letters and digits"
	}
	return ""
}
