package mappers

import (
	"pulsefit/internal/domain/user"
	"pulsefit/internal/infrastructure/persistence/models"
)

func UserToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:                 u.ID(),
		Email:              u.Email(),
		PasswordHash:       u.PasswordHash(),
		Role:               string(u.Role()),
		MustChangePassword: u.MustChangePassword(),
		CreatedAt:          u.CreatedAt(),
		UpdatedAt:          u.UpdatedAt(),
	}
}

func UserToDomain(model *models.UserModel) (*user.User, error) {
	return user.ReconstructUser(
		model.ID,
		model.Email,
		model.PasswordHash,
		user.Role(model.Role),
		model.MustChangePassword,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
