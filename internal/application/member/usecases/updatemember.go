package usecases

import (
	"context"
	"fmt"

	"pulsefit/internal/domain/member"
	apperrors "pulsefit/internal/shared/errors"
	"pulsefit/internal/shared/logger"
)

type UpdateMemberCommand struct {
	MemberID string
	Name     string
	Phone    string
	Email    string
}

type UpdateMemberUseCase struct {
	memberRepo member.MemberRepository
	logger     logger.Interface
}

func NewUpdateMemberUseCase(memberRepo member.MemberRepository, logger logger.Interface) *UpdateMemberUseCase {
	return &UpdateMemberUseCase{memberRepo: memberRepo, logger: logger}
}

func (uc *UpdateMemberUseCase) Execute(ctx context.Context, cmd UpdateMemberCommand) (*member.Member, error) {
	m, err := uc.memberRepo.GetByMemberID(ctx, cmd.MemberID)
	if err != nil {
		uc.logger.Errorw("failed to get member", "error", err, "member_id", cmd.MemberID)
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	if m == nil {
		return nil, apperrors.NewNotFoundError("member not found", cmd.MemberID)
	}

	if err := m.UpdateContact(cmd.Name, cmd.Phone, cmd.Email); err != nil {
		return nil, apperrors.NewValidationError("invalid member data", err.Error())
	}

	if err := uc.memberRepo.Update(ctx, m); err != nil {
		uc.logger.Errorw("failed to update member", "error", err, "member_id", cmd.MemberID)
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	uc.logger.Infow("member updated", "member_id", m.MemberID())
	return m, nil
}
