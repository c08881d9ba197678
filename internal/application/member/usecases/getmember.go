package usecases

import (
	"context"
	"fmt"

	"pulsefit/internal/domain/member"
	apperrors "pulsefit/internal/shared/errors"
	"pulsefit/internal/shared/logger"
)

type GetMemberCommand struct {
	MemberID string
}

type GetMemberUseCase struct {
	memberRepo member.MemberRepository
	logger     logger.Interface
}

func NewGetMemberUseCase(memberRepo member.MemberRepository, logger logger.Interface) *GetMemberUseCase {
	return &GetMemberUseCase{memberRepo: memberRepo, logger: logger}
}

func (uc *GetMemberUseCase) Execute(ctx context.Context, cmd GetMemberCommand) (*member.Member, error) {
	m, err := uc.memberRepo.GetByMemberID(ctx, cmd.MemberID)
	if err != nil {
		uc.logger.Errorw("failed to get member", "error", err, "member_id", cmd.MemberID)
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	if m == nil {
		return nil, apperrors.NewNotFoundError("member not found", cmd.MemberID)
	}
	return m, nil
}
