package usecases

import (
	"context"
	"fmt"

	"pulsefit/internal/domain/member"
	apperrors "pulsefit/internal/shared/errors"
	"pulsefit/internal/shared/logger"
)

type DeleteMemberCommand struct {
	MemberID string
}

// DeleteMemberUseCase soft-deletes a member. The payment ledger is left
// untouched: it is the audit trail of money actually collected.
type DeleteMemberUseCase struct {
	memberRepo member.MemberRepository
	logger     logger.Interface
}

func NewDeleteMemberUseCase(memberRepo member.MemberRepository, logger logger.Interface) *DeleteMemberUseCase {
	return &DeleteMemberUseCase{memberRepo: memberRepo, logger: logger}
}

func (uc *DeleteMemberUseCase) Execute(ctx context.Context, cmd DeleteMemberCommand) error {
	m, err := uc.memberRepo.GetByMemberID(ctx, cmd.MemberID)
	if err != nil {
		uc.logger.Errorw("failed to get member", "error", err, "member_id", cmd.MemberID)
		return fmt.Errorf("failed to get member: %w", err)
	}
	if m == nil {
		return apperrors.NewNotFoundError("member not found", cmd.MemberID)
	}

	if err := uc.memberRepo.Delete(ctx, m.ID()); err != nil {
		uc.logger.Errorw("failed to delete member", "error", err, "member_id", cmd.MemberID)
		return fmt.Errorf("failed to delete member: %w", err)
	}

	uc.logger.Infow("member deleted", "member_id", cmd.MemberID)
	return nil
}
