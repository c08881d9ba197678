package usecases

import (
	"context"
	"fmt"

	"pulsefit/internal/domain/member"
	"pulsefit/internal/shared/biztime"
	apperrors "pulsefit/internal/shared/errors"
	"pulsefit/internal/shared/logger"
)

type EvaluateMembershipCommand struct {
	// MemberRef is a business member ID, or an email address for accounts
	// that predate the member-ID link.
	MemberRef string
}

// EvaluateMembershipUseCase computes the live membership state for one
// member. The persisted status label never enters the decision.
type EvaluateMembershipUseCase struct {
	memberRepo member.MemberRepository
	evalCfg    member.EvaluationConfig
	logger     logger.Interface
}

func NewEvaluateMembershipUseCase(
	memberRepo member.MemberRepository,
	evalCfg member.EvaluationConfig,
	logger logger.Interface,
) *EvaluateMembershipUseCase {
	return &EvaluateMembershipUseCase{memberRepo: memberRepo, evalCfg: evalCfg, logger: logger}
}

func (uc *EvaluateMembershipUseCase) Execute(ctx context.Context, cmd EvaluateMembershipCommand) (*member.MembershipStatus, error) {
	m, err := uc.memberRepo.GetByMemberID(ctx, cmd.MemberRef)
	if err != nil {
		uc.logger.Errorw("failed to get member", "error", err, "member_ref", cmd.MemberRef)
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	if m == nil {
		m, err = uc.memberRepo.GetByEmail(ctx, cmd.MemberRef)
		if err != nil {
			uc.logger.Errorw("failed to get member by email", "error", err, "member_ref", cmd.MemberRef)
			return nil, fmt.Errorf("failed to get member: %w", err)
		}
	}
	if m == nil {
		return nil, apperrors.NewNotFoundError("member not found", cmd.MemberRef)
	}

	status := member.EvaluateMembership(m.SubscriptionEnd(), biztime.NowUTC(), uc.evalCfg)
	return &status, nil
}
