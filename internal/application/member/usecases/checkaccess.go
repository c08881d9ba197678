package usecases

import (
	"context"
	"fmt"

	"pulsefit/internal/domain/member"
	"pulsefit/internal/domain/user"
	"pulsefit/internal/shared/biztime"
	apperrors "pulsefit/internal/shared/errors"
	"pulsefit/internal/shared/logger"
)

// AccessDecision is the gate verdict, ordered by priority: a forced password
// reset blocks everything else, then membership validity, then OK.
type AccessDecision string

const (
	AccessOK                 AccessDecision = "OK"
	AccessForcePasswordReset AccessDecision = "FORCE_PASSWORD_RESET"
	AccessMembershipInvalid  AccessDecision = "MEMBERSHIP_INVALID"
)

type CheckAccessCommand struct {
	UserID uint
}

type CheckAccessResult struct {
	Decision   AccessDecision           `json:"decision"`
	Membership *member.MembershipStatus `json:"membership,omitempty"`
	MemberID   string                   `json:"member_id,omitempty"`
}

// CheckAccessUseCase decides whether an authenticated user may use the
// member-facing surface right now.
type CheckAccessUseCase struct {
	userRepo   user.UserRepository
	memberRepo member.MemberRepository
	evalCfg    member.EvaluationConfig
	logger     logger.Interface
}

func NewCheckAccessUseCase(
	userRepo user.UserRepository,
	memberRepo member.MemberRepository,
	evalCfg member.EvaluationConfig,
	logger logger.Interface,
) *CheckAccessUseCase {
	return &CheckAccessUseCase{
		userRepo:   userRepo,
		memberRepo: memberRepo,
		evalCfg:    evalCfg,
		logger:     logger,
	}
}

func (uc *CheckAccessUseCase) Execute(ctx context.Context, cmd CheckAccessCommand) (*CheckAccessResult, error) {
	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, apperrors.NewUnauthorizedError("account not found")
	}

	if u.MustChangePassword() {
		return &CheckAccessResult{Decision: AccessForcePasswordReset}, nil
	}

	// Admins have no membership to evaluate.
	if u.IsAdmin() {
		return &CheckAccessResult{Decision: AccessOK}, nil
	}

	m, err := uc.findMember(ctx, u)
	if err != nil {
		return nil, err
	}
	if m == nil {
		uc.logger.Warnw("account has no member record", "user_id", cmd.UserID, "email", u.Email())
		return &CheckAccessResult{Decision: AccessMembershipInvalid}, nil
	}

	status := member.EvaluateMembership(m.SubscriptionEnd(), biztime.NowUTC(), uc.evalCfg)
	result := &CheckAccessResult{
		Membership: &status,
		MemberID:   m.MemberID(),
	}
	if !status.IsValid {
		result.Decision = AccessMembershipInvalid
	} else {
		result.Decision = AccessOK
	}
	return result, nil
}

// findMember resolves the member record for an account, preferring the
// explicit link and falling back to the email for accounts created before
// linking existed.
func (uc *CheckAccessUseCase) findMember(ctx context.Context, u *user.User) (*member.Member, error) {
	m, err := uc.memberRepo.GetByUserID(ctx, u.ID())
	if err != nil {
		uc.logger.Errorw("failed to get member by user", "error", err, "user_id", u.ID())
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	if m != nil {
		return m, nil
	}
	m, err = uc.memberRepo.GetByEmail(ctx, u.Email())
	if err != nil {
		uc.logger.Errorw("failed to get member by email", "error", err, "email", u.Email())
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return m, nil
}
