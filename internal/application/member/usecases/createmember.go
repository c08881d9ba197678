package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"pulsefit/internal/domain/member"
	"pulsefit/internal/domain/payment"
	"pulsefit/internal/domain/payment/valueobjects"
	"pulsefit/internal/domain/plan"
	"pulsefit/internal/domain/user"
	"pulsefit/internal/shared/biztime"
	apperrors "pulsefit/internal/shared/errors"
	"pulsefit/internal/shared/logger"
)

type CreateMemberCommand struct {
	MemberID  string
	Name      string
	Phone     string
	Email     string
	PlanSID   string
	StartDate time.Time

	// InitialAmount, when positive, records a Completed cash payment at
	// enrollment. Method defaults to cash when empty.
	InitialAmount decimal.Decimal
	PaymentMethod string
}

type CreateMemberResult struct {
	Member *member.Member

	// TempPassword is set when a login account was provisioned; it is shown
	// to staff exactly once so it can be handed to the member in person if
	// the welcome email does not arrive.
	TempPassword   string
	AccountCreated bool
}

// CreateMemberUseCase enrolls a new member: member record, optional initial
// payment, and (when an email is present) a login account with a temporary
// password and a welcome email.
type CreateMemberUseCase struct {
	memberRepo  member.MemberRepository
	planRepo    plan.PlanRepository
	paymentRepo payment.PaymentRepository
	userRepo    user.UserRepository
	hasher      PasswordHasher
	tempPass    TempPasswordGenerator
	notifier    NotificationSender
	evalCfg     member.EvaluationConfig
	logger      logger.Interface
}

func NewCreateMemberUseCase(
	memberRepo member.MemberRepository,
	planRepo plan.PlanRepository,
	paymentRepo payment.PaymentRepository,
	userRepo user.UserRepository,
	hasher PasswordHasher,
	tempPass TempPasswordGenerator,
	notifier NotificationSender,
	evalCfg member.EvaluationConfig,
	logger logger.Interface,
) *CreateMemberUseCase {
	return &CreateMemberUseCase{
		memberRepo:  memberRepo,
		planRepo:    planRepo,
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		hasher:      hasher,
		tempPass:    tempPass,
		notifier:    notifier,
		evalCfg:     evalCfg,
		logger:      logger,
	}
}

func (uc *CreateMemberUseCase) Execute(ctx context.Context, cmd CreateMemberCommand) (*CreateMemberResult, error) {
	exists, err := uc.memberRepo.ExistsByMemberID(ctx, cmd.MemberID)
	if err != nil {
		uc.logger.Errorw("failed to check member ID uniqueness", "error", err, "member_id", cmd.MemberID)
		return nil, fmt.Errorf("failed to check member ID: %w", err)
	}
	if exists {
		return nil, apperrors.NewConflictError("member ID already exists", cmd.MemberID)
	}

	p, err := uc.planRepo.GetBySID(ctx, cmd.PlanSID)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_sid", cmd.PlanSID)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if p == nil {
		return nil, apperrors.NewNotFoundError("plan not found", cmd.PlanSID)
	}
	if !p.IsActive() {
		return nil, apperrors.NewValidationError("plan is not active", cmd.PlanSID)
	}

	now := biztime.NowUTC()
	startDate := cmd.StartDate
	if startDate.IsZero() {
		startDate = now
	}
	endDate := biztime.NoonUTC(startDate).AddDate(0, 0, p.DurationDays())

	// An enrollment backdated far enough that the period already ended is
	// stored Expired from the start.
	status := member.StatusActive
	if !member.EvaluateMembership(endDate, now, uc.evalCfg).IsValid {
		status = member.StatusExpired
	}

	m, err := member.NewMember(cmd.MemberID, cmd.Name, cmd.Phone, cmd.Email, p.SID(), p.Name(), startDate, endDate, status)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid member data", err.Error())
	}

	if err := uc.memberRepo.Create(ctx, m); err != nil {
		uc.logger.Errorw("failed to create member", "error", err, "member_id", cmd.MemberID)
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	if cmd.InitialAmount.IsPositive() {
		if err := uc.recordInitialPayment(ctx, m, p, cmd); err != nil {
			// The member exists; a failed initial payment is surfaced as a
			// dependency error so staff can retry the payment alone.
			uc.logger.Errorw("failed to record initial payment", "error", err, "member_id", cmd.MemberID)
			return nil, apperrors.NewDependencyError("member created but initial payment failed", err.Error())
		}
	}

	result := &CreateMemberResult{Member: m}
	if m.Email() != "" {
		tempPassword, err := uc.provisionAccount(ctx, m)
		if err != nil {
			// Account provisioning is best-effort: the member record is the
			// source of truth and staff can retry from the admin UI.
			uc.logger.Warnw("failed to provision member account", "error", err, "member_id", cmd.MemberID)
		} else {
			result.TempPassword = tempPassword
			result.AccountCreated = true
		}
	}

	uc.logger.Infow("member enrolled",
		"member_id", m.MemberID(),
		"plan", p.Name(),
		"subscription_end", m.SubscriptionEnd(),
		"account_created", result.AccountCreated,
	)
	return result, nil
}

func (uc *CreateMemberUseCase) recordInitialPayment(ctx context.Context, m *member.Member, p *plan.Plan, cmd CreateMemberCommand) error {
	methodRaw := cmd.PaymentMethod
	if methodRaw == "" {
		methodRaw = valueobjects.MethodCash.String()
	}
	method, err := valueobjects.ParsePaymentMethod(methodRaw)
	if err != nil {
		return err
	}

	pay, err := payment.NewPayment(m.ID(), m.Name(), p.SID(), p.Name(),
		cmd.InitialAmount, method, valueobjects.StatusCompleted, biztime.NowUTC(), "Initial payment")
	if err != nil {
		return fmt.Errorf("failed to build payment: %w", err)
	}
	if err := uc.paymentRepo.Create(ctx, pay); err != nil {
		return fmt.Errorf("failed to save payment: %w", err)
	}

	if err := m.RecordPayment(cmd.InitialAmount); err != nil {
		return err
	}
	if err := uc.memberRepo.Update(ctx, m); err != nil {
		return fmt.Errorf("failed to update member total: %w", err)
	}
	return nil
}

func (uc *CreateMemberUseCase) provisionAccount(ctx context.Context, m *member.Member) (string, error) {
	existing, err := uc.userRepo.GetByEmail(ctx, m.Email())
	if err != nil {
		return "", fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		// Reuse the account; the member keeps their current password.
		m.LinkUser(existing.ID())
		if err := uc.memberRepo.Update(ctx, m); err != nil {
			return "", fmt.Errorf("failed to link existing account: %w", err)
		}
		return "", fmt.Errorf("account already exists for %s", m.Email())
	}

	tempPassword, err := uc.tempPass.Generate()
	if err != nil {
		return "", fmt.Errorf("failed to generate temporary password: %w", err)
	}
	hash, err := uc.hasher.Hash(tempPassword)
	if err != nil {
		return "", fmt.Errorf("failed to hash temporary password: %w", err)
	}

	u, err := user.NewUser(m.Email(), hash, user.RoleMember, true)
	if err != nil {
		return "", err
	}
	if err := uc.userRepo.Create(ctx, u); err != nil {
		return "", fmt.Errorf("failed to create account: %w", err)
	}

	m.LinkUser(u.ID())
	if err := uc.memberRepo.Update(ctx, m); err != nil {
		return "", fmt.Errorf("failed to link account: %w", err)
	}

	if uc.notifier != nil {
		if err := uc.notifier.SendWelcome(ctx, m.Name(), m.Email(), tempPassword); err != nil {
			uc.logger.Warnw("failed to send welcome email", "error", err, "member_id", m.MemberID())
		}
	}
	return tempPassword, nil
}
