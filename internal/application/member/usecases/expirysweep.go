package usecases

import (
	"context"
	"fmt"
	"time"

	"pulsefit/internal/domain/member"
	"pulsefit/internal/shared/biztime"
	"pulsefit/internal/shared/logger"
)

type ExpirySweepCommand struct {
	// PageSize bounds each repository page; zero uses the default.
	PageSize int
}

type ExpirySweepReport struct {
	UpdatedCount   int      `json:"updated_count"`
	ExpiredMembers []string `json:"expired_members,omitempty"`
	Notified       int      `json:"notified"`
	Failed         int      `json:"failed"`
	Skipped        int      `json:"skipped"`
}

const defaultSweepPageSize = 200

// ExpirySweepUseCase is the daily maintenance pass over persisted-Active
// members. It is the only writer of the cached status label, and it sends
// renewal reminders to members whose remaining days equal the advance-notice
// value exactly. Re-running immediately is a no-op: flipped members leave the
// Active page and notified members are inside the cooldown.
type ExpirySweepUseCase struct {
	memberRepo        member.MemberRepository
	notifier          NotificationSender
	locker            SweepLocker
	evalCfg           member.EvaluationConfig
	renewalNoticeDays int
	noticeCooldown    time.Duration
	logger            logger.Interface
}

func NewExpirySweepUseCase(
	memberRepo member.MemberRepository,
	notifier NotificationSender,
	locker SweepLocker,
	evalCfg member.EvaluationConfig,
	renewalNoticeDays int,
	noticeCooldown time.Duration,
	logger logger.Interface,
) *ExpirySweepUseCase {
	return &ExpirySweepUseCase{
		memberRepo:        memberRepo,
		notifier:          notifier,
		locker:            locker,
		evalCfg:           evalCfg,
		renewalNoticeDays: renewalNoticeDays,
		noticeCooldown:    noticeCooldown,
		logger:            logger,
	}
}

func (uc *ExpirySweepUseCase) Execute(ctx context.Context, cmd ExpirySweepCommand) (*ExpirySweepReport, error) {
	if uc.locker != nil {
		acquired, err := uc.locker.TryLock(ctx)
		if err != nil {
			uc.logger.Errorw("failed to acquire sweep lock", "error", err)
			return nil, fmt.Errorf("failed to acquire sweep lock: %w", err)
		}
		if !acquired {
			uc.logger.Infow("expiry sweep already running elsewhere, skipping")
			return &ExpirySweepReport{}, nil
		}
		defer func() {
			if err := uc.locker.Unlock(context.Background()); err != nil {
				uc.logger.Warnw("failed to release sweep lock", "error", err)
			}
		}()
	}

	pageSize := cmd.PageSize
	if pageSize <= 0 {
		pageSize = defaultSweepPageSize
	}

	report := &ExpirySweepReport{}
	now := biztime.NowUTC()
	offset := 0

	for {
		page, err := uc.memberRepo.ListByPersistedStatus(ctx, member.StatusActive, pageSize, offset)
		if err != nil {
			uc.logger.Errorw("failed to page active members", "error", err, "offset", offset)
			return nil, fmt.Errorf("failed to list active members: %w", err)
		}
		if len(page) == 0 {
			break
		}

		for _, m := range page {
			uc.sweepMember(ctx, m, now, report)
		}

		// Flipped members fall out of the Active result set, so the offset
		// only advances past the ones still Active.
		offset += len(page) - countFlipped(page)
		if len(page) < pageSize {
			break
		}
	}

	uc.logger.Infow("expiry sweep finished",
		"updated", report.UpdatedCount,
		"notified", report.Notified,
		"failed", report.Failed,
		"skipped", report.Skipped,
	)
	return report, nil
}

func (uc *ExpirySweepUseCase) sweepMember(ctx context.Context, m *member.Member, now time.Time, report *ExpirySweepReport) {
	status := member.EvaluateMembership(m.SubscriptionEnd(), now, uc.evalCfg)

	// The persisted label tracks the calendar boundary: once the end date is
	// behind us the row flips to Expired, even while the grace window still
	// admits the member at the door. Door access is always computed live.
	if status.Status != member.EffectiveActive {
		if err := m.MarkAsExpired(); err != nil {
			report.Failed++
			return
		}
		if err := uc.memberRepo.Update(ctx, m); err != nil {
			uc.logger.Errorw("failed to persist expiry flip", "error", err, "member_id", m.MemberID())
			report.Failed++
			return
		}
		report.UpdatedCount++
		report.ExpiredMembers = append(report.ExpiredMembers, m.MemberID())
		return
	}

	// Reminder fires on the exact advance-notice day, not the whole window:
	// a daily sweep then notifies each member at most once per cycle, and
	// the cooldown stamp absorbs extra manual triggers the same day.
	if status.DaysRemaining != uc.renewalNoticeDays {
		return
	}
	if m.NotifiedWithin(uc.noticeCooldown, now) {
		report.Skipped++
		return
	}
	if uc.notifier == nil {
		return
	}

	if err := uc.notifier.SendRenewalReminder(ctx, m.Name(), m.Email(), m.Phone(), m.PlanName(), status.DaysRemaining); err != nil {
		uc.logger.Warnw("failed to send renewal reminder", "error", err, "member_id", m.MemberID())
		report.Failed++
		return
	}

	m.StampExpiryNotice(now)
	if err := uc.memberRepo.Update(ctx, m); err != nil {
		uc.logger.Errorw("failed to persist notice stamp", "error", err, "member_id", m.MemberID())
		report.Failed++
		return
	}
	report.Notified++
}

func countFlipped(page []*member.Member) int {
	n := 0
	for _, m := range page {
		if m.Status() == member.StatusExpired {
			n++
		}
	}
	return n
}
