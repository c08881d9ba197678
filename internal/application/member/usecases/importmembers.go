package usecases

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"

	"pulsefit/internal/domain/member"
	"pulsefit/internal/domain/payment"
	"pulsefit/internal/domain/payment/valueobjects"
	"pulsefit/internal/domain/plan"
	"pulsefit/internal/shared/biztime"
	"pulsefit/internal/shared/dates"
	"pulsefit/internal/shared/logger"
)

// maxReportedErrors caps the error list in the import report so a fully
// broken spreadsheet does not produce a megabyte response.
const maxReportedErrors = 20

// ImportRow is one spreadsheet row, already extracted from the uploaded
// file. Dates arrive as raw cell text (Excel serials included) and are
// parsed here.
type ImportRow struct {
	MemberID     string `json:"member_id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	PlanLabel    string `json:"plan_label"`
	Amount       string `json:"amount"`
	StartDateRaw string `json:"start_date"`
	EndDateRaw   string `json:"end_date"`
}

type ImportMembersCommand struct {
	Rows []ImportRow

	// BaseYear fills in the year for day/month-only cells like "15/03".
	BaseYear int
}

type RowError struct {
	Row      int    `json:"row"`
	MemberID string `json:"member_id,omitempty"`
	Reason   string `json:"reason"`
}

type ImportReport struct {
	Total      int        `json:"total"`
	Success    int        `json:"success"`
	Failed     int        `json:"failed"`
	Duplicates int        `json:"duplicates"`
	Errors     []RowError `json:"errors,omitempty"`
	Warnings   []string   `json:"warnings,omitempty"`
}

// ImportMembersUseCase reconciles a spreadsheet of members into the
// database. Rows are processed sequentially; each row fails or succeeds on
// its own and duplicates (including duplicates within the same batch) are
// counted separately from failures.
type ImportMembersUseCase struct {
	memberRepo  member.MemberRepository
	planRepo    plan.PlanRepository
	paymentRepo payment.PaymentRepository
	evalCfg     member.EvaluationConfig
	sanitizer   *bluemonday.Policy
	logger      logger.Interface
}

func NewImportMembersUseCase(
	memberRepo member.MemberRepository,
	planRepo plan.PlanRepository,
	paymentRepo payment.PaymentRepository,
	evalCfg member.EvaluationConfig,
	logger logger.Interface,
) *ImportMembersUseCase {
	return &ImportMembersUseCase{
		memberRepo:  memberRepo,
		planRepo:    planRepo,
		paymentRepo: paymentRepo,
		evalCfg:     evalCfg,
		sanitizer:   bluemonday.StrictPolicy(),
		logger:      logger,
	}
}

var explicitYearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)

func (uc *ImportMembersUseCase) Execute(ctx context.Context, cmd ImportMembersCommand) (*ImportReport, error) {
	report := &ImportReport{Total: len(cmd.Rows)}
	now := biztime.NowUTC()
	seenInBatch := make(map[string]bool, len(cmd.Rows))

	for i, raw := range cmd.Rows {
		rowNum := i + 1
		row := uc.cleanRow(raw)

		if reason := validateRequired(row); reason != "" {
			uc.addError(report, rowNum, row.MemberID, reason)
			continue
		}

		if seenInBatch[row.MemberID] {
			report.Duplicates++
			continue
		}
		exists, err := uc.memberRepo.ExistsByMemberID(ctx, row.MemberID)
		if err != nil {
			uc.logger.Errorw("duplicate check failed", "error", err, "row", rowNum, "member_id", row.MemberID)
			uc.addError(report, rowNum, row.MemberID, "database error during duplicate check")
			continue
		}
		if exists {
			report.Duplicates++
			seenInBatch[row.MemberID] = true
			continue
		}

		endDate, ok := dates.ParseFlexible(row.EndDateRaw, cmd.BaseYear)
		if !ok {
			uc.addError(report, rowNum, row.MemberID, fmt.Sprintf("unparseable end date %q", row.EndDateRaw))
			continue
		}
		startDate, ok := dates.ParseFlexible(row.StartDateRaw, cmd.BaseYear)
		if !ok {
			uc.addError(report, rowNum, row.MemberID, fmt.Sprintf("unparseable start date %q", row.StartDateRaw))
			continue
		}
		if endDate.Before(startDate) {
			uc.addError(report, rowNum, row.MemberID, "end date before start date")
			continue
		}
		uc.warnOnYearOverride(report, rowNum, row, cmd.BaseYear, startDate, endDate)

		amount, reason := parseAmount(row.Amount)
		if reason != "" {
			uc.addError(report, rowNum, row.MemberID, reason)
			continue
		}

		planID, planName := uc.resolvePlan(ctx, row.PlanLabel)

		// The persisted label mirrors the calendar: a row whose end date is
		// already behind "now at import time" lands as Expired, grace window
		// or not. The evaluator decides door access later, on its own.
		status := member.StatusActive
		if member.EvaluateMembership(endDate, now, uc.evalCfg).Status != member.EffectiveActive {
			status = member.StatusExpired
		}

		m, err := member.NewMember(row.MemberID, row.Name, row.Phone, "", planID, planName, startDate, endDate, status)
		if err != nil {
			uc.addError(report, rowNum, row.MemberID, err.Error())
			continue
		}
		if err := uc.memberRepo.Create(ctx, m); err != nil {
			uc.logger.Errorw("failed to create imported member", "error", err, "row", rowNum, "member_id", row.MemberID)
			uc.addError(report, rowNum, row.MemberID, "database error during create")
			continue
		}
		seenInBatch[row.MemberID] = true
		report.Success++

		// Ledger entry is best-effort: a historical payment we cannot record
		// must not undo a successfully imported member.
		if amount.IsPositive() {
			uc.recordImportedPayment(ctx, m, planID, planName, amount, rowNum)
		}
	}

	uc.logger.Infow("member import finished",
		"total", report.Total,
		"success", report.Success,
		"failed", report.Failed,
		"duplicates", report.Duplicates,
	)
	return report, nil
}

func (uc *ImportMembersUseCase) cleanRow(r ImportRow) ImportRow {
	clean := func(s string) string {
		return strings.TrimSpace(uc.sanitizer.Sanitize(s))
	}
	return ImportRow{
		MemberID:     clean(r.MemberID),
		Name:         clean(r.Name),
		Phone:        clean(r.Phone),
		PlanLabel:    clean(r.PlanLabel),
		Amount:       strings.TrimSpace(r.Amount),
		StartDateRaw: strings.TrimSpace(r.StartDateRaw),
		EndDateRaw:   strings.TrimSpace(r.EndDateRaw),
	}
}

func validateRequired(r ImportRow) string {
	switch {
	case r.MemberID == "":
		return "missing member ID"
	case r.Name == "":
		return "missing name"
	case r.Phone == "":
		return "missing phone"
	case r.Amount == "":
		return "missing amount"
	case r.StartDateRaw == "":
		return "missing start date"
	case r.EndDateRaw == "":
		return "missing end date"
	default:
		return ""
	}
}

func parseAmount(raw string) (decimal.Decimal, string) {
	cleaned := strings.NewReplacer("€", "", "$", "", " ", "", ",", ".").Replace(raw)
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Sprintf("non-numeric amount %q", raw)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Sprintf("negative amount %q", raw)
	}
	return amount, ""
}

// resolvePlan maps a free-text spreadsheet label to a catalog plan. Unknown
// labels are kept verbatim as the plan-name snapshot so no information is
// lost; the plan link stays empty.
func (uc *ImportMembersUseCase) resolvePlan(ctx context.Context, label string) (planID, planName string) {
	if label == "" {
		return "", ""
	}
	p, err := uc.planRepo.GetByName(ctx, label)
	if err != nil {
		uc.logger.Warnw("plan lookup failed during import", "error", err, "label", label)
		return "", label
	}
	if p == nil {
		return "", label
	}
	return p.SID(), p.Name()
}

// warnOnYearOverride flags rows whose cell carried an explicit year that the
// batch base year replaced, so operators can audit the generic-parse
// fallback behavior.
func (uc *ImportMembersUseCase) warnOnYearOverride(report *ImportReport, rowNum int, row ImportRow, baseYear int, parsed ...time.Time) {
	if baseYear == 0 || len(report.Warnings) >= maxReportedErrors {
		return
	}
	for _, raw := range []string{row.StartDateRaw, row.EndDateRaw} {
		match := explicitYearRe.FindString(raw)
		if match == "" {
			continue
		}
		cellYear, _ := strconv.Atoi(match)
		for _, t := range parsed {
			if t.Year() == baseYear && cellYear != baseYear {
				report.Warnings = append(report.Warnings,
					fmt.Sprintf("row %d: year %d in %q overridden by batch year %d", rowNum, cellYear, raw, baseYear))
				return
			}
		}
	}
}

func (uc *ImportMembersUseCase) recordImportedPayment(ctx context.Context, m *member.Member, planID, planName string, amount decimal.Decimal, rowNum int) {
	pay, err := payment.NewPayment(m.ID(), m.Name(), planID, planName,
		amount, valueobjects.MethodCash, valueobjects.StatusCompleted, m.SubscriptionStart(), "Imported from Excel")
	if err != nil {
		uc.logger.Warnw("failed to build imported payment", "error", err, "row", rowNum, "member_id", m.MemberID())
		return
	}
	if err := uc.paymentRepo.Create(ctx, pay); err != nil {
		uc.logger.Warnw("failed to save imported payment", "error", err, "row", rowNum, "member_id", m.MemberID())
		return
	}
	if err := m.RecordPayment(amount); err != nil {
		return
	}
	if err := uc.memberRepo.Update(ctx, m); err != nil {
		uc.logger.Warnw("failed to update member total after imported payment", "error", err, "member_id", m.MemberID())
	}
}

// addError counts the failure and keeps the detail unless the report list
// is already full.
func (uc *ImportMembersUseCase) addError(report *ImportReport, rowNum int, memberID, reason string) {
	report.Failed++
	if len(report.Errors) < maxReportedErrors {
		report.Errors = append(report.Errors, RowError{Row: rowNum, MemberID: memberID, Reason: reason})
	}
}
