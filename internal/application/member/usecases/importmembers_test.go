package usecases

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsefit/internal/domain/member"
	"pulsefit/internal/domain/plan"
	"pulsefit/internal/shared/biztime"
)

func newImporter(memberRepo *memoryMemberRepo, planRepo *memoryPlanRepo, paymentRepo *memoryPaymentRepo) *ImportMembersUseCase {
	cfg := member.EvaluationConfig{GraceDays: 3, ExpiringSoonDays: 7}
	return NewImportMembersUseCase(memberRepo, planRepo, paymentRepo, cfg, testLogger())
}

func TestImportMembers_HappyPath(t *testing.T) {
	memberRepo := newMemoryMemberRepo()
	planRepo := newMemoryPlanRepo()
	paymentRepo := newMemoryPaymentRepo()

	monthly, err := plan.NewPlan("Monthly", "", 30, decimal.NewFromInt(35))
	require.NoError(t, err)
	require.NoError(t, planRepo.Create(context.Background(), monthly))

	uc := newImporter(memberRepo, planRepo, paymentRepo)
	report, err := uc.Execute(context.Background(), ImportMembersCommand{
		BaseYear: 2024,
		Rows: []ImportRow{
			{MemberID: "GM-100", Name: "Ana", Phone: "+33600000001", PlanLabel: "monthly", Amount: "35,50", StartDateRaw: "15/03", EndDateRaw: "14/04"},
			{MemberID: "GM-101", Name: "Luc", Phone: "+33600000002", PlanLabel: "Unknown Plan", Amount: "0", StartDateRaw: "04-août", EndDateRaw: "03-sept"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 2, report.Success)
	assert.Zero(t, report.Failed)
	assert.Zero(t, report.Duplicates)

	ana, err := memberRepo.GetByMemberID(context.Background(), "GM-100")
	require.NoError(t, err)
	require.NotNil(t, ana)
	assert.Equal(t, monthly.SID(), ana.PlanID(), "known label resolves to the catalog plan")
	assert.True(t, ana.TotalPaid().Equal(decimal.NewFromFloat(35.50)))

	luc, err := memberRepo.GetByMemberID(context.Background(), "GM-101")
	require.NoError(t, err)
	require.NotNil(t, luc)
	assert.Empty(t, luc.PlanID())
	assert.Equal(t, "Unknown Plan", luc.PlanName(), "unknown labels are kept verbatim")
}

func TestImportMembers_InBatchDuplicate(t *testing.T) {
	memberRepo := newMemoryMemberRepo()
	uc := newImporter(memberRepo, newMemoryPlanRepo(), newMemoryPaymentRepo())

	report, err := uc.Execute(context.Background(), ImportMembersCommand{
		BaseYear: 2024,
		Rows: []ImportRow{
			{MemberID: "GM-100", Name: "Ana", Phone: "+336", Amount: "35", StartDateRaw: "15/03", EndDateRaw: "14/04"},
			{MemberID: "GM-100", Name: "Ana Again", Phone: "+336", Amount: "35", StartDateRaw: "16/03", EndDateRaw: "15/04"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Success)
	assert.Equal(t, 1, report.Duplicates)
	assert.Zero(t, report.Failed, "a duplicate is not a failure")
}

func TestImportMembers_ExistingMemberCountsAsDuplicate(t *testing.T) {
	memberRepo := newMemoryMemberRepo()
	now := biztime.NowUTC()
	seedMember(t, memberRepo, "GM-100", now.AddDate(0, 0, 10), member.StatusActive)

	uc := newImporter(memberRepo, newMemoryPlanRepo(), newMemoryPaymentRepo())
	report, err := uc.Execute(context.Background(), ImportMembersCommand{
		BaseYear: 2024,
		Rows: []ImportRow{
			{MemberID: "GM-100", Name: "Ana", Phone: "+336", Amount: "35", StartDateRaw: "15/03", EndDateRaw: "14/04"},
		},
	})
	require.NoError(t, err)

	assert.Zero(t, report.Success)
	assert.Equal(t, 1, report.Duplicates)
}

func TestImportMembers_RowFailures(t *testing.T) {
	uc := newImporter(newMemoryMemberRepo(), newMemoryPlanRepo(), newMemoryPaymentRepo())

	report, err := uc.Execute(context.Background(), ImportMembersCommand{
		BaseYear: 2024,
		Rows: []ImportRow{
			{MemberID: "", Name: "NoID", Phone: "+336", Amount: "35", StartDateRaw: "15/03", EndDateRaw: "14/04"},
			{MemberID: "GM-1", Name: "BadEndDate", Phone: "+336", Amount: "35", StartDateRaw: "15/03", EndDateRaw: "not a date"},
			{MemberID: "GM-2", Name: "BadAmount", Phone: "+336", Amount: "abc", StartDateRaw: "15/03", EndDateRaw: "14/04"},
			{MemberID: "GM-3", Name: "OK", Phone: "+336", Amount: "35", StartDateRaw: "15/03", EndDateRaw: "14/04"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, report.Failed)
	assert.Equal(t, 1, report.Success)
	assert.Len(t, report.Errors, 3)
}

func TestImportMembers_BadStartDateRejectsRow(t *testing.T) {
	memberRepo := newMemoryMemberRepo()
	uc := newImporter(memberRepo, newMemoryPlanRepo(), newMemoryPaymentRepo())

	report, err := uc.Execute(context.Background(), ImportMembersCommand{
		BaseYear: 2024,
		Rows: []ImportRow{
			{MemberID: "GM-1", Name: "NoStart", Phone: "+336", Amount: "35", StartDateRaw: "", EndDateRaw: "14/04"},
			{MemberID: "GM-2", Name: "BadStart", Phone: "+336", Amount: "35", StartDateRaw: "not-a-date", EndDateRaw: "14/04"},
		},
	})
	require.NoError(t, err)

	assert.Zero(t, report.Success, "no invented start date, no member")
	assert.Equal(t, 2, report.Failed)
	require.Len(t, report.Errors, 2)
	assert.Equal(t, "missing start date", report.Errors[0].Reason)
	assert.Contains(t, report.Errors[1].Reason, "unparseable start date")

	m, err := memberRepo.GetByMemberID(context.Background(), "GM-2")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestImportMembers_ExpiredRowClassifiedExpired(t *testing.T) {
	memberRepo := newMemoryMemberRepo()
	uc := newImporter(memberRepo, newMemoryPlanRepo(), newMemoryPaymentRepo())

	report, err := uc.Execute(context.Background(), ImportMembersCommand{
		BaseYear: 2019,
		Rows: []ImportRow{
			{MemberID: "GM-OLD", Name: "Old", Phone: "+336", Amount: "35", StartDateRaw: "01/01/2019", EndDateRaw: "31/01/2019"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, report.Success)

	m, err := memberRepo.GetByMemberID(context.Background(), "GM-OLD")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, member.StatusExpired, m.Status())
}

func TestImportMembers_GraceWindowRowClassifiedExpired(t *testing.T) {
	memberRepo := newMemoryMemberRepo()
	uc := newImporter(memberRepo, newMemoryPlanRepo(), newMemoryPaymentRepo())

	// End date was yesterday: still inside the grace window, but the
	// persisted label follows the calendar.
	now := biztime.NowUTC()
	report, err := uc.Execute(context.Background(), ImportMembersCommand{
		Rows: []ImportRow{
			{MemberID: "GM-G", Name: "Grace", Phone: "+336", Amount: "35",
				StartDateRaw: now.AddDate(0, 0, -31).Format("02/01/2006"),
				EndDateRaw:   now.AddDate(0, 0, -1).Format("02/01/2006")},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, report.Success)

	m, err := memberRepo.GetByMemberID(context.Background(), "GM-G")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, member.StatusExpired, m.Status())
}

func TestImportMembers_StripsMarkupFromText(t *testing.T) {
	memberRepo := newMemoryMemberRepo()
	uc := newImporter(memberRepo, newMemoryPlanRepo(), newMemoryPaymentRepo())

	report, err := uc.Execute(context.Background(), ImportMembersCommand{
		BaseYear: 2024,
		Rows: []ImportRow{
			{MemberID: "GM-1", Name: "<script>alert(1)</script>Ana", Phone: "+336", Amount: "35", StartDateRaw: "15/03", EndDateRaw: "14/04"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, report.Success)

	m, err := memberRepo.GetByMemberID(context.Background(), "GM-1")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "Ana", m.Name())
}

func TestImportMembers_ErrorListCapped(t *testing.T) {
	uc := newImporter(newMemoryMemberRepo(), newMemoryPlanRepo(), newMemoryPaymentRepo())

	rows := make([]ImportRow, 30)
	for i := range rows {
		rows[i] = ImportRow{Name: "NoID", Phone: "+336", Amount: "35", StartDateRaw: "15/03", EndDateRaw: "14/04"}
	}
	report, err := uc.Execute(context.Background(), ImportMembersCommand{BaseYear: 2024, Rows: rows})
	require.NoError(t, err)

	assert.Equal(t, 30, report.Failed, "every failure is counted")
	assert.Len(t, report.Errors, maxReportedErrors, "detail list stays capped")
}
