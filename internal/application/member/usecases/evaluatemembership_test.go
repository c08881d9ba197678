package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsefit/internal/domain/member"
	apperrors "pulsefit/internal/shared/errors"
	"pulsefit/internal/shared/biztime"
)

func TestEvaluateMembership_ByMemberID(t *testing.T) {
	repo := newMemoryMemberRepo()
	now := biztime.NowUTC()
	seedMember(t, repo, "GM-100", now.AddDate(0, 0, 10), member.StatusActive)

	uc := NewEvaluateMembershipUseCase(repo, member.EvaluationConfig{GraceDays: 3, ExpiringSoonDays: 7}, testLogger())
	status, err := uc.Execute(context.Background(), EvaluateMembershipCommand{MemberRef: "GM-100"})
	require.NoError(t, err)

	assert.True(t, status.IsValid)
	assert.Equal(t, member.EffectiveActive, status.Status)
}

func TestEvaluateMembership_FallsBackToEmail(t *testing.T) {
	repo := newMemoryMemberRepo()
	now := biztime.NowUTC()
	seedMember(t, repo, "GM-100", now.AddDate(0, 0, 10), member.StatusActive)

	uc := NewEvaluateMembershipUseCase(repo, member.EvaluationConfig{GraceDays: 3, ExpiringSoonDays: 7}, testLogger())
	status, err := uc.Execute(context.Background(), EvaluateMembershipCommand{MemberRef: "GM-100@example.com"})
	require.NoError(t, err)

	assert.True(t, status.IsValid, "an email resolves the same member as its ID")
}

func TestEvaluateMembership_UnknownRef(t *testing.T) {
	uc := NewEvaluateMembershipUseCase(newMemoryMemberRepo(), member.EvaluationConfig{GraceDays: 3, ExpiringSoonDays: 7}, testLogger())

	_, err := uc.Execute(context.Background(), EvaluateMembershipCommand{MemberRef: "nobody@example.com"})
	require.Error(t, err)

	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}
