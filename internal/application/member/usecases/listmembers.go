package usecases

import (
	"context"
	"fmt"

	"pulsefit/internal/domain/member"
	"pulsefit/internal/shared/logger"
)

type ListMembersCommand struct {
	Search   string
	Status   string
	Page     int
	PageSize int
}

type ListMembersResult struct {
	Members []*member.Member
	Total   int64
}

type ListMembersUseCase struct {
	memberRepo member.MemberRepository
	logger     logger.Interface
}

func NewListMembersUseCase(memberRepo member.MemberRepository, logger logger.Interface) *ListMembersUseCase {
	return &ListMembersUseCase{memberRepo: memberRepo, logger: logger}
}

func (uc *ListMembersUseCase) Execute(ctx context.Context, cmd ListMembersCommand) (*ListMembersResult, error) {
	filter := member.MemberFilter{
		Search:   cmd.Search,
		Status:   cmd.Status,
		Page:     cmd.Page,
		PageSize: cmd.PageSize,
	}

	members, total, err := uc.memberRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list members", "error", err)
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	return &ListMembersResult{Members: members, Total: total}, nil
}
