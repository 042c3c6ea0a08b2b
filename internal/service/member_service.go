package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fitdesk/gym_admin/internal/model"
	"github.com/fitdesk/gym_admin/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MemberService struct {
	memberRepo *repository.MemberRepository
	logger     *zap.Logger
}

func NewMemberService(memberRepo *repository.MemberRepository, logger *zap.Logger) *MemberService {
	return &MemberService{memberRepo: memberRepo, logger: logger}
}

// CreateMember заводит карточку участника
func (s *MemberService) CreateMember(ctx context.Context, member model.Member) (*model.Member, error) {
	if member.FirstName == "" || member.LastName == "" {
		return nil, fmt.Errorf("%w: member name is required", model.ErrInvalidInput)
	}

	member.ID = uuid.New()
	if member.JoinedAt.IsZero() {
		member.JoinedAt = model.DateOnly(time.Now())
	}

	if err := s.memberRepo.Create(ctx, &member); err != nil {
		return nil, fmt.Errorf("create member: %w", err)
	}

	s.logger.Info("Member created",
		zap.String("member_id", member.ID.String()),
		zap.String("name", member.FirstName+" "+member.LastName),
	)

	return &member, nil
}

// GetMembers получает всех участников
func (s *MemberService) GetMembers(ctx context.Context) ([]*model.Member, error) {
	return s.memberRepo.GetAll(ctx)
}
