package member

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"obligation-engine/internal/event"
	"obligation-engine/internal/pkg/apperrors"
)

type MemberService interface {
	GetMember(ctx context.Context, memberID int64) (*Member, error)
	ListActiveMembers(ctx context.Context) ([]*Member, error)
	// UpdateOverdueStatus stores the member's overdue flag and reports
	// whether it changed. overdueObligationIDs is carried on the event only.
	UpdateOverdueStatus(ctx context.Context, memberID int64, isOverdue bool, overdueObligationIDs []int64) (bool, error)
}

var _ MemberService = (*memberService)(nil)

type memberService struct {
	repo   MemberRepository
	pub    event.EventPublisher
	logger *slog.Logger
}

func NewMemberService(repo MemberRepository, pub event.EventPublisher, logger *slog.Logger) MemberService {
	if repo == nil {
		panic("member repository cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewMemberService, using default stderr handler")
	}
	if pub == nil {
		pub = event.NewNopEventPublisher(logger)
	}
	return &memberService{
		repo:   repo,
		pub:    pub,
		logger: logger.With(slog.String("component", "memberService")),
	}
}

func (s *memberService) GetMember(ctx context.Context, memberID int64) (*Member, error) {
	logger := s.logger.With(slog.Int64("memberID", memberID))
	if memberID <= 0 {
		return nil, fmt.Errorf("%w: invalid member ID %d", apperrors.ErrInvalidArgument, memberID)
	}

	m, err := s.repo.FindByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.WarnContext(ctx, "Member not found by repository")
			return nil, err
		}
		logger.ErrorContext(ctx, "Repository error finding member", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get member %d: %w", memberID, err)
	}
	return m, nil
}

func (s *memberService) ListActiveMembers(ctx context.Context) ([]*Member, error) {
	members, err := s.repo.FindAll(ctx, true)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing active members", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list active members: %w", err)
	}
	s.logger.DebugContext(ctx, "Listed active members", slog.Int("count", len(members)))
	return members, nil
}

func (s *memberService) UpdateOverdueStatus(ctx context.Context, memberID int64, isOverdue bool, overdueObligationIDs []int64) (bool, error) {
	logger := s.logger.With(slog.Int64("memberID", memberID), slog.Bool("isOverdue", isOverdue))

	current, err := s.GetMember(ctx, memberID)
	if err != nil {
		return false, err
	}
	if current.IsOverdue == isOverdue {
		logger.DebugContext(ctx, "Overdue status unchanged, skipping update")
		return false, nil
	}

	if err := s.repo.SetOverdueStatus(ctx, memberID, isOverdue); err != nil {
		logger.ErrorContext(ctx, "Repository error updating overdue status", slog.Any("error", err))
		return false, fmt.Errorf("failed to update overdue status for member %d: %w", memberID, err)
	}

	pubErr := s.pub.PublishMemberOverdueChanged(ctx, event.MemberOverdueChangedEvent{
		MemberID:             memberID,
		NewStatus:            isOverdue,
		OldStatus:            current.IsOverdue,
		OverdueObligationIDs: overdueObligationIDs,
	})
	if pubErr != nil {
		logger.ErrorContext(ctx, "Overdue status updated, but FAILED to publish event", slog.Any("error", pubErr))
	}

	logger.InfoContext(ctx, "Successfully updated member overdue status")
	return true, nil
}
