package member

import "context"

type MemberRepository interface {
	FindByID(ctx context.Context, memberID int64) (*Member, error)

	FindAll(ctx context.Context, activeOnly bool) ([]*Member, error)

	SetOverdueStatus(ctx context.Context, memberID int64, isOverdue bool) error
}
