package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"obligation-engine/internal/domain/member"
	"obligation-engine/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

const (
	queryFindMemberByID = `
        SELECT id, name, active, is_overdue, created_at, updated_at
        FROM members
        WHERE id = $1`

	queryFindAllMembers = `
        SELECT id, name, active, is_overdue, created_at, updated_at
        FROM members`

	querySetMemberOverdue = `UPDATE members SET is_overdue = $1, updated_at = NOW() WHERE id = $2`
)

type MemberRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ member.MemberRepository = (*MemberRepository)(nil)

func NewMemberRepository(db DBPool, logger *slog.Logger) *MemberRepository {
	if db == nil {
		panic("DBPool cannot be nil for MemberRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewMemberRepository, using default stderr handler")
	}
	return &MemberRepository{db: db, logger: logger.With("component", "MemberRepository")}
}

func (r *MemberRepository) FindByID(ctx context.Context, memberID int64) (*member.Member, error) {
	start := time.Now()
	var m member.Member
	err := r.db.QueryRow(ctx, queryFindMemberByID, memberID).Scan(
		&m.ID, &m.Name, &m.Active, &m.IsOverdue, &m.CreatedAt, &m.UpdatedAt,
	)
	recordQuery("FindMemberByID", start, err)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Member not found", "member_id", memberID)
			return nil, apperrors.NewNotFound("member", memberID)
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan member by ID", "member_id", memberID, "error", err)
		return nil, fmt.Errorf("%w: failed to get member by ID: %w", apperrors.ErrDatabase, err)
	}
	return &m, nil
}

func (r *MemberRepository) FindAll(ctx context.Context, activeOnly bool) ([]*member.Member, error) {
	query := queryFindAllMembers
	args := []any{}
	if activeOnly {
		query += " WHERE active = $1"
		args = append(args, true)
	}
	query += " ORDER BY id ASC"

	start := time.Now()
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		recordQuery("FindAllMembers", start, err)
		r.logger.ErrorContext(ctx, "Failed to query members", "error", err)
		return nil, fmt.Errorf("%w: failed to query members: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	members := make([]*member.Member, 0)
	for rows.Next() {
		var m member.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Active, &m.IsOverdue, &m.CreatedAt, &m.UpdatedAt); err != nil {
			recordQuery("FindAllMembers", start, err)
			r.logger.ErrorContext(ctx, "Failed to scan member row", "error", err)
			return nil, fmt.Errorf("%w: failed to scan member row: %w", apperrors.ErrDatabase, err)
		}
		members = append(members, &m)
	}

	err = rows.Err()
	recordQuery("FindAllMembers", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error iterating member rows", "error", err)
		return nil, fmt.Errorf("%w: error iterating member rows: %w", apperrors.ErrDatabase, err)
	}
	return members, nil
}

func (r *MemberRepository) SetOverdueStatus(ctx context.Context, memberID int64, isOverdue bool) error {
	start := time.Now()
	cmdTag, err := r.db.Exec(ctx, querySetMemberOverdue, isOverdue, memberID)
	recordQuery("SetMemberOverdue", start, err)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to execute update overdue status", "member_id", memberID, "error", err)
		return fmt.Errorf("%w: failed to update overdue status: %w", apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update overdue affected zero rows, member likely not found", "member_id", memberID)
		return apperrors.NewNotFound("member", memberID)
	}

	r.logger.InfoContext(ctx, "Member overdue status updated", "member_id", memberID, "is_overdue", isOverdue)
	return nil
}
