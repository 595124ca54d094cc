package postgres

import (
	"regexp"
	"testing"
	"time"

	"obligation-engine/internal/pkg/apperrors"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var memberRowColumns = []string{"id", "name", "active", "is_overdue", "created_at", "updated_at"}

func TestFindMemberByIDWhenSuccess(t *testing.T) {
	ctx, mockPool := setupMockPool(t)
	defer mockPool.Close()
	repo := NewMemberRepository(mockPool, logger)

	now := time.Now()
	mockPool.ExpectQuery(regexp.QuoteMeta(queryFindMemberByID)).WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(memberRowColumns).AddRow(int64(1), "Ana Reyes", true, false, now, now))

	m, err := repo.FindByID(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, "Ana Reyes", m.Name)
	assert.True(t, m.Active)
	assert.False(t, m.IsOverdue)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindMemberByIDWhenNotFound(t *testing.T) {
	ctx, mockPool := setupMockPool(t)
	defer mockPool.Close()
	repo := NewMemberRepository(mockPool, logger)

	mockPool.ExpectQuery(regexp.QuoteMeta(queryFindMemberByID)).WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows(memberRowColumns))

	_, err := repo.FindByID(ctx, 2)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFindAllMembersActiveOnly(t *testing.T) {
	ctx, mockPool := setupMockPool(t)
	defer mockPool.Close()
	repo := NewMemberRepository(mockPool, logger)

	now := time.Now()
	query := queryFindAllMembers + " WHERE active = $1 ORDER BY id ASC"
	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(true).
		WillReturnRows(pgxmock.NewRows(memberRowColumns).
			AddRow(int64(1), "Ana Reyes", true, false, now, now).
			AddRow(int64(2), "Ben Cruz", true, true, now, now))

	members, err := repo.FindAll(ctx, true)

	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.True(t, members[1].IsOverdue)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindAllMembersIncludingInactive(t *testing.T) {
	ctx, mockPool := setupMockPool(t)
	defer mockPool.Close()
	repo := NewMemberRepository(mockPool, logger)

	query := queryFindAllMembers + " ORDER BY id ASC"
	mockPool.ExpectQuery(regexp.QuoteMeta(query)).
		WillReturnRows(pgxmock.NewRows(memberRowColumns))

	members, err := repo.FindAll(ctx, false)

	require.NoError(t, err)
	assert.Empty(t, members)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestSetOverdueStatusWhenSuccess(t *testing.T) {
	ctx, mockPool := setupMockPool(t)
	defer mockPool.Close()
	repo := NewMemberRepository(mockPool, logger)

	mockPool.ExpectExec(regexp.QuoteMeta(querySetMemberOverdue)).WithArgs(true, int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, repo.SetOverdueStatus(ctx, 1, true))
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestSetOverdueStatusWhenNotFound(t *testing.T) {
	ctx, mockPool := setupMockPool(t)
	defer mockPool.Close()
	repo := NewMemberRepository(mockPool, logger)

	mockPool.ExpectExec(regexp.QuoteMeta(querySetMemberOverdue)).WithArgs(false, int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.SetOverdueStatus(ctx, 3, false)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
