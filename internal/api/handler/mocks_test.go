package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"obligation-engine/internal/domain/member"
	"obligation-engine/internal/domain/obligation"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var fixedNow = time.Date(2024, time.March, 20, 10, 0, 0, 0, time.UTC)

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

type MockObligationService struct {
	mock.Mock
}

var _ obligation.ObligationService = (*MockObligationService)(nil)

func (m *MockObligationService) GetObligation(ctx context.Context, obligationID int64) (*obligation.Obligation, error) {
	args := m.Called(ctx, obligationID)
	if o, ok := args.Get(0).(*obligation.Obligation); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockObligationService) ListMemberObligations(ctx context.Context, memberID int64) ([]*obligation.Obligation, error) {
	args := m.Called(ctx, memberID)
	if list, ok := args.Get(0).([]*obligation.Obligation); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockObligationService) ListObligationsByStatus(ctx context.Context, status obligation.Status) ([]*obligation.Obligation, error) {
	args := m.Called(ctx, status)
	if list, ok := args.Get(0).([]*obligation.Obligation); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockObligationService) GetStatement(ctx context.Context, obligationID int64, asOf time.Time) (*obligation.Statement, error) {
	args := m.Called(ctx, obligationID, asOf)
	if st, ok := args.Get(0).(*obligation.Statement); ok {
		return st, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockObligationService) ListPayments(ctx context.Context, obligationID int64) ([]obligation.Payment, error) {
	args := m.Called(ctx, obligationID)
	if p, ok := args.Get(0).([]obligation.Payment); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockObligationService) ListMemberStatements(ctx context.Context, memberID int64, asOf time.Time) ([]*obligation.Statement, error) {
	args := m.Called(ctx, memberID, asOf)
	if list, ok := args.Get(0).([]*obligation.Statement); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockObligationService) Statements(ctx context.Context, obligations []*obligation.Obligation, asOf time.Time) ([]*obligation.Statement, error) {
	args := m.Called(ctx, obligations, asOf)
	if list, ok := args.Get(0).([]*obligation.Statement); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockObligationService) MemberDueOverview(ctx context.Context, memberID int64, asOf time.Time) (*obligation.DueOverview, error) {
	args := m.Called(ctx, memberID, asOf)
	if ov, ok := args.Get(0).(*obligation.DueOverview); ok {
		return ov, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockObligationService) RecordPayment(ctx context.Context, obligationID int64, amount decimal.Decimal, paidAt time.Time, periodIndex *int) (*obligation.Payment, error) {
	args := m.Called(ctx, obligationID, amount, paidAt, periodIndex)
	if p, ok := args.Get(0).(*obligation.Payment); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockObligationService) CloseSettled(ctx context.Context, st *obligation.Statement) (bool, error) {
	args := m.Called(ctx, st)
	return args.Bool(0), args.Error(1)
}

func (m *MockObligationService) QuoteLoan(principal decimal.Decimal, termMonths int, origination time.Time) (obligation.LoanQuote, error) {
	args := m.Called(principal, termMonths, origination)
	return args.Get(0).(obligation.LoanQuote), args.Error(1)
}

func (m *MockObligationService) QuoteDeferred(subtotal decimal.Decimal, methodLabel string, origination time.Time) obligation.DeferredTerms {
	args := m.Called(subtotal, methodLabel, origination)
	return args.Get(0).(obligation.DeferredTerms)
}

type MockMemberService struct {
	mock.Mock
}

var _ member.MemberService = (*MockMemberService)(nil)

func (m *MockMemberService) GetMember(ctx context.Context, memberID int64) (*member.Member, error) {
	args := m.Called(ctx, memberID)
	if mem, ok := args.Get(0).(*member.Member); ok {
		return mem, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMemberService) ListActiveMembers(ctx context.Context) ([]*member.Member, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]*member.Member); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMemberService) UpdateOverdueStatus(ctx context.Context, memberID int64, isOverdue bool, overdueObligationIDs []int64) (bool, error) {
	args := m.Called(ctx, memberID, isOverdue, overdueObligationIDs)
	return args.Bool(0), args.Error(1)
}
