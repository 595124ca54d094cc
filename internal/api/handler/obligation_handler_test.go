package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"obligation-engine/internal/api/handler/dto"
	"obligation-engine/internal/domain/obligation"
	"obligation-engine/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newObligationHandler(svc *MockObligationService) *ObligationHandler {
	h := NewObligationHandler(svc, testLogger)
	h.now = func() time.Time { return fixedNow }
	return h
}

func loanStatement(asOf time.Time) *obligation.Statement {
	next := time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC)
	days := 26
	return &obligation.Statement{
		Obligation: &obligation.Obligation{ID: 42, MemberID: 7, Kind: obligation.KindLoan, Status: obligation.StatusApproved,
			Principal: decimal.RequireFromString("12000"), TermMonths: 6, MonthlyRate: decimal.RequireFromString("0.02")},
		AsOf: asOf,
		Schedule: []obligation.ScheduleEntry{{PeriodIndex: 1, DueDate: time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC),
			TotalPayment: decimal.RequireFromString("2240"), Status: obligation.PeriodPaid}},
		Summary: obligation.Summary{
			OutstandingBalance: decimal.RequireFromString("8340"),
			NextDueDate:        &next,
			DaysToNextDue:      &days,
		},
	}
}

func TestObligationHandler_GetObligation(t *testing.T) {
	t.Run("returns obligation with summary", func(t *testing.T) {
		svc := new(MockObligationService)
		h := newObligationHandler(svc)
		svc.On("GetStatement", mock.Anything, int64(42), fixedNow).Return(loanStatement(fixedNow), nil).Once()

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/obligations/42", nil), obligationIDParam, "42")
		rec := httptest.NewRecorder()
		h.GetObligation(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp dto.ObligationResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "42", resp.ID)
		require.NotNil(t, resp.Summary)
		assert.Equal(t, "8340.00", resp.Summary.OutstandingBalance)
		svc.AssertExpectations(t)
	})

	t.Run("rejects a malformed id", func(t *testing.T) {
		svc := new(MockObligationService)
		h := newObligationHandler(svc)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/obligations/abc", nil), obligationIDParam, "abc")
		rec := httptest.NewRecorder()
		h.GetObligation(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "GetStatement", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("maps not found", func(t *testing.T) {
		svc := new(MockObligationService)
		h := newObligationHandler(svc)
		svc.On("GetStatement", mock.Anything, int64(9), fixedNow).
			Return(nil, fmt.Errorf("%w: obligation 9", apperrors.ErrNotFound)).Once()

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/obligations/9", nil), obligationIDParam, "9")
		rec := httptest.NewRecorder()
		h.GetObligation(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		var resp dto.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	})
}

func TestObligationHandler_GetSchedule(t *testing.T) {
	t.Run("uses the asOf query parameter", func(t *testing.T) {
		svc := new(MockObligationService)
		h := newObligationHandler(svc)
		asOf := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
		svc.On("GetStatement", mock.Anything, int64(42), asOf).Return(loanStatement(asOf), nil).Once()

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/obligations/42/schedule?asOf=2024-03-20", nil), obligationIDParam, "42")
		rec := httptest.NewRecorder()
		h.GetSchedule(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp dto.StatementResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "2024-03-20", resp.AsOf)
		require.Len(t, resp.Schedule, 1)
		assert.Equal(t, "PAID", resp.Schedule[0].Status)
		require.NotNil(t, resp.Summary.DaysToNextDue)
		assert.Equal(t, 26, *resp.Summary.DaysToNextDue)
		svc.AssertExpectations(t)
	})

	t.Run("defaults asOf to now", func(t *testing.T) {
		svc := new(MockObligationService)
		h := newObligationHandler(svc)
		svc.On("GetStatement", mock.Anything, int64(42), fixedNow).Return(loanStatement(fixedNow), nil).Once()

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/obligations/42/schedule", nil), obligationIDParam, "42")
		rec := httptest.NewRecorder()
		h.GetSchedule(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("rejects a malformed asOf", func(t *testing.T) {
		svc := new(MockObligationService)
		h := newObligationHandler(svc)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/obligations/42/schedule?asOf=20-03-2024", nil), obligationIDParam, "42")
		rec := httptest.NewRecorder()
		h.GetSchedule(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "asOf")
	})
}

func TestObligationHandler_ListPayments(t *testing.T) {
	svc := new(MockObligationService)
	h := newObligationHandler(svc)
	idx := 1
	svc.On("ListPayments", mock.Anything, int64(42)).Return([]obligation.Payment{
		{ID: 1, ObligationID: 42, Amount: decimal.RequireFromString("2240"), PaidAt: time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC), PeriodIndex: &idx},
		{ID: 2, ObligationID: 42, Amount: decimal.RequireFromString("100.5")},
	}, nil).Once()

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/obligations/42/payments", nil), obligationIDParam, "42")
	rec := httptest.NewRecorder()
	h.ListPayments(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []dto.PaymentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "2240.00", resp[0].Amount)
	assert.Equal(t, 1, *resp[0].PeriodIndex)
	assert.Equal(t, "100.50", resp[1].Amount)
	assert.Nil(t, resp[1].PeriodIndex)
}

func TestObligationHandler_RecordPayment(t *testing.T) {
	paidAt := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	t.Run("records a payment", func(t *testing.T) {
		svc := new(MockObligationService)
		h := newObligationHandler(svc)
		amount := decimal.RequireFromString("2240.00")
		svc.On("RecordPayment", mock.Anything, int64(42), amount, paidAt, mock.AnythingOfType("*int")).
			Return(&obligation.Payment{ID: 5, ObligationID: 42, Amount: amount, PaidAt: paidAt}, nil).Once()

		body := `{"amount":"2240.00","paidAt":"2024-03-15","periodIndex":2}`
		req := withURLParam(httptest.NewRequest(http.MethodPost, "/obligations/42/payments", strings.NewReader(body)), obligationIDParam, "42")
		rec := httptest.NewRecorder()
		h.RecordPayment(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp dto.PaymentResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "5", resp.ID)
		assert.Equal(t, "2240.00", resp.Amount)

		periodIndex := svc.Calls[0].Arguments.Get(4).(*int)
		require.NotNil(t, periodIndex)
		assert.Equal(t, 2, *periodIndex)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		svc := new(MockObligationService)
		h := newObligationHandler(svc)

		req := withURLParam(httptest.NewRequest(http.MethodPost, "/obligations/42/payments", strings.NewReader(`{"amount":"1","extra":true}`)), obligationIDParam, "42")
		rec := httptest.NewRecorder()
		h.RecordPayment(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "RecordPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects a non numeric amount", func(t *testing.T) {
		svc := new(MockObligationService)
		h := newObligationHandler(svc)

		req := withURLParam(httptest.NewRequest(http.MethodPost, "/obligations/42/payments", strings.NewReader(`{"amount":"lots"}`)), obligationIDParam, "42")
		rec := httptest.NewRecorder()
		h.RecordPayment(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	serviceErrors := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "non positive amount", err: fmt.Errorf("%w: must be positive", apperrors.ErrInvalidPaymentAmount), wantStatus: http.StatusBadRequest, wantCode: "INVALID_PAYMENT_AMOUNT"},
		{name: "settled obligation", err: fmt.Errorf("%w: obligation 42", apperrors.ErrObligationSettled), wantStatus: http.StatusConflict, wantCode: "OBLIGATION_SETTLED"},
		{name: "pending obligation", err: fmt.Errorf("%w: PENDING", apperrors.ErrObligationNotPayable), wantStatus: http.StatusConflict, wantCode: "OBLIGATION_NOT_PAYABLE"},
		{name: "unknown obligation", err: fmt.Errorf("%w: obligation 42", apperrors.ErrNotFound), wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{name: "store failure", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL"},
	}
	for _, tt := range serviceErrors {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockObligationService)
			h := newObligationHandler(svc)
			svc.On("RecordPayment", mock.Anything, int64(42), mock.Anything, time.Time{}, (*int)(nil)).Return(nil, tt.err).Once()

			req := withURLParam(httptest.NewRequest(http.MethodPost, "/obligations/42/payments", strings.NewReader(`{"amount":"0"}`)), obligationIDParam, "42")
			rec := httptest.NewRecorder()
			h.RecordPayment(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var resp dto.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}
