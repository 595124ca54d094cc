package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"obligation-engine/internal/api/handler/dto"
	"obligation-engine/internal/domain/obligation"
	"obligation-engine/internal/pkg/apperrors"
)

const obligationIDParam = "obligationID"

type ObligationHandler struct {
	service obligation.ObligationService
	now     func() time.Time
	logger  *slog.Logger
}

func NewObligationHandler(s obligation.ObligationService, l *slog.Logger) *ObligationHandler {
	if s == nil {
		panic("obligation service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &ObligationHandler{
		service: s,
		now:     time.Now,
		logger:  l.With("component", "ObligationHandler"),
	}
}

// GetObligation handles GET /obligations/{obligationID}
// @Summary Retrieve an obligation
// @Description Returns the obligation together with its reconciled summary as of today.
// @Tags Obligations
// @Produce json
// @Param obligationID path int true "Obligation ID" Minimum(1)
// @Success 200 {object} dto.ObligationResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid obligation ID"
// @Failure 404 {object} dto.ErrorResponse "Obligation not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /obligations/{obligationID} [get]
// @Security BearerAuth
func (h *ObligationHandler) GetObligation(w http.ResponseWriter, r *http.Request) {
	obligationID, err := idFromURL(r, obligationIDParam)
	if err != nil {
		respondError(w, err)
		return
	}

	st, err := h.service.GetStatement(r.Context(), obligationID, h.now())
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to get obligation",
			slog.Int64("obligationID", obligationID), slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewObligationWithSummary(st))
}

// GetSchedule handles GET /obligations/{obligationID}/schedule
// @Summary Reconciled schedule
// @Description Builds the schedule, applies recorded payments and returns the per-period status, summary and any warnings.
// @Tags Obligations
// @Produce json
// @Param obligationID path int true "Obligation ID" Minimum(1)
// @Param asOf query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.StatementResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid obligation ID or asOf"
// @Failure 404 {object} dto.ErrorResponse "Obligation not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /obligations/{obligationID}/schedule [get]
// @Security BearerAuth
func (h *ObligationHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	obligationID, err := idFromURL(r, obligationIDParam)
	if err != nil {
		respondError(w, err)
		return
	}
	asOf, err := asOfFromQuery(r, h.now)
	if err != nil {
		respondError(w, err)
		return
	}

	st, err := h.service.GetStatement(r.Context(), obligationID, asOf)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to build statement",
			slog.Int64("obligationID", obligationID), slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewStatementResponse(st))
}

// ListPayments handles GET /obligations/{obligationID}/payments
// @Summary List payments
// @Tags Payments
// @Produce json
// @Param obligationID path int true "Obligation ID" Minimum(1)
// @Success 200 {array} dto.PaymentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid obligation ID"
// @Failure 404 {object} dto.ErrorResponse "Obligation not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /obligations/{obligationID}/payments [get]
// @Security BearerAuth
func (h *ObligationHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	obligationID, err := idFromURL(r, obligationIDParam)
	if err != nil {
		respondError(w, err)
		return
	}

	payments, err := h.service.ListPayments(r.Context(), obligationID)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to list payments",
			slog.Int64("obligationID", obligationID), slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := make([]dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		resp = append(resp, dto.NewPaymentResponse(&payments[i]))
	}
	respondJSON(w, http.StatusOK, resp)
}

// RecordPayment handles POST /obligations/{obligationID}/payments
// @Summary Record a payment
// @Description Stores a member payment. Allocation happens when the schedule is next read.
// @Tags Payments
// @Accept json
// @Produce json
// @Param obligationID path int true "Obligation ID" Minimum(1)
// @Param request body dto.RecordPaymentRequest true "Payment"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid payload or amount"
// @Failure 404 {object} dto.ErrorResponse "Obligation not found"
// @Failure 409 {object} dto.ErrorResponse "Obligation settled or not payable"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /obligations/{obligationID}/payments [post]
// @Security BearerAuth
func (h *ObligationHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	obligationID, err := idFromURL(r, obligationIDParam)
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.RecordPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	amount, paidAt, err := req.Parse()
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	payment, err := h.service.RecordPayment(r.Context(), obligationID, amount, paidAt, req.PeriodIndex)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to record payment",
			slog.Int64("obligationID", obligationID), slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Payment recorded",
		slog.Int64("obligationID", obligationID), slog.Int64("paymentID", payment.ID))
	respondJSON(w, http.StatusCreated, dto.NewPaymentResponse(payment))
}
