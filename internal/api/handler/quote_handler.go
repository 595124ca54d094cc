package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"obligation-engine/internal/api/handler/dto"
	"obligation-engine/internal/domain/obligation"
	"obligation-engine/internal/pkg/apperrors"
)

// QuoteHandler previews terms for application forms. Nothing is stored.
type QuoteHandler struct {
	service obligation.ObligationService
	logger  *slog.Logger
}

func NewQuoteHandler(s obligation.ObligationService, l *slog.Logger) *QuoteHandler {
	if s == nil {
		panic("obligation service cannot be nil")
	}
	return &QuoteHandler{
		service: s,
		logger:  l.With("component", "QuoteHandler"),
	}
}

// QuoteLoan handles POST /quotes/loan
// @Summary Preview a loan schedule
// @Description Returns the amortization schedule, total due and fee deductions for the given terms.
// @Tags Quotes
// @Accept json
// @Produce json
// @Param request body dto.LoanQuoteRequest true "Loan terms"
// @Success 200 {object} dto.LoanQuoteResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid payload or term beyond the configured maximum"
// @Router /quotes/loan [post]
// @Security BearerAuth
func (h *QuoteHandler) QuoteLoan(w http.ResponseWriter, r *http.Request) {
	var req dto.LoanQuoteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	principal, origination, err := req.Parse()
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	quote, err := h.service.QuoteLoan(principal, req.TermMonths, origination)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Loan quote rejected", slog.Int("termMonths", req.TermMonths), slog.Any("error", err))
		respondError(w, err)
		return
	}
	h.logger.DebugContext(r.Context(), "Quoted loan",
		slog.String("principal", principal.String()), slog.Int("termMonths", req.TermMonths))
	respondJSON(w, http.StatusOK, dto.NewLoanQuoteResponse(quote))
}

// QuoteDeferred handles POST /quotes/deferred
// @Summary Preview deferred purchase terms
// @Description Classifies the payment method and returns the due date, surcharge and total.
// @Tags Quotes
// @Accept json
// @Produce json
// @Param request body dto.DeferredQuoteRequest true "Purchase terms"
// @Success 200 {object} dto.DeferredTermsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Router /quotes/deferred [post]
// @Security BearerAuth
func (h *QuoteHandler) QuoteDeferred(w http.ResponseWriter, r *http.Request) {
	var req dto.DeferredQuoteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	subtotal, origination, err := req.Parse()
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	terms := h.service.QuoteDeferred(subtotal, req.PaymentMethod, origination)
	respondJSON(w, http.StatusOK, dto.NewDeferredTermsResponse(terms))
}
