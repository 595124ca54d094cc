package dto

import (
	"fmt"
	"strconv"
	"time"

	"obligation-engine/internal/domain/obligation"

	"github.com/shopspring/decimal"
)

type WarningResponse struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

type ScheduleEntryResponse struct {
	PeriodIndex      int    `json:"periodIndex"`
	DueDate          string `json:"dueDate"`
	InterestPortion  string `json:"interestPortion"`
	PrincipalPortion string `json:"principalPortion"`
	TotalPayment     string `json:"totalPayment"`
	RemainingBalance string `json:"remainingBalance"`
	Status           string `json:"status,omitempty"`
}

type SummaryResponse struct {
	CumulativePaid     string  `json:"cumulativePaid"`
	TotalDue           string  `json:"totalDue"`
	OutstandingBalance string  `json:"outstandingBalance"`
	NextDueDate        *string `json:"nextDueDate"`
	DaysToNextDue      *int    `json:"daysToNextDue"`
	IsFullySettled     bool    `json:"isFullySettled"`
	IsOverdue          bool    `json:"isOverdue"`
	Indeterminate      bool    `json:"indeterminate"`
}

type InstallmentResponse struct {
	Status             string `json:"status"`
	OutstandingBalance string `json:"outstandingBalance"`
}

type DeferredTermsResponse struct {
	Method    string  `json:"method"`
	DueDate   *string `json:"dueDate"`
	Subtotal  string  `json:"subtotal"`
	Surcharge string  `json:"surcharge"`
	Total     string  `json:"total"`
}

type FeeDisclosureResponse struct {
	ServiceCharge   string `json:"serviceCharge"`
	FilingFee       string `json:"filingFee"`
	CapitalBuildup  string `json:"capitalBuildup"`
	TotalDeductions string `json:"totalDeductions"`
	NetProceeds     string `json:"netProceeds"`
}

type ObligationResponse struct {
	ID              string           `json:"id"`
	MemberID        string           `json:"memberId"`
	Kind            string           `json:"kind"`
	Status          string           `json:"status"`
	Principal       string           `json:"principal"`
	TermMonths      int              `json:"termMonths"`
	MonthlyRate     string           `json:"monthlyRate"`
	PaymentMethod   *string          `json:"paymentMethod"`
	OriginationDate *string          `json:"originationDate"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
	Summary         *SummaryResponse `json:"summary,omitempty"`
}

type StatementResponse struct {
	Obligation  ObligationResponse      `json:"obligation"`
	AsOf        string                  `json:"asOf"`
	Schedule    []ScheduleEntryResponse `json:"schedule"`
	Summary     SummaryResponse         `json:"summary"`
	Installment *InstallmentResponse    `json:"installment"`
	Deferred    *DeferredTermsResponse  `json:"deferred"`
	Fees        *FeeDisclosureResponse  `json:"fees"`
	Warnings    []WarningResponse       `json:"warnings"`
}

type PaymentResponse struct {
	ID           string    `json:"id"`
	ObligationID string    `json:"obligationId"`
	Amount       string    `json:"amount"`
	PaidAt       time.Time `json:"paidAt"`
	PeriodIndex  *int      `json:"periodIndex"`
	CreatedAt    time.Time `json:"createdAt"`
}

type RecordPaymentRequest struct {
	Amount      string `json:"amount"`
	PaidAt      string `json:"paidAt,omitempty"`
	PeriodIndex *int   `json:"periodIndex,omitempty"`
}

// Parse validates the request and returns the amount and payment time. A
// missing paidAt yields the zero time.
func (r *RecordPaymentRequest) Parse() (decimal.Decimal, time.Time, error) {
	amount, err := parseMoney("amount", r.Amount)
	if err != nil {
		return decimal.Zero, time.Time{}, err
	}
	if r.PaidAt == "" {
		return amount, time.Time{}, nil
	}
	paidAt, err := ParseTimestamp(r.PaidAt)
	if err != nil {
		return decimal.Zero, time.Time{}, fmt.Errorf("paidAt: %w", err)
	}
	return amount, paidAt, nil
}

type LoanQuoteRequest struct {
	Principal       string `json:"principal"`
	TermMonths      int    `json:"termMonths"`
	OriginationDate string `json:"originationDate"`
}

func (r *LoanQuoteRequest) Parse() (decimal.Decimal, time.Time, error) {
	principal, err := parseMoney("principal", r.Principal)
	if err != nil {
		return decimal.Zero, time.Time{}, err
	}
	if r.TermMonths < 0 {
		return decimal.Zero, time.Time{}, fmt.Errorf("termMonths cannot be negative")
	}
	origination, err := ParseDate(r.OriginationDate)
	if err != nil {
		return decimal.Zero, time.Time{}, fmt.Errorf("originationDate: %w", err)
	}
	return principal, origination, nil
}

type LoanQuoteResponse struct {
	Schedule []ScheduleEntryResponse `json:"schedule"`
	TotalDue string                  `json:"totalDue"`
	Fees     FeeDisclosureResponse   `json:"fees"`
	Warnings []WarningResponse       `json:"warnings"`
}

type DeferredQuoteRequest struct {
	Subtotal        string `json:"subtotal"`
	PaymentMethod   string `json:"paymentMethod"`
	OriginationDate string `json:"originationDate"`
}

func (r *DeferredQuoteRequest) Parse() (decimal.Decimal, time.Time, error) {
	subtotal, err := parseMoney("subtotal", r.Subtotal)
	if err != nil {
		return decimal.Zero, time.Time{}, err
	}
	origination, err := ParseDate(r.OriginationDate)
	if err != nil {
		return decimal.Zero, time.Time{}, fmt.Errorf("originationDate: %w", err)
	}
	return subtotal, origination, nil
}

func NewWarnings(warnings []obligation.Warning) []WarningResponse {
	out := make([]WarningResponse, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, WarningResponse{Code: string(w.Code), Field: w.Field, Message: w.Message})
	}
	return out
}

func NewScheduleEntries(entries []obligation.ScheduleEntry) []ScheduleEntryResponse {
	out := make([]ScheduleEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ScheduleEntryResponse{
			PeriodIndex:      e.PeriodIndex,
			DueDate:          Date(e.DueDate),
			InterestPortion:  Money(e.InterestPortion),
			PrincipalPortion: Money(e.PrincipalPortion),
			TotalPayment:     Money(e.TotalPayment),
			RemainingBalance: Money(e.RemainingBalance),
			Status:           string(e.Status),
		})
	}
	return out
}

func NewSummaryResponse(s obligation.Summary) SummaryResponse {
	return SummaryResponse{
		CumulativePaid:     Money(s.CumulativePaid),
		TotalDue:           Money(s.TotalDue),
		OutstandingBalance: Money(s.OutstandingBalance),
		NextDueDate:        OptionalDate(s.NextDueDate),
		DaysToNextDue:      s.DaysToNextDue,
		IsFullySettled:     s.IsFullySettled && !s.Indeterminate,
		IsOverdue:          !s.Indeterminate && s.Overdue(),
		Indeterminate:      s.Indeterminate,
	}
}

func NewFeeDisclosureResponse(f obligation.FeeDisclosure) FeeDisclosureResponse {
	return FeeDisclosureResponse{
		ServiceCharge:   Money(f.ServiceCharge),
		FilingFee:       Money(f.FilingFee),
		CapitalBuildup:  Money(f.CapitalBuildup),
		TotalDeductions: Money(f.TotalDeductions),
		NetProceeds:     Money(f.NetProceeds),
	}
}

func NewDeferredTermsResponse(t obligation.DeferredTerms) DeferredTermsResponse {
	return DeferredTermsResponse{
		Method:    string(t.Method),
		DueDate:   OptionalDate(t.DueDate),
		Subtotal:  Money(t.Subtotal),
		Surcharge: Money(t.Surcharge),
		Total:     Money(t.Total),
	}
}

func NewObligationResponse(o *obligation.Obligation) ObligationResponse {
	resp := ObligationResponse{
		ID:              strconv.FormatInt(o.ID, 10),
		MemberID:        strconv.FormatInt(o.MemberID, 10),
		Kind:            string(o.Kind),
		Status:          string(o.Status),
		Principal:       Money(o.Principal),
		TermMonths:      o.TermMonths,
		MonthlyRate:     o.MonthlyRate.String(),
		OriginationDate: OptionalDate(o.OriginationDate),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	if o.PaymentMethod != "" {
		method := string(o.PaymentMethod)
		resp.PaymentMethod = &method
	}
	return resp
}

// NewObligationWithSummary attaches the reconciled summary to the obligation.
func NewObligationWithSummary(st *obligation.Statement) ObligationResponse {
	resp := NewObligationResponse(st.Obligation)
	summary := NewSummaryResponse(st.Summary)
	resp.Summary = &summary
	return resp
}

func NewStatementResponse(st *obligation.Statement) StatementResponse {
	resp := StatementResponse{
		Obligation: NewObligationResponse(st.Obligation),
		AsOf:       Date(st.AsOf),
		Schedule:   NewScheduleEntries(st.Schedule),
		Summary:    NewSummaryResponse(st.Summary),
		Warnings:   NewWarnings(st.Warnings),
	}
	if st.Installment != nil {
		resp.Installment = &InstallmentResponse{
			Status:             string(st.Installment.Status),
			OutstandingBalance: Money(st.Installment.OutstandingBalance),
		}
	}
	if st.Deferred != nil {
		terms := NewDeferredTermsResponse(*st.Deferred)
		resp.Deferred = &terms
	}
	if st.Fees != nil {
		fees := NewFeeDisclosureResponse(*st.Fees)
		resp.Fees = &fees
	}
	return resp
}

func NewPaymentResponse(p *obligation.Payment) PaymentResponse {
	return PaymentResponse{
		ID:           strconv.FormatInt(p.ID, 10),
		ObligationID: strconv.FormatInt(p.ObligationID, 10),
		Amount:       Money(p.Amount),
		PaidAt:       p.PaidAt,
		PeriodIndex:  p.PeriodIndex,
		CreatedAt:    p.CreatedAt,
	}
}

func NewLoanQuoteResponse(q obligation.LoanQuote) LoanQuoteResponse {
	return LoanQuoteResponse{
		Schedule: NewScheduleEntries(q.Schedule.Entries),
		TotalDue: Money(q.TotalDue),
		Fees:     NewFeeDisclosureResponse(q.Fees),
		Warnings: NewWarnings(q.Schedule.Warnings),
	}
}
