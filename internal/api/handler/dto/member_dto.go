package dto

import (
	"strconv"
	"time"

	"obligation-engine/internal/domain/member"
	"obligation-engine/internal/domain/obligation"
)

type MemberResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	IsOverdue bool      `json:"isOverdue"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type DueOverviewResponse struct {
	MemberID            string            `json:"memberId"`
	AsOf                string            `json:"asOf"`
	Pending             int               `json:"pending"`
	Active              int               `json:"active"`
	Overdue             int               `json:"overdue"`
	Settled             int               `json:"settled"`
	Rejected            int               `json:"rejected"`
	Indeterminate       int               `json:"indeterminate"`
	TotalOutstanding    string            `json:"totalOutstanding"`
	NextDueDate         *string           `json:"nextDueDate"`
	DaysToNextDue       *int              `json:"daysToNextDue"`
	NextDueObligationID *string           `json:"nextDueObligationId"`
	Warnings            []WarningResponse `json:"warnings"`
}

func NewMemberResponse(m *member.Member) MemberResponse {
	return MemberResponse{
		ID:        strconv.FormatInt(m.ID, 10),
		Name:      m.Name,
		Active:    m.Active,
		IsOverdue: m.IsOverdue,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func NewDueOverviewResponse(ov *obligation.DueOverview) DueOverviewResponse {
	resp := DueOverviewResponse{
		MemberID:         strconv.FormatInt(ov.MemberID, 10),
		AsOf:             Date(ov.AsOf),
		Pending:          ov.Pending,
		Active:           ov.Active,
		Overdue:          ov.Overdue,
		Settled:          ov.Settled,
		Rejected:         ov.Rejected,
		Indeterminate:    ov.Indeterminate,
		TotalOutstanding: Money(ov.TotalOutstanding),
		NextDueDate:      OptionalDate(ov.NextDueDate),
		DaysToNextDue:    ov.DaysToNextDue,
		Warnings:         NewWarnings(ov.Warnings),
	}
	if ov.NextDueObligationID != nil {
		id := strconv.FormatInt(*ov.NextDueObligationID, 10)
		resp.NextDueObligationID = &id
	}
	return resp
}
