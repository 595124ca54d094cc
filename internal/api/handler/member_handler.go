package handler

import (
	"log/slog"
	"net/http"
	"time"

	"obligation-engine/internal/api/handler/dto"
	"obligation-engine/internal/domain/member"
	"obligation-engine/internal/domain/obligation"
)

const memberIDParam = "memberID"

type MemberHandler struct {
	members     member.MemberService
	obligations obligation.ObligationService
	now         func() time.Time
	logger      *slog.Logger
}

func NewMemberHandler(members member.MemberService, obligations obligation.ObligationService, l *slog.Logger) *MemberHandler {
	if members == nil || obligations == nil {
		panic("member handler services cannot be nil")
	}
	return &MemberHandler{
		members:     members,
		obligations: obligations,
		now:         time.Now,
		logger:      l.With("component", "MemberHandler"),
	}
}

// GetMember handles GET /members/{memberID}
// @Summary Retrieve a member
// @Tags Members
// @Produce json
// @Param memberID path int true "Member ID" Minimum(1)
// @Success 200 {object} dto.MemberResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid member ID"
// @Failure 404 {object} dto.ErrorResponse "Member not found"
// @Router /members/{memberID} [get]
// @Security BearerAuth
func (h *MemberHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := idFromURL(r, memberIDParam)
	if err != nil {
		respondError(w, err)
		return
	}

	m, err := h.members.GetMember(r.Context(), memberID)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to get member",
			slog.Int64("memberID", memberID), slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewMemberResponse(m))
}

// ListObligations handles GET /members/{memberID}/obligations
// @Summary List a member's obligations
// @Description Every obligation of the member, each with its reconciled summary.
// @Tags Members
// @Produce json
// @Param memberID path int true "Member ID" Minimum(1)
// @Param asOf query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {array} dto.ObligationResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid member ID or asOf"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /members/{memberID}/obligations [get]
// @Security BearerAuth
func (h *MemberHandler) ListObligations(w http.ResponseWriter, r *http.Request) {
	memberID, err := idFromURL(r, memberIDParam)
	if err != nil {
		respondError(w, err)
		return
	}
	asOf, err := asOfFromQuery(r, h.now)
	if err != nil {
		respondError(w, err)
		return
	}

	statements, err := h.obligations.ListMemberStatements(r.Context(), memberID, asOf)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to list member obligations",
			slog.Int64("memberID", memberID), slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := make([]dto.ObligationResponse, 0, len(statements))
	for _, st := range statements {
		resp = append(resp, dto.NewObligationWithSummary(st))
	}
	respondJSON(w, http.StatusOK, resp)
}

// GetDues handles GET /members/{memberID}/dues
// @Summary Member due overview
// @Description Counts of pending, active, overdue and settled obligations, total outstanding and the nearest due date.
// @Tags Members
// @Produce json
// @Param memberID path int true "Member ID" Minimum(1)
// @Param asOf query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.DueOverviewResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid member ID or asOf"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /members/{memberID}/dues [get]
// @Security BearerAuth
func (h *MemberHandler) GetDues(w http.ResponseWriter, r *http.Request) {
	memberID, err := idFromURL(r, memberIDParam)
	if err != nil {
		respondError(w, err)
		return
	}
	asOf, err := asOfFromQuery(r, h.now)
	if err != nil {
		respondError(w, err)
		return
	}

	overview, err := h.obligations.MemberDueOverview(r.Context(), memberID, asOf)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to build due overview",
			slog.Int64("memberID", memberID), slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewDueOverviewResponse(overview))
}
