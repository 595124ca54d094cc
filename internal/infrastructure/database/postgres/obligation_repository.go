package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"obligation-engine/internal/domain/obligation"
	"obligation-engine/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const obligationColumns = `id, member_id, kind, status, principal::text, term_months, monthly_rate, payment_method, origination_date, created_at, updated_at`

const (
	queryGetObligation = `
        SELECT ` + obligationColumns + `
        FROM obligations
        WHERE id = $1`

	queryListObligationsByMember = `
        SELECT ` + obligationColumns + `
        FROM obligations
        WHERE member_id = $1
        ORDER BY created_at ASC, id ASC`

	queryListObligationsByStatus = `
        SELECT ` + obligationColumns + `
        FROM obligations
        WHERE status = $1
        ORDER BY member_id ASC, id ASC`

	queryUpdateObligationStatus = `UPDATE obligations SET status = $1, updated_at = NOW() WHERE id = $2`
)

type ObligationRepository struct {
	db             DBPool
	deferredLabels []string
	logger         *slog.Logger
}

var _ obligation.Repository = (*ObligationRepository)(nil)

// NewObligationRepository builds the obligations store. Free-text payment
// method labels found on legacy rows are classified with deferredLabels.
func NewObligationRepository(db DBPool, deferredLabels []string, logger *slog.Logger) *ObligationRepository {
	if db == nil {
		panic("DBPool cannot be nil for ObligationRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewObligationRepository, using default stderr handler")
	}
	return &ObligationRepository{
		db:             db,
		deferredLabels: deferredLabels,
		logger:         logger.With("component", "ObligationRepository"),
	}
}

func (r *ObligationRepository) GetObligation(ctx context.Context, obligationID int64) (*obligation.Obligation, error) {
	start := time.Now()
	o, err := r.scanObligation(r.db.QueryRow(ctx, queryGetObligation, obligationID))
	recordQuery("GetObligation", start, err)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Obligation not found", "obligation_id", obligationID)
			return nil, apperrors.NewNotFound("obligation", obligationID)
		}
		r.logger.ErrorContext(ctx, "Failed to get obligation by ID", "obligation_id", obligationID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return o, nil
}

func (r *ObligationRepository) ListObligationsByMember(ctx context.Context, memberID int64) ([]*obligation.Obligation, error) {
	return r.list(ctx, "ListObligationsByMember", queryListObligationsByMember, memberID)
}

func (r *ObligationRepository) ListObligationsByStatus(ctx context.Context, status obligation.Status) ([]*obligation.Obligation, error) {
	return r.list(ctx, "ListObligationsByStatus", queryListObligationsByStatus, string(status))
}

func (r *ObligationRepository) UpdateStatus(ctx context.Context, obligationID int64, status obligation.Status) error {
	start := time.Now()
	cmdTag, err := r.db.Exec(ctx, queryUpdateObligationStatus, string(status), obligationID)
	recordQuery("UpdateObligationStatus", start, err)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update obligation status", "obligation_id", obligationID, "error", err)
		return translateDBError(err, r.logger)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update status affected zero rows, obligation likely not found", "obligation_id", obligationID)
		return apperrors.NewNotFound("obligation", obligationID)
	}

	r.logger.InfoContext(ctx, "Obligation status updated", "obligation_id", obligationID, "status", status)
	return nil
}

func (r *ObligationRepository) list(ctx context.Context, queryName, query string, arg any) ([]*obligation.Obligation, error) {
	start := time.Now()
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		recordQuery(queryName, start, err)
		r.logger.ErrorContext(ctx, "Failed to query obligations", "query", queryName, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	obligations := make([]*obligation.Obligation, 0)
	for rows.Next() {
		o, err := r.scanObligation(rows)
		if err != nil {
			recordQuery(queryName, start, err)
			r.logger.ErrorContext(ctx, "Failed to scan obligation row", "query", queryName, "error", err)
			return nil, fmt.Errorf("%w: failed to scan obligation row: %w", apperrors.ErrDatabase, err)
		}
		obligations = append(obligations, o)
	}

	err = rows.Err()
	recordQuery(queryName, start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error iterating obligation rows", "query", queryName, "error", err)
		return nil, fmt.Errorf("%w: error iterating obligation rows: %w", apperrors.ErrDatabase, err)
	}

	r.logger.DebugContext(ctx, "Listed obligations", "query", queryName, "count", len(obligations))
	return obligations, nil
}

// scanObligation reads one obligations row. Principal arrives as text so a
// value that does not parse becomes zero and surfaces as a malformed
// obligation warning downstream instead of failing the whole read.
func (r *ObligationRepository) scanObligation(row pgx.Row) (*obligation.Obligation, error) {
	var (
		o           obligation.Obligation
		kind        string
		status      string
		principal   string
		rate        decimal.NullDecimal
		methodLabel *string
	)

	err := row.Scan(
		&o.ID, &o.MemberID, &kind, &status, &principal, &o.TermMonths,
		&rate, &methodLabel, &o.OriginationDate, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.Kind = obligation.Kind(kind)
	o.Status = obligation.Status(status)

	amount, ok := obligation.ParseAmount(principal)
	if !ok {
		r.logger.Warn("Unreadable principal on obligation row", "obligation_id", o.ID, "raw", principal)
	}
	o.Principal = amount

	if rate.Valid {
		o.MonthlyRate = rate.Decimal
	}
	if methodLabel != nil {
		o.PaymentMethod = obligation.ClassifyPaymentMethod(*methodLabel, r.deferredLabels)
	}

	return &o, nil
}
