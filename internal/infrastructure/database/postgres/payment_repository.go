package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"obligation-engine/internal/domain/obligation"
	"obligation-engine/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

const paymentColumns = `id, obligation_id, amount, paid_at, period_index, created_at`

const (
	queryListPayments = `
        SELECT ` + paymentColumns + `
        FROM payments
        WHERE obligation_id = $1
        ORDER BY paid_at ASC, id ASC`

	queryListPaymentsForObligations = `
        SELECT ` + paymentColumns + `
        FROM payments
        WHERE obligation_id = ANY($1)
        ORDER BY obligation_id ASC, paid_at ASC, id ASC`

	queryInsertPayment = `
        INSERT INTO payments (obligation_id, amount, paid_at, period_index, created_at)
        VALUES ($1, $2, $3, $4, NOW())
        RETURNING id, created_at`
)

type PaymentRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ obligation.PaymentRepository = (*PaymentRepository)(nil)

func NewPaymentRepository(db DBPool, logger *slog.Logger) *PaymentRepository {
	if db == nil {
		panic("DBPool cannot be nil for PaymentRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewPaymentRepository, using default stderr handler")
	}
	return &PaymentRepository{db: db, logger: logger.With("component", "PaymentRepository")}
}

func (r *PaymentRepository) ListPayments(ctx context.Context, obligationID int64) ([]obligation.Payment, error) {
	start := time.Now()
	payments, err := r.queryPayments(ctx, queryListPayments, obligationID)
	recordQuery("ListPayments", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to list payments", "obligation_id", obligationID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return payments, nil
}

func (r *PaymentRepository) ListPaymentsForObligations(ctx context.Context, obligationIDs []int64) (map[int64][]obligation.Payment, error) {
	grouped := make(map[int64][]obligation.Payment, len(obligationIDs))
	if len(obligationIDs) == 0 {
		return grouped, nil
	}

	start := time.Now()
	payments, err := r.queryPayments(ctx, queryListPaymentsForObligations, obligationIDs)
	recordQuery("ListPaymentsForObligations", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to batch-list payments", "obligations", len(obligationIDs), "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	for _, p := range payments {
		grouped[p.ObligationID] = append(grouped[p.ObligationID], p)
	}
	r.logger.DebugContext(ctx, "Batch-listed payments", "obligations", len(obligationIDs), "payments", len(payments))
	return grouped, nil
}

func (r *PaymentRepository) RecordPayment(ctx context.Context, payment *obligation.Payment) (*obligation.Payment, error) {
	if payment == nil {
		return nil, fmt.Errorf("%w: payment cannot be nil", apperrors.ErrInvalidArgument)
	}

	start := time.Now()
	stored := *payment
	err := r.db.QueryRow(ctx, queryInsertPayment,
		payment.ObligationID, payment.Amount, payment.PaidAt, payment.PeriodIndex,
	).Scan(&stored.ID, &stored.CreatedAt)
	recordQuery("RecordPayment", start, err)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert payment", "obligation_id", payment.ObligationID, "error", err)
		return nil, translateDBError(err, r.logger)
	}

	r.logger.InfoContext(ctx, "Payment inserted", "obligation_id", stored.ObligationID, "payment_id", stored.ID)
	return &stored, nil
}

func (r *PaymentRepository) queryPayments(ctx context.Context, query string, arg any) ([]obligation.Payment, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]obligation.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}
	return payments, nil
}

func scanPayment(row pgx.Row) (obligation.Payment, error) {
	var p obligation.Payment
	err := row.Scan(&p.ID, &p.ObligationID, &p.Amount, &p.PaidAt, &p.PeriodIndex, &p.CreatedAt)
	return p, err
}
