package obligation

import (
	"context"
)

type Repository interface {
	GetObligation(ctx context.Context, obligationID int64) (*Obligation, error)

	ListObligationsByMember(ctx context.Context, memberID int64) ([]*Obligation, error)

	ListObligationsByStatus(ctx context.Context, status Status) ([]*Obligation, error)

	UpdateStatus(ctx context.Context, obligationID int64, status Status) error
}

type PaymentRepository interface {
	ListPayments(ctx context.Context, obligationID int64) ([]Payment, error)

	// ListPaymentsForObligations returns payments grouped by obligation ID in
	// a single round trip. Obligations without payments are absent from the map.
	ListPaymentsForObligations(ctx context.Context, obligationIDs []int64) (map[int64][]Payment, error)

	RecordPayment(ctx context.Context, payment *Payment) (*Payment, error)
}
