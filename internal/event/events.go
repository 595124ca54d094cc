package event

import (
	"time"

	"github.com/google/uuid"
)

type PaymentRecordedEvent struct {
	EventID      string    `json:"eventId"`
	ObligationID int64     `json:"obligationId"`
	MemberID     int64     `json:"memberId"`
	PaymentID    int64     `json:"paymentId"`
	Amount       string    `json:"amount"`
	PaidAt       time.Time `json:"paidAt"`
	PeriodIndex  *int      `json:"periodIndex,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

type ObligationSettledEvent struct {
	EventID        string    `json:"eventId"`
	ObligationID   int64     `json:"obligationId"`
	MemberID       int64     `json:"memberId"`
	Kind           string    `json:"kind"`
	NewStatus      string    `json:"newStatus"`
	TotalDue       string    `json:"totalDue"`
	CumulativePaid string    `json:"cumulativePaid"`
	Timestamp      time.Time `json:"timestamp"`
}

type MemberOverdueChangedEvent struct {
	EventID              string    `json:"eventId"`
	MemberID             int64     `json:"memberId"`
	NewStatus            bool      `json:"newStatus"`
	OldStatus            bool      `json:"oldStatus"`
	OverdueObligationIDs []int64   `json:"overdueObligationIds,omitempty"`
	Timestamp            time.Time `json:"timestamp"`
}

func (e *PaymentRecordedEvent) stamp()      { stamp(&e.EventID, &e.Timestamp) }
func (e *ObligationSettledEvent) stamp()    { stamp(&e.EventID, &e.Timestamp) }
func (e *MemberOverdueChangedEvent) stamp() { stamp(&e.EventID, &e.Timestamp) }

func stamp(id *string, ts *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	if ts.IsZero() {
		*ts = time.Now().UTC()
	}
}
