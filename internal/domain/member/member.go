package member

import "time"

type Member struct {
	ID        int64
	Name      string
	Active    bool
	IsOverdue bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
