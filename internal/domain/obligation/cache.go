package obligation

import (
	"sync"
	"time"

	"obligation-engine/internal/infrastructure/monitoring"

	"github.com/shopspring/decimal"
)

type scheduleKey struct {
	principal   string
	termMonths  int
	origination string
	monthlyRate string
}

// ScheduleCache memoizes BuildSchedule. A schedule depends only on its four
// inputs, so entries never go stale; the oldest entry is evicted once the
// cache is full. A nil *ScheduleCache builds every schedule afresh.
type ScheduleCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[scheduleKey]Schedule
	order    []scheduleKey
}

func NewScheduleCache(capacity int) *ScheduleCache {
	if capacity <= 0 {
		return nil
	}
	return &ScheduleCache{
		capacity: capacity,
		entries:  make(map[scheduleKey]Schedule, capacity),
		order:    make([]scheduleKey, 0, capacity),
	}
}

func (c *ScheduleCache) Build(principal decimal.Decimal, termMonths int, origination time.Time, monthlyRate decimal.Decimal) Schedule {
	if c == nil {
		return BuildSchedule(principal, termMonths, origination, monthlyRate)
	}

	key := scheduleKey{
		principal:   principal.String(),
		termMonths:  termMonths,
		origination: origination.Format(time.RFC3339Nano),
		monthlyRate: monthlyRate.String(),
	}

	c.mu.Lock()
	cached, ok := c.entries[key]
	c.mu.Unlock()
	monitoring.RecordScheduleCache(ok)
	if ok {
		return cached.clone()
	}

	built := BuildSchedule(principal, termMonths, origination, monthlyRate)

	c.mu.Lock()
	if _, exists := c.entries[key]; !exists {
		if len(c.order) >= c.capacity {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.entries[key] = built
		c.order = append(c.order, key)
	}
	c.mu.Unlock()

	return built.clone()
}

func (c *ScheduleCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (s Schedule) clone() Schedule {
	out := Schedule{Entries: make([]ScheduleEntry, len(s.Entries))}
	copy(out.Entries, s.Entries)
	if len(s.Warnings) > 0 {
		out.Warnings = make([]Warning, len(s.Warnings))
		copy(out.Warnings, s.Warnings)
	}
	return out
}
