package obligation

import (
	"sync"
	"testing"
	"time"

	"obligation-engine/internal/infrastructure/monitoring"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleCache_NilBuildsDirectly(t *testing.T) {
	var cache *ScheduleCache = NewScheduleCache(0)
	assert.Nil(t, cache)

	schedule := cache.Build(d("12000"), 6, date(2024, time.January, 15), d("0.02"))
	assert.Len(t, schedule.Entries, 6)
	assert.Equal(t, 0, cache.Len())
}

func TestScheduleCache_HitReturnsEqualSchedule(t *testing.T) {
	cache := NewScheduleCache(8)
	hitsBefore := testutil.ToFloat64(monitoring.Engine.ScheduleCacheHits)
	missesBefore := testutil.ToFloat64(monitoring.Engine.ScheduleCacheMisses)

	first := cache.Build(d("12000"), 6, date(2024, time.January, 15), d("0.02"))
	second := cache.Build(d("12000"), 6, date(2024, time.January, 15), d("0.02"))

	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.Len())
	assert.Equal(t, hitsBefore+1, testutil.ToFloat64(monitoring.Engine.ScheduleCacheHits))
	assert.Equal(t, missesBefore+1, testutil.ToFloat64(monitoring.Engine.ScheduleCacheMisses))
}

func TestScheduleCache_ReturnsCopies(t *testing.T) {
	cache := NewScheduleCache(8)

	first := cache.Build(d("12000"), 6, date(2024, time.January, 15), d("0.02"))
	first.Entries[0].Status = PeriodPaid
	first.Entries[0].TotalPayment = d("1")

	second := cache.Build(d("12000"), 6, date(2024, time.January, 15), d("0.02"))
	assert.Equal(t, PeriodUnpaid, second.Entries[0].Status)
	assertMoney(t, "2240.00", second.Entries[0].TotalPayment)
}

func TestScheduleCache_DistinctKeys(t *testing.T) {
	cache := NewScheduleCache(8)

	cache.Build(d("12000"), 6, date(2024, time.January, 15), d("0.02"))
	cache.Build(d("12000"), 6, date(2024, time.January, 16), d("0.02"))
	cache.Build(d("12000"), 12, date(2024, time.January, 15), d("0.02"))
	cache.Build(d("12000"), 6, date(2024, time.January, 15), d("0.01"))

	assert.Equal(t, 4, cache.Len())
}

func TestScheduleCache_EvictsOldest(t *testing.T) {
	cache := NewScheduleCache(2)

	cache.Build(d("100"), 1, date(2024, time.January, 1), d("0.02"))
	cache.Build(d("200"), 1, date(2024, time.January, 1), d("0.02"))
	cache.Build(d("300"), 1, date(2024, time.January, 1), d("0.02"))

	assert.Equal(t, 2, cache.Len())
}

func TestScheduleCache_Concurrent(t *testing.T) {
	cache := NewScheduleCache(16)
	var wg sync.WaitGroup

	results := make([]Schedule, 20)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = cache.Build(d("12000"), 6, date(2024, time.January, 15), d("0.02"))
		}(i)
	}
	wg.Wait()

	require.Equal(t, 1, cache.Len())
	for _, r := range results {
		assert.Equal(t, results[0], r)
	}
}
