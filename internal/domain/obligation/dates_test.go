package obligation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		months int
		want   time.Time
	}{
		{"mid month", date(2024, time.January, 15), 1, date(2024, time.February, 15)},
		{"leap year end of January", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"common year end of January", date(2023, time.January, 31), 1, date(2023, time.February, 28)},
		{"thirty day month", date(2024, time.March, 31), 1, date(2024, time.April, 30)},
		{"second period counted from origination", date(2024, time.January, 31), 2, date(2024, time.March, 31)},
		{"year rollover", date(2024, time.November, 30), 3, date(2025, time.February, 28)},
		{"zero months", date(2024, time.May, 10), 0, date(2024, time.May, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMonthsClamped(tt.start, tt.months))
		})
	}
}

func TestAddMonthsClamped_KeepsTimeOfDay(t *testing.T) {
	start := time.Date(2024, time.January, 31, 9, 30, 0, 0, time.UTC)
	got := AddMonthsClamped(start, 1)
	assert.Equal(t, time.Date(2024, time.February, 29, 9, 30, 0, 0, time.UTC), got)
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, DaysBetween(date(2024, time.March, 1), date(2024, time.March, 1)))
	assert.Equal(t, 2, DaysBetween(date(2024, time.February, 28), date(2024, time.March, 1)))
	assert.Equal(t, -2, DaysBetween(date(2024, time.March, 1), date(2024, time.February, 28)))
	assert.Equal(t, 366, DaysBetween(date(2024, time.January, 1), date(2025, time.January, 1)))

	late := time.Date(2024, time.March, 1, 23, 59, 0, 0, time.UTC)
	early := time.Date(2024, time.March, 2, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysBetween(late, early), "time of day is ignored")
}
