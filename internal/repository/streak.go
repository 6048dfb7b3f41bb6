package repository

import (
	"slices"
	"time"

	"github.com/MKhiriev/daybook/models"
)

// CalculateStreaks returns the current and longest runs of consecutive
// frequency units (days, Sunday-based weeks or months) that contain at least
// one completion. The current run counts only while its last unit is the
// unit containing now or the one before it.
func CalculateStreaks(dates []time.Time, freq models.Frequency, now time.Time) models.Streaks {
	if len(dates) == 0 {
		return models.Streaks{}
	}

	buckets := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		buckets = append(buckets, bucketOf(d, freq))
	}
	slices.SortFunc(buckets, func(a, b time.Time) int { return a.Compare(b) })
	buckets = slices.CompactFunc(buckets, func(a, b time.Time) bool { return a.Equal(b) })

	longest, run := 1, 1
	for i := 1; i < len(buckets); i++ {
		if nextBucket(buckets[i-1], freq).Equal(buckets[i]) {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}

	current := 0
	last := buckets[len(buckets)-1]
	nowBucket := bucketOf(now, freq)
	if last.Equal(nowBucket) || nextBucket(last, freq).Equal(nowBucket) {
		current = run
	}

	return models.Streaks{Current: current, Longest: longest}
}

// bucketOf returns the first calendar day of the unit containing t, as a
// UTC midnight.
func bucketOf(t time.Time, freq models.Frequency) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	switch freq {
	case models.FrequencyWeekly:
		return day.AddDate(0, 0, -int(day.Weekday()))
	case models.FrequencyMonthly:
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	default:
		return day
	}
}

func nextBucket(b time.Time, freq models.Frequency) time.Time {
	switch freq {
	case models.FrequencyWeekly:
		return b.AddDate(0, 0, 7)
	case models.FrequencyMonthly:
		return b.AddDate(0, 1, 0)
	default:
		return b.AddDate(0, 0, 1)
	}
}
