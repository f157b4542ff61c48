package domain

import (
	"math"
	"time"
)

// Trend is a coarse directional signal derived from comparing two
// sub-windows' mean systolic values.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// trendThreshold is the mmHg band within which two window means count as stable.
const trendThreshold = 2.0

// WeekAverage holds rounded mean values over the last-week window.
type WeekAverage struct {
	Systolic  int `json:"systolic"`
	Diastolic int `json:"diastolic"`
}

// Stats is the ephemeral aggregate snapshot computed on demand from a bounded
// recent window of readings. It is never persisted.
type Stats struct {
	TotalReadings    int          `json:"totalReadings"`
	AverageSystolic  int          `json:"averageSystolic"`
	AverageDiastolic int          `json:"averageDiastolic"`
	LastWeekAverage  *WeekAverage `json:"lastWeekAverage"`
	Trend            *Trend       `json:"trend"`
}

// CategoryCount is one bucket of a category distribution. Count is the ground
// truth; Percentage is unrounded and meant for display.
type CategoryCount struct {
	Category   Category `json:"category"`
	Count      int      `json:"count"`
	Percentage float64  `json:"percentage"`
}

// ComputeStats derives a snapshot from readings ordered most-recent-first.
// The caller is responsible for bounding the input (the service fetches at
// most the 100 most recent readings). An empty input yields a zero snapshot.
func ComputeStats(readings []Reading, now time.Time) Stats {
	if len(readings) == 0 {
		return Stats{}
	}

	stats := Stats{
		TotalReadings:    len(readings),
		AverageSystolic:  roundMean(meanSystolic(readings)),
		AverageDiastolic: roundMean(meanDiastolic(readings)),
	}

	oneWeekAgo := now.AddDate(0, 0, -7)
	var lastWeek []Reading
	for _, r := range readings {
		if !r.RecordedAt.Before(oneWeekAgo) {
			lastWeek = append(lastWeek, r)
		}
	}
	if len(lastWeek) == 0 {
		return stats
	}

	stats.LastWeekAverage = &WeekAverage{
		Systolic:  roundMean(meanSystolic(lastWeek)),
		Diastolic: roundMean(meanDiastolic(lastWeek)),
	}

	if len(readings) >= 2 {
		// Positional half-split over the full window: the first half is the
		// more recent one because the input is ordered most-recent-first.
		mid := len(readings) / 2
		difference := meanSystolic(readings[:mid]) - meanSystolic(readings[mid:])

		trend := TrendStable
		switch {
		case difference < -trendThreshold:
			trend = TrendDecreasing
		case difference > trendThreshold:
			trend = TrendIncreasing
		}
		stats.Trend = &trend
	}
	return stats
}

// ChartTrend is the visualization variant of the trend signal: it compares
// the mean systolic of the most recent five readings against the five before
// them. It intentionally is not required to agree with the snapshot trend.
// Fewer than two readings yield no signal; a missing older window is stable.
func ChartTrend(readings []Reading) Trend {
	if len(readings) < 2 {
		return ""
	}

	recent := readings
	if len(recent) > 5 {
		recent = readings[:5]
	}
	var older []Reading
	if len(readings) > 5 {
		older = readings[5:]
		if len(older) > 5 {
			older = older[:5]
		}
	}

	recentAvg := meanSystolic(recent)
	olderAvg := recentAvg
	if len(older) > 0 {
		olderAvg = meanSystolic(older)
	}

	switch {
	case recentAvg > olderAvg+trendThreshold:
		return TrendIncreasing
	case recentAvg < olderAvg-trendThreshold:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

// FilterByDateRange returns the readings with start <= recordedAt <= end,
// preserving order. A start after end yields an empty result, not an error.
func FilterByDateRange(readings []Reading, start, end time.Time) []Reading {
	out := make([]Reading, 0, len(readings))
	for _, r := range readings {
		if !r.RecordedAt.Before(start) && !r.RecordedAt.After(end) {
			out = append(out, r)
		}
	}
	return out
}

// CategoryDistribution counts readings per clinical category, in severity
// order. Every category appears, including empty ones.
func CategoryDistribution(readings []Reading) []CategoryCount {
	counts := make(map[Category]int)
	for _, r := range readings {
		counts[Classify(r.Systolic, r.Diastolic)]++
	}

	order := []Category{
		CategoryNormal, CategoryElevated, CategoryStage1,
		CategoryStage2, CategoryCrisis, CategoryUnknown,
	}
	out := make([]CategoryCount, 0, len(order))
	for _, c := range order {
		cc := CategoryCount{Category: c, Count: counts[c]}
		if len(readings) > 0 {
			cc.Percentage = float64(cc.Count) / float64(len(readings)) * 100
		}
		out = append(out, cc)
	}
	return out
}

func meanSystolic(readings []Reading) float64 {
	var sum int
	for _, r := range readings {
		sum += r.Systolic
	}
	return float64(sum) / float64(len(readings))
}

func meanDiastolic(readings []Reading) float64 {
	var sum int
	for _, r := range readings {
		sum += r.Diastolic
	}
	return float64(sum) / float64(len(readings))
}

// roundMean rounds half away from zero, matching how the averages were always
// presented. All domain values are positive so this is plain round-half-up.
func roundMean(v float64) int {
	return int(math.Round(v))
}
