package service

import (
	"edu_eval_backend/internal/model"
	"fmt"
	"math"
)

// roundHalfUp rounds to the nearest integer, halves toward +Inf.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// AverageRating is the mean rating, 0 for no records.
func AverageRating(records []model.Feedback) float64 {
	if len(records) == 0 {
		return 0
	}
	sum := 0
	for _, r := range records {
		sum += r.Rating
	}
	return float64(sum) / float64(len(records))
}

// RatingDistribution returns one bucket per rating from 1 to 10. Percentages are
// rounded per bucket and may not add up to exactly 100.
func RatingDistribution(records []model.Feedback) []model.RatingBucket {
	counts := make(map[int]int, model.MaxRating)
	for _, r := range records {
		counts[r.Rating]++
	}

	total := len(records)
	buckets := make([]model.RatingBucket, 0, model.MaxRating-model.MinRating+1)
	for rating := model.MinRating; rating <= model.MaxRating; rating++ {
		b := model.RatingBucket{Rating: rating, Count: counts[rating]}
		if total > 0 {
			b.Percentage = roundHalfUp(100 * float64(b.Count) / float64(total))
		}
		buckets = append(buckets, b)
	}
	return buckets
}

// Trend compares two averages. Magnitude is the relative change in percent and
// is 0 when previous is not positive.
func Trend(current, previous float64) model.Trend {
	t := model.Trend{Direction: model.TrendStable}
	switch {
	case current > previous:
		t.Direction = model.TrendUp
	case current < previous:
		t.Direction = model.TrendDown
	}
	if previous > 0 {
		t.Magnitude = roundHalfUp(100 * (current - previous) / previous)
	}
	t.Description = describeTrend(t)
	return t
}

func describeTrend(t model.Trend) string {
	switch t.Direction {
	case model.TrendUp:
		if t.Magnitude != 0 {
			return fmt.Sprintf("Up %d%% from the previous period", t.Magnitude)
		}
		return "Up from the previous period"
	case model.TrendDown:
		if t.Magnitude != 0 {
			return fmt.Sprintf("Down %d%% from the previous period", -t.Magnitude)
		}
		return "Down from the previous period"
	}
	return "No change from the previous period"
}
