// Package review holds the pure review engine: rating aggregation, address
// grouping, ranking and pagination. Nothing here touches storage.
package review

import (
	"math"

	"review-service/internal/model"
)

// Summary is the averaged rating of a set of reviews. Every average is
// rounded to one decimal place.
type Summary struct {
	TotalRate    float64 `json:"avg_total_rate"`
	CleanRate    float64 `json:"avg_clean_rate"`
	NoiseRate    float64 `json:"avg_noise_rate"`
	AccessRate   float64 `json:"avg_access_rate"`
	HostRate     float64 `json:"avg_host_rate"`
	FacilityRate float64 `json:"avg_facility_rate"`
	Count        int     `json:"review_count"`
}

// Aggregate averages the total rating and each dimension. An empty input
// yields a zero Summary.
func Aggregate(reviews []model.Review) Summary {
	var sum Summary
	for _, r := range reviews {
		sum.TotalRate += r.TotalRate
		sum.CleanRate += r.CleanRate
		sum.NoiseRate += r.NoiseRate
		sum.AccessRate += r.AccessRate
		sum.HostRate += r.HostRate
		sum.FacilityRate += r.FacilityRate
	}

	n := len(reviews)
	if n == 0 {
		return Summary{}
	}

	count := float64(n)
	return Summary{
		TotalRate:    RoundRate(sum.TotalRate / count),
		CleanRate:    RoundRate(sum.CleanRate / count),
		NoiseRate:    RoundRate(sum.NoiseRate / count),
		AccessRate:   RoundRate(sum.AccessRate / count),
		HostRate:     RoundRate(sum.HostRate / count),
		FacilityRate: RoundRate(sum.FacilityRate / count),
		Count:        n,
	}
}

// RoundRate rounds half up to one decimal place.
func RoundRate(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
