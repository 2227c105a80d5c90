// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import "github.com/taibuivan/weebtsuki/internal/platform/validate"

// # Rating Aggregation

const (
	// MinRating and MaxRating bound both reader and admin ratings.
	MinRating = 0.0
	MaxRating = 5.0
)

// RatingSummary is the derived state returned after a rating is applied.
type RatingSummary struct {
	OverallRating float64 `json:"overallRating"`
	TotalRatings  int     `json:"totalRatings"`
}

// ValidateRating rejects values outside [MinRating, MaxRating] and NaN.
func ValidateRating(field string, value float64) error {
	validator := &validate.Validator{}
	validator.FloatRange(field, value, MinRating, MaxRating)
	return validator.Err()
}
