package utils

import (
	"math"
	"time"
)

type RankConfig struct {
	Gravity        float64 // time decay exponent
	WeightSave     float64
	WeightAnswer   float64
	WeightUpvote   float64
	WeightDownvote float64
	ScaleFactor    float64
}

var DefaultConfig = RankConfig{
	Gravity:        1.5,
	WeightSave:     3.0,
	WeightAnswer:   2.0,
	WeightUpvote:   1.0,
	WeightDownvote: 1.5,
	ScaleFactor:    100.0, // keeps scores roughly in the 0-100 range
}

// CalculateScore ranks a question by log-smoothed weighted engagement with
// time decay. Views are deliberately excluded: their magnitude dwarfs the
// other signals inside the log.
func CalculateScore(t time.Time, up, down, saves, answers int) float64 {
	hours := time.Since(t).Hours()

	weightedSum := (float64(up) * DefaultConfig.WeightUpvote) +
		(float64(answers) * DefaultConfig.WeightAnswer) +
		(float64(saves) * DefaultConfig.WeightSave) -
		(float64(down) * DefaultConfig.WeightDownvote)

	if weightedSum < 0 {
		weightedSum = 0 // log is undefined below zero
	}

	// log10(sum + 1) keeps sum=0 at exactly 0
	logScore := math.Log10(weightedSum + 1)

	numerator := logScore * DefaultConfig.ScaleFactor

	decay := math.Pow(hours+2, DefaultConfig.Gravity)

	return numerator / decay
}
