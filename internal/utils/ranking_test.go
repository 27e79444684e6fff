package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateScoreZeroEngagement(t *testing.T) {
	score := CalculateScore(time.Now(), 0, 0, 0, 0)
	assert.Equal(t, 0.0, score)
}

func TestCalculateScoreMoreVotesScoresHigher(t *testing.T) {
	created := time.Now().Add(-1 * time.Hour)

	low := CalculateScore(created, 1, 0, 0, 0)
	high := CalculateScore(created, 10, 0, 0, 0)

	assert.Greater(t, high, low)
}

func TestCalculateScoreDownvotesDrag(t *testing.T) {
	created := time.Now().Add(-1 * time.Hour)

	clean := CalculateScore(created, 10, 0, 0, 0)
	contested := CalculateScore(created, 10, 5, 0, 0)

	assert.Greater(t, clean, contested)
}

func TestCalculateScoreNeverNegative(t *testing.T) {
	created := time.Now().Add(-1 * time.Hour)

	score := CalculateScore(created, 0, 50, 0, 0)
	assert.GreaterOrEqual(t, score, 0.0)
}

func TestCalculateScoreDecaysWithAge(t *testing.T) {
	fresh := CalculateScore(time.Now().Add(-1*time.Hour), 10, 0, 2, 3)
	aged := CalculateScore(time.Now().Add(-72*time.Hour), 10, 0, 2, 3)

	assert.Greater(t, fresh, aged)
}

func TestCalculateScoreSavesOutweighUpvotes(t *testing.T) {
	created := time.Now().Add(-1 * time.Hour)

	saved := CalculateScore(created, 0, 0, 5, 0)
	upvoted := CalculateScore(created, 5, 0, 0, 0)

	assert.Greater(t, saved, upvoted)
}
