package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVoteDeltas(t *testing.T) {
	tests := []struct {
		name       string
		prev       int
		next       int
		wantActor  int
		wantAuthor int
	}{
		{"fresh upvote", 0, 1, 1, 10},
		{"fresh downvote", 0, -1, -2, -10},
		{"retract upvote", 1, 0, -1, -10},
		{"retract downvote", -1, 0, 2, 10},
		{"swap down to up", -1, 1, 3, 20},
		{"swap up to down", 1, -1, -3, -20},
		{"no change", 1, 1, 0, 0},
		{"still nothing", 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor, author := VoteDeltas(tt.prev, tt.next)
			assert.Equal(t, tt.wantActor, actor, "actor delta")
			assert.Equal(t, tt.wantAuthor, author, "author delta")
		})
	}
}

func TestVoteDeltasRoundTripCancels(t *testing.T) {
	// any vote applied and then retracted nets to zero on both sides
	for _, value := range []int{1, -1} {
		applyActor, applyAuthor := VoteDeltas(0, value)
		retractActor, retractAuthor := VoteDeltas(value, 0)

		assert.Zero(t, applyActor+retractActor)
		assert.Zero(t, applyAuthor+retractAuthor)
	}
}
