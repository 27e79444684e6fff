package services

import (
	"codeask/internal/models"

	"gorm.io/gorm"
)

// Ledger action labels
const (
	ActionQuestionCreate        = "ask_question"
	ActionAnswerCreate          = "answer_question"
	ActionQuestionUpvoted       = "question_upvoted"
	ActionQuestionDownvoted     = "question_downvoted"
	ActionQuestionVoteRetracted = "question_vote_retracted"
	ActionAnswerUpvoted         = "answer_upvoted"
	ActionAnswerDownvoted       = "answer_downvoted"
	ActionAnswerVoteRetracted   = "answer_vote_retracted"
	ActionUpvoteGiven           = "upvote_given"
	ActionDownvoteGiven         = "downvote_given"
	ActionVoteRetracted         = "vote_retracted"
)

// Reputation amounts
const (
	ReputationQuestionCreate   = 5
	ReputationAnswerCreate     = 10
	ReputationUpvoteGiven      = 1
	ReputationDownvoteGiven    = -2
	ReputationContentUpvoted   = 10
	ReputationContentDownvoted = -10
)

// AddReputationTx records a ledger entry and moves the user's reputation
// counter inside the caller's transaction, so the counter always equals the
// ledger sum and commits together with whatever earned it.
func AddReputationTx(tx *gorm.DB, userID uint, amount int, action string) error {
	entry := models.ReputationLog{
		UserID: userID,
		Amount: amount,
		Action: action,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return err
	}

	return tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("reputation", gorm.Expr("reputation + ?", amount)).
		Error
}

// voteContribution is what a standing vote is worth: the actor earns 1 for an
// upvote and pays 2 for a downvote; the content author moves 10 either way.
func voteContribution(value int) (actor, author int) {
	switch value {
	case 1:
		return ReputationUpvoteGiven, ReputationContentUpvoted
	case -1:
		return ReputationDownvoteGiven, ReputationContentDownvoted
	}
	return 0, 0
}

// VoteDeltas returns the reputation adjustments for a vote transition from
// prev to next (each -1, 0 or 1). A swap works out to retracting the old
// vote plus applying the new one.
func VoteDeltas(prev, next int) (actorDelta, authorDelta int) {
	prevActor, prevAuthor := voteContribution(prev)
	nextActor, nextAuthor := voteContribution(next)
	return nextActor - prevActor, nextAuthor - prevAuthor
}
