package handlers

import (
	"fmt"
	"net/http"

	"codeask/internal/db"
	"codeask/internal/models"
	"codeask/internal/services"
	"codeask/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type VoteHandler struct{}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{}
}

// UpvoteQuestion handles POST /api/questions/:qid/upvote
func (h *VoteHandler) UpvoteQuestion(c *gin.Context) {
	h.voteQuestion(c, 1)
}

// DownvoteQuestion handles POST /api/questions/:qid/downvote
func (h *VoteHandler) DownvoteQuestion(c *gin.Context) {
	h.voteQuestion(c, -1)
}

// UpvoteAnswer handles POST /api/answers/:aid/upvote
func (h *VoteHandler) UpvoteAnswer(c *gin.Context) {
	h.voteAnswer(c, 1)
}

// DownvoteAnswer handles POST /api/answers/:aid/downvote
func (h *VoteHandler) DownvoteAnswer(c *gin.Context) {
	h.voteAnswer(c, -1)
}

func (h *VoteHandler) voteQuestion(c *gin.Context, value int) {
	var question models.Question
	if err := db.DB.Where("qid = ?", c.Param("qid")).First(&question).Error; err != nil {
		JSONError(c, http.StatusNotFound, "Question not found")
		return
	}

	h.castVote(c, voteTarget{
		kind:       "question",
		targetID:   question.ID,
		authorID:   question.UserID,
		questionID: question.ID,
		qid:        question.Qid,
	}, value)
}

func (h *VoteHandler) voteAnswer(c *gin.Context, value int) {
	var answer models.Answer
	if err := db.DB.Preload("Question").Where("aid = ?", c.Param("aid")).First(&answer).Error; err != nil {
		JSONError(c, http.StatusNotFound, "Answer not found")
		return
	}

	h.castVote(c, voteTarget{
		kind:       "answer",
		targetID:   answer.ID,
		authorID:   answer.UserID,
		questionID: answer.QuestionID,
		qid:        answer.Question.Qid,
	}, value)
}

type voteTarget struct {
	kind       string // "question" or "answer"
	targetID   uint
	authorID   uint
	questionID uint
	qid        string
}

// castVote applies one vote press. Same direction again retracts, the other
// direction swaps, no prior vote adds. Vote row, denormalized score and both
// reputation adjustments commit in a single transaction.
func (h *VoteHandler) castVote(c *gin.Context, target voteTarget, value int) {
	user := MustUser(c)

	voteWhere := func(tx *gorm.DB) *gorm.DB {
		if target.kind == "answer" {
			return tx.Where("user_id = ? AND answer_id = ?", user.ID, target.targetID)
		}
		return tx.Where("user_id = ? AND question_id = ?", user.ID, target.targetID)
	}

	next := 0
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Vote
		prev := 0
		found := true
		if err := voteWhere(tx).First(&existing).Error; err != nil {
			if err != gorm.ErrRecordNotFound {
				return err
			}
			found = false
		} else {
			prev = existing.Value
		}

		switch {
		case prev == value:
			// same button again retracts
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			next = 0
		case found:
			existing.Value = value
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			next = value
		default:
			vote := models.Vote{UserID: user.ID, Value: value}
			if target.kind == "answer" {
				vote.AnswerID = &target.targetID
			} else {
				vote.QuestionID = &target.targetID
			}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			next = value
		}

		// Answer score is the raw vote sum. Question score is the ranking
		// value, recomputed off-path by the ranking worker.
		if delta := next - prev; delta != 0 && target.kind == "answer" {
			if err := tx.Model(&models.Answer{}).Where("id = ?", target.targetID).
				UpdateColumn("score", gorm.Expr("score + ?", delta)).Error; err != nil {
				return err
			}
		}

		actorDelta, authorDelta := services.VoteDeltas(prev, next)
		if actorDelta != 0 {
			if err := services.AddReputationTx(tx, user.ID, actorDelta, actorAction(next)); err != nil {
				return err
			}
		}
		// self-votes never move the author side twice
		if authorDelta != 0 && target.authorID != user.ID {
			if err := services.AddReputationTx(tx, target.authorID, authorDelta, authorAction(target.kind, next)); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to register vote")
		return
	}

	services.GetRankingService().ScheduleUpdate(target.questionID)
	utils.GetCache().Delete(fmt.Sprintf("questions:detail:%s", target.qid))
	utils.GetCache().Delete("questions:top")

	upvotes, downvotes := h.voteCounts(target)

	c.JSON(http.StatusOK, gin.H{
		"vote":      next,
		"upvotes":   upvotes,
		"downvotes": downvotes,
	})
}

func (h *VoteHandler) voteCounts(target voteTarget) (upvotes, downvotes int64) {
	column := "question_id"
	if target.kind == "answer" {
		column = "answer_id"
	}
	db.DB.Model(&models.Vote{}).
		Where(column+" = ? AND value = 1", target.targetID).Count(&upvotes)
	db.DB.Model(&models.Vote{}).
		Where(column+" = ? AND value = -1", target.targetID).Count(&downvotes)
	return upvotes, downvotes
}

func actorAction(next int) string {
	switch next {
	case 1:
		return services.ActionUpvoteGiven
	case -1:
		return services.ActionDownvoteGiven
	}
	return services.ActionVoteRetracted
}

func authorAction(kind string, next int) string {
	if kind == "answer" {
		switch next {
		case 1:
			return services.ActionAnswerUpvoted
		case -1:
			return services.ActionAnswerDownvoted
		}
		return services.ActionAnswerVoteRetracted
	}
	switch next {
	case 1:
		return services.ActionQuestionUpvoted
	case -1:
		return services.ActionQuestionDownvoted
	}
	return services.ActionQuestionVoteRetracted
}
