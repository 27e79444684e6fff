package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"codeask/internal/db"
	"codeask/internal/models"
	"codeask/internal/services"
	"codeask/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type QuestionHandler struct{}

func NewQuestionHandler() *QuestionHandler {
	return &QuestionHandler{}
}

// fillAnswerCounts batch-fills the answer counts for a page of questions
func fillAnswerCounts(questions []models.Question) {
	if len(questions) == 0 {
		return
	}

	questionIDs := make([]uint, len(questions))
	for i, q := range questions {
		questionIDs[i] = q.ID
	}

	type CountResult struct {
		QuestionID uint
		Count      int
	}
	var results []CountResult
	db.DB.Model(&models.Answer{}).
		Select("question_id, COUNT(*) as count").
		Where("question_id IN ?", questionIDs).
		Group("question_id").
		Scan(&results)

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.QuestionID] = r.Count
	}

	for i := range questions {
		questions[i].AnswerCount = countMap[questions[i].ID]
	}
}

// upsertTagsTx resolves tag names to rows inside tx, creating missing ones.
// Names are normalized first so lookups are case-insensitive.
func upsertTagsTx(tx *gorm.DB, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	seen := make(map[string]bool)

	for _, name := range names {
		normalized := utils.NormalizeTag(name)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true

		var tag models.Tag
		err := tx.Where("name = ?", normalized).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = models.Tag{Name: normalized}
			err = tx.Create(&tag).Error
		}
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// questionListQuery builds the filtered base query for listings. Chains are
// rebuilt per finisher, so this returns a fresh one each call.
func questionListQuery(query, filter string) *gorm.DB {
	base := db.DB.Model(&models.Question{})

	if query != "" {
		pattern := "%" + query + "%"
		base = base.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
	}

	switch filter {
	case "frequent":
		base = base.Order("views DESC, created_at DESC")
	case "unanswered":
		base = base.
			Where("NOT EXISTS (SELECT 1 FROM answers WHERE answers.question_id = questions.id)").
			Order("created_at DESC")
	default: // newest
		base = base.Order("created_at DESC")
	}

	return base
}

// List handles GET /api/questions with search, filter and pagination
func (h *QuestionHandler) List(c *gin.Context) {
	query := c.Query("q")
	filter := c.DefaultQuery("filter", "newest")

	if filter == "recommended" {
		h.Recommended(c)
		return
	}

	page, pageSize, offset := ParsePagination(c)

	// Search results are not cached, plain listing pages are
	cacheKey := ""
	if query == "" {
		cacheKey = fmt.Sprintf("questions:list:%s:%d:%d", filter, page, pageSize)
		if cached := utils.GetCache().Get(cacheKey); cached != nil {
			if data, ok := cached.(gin.H); ok {
				c.JSON(http.StatusOK, data)
				return
			}
		}
	}

	var total int64
	if err := questionListQuery(query, filter).Count(&total).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to fetch questions")
		return
	}

	var questions []models.Question
	if err := questionListQuery(query, filter).
		Preload("User").Preload("Tags").
		Limit(pageSize).
		Offset(offset).
		Find(&questions).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to fetch questions")
		return
	}

	fillAnswerCounts(questions)

	data := gin.H{
		"questions": questions,
		"total":     total,
		"is_next":   HasNextPage(total, offset, len(questions)),
	}

	if cacheKey != "" {
		utils.GetCache().Set(cacheKey, data, 1*time.Minute)
	}

	c.JSON(http.StatusOK, data)
}

// Top handles GET /api/questions/top, the score-ranked sidebar list
func (h *QuestionHandler) Top(c *gin.Context) {
	cacheKey := "questions:top"
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if data, ok := cached.(gin.H); ok {
			c.JSON(http.StatusOK, data)
			return
		}
	}

	var questions []models.Question
	db.DB.Preload("User").
		Order("score DESC, views DESC, created_at DESC").
		Limit(5).
		Find(&questions)

	data := gin.H{"questions": questions}
	utils.GetCache().Set(cacheKey, data, 5*time.Minute)

	c.JSON(http.StatusOK, data)
}

// Recommended handles GET /api/questions/recommended (and filter=recommended)
func (h *QuestionHandler) Recommended(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		JSONError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	page, pageSize, _ := ParsePagination(c)

	questions, isNext, err := services.RecommendedQuestions(user.ID, c.Query("q"), page, pageSize)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to fetch recommendations")
		return
	}

	fillAnswerCounts(questions)

	c.JSON(http.StatusOK, gin.H{
		"questions": questions,
		"is_next":   isNext,
	})
}

// Detail handles GET /api/questions/:qid. The shared payload is cached;
// the caller's private state (vote, saved) is resolved per request.
func (h *QuestionHandler) Detail(c *gin.Context) {
	qid := c.Param("qid")

	userID := uint(0)
	if user := CurrentUser(c); user != nil {
		userID = user.ID
	}

	cacheKey := fmt.Sprintf("questions:detail:%s", qid)
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if shared, ok := cached.(gin.H); ok {
			if question, ok := shared["question"].(models.Question); ok {
				// a cached read still counts as a view
				db.DB.Model(&models.Question{}).Where("id = ?", question.ID).
					UpdateColumn("views", gorm.Expr("views + 1"))
				services.GetRankingService().ScheduleUpdate(question.ID)

				// never write into the shared map, other requests read it
				data := cloneH(shared)
				h.attachCallerState(data, userID, question.ID)
				c.JSON(http.StatusOK, data)
				return
			}
		}
	}

	var question models.Question
	if err := db.DB.Preload("User").Preload("Tags").Where("qid = ?", qid).First(&question).Error; err != nil {
		JSONError(c, http.StatusNotFound, "Question not found")
		return
	}

	db.DB.Model(&question).UpdateColumn("views", gorm.Expr("views + 1"))
	question.Views++

	services.GetRankingService().ScheduleUpdate(question.ID)

	var answerCount int64
	db.DB.Model(&models.Answer{}).Where("question_id = ?", question.ID).Count(&answerCount)

	var upvotes int64
	db.DB.Model(&models.Vote{}).Where("question_id = ? AND value = 1", question.ID).Count(&upvotes)

	var downvotes int64
	db.DB.Model(&models.Vote{}).Where("question_id = ? AND value = -1", question.ID).Count(&downvotes)

	var savedCount int64
	db.DB.Model(&models.Collection{}).Where("question_id = ?", question.ID).Count(&savedCount)

	question.AnswerCount = int(answerCount)

	shared := gin.H{
		"question":     question,
		"content_html": utils.RenderMarkdown(question.Content),
		"upvotes":      upvotes,
		"downvotes":    downvotes,
		"saved_count":  savedCount,
	}

	// private flags stay out of the cached payload
	utils.GetCache().Set(cacheKey, shared, 5*time.Minute)

	data := cloneH(shared)
	h.attachCallerState(data, userID, question.ID)

	c.JSON(http.StatusOK, data)
}

// cloneH shallow-copies a payload so per-request keys never land on a map
// held by the cache.
func cloneH(src gin.H) gin.H {
	dst := make(gin.H, len(src)+2)
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// attachCallerState injects the caller's vote and saved flags, which vary
// per request and are never cached.
func (h *QuestionHandler) attachCallerState(data gin.H, userID, questionID uint) {
	vote := 0
	saved := false
	if userID > 0 {
		var v models.Vote
		if err := db.DB.Where("user_id = ? AND question_id = ?", userID, questionID).First(&v).Error; err == nil {
			vote = v.Value
		}
		var col models.Collection
		if err := db.DB.Where("user_id = ? AND question_id = ?", userID, questionID).First(&col).Error; err == nil {
			saved = true
		}
	}
	data["vote"] = vote
	data["is_saved"] = saved
}

type questionInput struct {
	Title   string   `json:"title" binding:"required,min=5,max=150"`
	Content string   `json:"content" binding:"required,min=20"`
	Tags    []string `json:"tags" binding:"required,min=1,max=5"`
}

// Create handles POST /api/questions. Question, tag links, interaction and
// the author's reputation commit in one transaction.
func (h *QuestionHandler) Create(c *gin.Context) {
	user := MustUser(c)

	var input questionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		JSONError(c, http.StatusBadRequest, "Title, content and 1-5 tags are required")
		return
	}

	question := models.Question{
		Qid:     utils.RandString(8),
		UserID:  user.ID,
		Title:   input.Title,
		Content: input.Content,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&question).Error; err != nil {
			return err
		}

		tags, err := upsertTagsTx(tx, input.Tags)
		if err != nil {
			return err
		}
		if err := tx.Model(&question).Association("Tags").Append(&tags); err != nil {
			return err
		}

		interaction := models.Interaction{
			UserID:     user.ID,
			Action:     models.InteractionAskQuestion,
			QuestionID: &question.ID,
		}
		if err := tx.Create(&interaction).Error; err != nil {
			return err
		}
		if err := tx.Model(&interaction).Association("Tags").Append(&tags); err != nil {
			return err
		}

		return services.AddReputationTx(tx, user.ID, services.ReputationQuestionCreate, services.ActionQuestionCreate)
	})
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to create question")
		return
	}

	// Revalidate listing pages and tag counts
	utils.GetCache().DeletePrefix("questions:list:")
	utils.GetCache().DeletePrefix("tags:")

	db.DB.Preload("User").Preload("Tags").First(&question, question.ID)

	c.JSON(http.StatusCreated, gin.H{"question": question})
}

// Update handles PUT /api/questions/:qid (author only)
func (h *QuestionHandler) Update(c *gin.Context) {
	user := MustUser(c)
	qid := c.Param("qid")

	var question models.Question
	if err := db.DB.Where("qid = ?", qid).First(&question).Error; err != nil {
		JSONError(c, http.StatusNotFound, "Question not found")
		return
	}

	if question.UserID != user.ID {
		JSONError(c, http.StatusForbidden, "You can only edit your own questions")
		return
	}

	var input questionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		JSONError(c, http.StatusBadRequest, "Title, content and 1-5 tags are required")
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		question.Title = input.Title
		question.Content = input.Content
		if err := tx.Save(&question).Error; err != nil {
			return err
		}

		tags, err := upsertTagsTx(tx, input.Tags)
		if err != nil {
			return err
		}
		return tx.Model(&question).Association("Tags").Replace(&tags)
	})
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to update question")
		return
	}

	utils.GetCache().Delete(fmt.Sprintf("questions:detail:%s", qid))
	utils.GetCache().DeletePrefix("questions:list:")
	utils.GetCache().DeletePrefix("tags:")

	db.DB.Preload("User").Preload("Tags").First(&question, question.ID)

	c.JSON(http.StatusOK, gin.H{"question": question})
}

// Delete handles DELETE /api/questions/:qid. One transaction removes the
// question and everything hanging off it: answers, votes on both, the
// interaction log, saved entries, notifications and tag links.
func (h *QuestionHandler) Delete(c *gin.Context) {
	user := MustUser(c)
	qid := c.Param("qid")

	var question models.Question
	if err := db.DB.Where("qid = ?", qid).First(&question).Error; err != nil {
		JSONError(c, http.StatusNotFound, "Question not found")
		return
	}

	if question.UserID != user.ID {
		JSONError(c, http.StatusForbidden, "You can only delete your own questions")
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var answerIDs []uint
		if err := tx.Model(&models.Answer{}).Where("question_id = ?", question.ID).
			Pluck("id", &answerIDs).Error; err != nil {
			return err
		}

		if len(answerIDs) > 0 {
			if err := tx.Where("answer_id IN ?", answerIDs).Delete(&models.Vote{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("question_id = ?", question.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", question.ID).Delete(&models.Answer{}).Error; err != nil {
			return err
		}

		var interactionIDs []uint
		if err := tx.Model(&models.Interaction{}).Where("question_id = ?", question.ID).
			Pluck("id", &interactionIDs).Error; err != nil {
			return err
		}
		if len(interactionIDs) > 0 {
			if err := tx.Exec("DELETE FROM interaction_tags WHERE interaction_id IN ?", interactionIDs).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", interactionIDs).Delete(&models.Interaction{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("question_id = ?", question.ID).Delete(&models.Collection{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", question.ID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}

		// Tag back-references live in the join table
		if err := tx.Exec("DELETE FROM question_tags WHERE question_id = ?", question.ID).Error; err != nil {
			return err
		}

		return tx.Delete(&question).Error
	})
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to delete question")
		return
	}

	utils.GetCache().Delete(fmt.Sprintf("questions:detail:%s", qid))
	utils.GetCache().DeletePrefix("questions:list:")
	utils.GetCache().Delete("questions:top")
	utils.GetCache().DeletePrefix("tags:")

	c.JSON(http.StatusOK, gin.H{"message": "Question deleted"})
}
