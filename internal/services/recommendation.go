package services

import (
	"codeask/internal/db"
	"codeask/internal/models"

	"gorm.io/gorm"
)

// RecommendedQuestions returns questions sharing at least one tag with the
// user's interaction history, never the user's own, newest first. The bool
// reports whether another page exists.
func RecommendedQuestions(userID uint, query string, page, pageSize int) ([]models.Question, bool, error) {
	var interactions []models.Interaction
	if err := db.DB.Preload("Tags").Where("user_id = ?", userID).Find(&interactions).Error; err != nil {
		return nil, false, err
	}

	// Flatten and deduplicate the tags the user has touched
	seen := make(map[uint]bool)
	tagIDs := make([]uint, 0)
	for _, interaction := range interactions {
		for _, tag := range interaction.Tags {
			if !seen[tag.ID] {
				seen[tag.ID] = true
				tagIDs = append(tagIDs, tag.ID)
			}
		}
	}

	if len(tagIDs) == 0 {
		return []models.Question{}, false, nil
	}

	offset := (page - 1) * pageSize

	// Fresh chain per finisher; gorm statements are not safely reusable
	filtered := func() *gorm.DB {
		tagged := db.DB.Table("question_tags").
			Select("question_id").
			Where("tag_id IN ?", tagIDs)

		base := db.DB.Model(&models.Question{}).
			Where("id IN (?)", tagged).
			Where("user_id <> ?", userID)

		if query != "" {
			pattern := "%" + query + "%"
			base = base.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
		}
		return base
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, false, err
	}

	var questions []models.Question
	if err := filtered().
		Preload("User").Preload("Tags").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&questions).Error; err != nil {
		return nil, false, err
	}

	isNext := total > int64(offset+len(questions))
	return questions, isNext, nil
}
