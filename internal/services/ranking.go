package services

import (
	"log"
	"sync"
	"time"

	"codeask/internal/db"
	"codeask/internal/models"
	"codeask/internal/utils"
)

// RankingService recomputes question scores off the request path. Views and
// votes schedule an update; a background worker batches them.
type RankingService struct {
	queue   chan uint
	pending map[uint]bool
	mu      sync.Mutex
}

var (
	rankingService *RankingService
	once           sync.Once
)

// GetRankingService returns the singleton ranking service
func GetRankingService() *RankingService {
	once.Do(func() {
		rankingService = &RankingService{
			queue:   make(chan uint, 1000), // buffered so schedulers never block
			pending: make(map[uint]bool),
		}
		go rankingService.worker()
	})
	return rankingService
}

// ScheduleUpdate queues a question for a score recompute. Duplicate requests
// for a question already queued are dropped.
func (s *RankingService) ScheduleUpdate(questionID uint) {
	s.mu.Lock()
	if s.pending[questionID] {
		s.mu.Unlock()
		return
	}
	s.pending[questionID] = true
	s.mu.Unlock()

	select {
	case s.queue <- questionID:
	default:
		// queue full, drop and clear the pending mark
		s.mu.Lock()
		delete(s.pending, questionID)
		s.mu.Unlock()
		log.Printf("ranking queue full, skipping question %d", questionID)
	}
}

func (s *RankingService) worker() {
	batch := make([]uint, 0, 50)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case questionID := <-s.queue:
			batch = append(batch, questionID)
			if len(batch) >= 50 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

func (s *RankingService) processBatch(questionIDs []uint) {
	for _, questionID := range questionIDs {
		s.updateQuestionScore(questionID)

		s.mu.Lock()
		delete(s.pending, questionID)
		s.mu.Unlock()
	}
}

func (s *RankingService) updateQuestionScore(questionID uint) {
	var question models.Question
	if err := db.DB.First(&question, questionID).Error; err != nil {
		log.Printf("score update skipped: question %d not found", questionID)
		return
	}

	var upvotes int64
	db.DB.Model(&models.Vote{}).Where("question_id = ? AND value = 1", questionID).Count(&upvotes)

	var downvotes int64
	db.DB.Model(&models.Vote{}).Where("question_id = ? AND value = -1", questionID).Count(&downvotes)

	var saves int64
	db.DB.Model(&models.Collection{}).Where("question_id = ?", questionID).Count(&saves)

	var answers int64
	db.DB.Model(&models.Answer{}).Where("question_id = ?", questionID).Count(&answers)

	newScore := utils.CalculateScore(
		question.CreatedAt,
		int(upvotes),
		int(downvotes),
		int(saves),
		int(answers),
	)

	scoreInt := int(newScore)

	if err := db.DB.Model(&question).UpdateColumn("score", scoreInt).Error; err != nil {
		log.Printf("failed to update score for question %d: %v", questionID, err)
	}
}
