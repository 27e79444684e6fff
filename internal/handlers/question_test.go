package handlers

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"codeask/internal/models"
	"codeask/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailCachedPayloadStaysShared(t *testing.T) {
	shared := gin.H{
		"question": models.Question{ID: 1, Qid: "abc12345", Title: "cached"},
		"upvotes":  int64(3),
	}
	utils.GetCache().Set("questions:detail:abc12345", shared, time.Minute)

	h := NewQuestionHandler()

	// concurrent cache hits each work on their own copy while serializing
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			cached := utils.GetCache().Get("questions:detail:abc12345")
			require.NotNil(t, cached)

			data := cloneH(cached.(gin.H))
			h.attachCallerState(data, 0, 1)

			_, err := json.Marshal(data)
			assert.NoError(t, err)
			assert.Contains(t, data, "vote")
		}()
	}
	wg.Wait()

	// caller flags must never leak into the shared cached map
	assert.NotContains(t, shared, "vote")
	assert.NotContains(t, shared, "is_saved")
}

func TestCloneH(t *testing.T) {
	src := gin.H{"a": 1, "b": "two"}
	dst := cloneH(src)

	dst["c"] = 3
	dst["a"] = 10

	assert.Equal(t, 1, src["a"])
	assert.NotContains(t, src, "c")
	assert.Equal(t, "two", dst["b"])
}
