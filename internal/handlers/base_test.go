package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paginationContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantPage   int
		wantSize   int
		wantOffset int
	}{
		{"defaults", "", 1, defaultPageSize, 0},
		{"explicit page", "page=3", 3, defaultPageSize, 2 * defaultPageSize},
		{"explicit size", "page=2&page_size=10", 2, 10, 10},
		{"size capped", "page_size=500", 1, maxPageSize, 0},
		{"zero page falls back", "page=0", 1, defaultPageSize, 0},
		{"negative page falls back", "page=-2", 1, defaultPageSize, 0},
		{"garbage falls back", "page=abc&page_size=xyz", 1, defaultPageSize, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pageSize, offset := ParsePagination(paginationContext(tt.query))
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantSize, pageSize)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestHasNextPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		offset   int
		returned int
		want     bool
	}{
		{"more pages remain", 50, 0, 20, true},
		{"exactly consumed", 40, 20, 20, false},
		{"last short page", 45, 40, 5, false},
		{"empty result", 0, 0, 0, false},
		{"single page", 5, 0, 5, false},
		{"middle page", 100, 20, 20, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasNextPage(tt.total, tt.offset, tt.returned))
		})
	}
}
