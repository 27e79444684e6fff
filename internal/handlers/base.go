package handlers

import (
	"codeask/internal/middleware"
	"codeask/internal/models"
	"codeask/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 50
)

// JSONError writes the uniform error payload
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// CurrentUser returns the user resolved by LoadUser, nil for anonymous callers
func CurrentUser(c *gin.Context) *models.User {
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		return user.(*models.User)
	}
	return nil
}

// MustUser is CurrentUser behind AuthRequired, where the user is guaranteed
func MustUser(c *gin.Context) *models.User {
	return c.MustGet(middleware.CheckUserKey).(*models.User)
}

// ParsePagination reads page/page_size query params with sane bounds and
// returns them along with the row offset.
func ParsePagination(c *gin.Context) (page, pageSize, offset int) {
	page = 1
	if n := utils.StringToInt(c.Query("page")); n > 0 {
		page = n
	}

	pageSize = defaultPageSize
	if n := utils.StringToInt(c.Query("page_size")); n > 0 {
		pageSize = n
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	offset = (page - 1) * pageSize
	return page, pageSize, offset
}

// HasNextPage reports whether results remain past this page: true iff the
// total match count exceeds the rows skipped plus the rows returned.
func HasNextPage(total int64, offset, returned int) bool {
	return total > int64(offset+returned)
}
