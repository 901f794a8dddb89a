package httpx

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ClampInt — ограничение значения v в диапазоне [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParsePageParams — читает limit/cursor из query с дефолтами и границами.
// cursor == nil означает первую страницу.
func ParsePageParams(c *gin.Context, defaultLimit, maxLimit int) (limit int, cursor *int) {
	limit = defaultLimit
	if v, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit))); err == nil {
		limit = ClampInt(v, 1, maxLimit)
	}
	if raw, ok := c.GetQuery("cursor"); ok {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			cursor = &v
		}
	}
	return
}
