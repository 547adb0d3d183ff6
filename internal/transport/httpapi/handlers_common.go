package httpapi

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// parseTimeParam принимает RFC3339 либо голую дату "2006-01-02" (UTC).
func parseTimeParam(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, time.UTC); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q: want RFC3339 or YYYY-MM-DD", raw)
}

// parseDateRange разбирает query-параметры from/to. Пустой from —
// текущий момент, пустой to — from + defaultSpan.
func parseDateRange(c *gin.Context, defaultSpan time.Duration) (from, to time.Time, err error) {
	if raw := c.Query("from"); raw != "" {
		if from, err = parseTimeParam(raw); err != nil {
			return
		}
	} else {
		from = time.Now().UTC()
	}

	if raw := c.Query("to"); raw != "" {
		if to, err = parseTimeParam(raw); err != nil {
			return
		}
	} else {
		to = from.Add(defaultSpan)
	}
	return
}

// parsePage разбирает page/page_size в limit/offset.
func parsePage(c *gin.Context) (limit, offset int) {
	page, _ := strconv.Atoi(c.Query("page"))
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(c.Query("page_size"))
	if size <= 0 || size > 100 {
		size = 50
	}
	return size, (page - 1) * size
}
