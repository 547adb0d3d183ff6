package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Leganyst/beauty-platform/internal/schedule"
)

func (h *Handler) listSlots(c *gin.Context) {
	proID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid professional id"})
		return
	}
	serviceID, err := uuid.Parse(c.Query("service_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service_id"})
		return
	}

	from, to, err := parseDateRange(c, 7*24*time.Hour)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bufferMin := 0
	if raw := c.Query("buffer_min"); raw != "" {
		bufferMin, err = strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid buffer_min"})
			return
		}
	}

	slots, err := h.slots.ListSlots(c.Request.Context(), proID, serviceID, from, to, bufferMin)
	if err != nil {
		writeError(c, err)
		return
	}

	// Для дальнего горизонта список может быть длинным, страницы
	// режутся уже по готовому списку.
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))
	paged := schedule.Paginate(slots, page, pageSize)

	type slotResponse struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}
	out := make([]slotResponse, 0, len(paged.Items))
	for _, s := range paged.Items {
		out = append(out, slotResponse{
			Start: s.Start.UTC().Format(time.RFC3339),
			End:   s.End.UTC().Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"slots":    out,
		"page":     paged.Page,
		"total":    paged.Total,
		"has_next": paged.HasNext,
	})
}
