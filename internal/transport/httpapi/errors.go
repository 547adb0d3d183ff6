package httpapi

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Leganyst/beauty-platform/internal/schedule"
	"github.com/Leganyst/beauty-platform/internal/service"
)

// writeError переводит доменную ошибку в HTTP-ответ. Ошибки окон несут
// настроенное окно в часах — клиенту есть чем объяснить отказ.
func writeError(c *gin.Context, err error) {
	var (
		validationErr *service.ValidationError
		conflictErr   *service.ConflictError
		cancelWinErr  *service.OutsideCancelWindowError
		reschedWinErr *service.OutsideRescheduleWindowError
		externalErr   *service.ExternalServiceError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Msg, "field": validationErr.Field})
	case errors.Is(err, schedule.ErrInvalidTimeRange) || errors.Is(err, schedule.ErrClockFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":      "time slot is no longer available",
			"slot_start": conflictErr.Start,
			"slot_end":   conflictErr.End,
		})
	case errors.Is(err, service.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": "operation is not allowed in the current booking status"})
	case errors.Is(err, service.ErrDuplicateReview):
		c.JSON(http.StatusConflict, gin.H{"error": "review already exists for this booking"})
	case errors.As(err, &cancelWinErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":        "cancellation window has passed",
			"window_hours": cancelWinErr.WindowHours,
		})
	case errors.As(err, &reschedWinErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":        "reschedule window has passed",
			"window_hours": reschedWinErr.WindowHours,
		})
	case errors.As(err, &externalErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": externalErr.Reason})
	default:
		log.Printf("httpapi: internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
