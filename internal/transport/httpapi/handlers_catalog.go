package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Leganyst/beauty-platform/internal/service"
)

type serviceRequest struct {
	Name                  string `json:"name" binding:"required"`
	Description           string `json:"description"`
	Category              string `json:"category"`
	PriceCents            int64  `json:"price_cents"`
	DurationMin           int64  `json:"duration_min"`
	IsActive              *bool  `json:"is_active"`
	RescheduleWindowHours *int64 `json:"reschedule_window_hours"`
	CancelWindowHours     *int64 `json:"cancel_window_hours"`
}

func (r serviceRequest) toInput() service.ServiceInput {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return service.ServiceInput{
		Name:                  r.Name,
		Description:           r.Description,
		Category:              r.Category,
		PriceCents:            r.PriceCents,
		DurationMin:           r.DurationMin,
		IsActive:              active,
		RescheduleWindowHours: r.RescheduleWindowHours,
		CancelWindowHours:     r.CancelWindowHours,
	}
}

func (h *Handler) listServices(c *gin.Context) {
	limit, offset := parsePage(c)
	services, total, err := h.catalog.ListServices(c.Request.Context(), true, limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services, "total": total})
}

func (h *Handler) getService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
		return
	}

	svc, err := h.catalog.GetService(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *Handler) listProServices(c *gin.Context) {
	proID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid professional id"})
		return
	}

	services, err := h.catalog.ListByPro(c.Request.Context(), proID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

func (h *Handler) createService(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.catalog.CreateService(c.Request.Context(), actorID(c), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) updateService(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
		return
	}

	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.catalog.UpdateService(c.Request.Context(), actorID(c), serviceID, req.toInput()); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
