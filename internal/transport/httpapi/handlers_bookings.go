package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Leganyst/beauty-platform/internal/model"
)

type createBookingRequest struct {
	ProID     uuid.UUID `json:"pro_id" binding:"required"`
	ServiceID uuid.UUID `json:"service_id" binding:"required"`
	StartAt   time.Time `json:"start_at" binding:"required"`
}

func (h *Handler) createBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.bookings.Create(c.Request.Context(), actorID(c), req.ProID, req.ServiceID, req.StartAt)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) listMyBookings(c *gin.Context) {
	limit, offset := parsePage(c)
	bookings, total, err := h.bookings.ListByClient(c.Request.Context(), actorID(c), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "total": total})
}

func (h *Handler) getBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	b, err := h.bookings.Get(c.Request.Context(), actorID(c), bookingID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handler) cancelBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	if err := h.bookings.Cancel(c.Request.Context(), actorID(c), bookingID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type rescheduleRequest struct {
	NewStartAt time.Time `json:"new_start_at" binding:"required"`
}

func (h *Handler) rescheduleBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	var req rescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.bookings.Reschedule(c.Request.Context(), actorID(c), bookingID, req.NewStartAt); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) createPaymentIntent(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	intent, err := h.intents.CreateIntent(c.Request.Context(), actorID(c), bookingID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"client_secret":         intent.ClientSecret,
		"amount_cents":          intent.AmountCents,
		"application_fee_cents": intent.ApplicationFeeCents,
	})
}

func (h *Handler) listProBookings(c *gin.Context) {
	limit, offset := parsePage(c)
	status := model.BookingStatus(c.Query("status"))

	bookings, total, err := h.bookings.ListByPro(c.Request.Context(), actorID(c), status, limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "total": total})
}

func (h *Handler) acceptBooking(c *gin.Context)   { h.proTransition(c, h.bookings.Accept) }
func (h *Handler) rejectBooking(c *gin.Context)   { h.proTransition(c, h.bookings.Reject) }
func (h *Handler) completeBooking(c *gin.Context) { h.proTransition(c, h.bookings.Complete) }

func (h *Handler) proTransition(c *gin.Context, op func(ctx context.Context, proID, bookingID uuid.UUID) error) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	if err := op(c.Request.Context(), actorID(c), bookingID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
