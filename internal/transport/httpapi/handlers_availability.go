package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type addRuleRequest struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

func (h *Handler) listRules(c *gin.Context) {
	rules, err := h.avail.ListRules(c.Request.Context(), actorID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

func (h *Handler) addRule(c *gin.Context) {
	var req addRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.avail.AddRule(c.Request.Context(), actorID(c), req.Weekday, req.StartTime, req.EndTime)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) removeRule(c *gin.Context) {
	ruleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rule id"})
		return
	}

	if err := h.avail.RemoveRule(c.Request.Context(), actorID(c), ruleID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type addExceptionRequest struct {
	Date        string `json:"date" binding:"required"`
	IsAvailable bool   `json:"is_available"`
	Note        string `json:"note"`
}

func (h *Handler) listExceptions(c *gin.Context) {
	from, to, err := parseDateRange(c, 90*24*time.Hour)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	excs, err := h.avail.ListExceptions(c.Request.Context(), actorID(c), from, to)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exceptions": excs})
}

func (h *Handler) addException(c *gin.Context) {
	var req addExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.avail.AddException(c.Request.Context(), actorID(c), req.Date, req.IsAvailable, req.Note)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) removeException(c *gin.Context) {
	excID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid exception id"})
		return
	}

	if err := h.avail.RemoveException(c.Request.Context(), actorID(c), excID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
