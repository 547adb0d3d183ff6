package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Leganyst/beauty-platform/internal/service"
)

func (h *Handler) getProProfile(c *gin.Context) {
	proID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid professional id"})
		return
	}

	pro, err := h.pros.GetProfile(c.Request.Context(), proID)
	if err != nil {
		writeError(c, err)
		return
	}
	// Платёжные реквизиты в публичный профиль не попадают.
	c.JSON(http.StatusOK, gin.H{
		"id":           pro.ID,
		"display_name": pro.DisplayName,
		"bio":          pro.Bio,
		"avatar_url":   pro.AvatarURL,
	})
}

type profileRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatar_url"`
}

func (h *Handler) updateProProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.pros.UpdateProfile(c.Request.Context(), actorID(c), service.ProfileInput{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type linkAccountRequest struct {
	AccountID string `json:"account_id" binding:"required"`
}

func (h *Handler) linkStripeAccount(c *gin.Context) {
	var req linkAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	enabled, err := h.intents.LinkAccount(c.Request.Context(), actorID(c), req.AccountID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"charges_enabled": enabled})
}
