package httpapi

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Leganyst/beauty-platform/internal/payments"
)

// stripeWebhook принимает события провайдера платежей. Подпись
// проверяется до любой обработки; неизвестные типы подтверждаются
// сразу, чтобы провайдер не ретраил их бесконечно.
func (h *Handler) stripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<16))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "read body"})
		return
	}

	ev, known, err := payments.ParseStripeEvent(payload, c.GetHeader("Stripe-Signature"), h.webhookSecret)
	if err != nil {
		log.Printf("webhook: rejected event: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}
	if !known {
		c.Status(http.StatusOK)
		return
	}

	if err := h.reconciler.HandleEvent(c.Request.Context(), ev); err != nil {
		// 500 заставит провайдера повторить доставку; дедупликация
		// по event id делает повтор безопасным.
		log.Printf("webhook: handle event %s: %v", ev.ID, err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}
