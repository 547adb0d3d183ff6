package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Leganyst/beauty-platform/internal/payments"
	"github.com/Leganyst/beauty-platform/internal/service"
)

// Handler держит доменные сервисы. Транспорт только разбирает запросы,
// передаёт actor id явным параметром и отображает доменные ошибки —
// никакой бизнес-логики здесь быть не должно.
type Handler struct {
	avail      *service.AvailabilityService
	catalog    *service.CatalogService
	slots      *service.SlotService
	bookings   *service.BookingService
	reviews    *service.ReviewService
	pros       *service.ProfessionalService
	intents    *payments.IntentService
	reconciler *payments.Reconciler

	webhookSecret string
}

func NewHandler(
	avail *service.AvailabilityService,
	catalog *service.CatalogService,
	slots *service.SlotService,
	bookings *service.BookingService,
	reviews *service.ReviewService,
	pros *service.ProfessionalService,
	intents *payments.IntentService,
	reconciler *payments.Reconciler,
	webhookSecret string,
) *Handler {
	return &Handler{
		avail:         avail,
		catalog:       catalog,
		slots:         slots,
		bookings:      bookings,
		reviews:       reviews,
		pros:          pros,
		intents:       intents,
		reconciler:    reconciler,
		webhookSecret: webhookSecret,
	}
}

// NewRouter собирает gin-роутер со всеми маршрутами ядра.
func NewRouter(h *Handler, jwtSecret string, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})

	// Вебхук провайдера: аутентификация — подпись в заголовке,
	// не JWT, поэтому маршрут вне api-группы.
	router.POST("/webhooks/stripe", h.stripeWebhook)

	api := router.Group("/api/v1")

	// Публичная витрина.
	api.GET("/services", h.listServices)
	api.GET("/pros/:id", h.getProProfile)
	api.GET("/services/:id", h.getService)
	api.GET("/pros/:id/services", h.listProServices)
	api.GET("/pros/:id/rating", h.proRating)
	api.GET("/pros/:id/reviews", h.listProReviews)
	api.GET("/pros/:id/slots", h.listSlots)

	authed := api.Group("")
	authed.Use(AuthMiddleware(jwtSecret))
	{
		// Записи: участники — клиент и мастер.
		authed.POST("/bookings", h.createBooking)
		authed.GET("/bookings", h.listMyBookings)
		authed.GET("/bookings/:id", h.getBooking)
		authed.POST("/bookings/:id/cancel", h.cancelBooking)
		authed.POST("/bookings/:id/reschedule", h.rescheduleBooking)
		authed.POST("/bookings/:id/payment-intent", h.createPaymentIntent)

		// Отзывы.
		authed.POST("/reviews", h.submitReview)
		authed.GET("/bookings/:id/review", h.getBookingReview)

		// Кабинет мастера.
		pro := authed.Group("")
		pro.Use(RequirePro())
		{
			pro.GET("/availability/rules", h.listRules)
			pro.POST("/availability/rules", h.addRule)
			pro.DELETE("/availability/rules/:id", h.removeRule)
			pro.GET("/availability/exceptions", h.listExceptions)
			pro.POST("/availability/exceptions", h.addException)
			pro.DELETE("/availability/exceptions/:id", h.removeException)

			pro.PUT("/pro/profile", h.updateProProfile)
			pro.POST("/pro/stripe-account", h.linkStripeAccount)

			pro.POST("/services", h.createService)
			pro.PUT("/services/:id", h.updateService)

			pro.GET("/pro/bookings", h.listProBookings)
			pro.POST("/bookings/:id/accept", h.acceptBooking)
			pro.POST("/bookings/:id/reject", h.rejectBooking)
			pro.POST("/bookings/:id/complete", h.completeBooking)
		}
	}

	return router
}
