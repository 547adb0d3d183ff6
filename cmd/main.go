package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	stripe "github.com/stripe/stripe-go/v79"

	"github.com/Leganyst/beauty-platform/internal/config"
	"github.com/Leganyst/beauty-platform/internal/db"
	"github.com/Leganyst/beauty-platform/internal/model"
	"github.com/Leganyst/beauty-platform/internal/payments"
	"github.com/Leganyst/beauty-platform/internal/repository"
	"github.com/Leganyst/beauty-platform/internal/service"
	"github.com/Leganyst/beauty-platform/internal/transport/httpapi"
)

func main() {
	// .env опционален: в контейнере всё приходит через окружение.
	_ = godotenv.Load()

	// 1. Конфиги из env.
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatalf("load db config: %v", err)
	}
	appCfg, err := config.LoadAppConfig()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	stripe.Key = appCfg.StripeSecretKey

	// 2. Подключаемся к БД через GORM.
	gormDB, err := db.NewGormDB(dbCfg)
	if err != nil {
		log.Fatalf("init db: %v", err)
	}

	// 3. Миграции моделей.
	if err := model.AutoMigrate(gormDB); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("sql DB: %v", err)
	}
	defer sqlDB.Close()

	// 4. Репозитории (реализации на GORM).
	availRepo := repository.NewGormAvailabilityRepository(gormDB)
	serviceRepo := repository.NewGormServiceRepository(gormDB)
	proRepo := repository.NewGormProfessionalRepository(gormDB)
	bookingRepo := repository.NewGormBookingRepository(gormDB)
	reviewRepo := repository.NewGormReviewRepository(gormDB)
	eventRepo := repository.NewGormPaymentEventRepository(gormDB)

	// 5. Доменные сервисы.
	availSvc := service.NewAvailabilityService(availRepo)
	catalogSvc := service.NewCatalogService(serviceRepo, proRepo)
	slotSvc := service.NewSlotService(availRepo, serviceRepo, bookingRepo, appCfg.SlotHorizonDays)
	bookingSvc := service.NewBookingService(bookingRepo, serviceRepo, proRepo)
	reviewSvc := service.NewReviewService(reviewRepo, bookingRepo)
	proSvc := service.NewProfessionalService(proRepo)
	intentSvc := payments.NewIntentService(bookingRepo, proRepo, appCfg.Currency, appCfg.CommissionPercent)
	reconciler := payments.NewReconciler(bookingRepo, eventRepo)

	// 6. HTTP-роутер.
	handler := httpapi.NewHandler(
		availSvc, catalogSvc, slotSvc, bookingSvc, reviewSvc, proSvc,
		intentSvc, reconciler,
		appCfg.StripeWebhookSecret,
	)
	router := httpapi.NewRouter(handler, appCfg.JWTSecret, appCfg.AllowedOrigins)

	srv := &http.Server{
		Addr:              appCfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("booking core listening on %s", appCfg.HTTPAddr)

	// 7. Запускаем сервер в горутине.
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http serve: %v", err)
		}
	}()

	// 8. Грейсфул-шатдаун по сигналу.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("shutting down http server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
