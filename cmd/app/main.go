package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DERICHRIS/immantravels/config"
	"github.com/DERICHRIS/immantravels/internal/bootstrap"
	"github.com/DERICHRIS/immantravels/internal/cache"
	"github.com/DERICHRIS/immantravels/internal/kafka"
	"github.com/DERICHRIS/immantravels/internal/repository"
	"github.com/DERICHRIS/immantravels/internal/service/admin"
	"github.com/DERICHRIS/immantravels/internal/service/booking"
	"github.com/DERICHRIS/immantravels/internal/service/routes"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := repository.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.RoutesCacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	routeRepo := repository.NewRouteRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	routeService := routes.NewRouteService(routeRepo, bookingRepo, redisCache)
	bookingService := booking.NewBookingService(
		bookingRepo,
		customerRepo,
		routeRepo,
		redisCache,
		producer,
		time.Duration(cfg.Booking.SeatHoldTTLSeconds)*time.Second,
		time.Duration(cfg.Booking.CancelCutoffHours)*time.Hour,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)
	adminService := admin.NewAdminService(
		bookingRepo,
		cfg.Admin.PasswordHash,
		cfg.Admin.JWTSecret,
		time.Duration(cfg.Admin.TokenTTLMinutes)*time.Minute,
		cfg.Admin.LoginRatePerMin,
	)

	if err := bootstrap.Run(ctx, cfg, routeService, bookingService, adminService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
