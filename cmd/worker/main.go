package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/DERICHRIS/immantravels/config"
	"github.com/DERICHRIS/immantravels/internal/email"
	"github.com/DERICHRIS/immantravels/internal/kafka"
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

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	sender := email.NewSender(cfg.SMTP)

	err = consumer.Consume(ctx, func(ctx context.Context, event kafka.BookingEvent) error {
		// Delivery failure is a warning, never a retry into the store:
		// the booking or cancellation is already committed.
		if err := sender.Send(ctx, event); err != nil {
			log.Printf("WARNING: email not sent to %s: %v", event.Email, err)
		}
		return nil
	})
	if err != nil && ctx.Err() == nil {
		log.Fatalf("consumer stopped: %v", err)
	}
	log.Println("worker shut down")
}
