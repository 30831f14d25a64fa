package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"minibank/internal/pkg/config"
	"minibank/internal/pkg/database"
	pkghttp "minibank/internal/pkg/http"
	"minibank/internal/pkg/logger"
	"minibank/internal/pkg/nsq"
	"minibank/internal/pkg/retry"
	"minibank/services/transaction/gateway"
	transactionNSQ "minibank/services/transaction/handler/nsq"
	transactionRepository "minibank/services/transaction/repository"
	transactionUsecase "minibank/services/transaction/usecase"
)

func main() {
	appName := "minibank-worker"
	configs := config.InitConfig(os.Getenv("CONFIG_PATH"))

	appLogger := logger.NewAppLogger(appName, configs.Logger)
	appLogger.WithFields(logrus.Fields{
		"version":     configs.App.Version,
		"environment": configs.App.Environment,
		"topic":       configs.NSQ.Topic,
		"channel":     configs.NSQ.Channel,
	}).Info("starting worker")

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		log.Fatalf("failed to connect to PostgreSQL: %v", err)
	}
	defer postgresClient.Close()

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		log.Fatalf("failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Producer is needed for the dead-letter topic
	producer, err := nsq.NewProducer(configs.NSQ.NSQDAddress)
	if err != nil {
		log.Fatalf("failed to connect to NSQ: %v", err)
	}
	defer producer.Stop()

	// Initialize repository and gateways
	transactionRepo := transactionRepository.NewStore(postgresClient.GetDB())

	clientTimeout := time.Duration(configs.Services.ClientTimeout) * time.Second
	notifyTimeout := time.Duration(configs.Services.NotifyTimeout) * time.Second
	authGW := gateway.NewAuthorizerGW(pkghttp.NewClient(configs.Services.AuthorizerURL, clientTimeout))
	notifyRetrier := retry.New(retry.DefaultConfig(), appLogger)
	notifyGW := gateway.NewNotifierGW(pkghttp.NewClient(configs.Services.NotifierURL, notifyTimeout), notifyRetrier)
	eventGW := gateway.NewEventPublisherGW(producer, configs.NSQ.Topic)
	dedupGW := gateway.NewDedupMarkerGW(redisClient)

	transactionUC := transactionUsecase.NewTransactionUC(transactionRepo, authGW, notifyGW, eventGW, dedupGW, appLogger)
	eventHandler := transactionNSQ.NewEventHandler(transactionUC, appLogger)

	deadLetter := func(body []byte) {
		if err := producer.PublishRaw(configs.NSQ.DeadLetterTopic, body); err != nil {
			appLogger.WithError(err).Error("failed to publish to dead letter topic")
		}
	}

	consumer, err := nsq.NewConsumer(nsq.ConsumerConfig{
		Topic:        configs.NSQ.Topic,
		Channel:      configs.NSQ.Channel,
		MaxAttempts:  configs.NSQ.MaxAttempts,
		RequeueDelay: time.Duration(configs.NSQ.RequeueDelaySec) * time.Second,
	}, configs.NSQ.NSQDAddress, eventHandler.HandleTransactionCreated, deadLetter)
	if err != nil {
		log.Fatalf("failed to start NSQ consumer: %v", err)
	}
	defer consumer.Stop()

	if len(configs.NSQ.LookupdAddresses) > 0 {
		if err := consumer.ConnectToLookupd(configs.NSQ.LookupdAddresses); err != nil {
			log.Fatalf("failed to connect to NSQ lookupd: %v", err)
		}
	}

	appLogger.Info("worker consuming events")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	sig := <-quit

	appLogger.WithFields(logrus.Fields{"signal": sig.String()}).Info("shutting down worker")
}
