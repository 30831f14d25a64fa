package main

import (
	"log"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"minibank/internal/pkg/config"
	"minibank/internal/pkg/database"
	"minibank/internal/pkg/health"
	pkghttp "minibank/internal/pkg/http"
	"minibank/internal/pkg/logger"
	appmiddleware "minibank/internal/pkg/middleware"
	"minibank/internal/pkg/nsq"
	"minibank/internal/pkg/retry"
	"minibank/internal/pkg/server"
	accountHandler "minibank/services/account/handler/http"
	accountRepository "minibank/services/account/repository"
	accountUsecase "minibank/services/account/usecase"
	"minibank/services/transaction/gateway"
	transactionHandler "minibank/services/transaction/handler/http"
	transactionRepository "minibank/services/transaction/repository"
	transactionUsecase "minibank/services/transaction/usecase"
)

func main() {
	appName := "minibank-api"
	configs := config.InitConfig(os.Getenv("CONFIG_PATH"))

	appLogger := logger.NewAppLogger(appName, configs.Logger)
	appLogger.WithFields(logrus.Fields{
		"version":     configs.App.Version,
		"environment": configs.App.Environment,
	}).Info("starting application")

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

	// Initialize NSQ producer
	producer, err := nsq.NewProducer(configs.NSQ.NSQDAddress)
	if err != nil {
		log.Fatalf("failed to connect to NSQ: %v", err)
	}
	defer producer.Stop()

	// Initialize repositories
	accountRepo := accountRepository.NewAccountRepo(postgresClient.GetDB())
	transactionRepo := transactionRepository.NewStore(postgresClient.GetDB())

	// Initialize gateways
	clientTimeout := time.Duration(configs.Services.ClientTimeout) * time.Second
	notifyTimeout := time.Duration(configs.Services.NotifyTimeout) * time.Second
	authGW := gateway.NewAuthorizerGW(pkghttp.NewClient(configs.Services.AuthorizerURL, clientTimeout))
	notifyRetrier := retry.New(retry.DefaultConfig(), appLogger)
	notifyGW := gateway.NewNotifierGW(pkghttp.NewClient(configs.Services.NotifierURL, notifyTimeout), notifyRetrier)
	eventGW := gateway.NewEventPublisherGW(producer, configs.NSQ.Topic)
	dedupGW := gateway.NewDedupMarkerGW(redisClient)

	// Initialize use cases
	accountUC := accountUsecase.NewAccountUC(accountRepo, appLogger)
	transactionUC := transactionUsecase.NewTransactionUC(transactionRepo, authGW, notifyGW, eventGW, dedupGW, appLogger)

	// Initialize handlers
	accountH := accountHandler.NewAccountHandler(accountUC)
	transactionH := transactionHandler.NewTransactionHandler(transactionUC)

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(appmiddleware.RequestLogger(appLogger))

	health.RegisterHealthEndpoints(e, appName, configs.App.Version)
	accountH.RegisterRoutes(e)
	transactionH.RegisterRoutes(e)

	shutdownTimeout := time.Duration(configs.Server.ShutdownTimeout) * time.Second
	srv := server.NewGracefulServer(e, appLogger, configs.Server.Port, shutdownTimeout)
	if err := srv.Start(); err != nil {
		log.Fatalf("server stopped with error: %v", err)
	}
}
