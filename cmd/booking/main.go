package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/angkut/internal/pkg/config"
	"github.com/piresc/angkut/internal/pkg/database"
	"github.com/piresc/angkut/internal/pkg/distance"
	"github.com/piresc/angkut/internal/pkg/health"
	"github.com/piresc/angkut/internal/pkg/lock"
	"github.com/piresc/angkut/internal/pkg/logger"
	"github.com/piresc/angkut/internal/pkg/middleware"
	"github.com/piresc/angkut/internal/pkg/models"
	"github.com/piresc/angkut/internal/pkg/nats"
	"github.com/piresc/angkut/internal/pkg/nsq"
	"github.com/piresc/angkut/internal/pkg/server"
	"github.com/piresc/angkut/internal/utils"
	bookinggw "github.com/piresc/angkut/services/booking/gateway"
	bookinghttp "github.com/piresc/angkut/services/booking/handler/http"
	bookingrepo "github.com/piresc/angkut/services/booking/repository"
	bookinguc "github.com/piresc/angkut/services/booking/usecase"
	escrowgw "github.com/piresc/angkut/services/escrow/gateway"
	escrowhttp "github.com/piresc/angkut/services/escrow/handler/http"
	escrownats "github.com/piresc/angkut/services/escrow/handler/nats"
	escrowrepo "github.com/piresc/angkut/services/escrow/repository"
	escrowuc "github.com/piresc/angkut/services/escrow/usecase"
)

func main() {
	appName := "booking-service"
	configPath := "config/booking.env"
	configs := config.InitConfig(configPath)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger.SetGlobalLogger(zapLogger)

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		logger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", logger.Err(err))
	}

	// Initialize MongoDB for the truck activity log
	mongoClient, err := database.NewMongoClient(configs.Mongo)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", logger.Err(err))
	}

	// Initialize NATS and make sure the streams exist
	natsClient, err := nats.NewClient(configs.NATS.URL)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", logger.Err(err))
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := natsClient.EnsureStreams(ctx, nats.DefaultStreamConfigs()...); err != nil {
		cancel()
		logger.Fatal("Failed to create JetStream streams", logger.Err(err))
	}
	cancel()

	// Initialize NSQ producer for notifications
	nsqProducer, err := nsq.NewProducer(configs.NSQ.Address)
	if err != nil {
		logger.Fatal("Failed to connect to NSQ", logger.Err(err))
	}
	notifier := nsq.NewNotifier(nsqProducer, configs.NSQ.NotificationTopic)

	locker := lock.NewRedisLocker(redisClient, configs.Lock)

	// Initialize repositories
	db := postgresClient.GetDB()
	bookingRepo := bookingrepo.NewBookingRepository(configs, db)
	truckRepo := bookingrepo.NewTruckRepository(db)
	collection := configs.Mongo.Collection
	if collection == "" {
		collection = bookingrepo.DefaultActivityCollection
	}
	activityRepo := bookingrepo.NewActivityRepository(mongoClient.Collection(collection))
	paymentRepo := escrowrepo.NewPaymentRepository(configs, db)

	// Initialize gateways
	geocoder := bookinggw.NewGeocoderGateway(configs.Geocoder, redisClient)
	events := bookinggw.NewEventGateway(natsClient)
	paymentGW := escrowgw.NewPaymentGateway(configs.PaymentGateway)

	// Initialize usecases
	escrowUC := escrowuc.NewEscrowUC(configs, paymentRepo, bookingRepo, paymentGW, notifier, locker)
	bookingUC := bookinguc.NewBookingUC(configs, bookingRepo, truckRepo, activityRepo,
		geocoder, newEstimator(configs.Routing), events, notifier, locker, escrowUC)

	// Initialize NATS consumers
	paymentResults := escrownats.NewPaymentResultHandler(escrowUC, natsClient)
	if err := paymentResults.InitNATSConsumers(context.Background()); err != nil {
		logger.Fatal("Failed to initialize NATS consumers", logger.Err(err))
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = utils.HTTPErrorHandler
	e.Server.ReadTimeout = time.Duration(configs.Server.ReadTimeout) * time.Second
	e.Server.WriteTimeout = time.Duration(configs.Server.WriteTimeout) * time.Second

	e.Use(middleware.PanicRecoveryMiddleware(zapLogger))
	e.Use(middleware.RequestContextMiddleware(appName))
	e.Use(logger.ZapEchoMiddleware(zapLogger))
	e.Use(middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RedisClient: redisClient.GetClient(),
		Resource:    "api",
		Limit:       120,
		Period:      time.Minute,
	}))

	// Register health endpoints
	healthService := health.NewHealthService()
	healthService.AddChecker("postgres", health.NewPostgresHealthChecker(postgresClient))
	healthService.AddChecker("redis", health.NewRedisHealthChecker(redisClient))
	healthService.AddChecker("mongo", health.NewMongoHealthChecker(mongoClient))
	healthService.AddChecker("nats", health.NewNATSHealthChecker(natsClient))
	healthService.AddChecker("nsq", health.CheckerFunc(func(context.Context) error { return nsqProducer.Ping() }))
	health.RegisterHealthEndpoints(e, appName, configs.App.Version, healthService)

	// Register service routes
	auth := middleware.JWTAuthMiddleware(configs.JWT)
	bookinghttp.NewBookingHandler(bookingUC).RegisterRoutes(e, auth)
	escrowhttp.NewPaymentHandler(escrowUC).RegisterRoutes(e, auth,
		middleware.ValidateAPIKey("payment-gateway", configs.APIKey.PaymentGatewayHash))

	addr := fmt.Sprintf("%s:%d", configs.Server.Host, configs.Server.Port)
	srv := server.NewGracefulServer(e, zapLogger, addr, time.Duration(configs.Server.ShutdownTimeout)*time.Second)
	srv.OnShutdown("logger", func(context.Context) error { return zapLogger.Close() })
	srv.OnShutdown("postgres", func(context.Context) error { return postgresClient.Close() })
	srv.OnShutdown("redis", func(context.Context) error { return redisClient.Close() })
	srv.OnShutdown("mongo", mongoClient.Close)
	srv.OnShutdown("nats", func(context.Context) error { natsClient.Close(); return nil })
	srv.OnShutdown("nsq", func(context.Context) error { nsqProducer.Stop(); return nil })

	if err := srv.Start(); err != nil {
		logger.Fatal("Server stopped with error", logger.Err(err))
	}
}

// newEstimator prefers road distances and falls back to great-circle
// distance when routing is disabled or fails
func newEstimator(cfg models.RoutingConfig) distance.Estimator {
	haversine := distance.NewHaversine(cfg.AvgSpeedKmh)
	if !cfg.Enabled || cfg.BaseURL == "" {
		return haversine
	}
	return distance.WithFallback(distance.NewRouting(cfg), haversine)
}
