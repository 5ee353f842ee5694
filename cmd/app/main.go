package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"dispatch/cmd"
	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db := mustOpenDB(configs)
	if err := postgres.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	root, err := cmd.NewCompositionRoot(configs, db, logger)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	jobManager := jobs.NewJobManager(
		root.CreateExpirePublishedOrdersCommandHandler(),
		configs.OrderExpiryThreshold,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),

		GeoServiceAddr:         goDotEnvVariable("GEO_SERVICE_ADDR"),
		KafkaHost:              goDotEnvVariable("KAFKA_HOST"),
		KafkaOrderChangedTopic: goDotEnvVariable("KAFKA_ORDER_CHANGED_TOPIC"),

		TariffBase:            envInt64("TARIFF_BASE"),
		TariffPerKmRate:       envFloat("TARIFF_PER_KM_RATE"),
		TariffFreeKm:          envFloat("TARIFF_FREE_KM"),
		TariffVatRate:         envFloat("TARIFF_VAT_RATE"),
		TariffCommissionRate:  envFloat("TARIFF_COMMISSION_RATE"),
		TariffNightMultiplier: envFloat("TARIFF_NIGHT_MULTIPLIER"),

		OrderExpiryThreshold: envDuration("ORDER_EXPIRY_THRESHOLD"),
	}
}

func goDotEnvVariable(key string) string {
	if err := godotenv.Load(".env"); err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func envInt64(key string) int64 {
	value, err := strconv.ParseInt(goDotEnvVariable(key), 10, 64)
	if err != nil {
		log.Fatalf("Invalid integer for %s: %v", key, err)
	}
	return value
}

func envFloat(key string) float64 {
	value, err := strconv.ParseFloat(goDotEnvVariable(key), 64)
	if err != nil {
		log.Fatalf("Invalid float for %s: %v", key, err)
	}
	return value
}

func envDuration(key string) time.Duration {
	value, err := time.ParseDuration(goDotEnvVariable(key))
	if err != nil {
		log.Fatalf("Invalid duration for %s: %v", key, err)
	}
	return value
}

func mustOpenDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	return db
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(httpin.Handlers{
		CreateOrder:     root.CreateCreateOrderCommandHandler(),
		PublishOrder:    root.CreatePublishOrderCommandHandler(),
		ClaimOrder:      root.CreateClaimOrderCommandHandler(),
		ClaimNextOrder:  root.CreateClaimNextOrderCommandHandler(),
		PickupOrder:     root.CreatePickupOrderCommandHandler(),
		DeliverOrder:    root.CreateDeliverOrderCommandHandler(),
		CancelOrder:     root.CreateCancelOrderCommandHandler(),
		CreateCourier:   root.CreateCreateCourierCommandHandler(),
		SetBlocked:      root.CreateSetCourierBlockedCommandHandler(),
		AdjustBalance:   root.CreateAdjustBalanceCommandHandler(),
		Reconcile:       root.CreateReconcileCourierBalanceCommandHandler(),
		RequestPayout:   root.CreateRequestPayoutCommandHandler(),
		ResolvePayout:   root.CreateResolvePayoutCommandHandler(),
		CompletePayout:  root.CreateCompletePayoutCommandHandler(),
		OrderByNumber:   root.CreateGetOrderByNumberQueryHandler(),
		ClaimableOrders: root.CreateGetClaimableOrdersQueryHandler(),
		OrderHistory:    root.CreateGetOrderHistoryQueryHandler(),
		CourierBalance:  root.CreateGetCourierBalanceQueryHandler(),
		CourierLedger:   root.CreateGetCourierLedgerQueryHandler(),
	})
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
