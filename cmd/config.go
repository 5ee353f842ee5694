package cmd

import "time"

// Config carries everything the composition root needs to wire the
// application. Values come from the environment; see cmd/app/main.go.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	GeoServiceAddr         string
	KafkaHost              string
	KafkaOrderChangedTopic string

	TariffBase            int64
	TariffPerKmRate       float64
	TariffFreeKm          float64
	TariffVatRate         float64
	TariffCommissionRate  float64
	TariffNightMultiplier float64

	OrderExpiryThreshold time.Duration
}
