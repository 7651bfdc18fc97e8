package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Input boundary
	ListingsFolder  string
	DeleteProcessed bool

	// Store files
	PriceStorePath string
	SeenStorePath  string

	// Optional cycle archive
	DatabaseURL string

	// Market assumptions
	SpotPrice           float64
	PawnPayoutPct       float64
	NumismaticPayoutPct float64
	BidOffset           float64
	MinMarginPct        float64
	MaxMarginPct        float64

	// Quantity inference
	BulkTolerantQuantity bool

	// EMA capture hygiene
	EMAAlpha               float64
	PriceCaptureBumpPct    float64
	PriceCaptureMaxMinutes int

	// Prospect scoring knobs
	ProsMaxTotal           float64 // 0 disables the total-spend cap
	ProsMinDealerMarginPct float64
	ProsMinScore           int
	ProsCat3TolerancePct   float64
	ProsCat3Bonus          int
	ProsCat3RequireSoon    bool
	ProsCat3MaxMinutes     int

	// Loop timing and API
	ScanInterval time.Duration
	HTTPPort     string

	// Report export
	ReportXLSXPath    string
	SheetsSpreadsheet string
	SheetsCredentials string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		ListingsFolder:  envOrDefault("LISTINGS_FOLDER", "./listings"),
		DeleteProcessed: envOrDefaultBool("DELETE_PROCESSED", true),

		PriceStorePath: envOrDefault("PRICE_STORE_PATH", "price_store.json"),
		SeenStorePath:  envOrDefault("SEEN_STORE_PATH", "seen_hits.json"),

		DatabaseURL: envOrDefault("DATABASE_URL", ""),

		SpotPrice:           envOrDefaultFloat("SPOT_PRICE", 62.00),
		PawnPayoutPct:       envOrDefaultFloat("PAWN_PAYOUT_PCT", 82.0),
		NumismaticPayoutPct: envOrDefaultFloat("NUMISMATIC_PAYOUT_PCT", 60.0),
		BidOffset:           envOrDefaultFloat("BID_OFFSET", 0),
		MinMarginPct:        envOrDefaultFloat("MIN_MARGIN_PCT", 12.0),
		MaxMarginPct:        envOrDefaultFloat("MAX_MARGIN_PCT", 60.0),

		BulkTolerantQuantity: envOrDefaultBool("BULK_TOLERANT_QUANTITY", false),

		EMAAlpha:               envOrDefaultFloat("EMA_ALPHA", 0.40),
		PriceCaptureBumpPct:    envOrDefaultFloat("PRICE_CAPTURE_BUMP_PCT", 0.08),
		PriceCaptureMaxMinutes: envOrDefaultInt("PRICE_CAPTURE_MAX_MINUTES", 30),

		ProsMaxTotal:           envOrDefaultFloat("PROS_MAX_TOTAL", 150.0),
		ProsMinDealerMarginPct: envOrDefaultFloat("PROS_MIN_DEALER_MARGIN_PCT", 15.0),
		ProsMinScore:           envOrDefaultInt("PROS_MIN_SCORE", 70),
		ProsCat3TolerancePct:   envOrDefaultFloat("PROS_CAT3_TOLERANCE_PCT", 5.0),
		ProsCat3Bonus:          envOrDefaultInt("PROS_CAT3_BONUS", 35),
		ProsCat3RequireSoon:    envOrDefaultBool("PROS_CAT3_REQUIRE_ENDING_SOON", true),
		ProsCat3MaxMinutes:     envOrDefaultInt("PROS_CAT3_MAX_MINUTES", 30),

		ScanInterval: envOrDefaultDuration("SCAN_INTERVAL", 66*time.Second),
		HTTPPort:     envOrDefault("HTTP_PORT", "8080"),

		ReportXLSXPath:    envOrDefault("REPORT_XLSX_PATH", "silver_report.xlsx"),
		SheetsSpreadsheet: envOrDefault("SHEETS_SPREADSHEET_ID", ""),
		SheetsCredentials: envOrDefault("SHEETS_CREDENTIALS_JSON", ""),
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return n
	}
	return defaultVal
}

func envOrDefaultFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			slog.Warn("invalid float env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return f
	}
	return defaultVal
}

func envOrDefaultBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return b
	}
	return defaultVal
}

func envOrDefaultDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}
