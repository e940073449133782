package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port  int
	Debug bool

	// Data source: "xlsx", "postgres" or "suumo".
	Source    string
	XLSXPath  string
	SheetName string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	SnapshotToDB     bool

	MaxConcurrency int
	RateLimitMs    int
	MaxRetries     int

	ScrapeWards    []string
	PagesPerWard   int
	ChromeBin      string
	GeocodeEnabled bool
	GeocodeURL     string

	CSVSnapshotPath string

	// Map center used when no listing has valid coordinates.
	FallbackLat float64
	FallbackLon float64
	MapZoom     int
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		Port:  getEnvInt("PORT", 8080),
		Debug: getEnvBool("DEBUG", false),

		Source:    getEnv("DATA_SOURCE", "xlsx"),
		XLSXPath:  getEnv("XLSX_PATH", "./data/listings.xlsx"),
		SheetName: getEnv("SHEET_NAME", "tech0_01"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "fudousan"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "fudousan123"),
		PostgresDB:       getEnv("POSTGRES_DB", "rental_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		SnapshotToDB:     getEnvBool("SNAPSHOT_TO_DB", false),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 3),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 1000),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),

		ScrapeWards:    splitList(getEnv("SCRAPE_WARDS", "港区,中央区,千代田区")),
		PagesPerWard:   getEnvInt("PAGES_PER_WARD", 2),
		ChromeBin:      getEnv("CHROME_BIN", ""),
		GeocodeEnabled: getEnvBool("GEOCODE_ENABLED", false),
		GeocodeURL:     getEnv("GEOCODE_URL", "https://nominatim.openstreetmap.org/search"),

		CSVSnapshotPath: getEnv("CSV_SNAPSHOT_PATH", ""),

		FallbackLat: getEnvFloat("FALLBACK_LAT", 35.681236),
		FallbackLon: getEnvFloat("FALLBACK_LON", 139.767125),
		MapZoom:     getEnvInt("MAP_ZOOM", 12),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
