package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const envPrefix = "TRUSTREVIEWS_"

type GeneratorConfig struct {
	ProductsPath string
	ReviewsPath  string
	OutputPath   string
	Seed         uint64 // 0 picks a random seed
	Timezone     string
}

type ServerConfig struct {
	Env             string        `validate:"oneof=development production test"`
	Addr            string        `validate:"required"`
	StaticIndex     string        `validate:"required"`
	CORSOrigins     []string      `validate:"min=1,dive,required"`
	RateLimitRPS    float64       `validate:"gte=0"`
	RateLimitBurst  int           `validate:"gte=0"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
}

type LogConfig struct {
	Level  string
	Format string `validate:"oneof=text json"`
}

func (c ServerConfig) IsProd() bool {
	return c.Env == "production"
}

var validate = validator.New()

// loadDotEnv reads .env when present; real environment variables win.
func loadDotEnv() {
	_ = godotenv.Load()
}

func LoadGeneratorConfig() GeneratorConfig {
	loadDotEnv()

	return GeneratorConfig{
		ProductsPath: getEnv("PRODUCTS_CSV", "products.csv"),
		ReviewsPath:  getEnv("REVIEWS_CSV", "reviews.csv"),
		OutputPath:   getEnv("OUTPUT_CSV", "new_reviews.csv"),
		Seed:         getEnvAsUint("SEED", 0),
		Timezone:     getEnv("TZ", "Local"),
	}
}

func LoadServerConfig() (ServerConfig, error) {
	loadDotEnv()

	cfg := ServerConfig{
		Env:             strings.ToLower(getEnv("ENV", "development")),
		Addr:            getEnv("HTTP_ADDR", ":8080"),
		StaticIndex:     getEnv("STATIC_INDEX", "static/index.html"),
		CORSOrigins:     getEnvAsList("CORS_ORIGINS", []string{"*"}),
		RateLimitRPS:    getEnvAsFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:  getEnvAsInt("RATE_LIMIT_BURST", 20),
		ShutdownTimeout: time.Duration(getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
	}
	if err := validate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("server config: %w", err)
	}
	return cfg, nil
}

func LoadLogConfig() (LogConfig, error) {
	loadDotEnv()

	cfg := LogConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}
	if err := validate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("log config: %w", err)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(envPrefix + key)); v != "" {
		return v
	}
	return def
}

func getEnvAsInt(key string, def int) int {
	if n, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return n
	}
	return def
}

func getEnvAsUint(key string, def uint64) uint64 {
	if n, err := strconv.ParseUint(getEnv(key, ""), 10, 64); err == nil {
		return n
	}
	return def
}

func getEnvAsFloat(key string, def float64) float64 {
	if f, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return f
	}
	return def
}

func getEnvAsList(key string, def []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
