package config

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Config struct {
	Port            string
	LogLevel        string
	PublicBaseURL   string
	UpstreamTimeout time.Duration

	// Backend the storefront talks to, normally the api-gateway.
	BackendURL string

	CatalogCacheTTL time.Duration

	OrderSubmitRetries int
	OrderRetryBackoff  time.Duration

	RedisHost string
	RedisPort string

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string

	KafkaBroker      string
	OrderStatusTopic string
	KafkaGroupID     string

	CORSAllowOrigins []string
}

func Load() Config {
	port := getenv("PORT", "8090")

	return Config{
		Port:            port,
		LogLevel:        getenv("LOG_LEVEL", "info"),
		PublicBaseURL:   strings.TrimRight(getenv("PUBLIC_BASE_URL", "http://localhost:"+port), "/"),
		UpstreamTimeout: parseDuration(getenv("UPSTREAM_TIMEOUT", "10s"), 10*time.Second),

		BackendURL: strings.TrimRight(getenv("BACKEND_URL", "http://localhost:8080"), "/"),

		CatalogCacheTTL: parseDuration(getenv("CATALOG_CACHE_TTL", "5m"), 5*time.Minute),

		OrderSubmitRetries: parseInt(getenv("ORDER_SUBMIT_RETRIES", "2"), 2),
		OrderRetryBackoff:  parseDuration(getenv("ORDER_RETRY_BACKOFF", "500ms"), 500*time.Millisecond),

		RedisHost: os.Getenv("REDIS_HOST"),
		RedisPort: getenv("REDIS_PORT", "6379"),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBName:     getenv("DB_NAME", "overcooked"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),

		KafkaBroker:      os.Getenv("KAFKA_BROKER"),
		OrderStatusTopic: getenv("ORDER_STATUS_TOPIC", "order-status"),
		KafkaGroupID:     getenv("KAFKA_GROUP_ID", "storefront"),

		CORSAllowOrigins: splitCSV(getenv("CORS_ALLOW_ORIGINS", "*")),
	}
}

// PostgresDSN is empty when no database host is configured.
func (c Config) PostgresDSN() string {
	if c.DBHost == "" {
		return ""
	}
	return "host=" + c.DBHost + " port=" + c.DBPort + " user=" + c.DBUser +
		" password=" + c.DBPassword + " dbname=" + c.DBName + " sslmode=disable"
}

// RedisAddr is empty when no redis host is configured.
func (c Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return c.RedisHost + ":" + c.RedisPort
}

func MustInitPostgres(cfg Config, logger *zap.Logger) *sql.DB {
	db, err := sql.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if err = db.Ping(); err != nil {
		logger.Fatal("failed to ping database", zap.Error(err))
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(cfg Config, logger *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr(),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}

	return client
}

func NewKafkaReader(cfg Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.KafkaBroker},
		Topic:   cfg.OrderStatusTopic,
		GroupID: cfg.KafkaGroupID,
	})
}

func NewKafkaWriter(cfg Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(cfg.KafkaBroker),
		Topic:    cfg.OrderStatusTopic,
		Balancer: &kafka.Hash{},
	}
}

// NewLogger builds a development logger for LOG_LEVEL=debug and a production
// logger otherwise.
func NewLogger(cfg Config) (*zap.Logger, error) {
	if strings.EqualFold(cfg.LogLevel, "debug") {
		return zap.NewDevelopment()
	}
	zcfg := zap.NewProductionConfig()
	if err := zcfg.Level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	return zcfg.Build()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func parseInt(v string, def int) int {
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
