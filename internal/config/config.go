package config

import (
	"fmt"
	"math"
	"time"

	cleanenvport "github.com/wb-go/wbf/config/cleanenv-port"
	"github.com/wb-go/wbf/logger"

	"github.com/deccantrails/tourbooker/internal/ranking"
)

type Config struct {
	Server       ServerConfig       `yaml:"server"       validate:"required"`
	Logger       LoggerConfig       `yaml:"logger"       validate:"required"`
	Gin          GinConfig          `yaml:"gin"          validate:"required"`
	Postgres     PostgresConfig     `yaml:"postgres"     validate:"required"`
	Redis        RedisConfig        `yaml:"redis"`
	Scheduler    SchedulerConfig    `yaml:"scheduler"    validate:"required"`
	Telegram     TelegramConfig     `yaml:"telegram"`
	Catalog      CatalogConfig      `yaml:"catalog"      validate:"required"`
	Ranking      RankingConfig      `yaml:"ranking"`
	Booking      BookingConfig      `yaml:"booking"`
	Availability AvailabilityConfig `yaml:"availability"`
	RateLimit    RateLimitConfig    `yaml:"rate_limit"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr"          env:"SERVER_ADDR"          env-default:":8080" validate:"required"`
	ReadTimeout  time.Duration `yaml:"read_timeout"  env:"SERVER_READ_TIMEOUT"  env-default:"10s"   validate:"gt=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"10s"   validate:"gt=0"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"  env:"SERVER_IDLE_TIMEOUT"  env-default:"60s"   validate:"gt=0"`
}

type LoggerConfig struct {
	Engine string `yaml:"engine" env:"LOG_ENGINE" env-default:"slog"  validate:"required,oneof=slog zap zerolog logrus"`
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"  validate:"required,oneof=debug info warn error"`
}

func (c LoggerConfig) LogLevel() logger.Level {
	switch c.Level {
	case "debug":
		return logger.DebugLevel
	case "warn":
		return logger.WarnLevel
	case "error":
		return logger.ErrorLevel
	default:
		return logger.InfoLevel
	}
}

func (c LoggerConfig) LogEngine() logger.Engine {
	return logger.Engine(c.Engine)
}

type GinConfig struct {
	Mode string `yaml:"mode" env:"GIN_MODE" env-default:"debug" validate:"required,oneof=debug release test"`
}

type PostgresConfig struct {
	Host            string        `yaml:"host"              env:"DB_HOST"              env-default:"localhost"   validate:"required"`
	Port            int           `yaml:"port"              env:"DB_PORT"              env-default:"5432"        validate:"required,min=1,max=65535"`
	User            string        `yaml:"user"              env:"DB_USER"              env-default:"postgres"    validate:"required"`
	Password        string        `yaml:"password"          env:"DB_PASSWORD"          env-default:"postgres"    validate:"required"`
	Database        string        `yaml:"database"          env:"DB_NAME"              env-default:"tourbooker"  validate:"required"`
	SSLMode         string        `yaml:"sslmode"           env:"DB_SSLMODE"           env-default:"disable"     validate:"required,oneof=disable require verify-ca verify-full"`
	MaxOpenConns    int           `yaml:"max_open_conns"    env:"DB_MAX_OPEN_CONNS"    env-default:"10"          validate:"min=1"`
	MaxIdleConns    int           `yaml:"max_idle_conns"    env:"DB_MAX_IDLE_CONNS"    env-default:"5"           validate:"min=1"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"5m"          validate:"gt=0"`
}

func (p *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// RedisConfig with an empty Addr disables the search cache.
type RedisConfig struct {
	Addr     string        `yaml:"addr"      env:"REDIS_ADDR"      env-default:""`
	Password string        `yaml:"password"  env:"REDIS_PASSWORD"  env-default:""`
	DB       int           `yaml:"db"        env:"REDIS_DB"        env-default:"0"`
	CacheTTL time.Duration `yaml:"cache_ttl" env:"REDIS_CACHE_TTL" env-default:"30s"`
}

type SchedulerConfig struct {
	Interval time.Duration `yaml:"interval" env:"SCHEDULER_INTERVAL" env-default:"30s" validate:"required,gt=0"`
}

type TelegramConfig struct {
	BotToken  string `yaml:"bot_token"    env:"TELEGRAM_BOT_TOKEN"    env-default:""`
	OpsChatID int64  `yaml:"ops_chat_id"  env:"TELEGRAM_OPS_CHAT_ID"  env-default:"0"`
}

type CatalogConfig struct {
	DataFile   string `yaml:"data_file"   env:"CATALOG_DATA_FILE"   env-default:"data/catalog.json" validate:"required"`
	SafetyFile string `yaml:"safety_file" env:"CATALOG_SAFETY_FILE" env-default:"data/safety.json"  validate:"required"`
}

type RankingConfig struct {
	MaxRadiusMeters float64 `yaml:"max_radius_meters" env:"RANKING_MAX_RADIUS_METERS" env-default:"10000" validate:"gt=0"`
	WeightDistance  float64 `yaml:"weight_distance"   env:"RANKING_WEIGHT_DISTANCE"   env-default:"0.4"   validate:"min=0,max=1"`
	WeightRating    float64 `yaml:"weight_rating"     env:"RANKING_WEIGHT_RATING"     env-default:"0.3"   validate:"min=0,max=1"`
	WeightMatch     float64 `yaml:"weight_match"      env:"RANKING_WEIGHT_MATCH"      env-default:"0.3"   validate:"min=0,max=1"`
}

// Weights returns the relevance weights. The three weights must sum to 1.
func (r RankingConfig) Weights() (ranking.Weights, error) {
	sum := r.WeightDistance + r.WeightRating + r.WeightMatch
	if math.Abs(sum-1) > 1e-9 {
		return ranking.Weights{}, fmt.Errorf("ranking weights must sum to 1, got %g", sum)
	}
	return ranking.Weights{
		Distance: r.WeightDistance,
		Rating:   r.WeightRating,
		Match:    r.WeightMatch,
	}, nil
}

type BookingConfig struct {
	LockTimeout         time.Duration `yaml:"lock_timeout"          env:"BOOKING_LOCK_TIMEOUT"          env-default:"5s"  validate:"gt=0"`
	PendingTTL          time.Duration `yaml:"pending_ttl"           env:"BOOKING_PENDING_TTL"           env-default:"30m" validate:"gt=0"`
	RefundCutoff        time.Duration `yaml:"refund_cutoff"         env:"BOOKING_REFUND_CUTOFF"         env-default:"24h" validate:"gt=0"`
	RefundBeforePercent int           `yaml:"refund_before_percent" env:"BOOKING_REFUND_BEFORE_PERCENT" env-default:"100" validate:"min=0,max=100"`
	RefundAfterPercent  int           `yaml:"refund_after_percent"  env:"BOOKING_REFUND_AFTER_PERCENT"  env-default:"0"   validate:"min=0,max=100"`
}

type AvailabilityConfig struct {
	HorizonDays int `yaml:"horizon_days" env:"AVAILABILITY_HORIZON_DAYS" env-default:"7" validate:"min=1"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"   env:"RATE_LIMIT_RPS"   env-default:"20"`
	Burst int     `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"40"`
}

func MustLoad() *Config {
	var cfg Config
	if err := cleanenvport.Load(&cfg); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return &cfg
}
