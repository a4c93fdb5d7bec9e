package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"
)

type (
	Telegram struct {
		BotToken       string
		RequestTimeout time.Duration // таймаут исходящих вызовов Bot API
		PollTimeout    time.Duration // long polling getUpdates
	}

	HTTPServer struct {
		Host             string
		Port             string
		APISecretKey     string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // middleware rate limiter capacity
		RateLimiterBurst int           // middleware rate limiter refill
		PprofEnabled     bool
		PprofPort        string
	}

	Website struct {
		URL string
	}

	Database struct {
		DSN      string
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
	}

	Click struct {
		ServiceID int64
		SecretKey string
	}

	Payme struct {
		Login       string
		MerchantKey string
	}

	Payments struct {
		Click Click
		Payme Payme
	}

	Registration struct {
		SessionTTL      time.Duration
		CleanupInterval time.Duration
	}

	Kafka struct {
		PortHealthcheck string
		Brokers         string
		Topic           string
		ConsumerGroup   string
		Sarama          Sarama
		Handlers        KafkaHandlers
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		OrderStatusChanged OrderStatusChanged
	}

	OrderStatusChanged struct {
		ProcessTimeout time.Duration
	}

	Config struct {
		Telegram     Telegram
		Server       HTTPServer
		Website      Website
		Database     Database
		Payments     Payments
		Registration Registration
		Kafka        Kafka
	}
)

const (
	defaultWebhookHost             = "0.0.0.0"
	defaultWebhookPort             = "8080"
	defaultWebsiteURL              = "http://localhost:5173"
	defaultRequestTimeout          = 10 * time.Second
	defaultRateLimitQPS            = 100
	defaultRateLimitBurst          = 50
	defaultTelegramRequestTimeout  = 10 * time.Second
	defaultTelegramPollTimeout     = 30 * time.Second
	defaultRegistrationSessionTTL  = 30 * time.Minute
	defaultRegistrationCleanup     = 5 * time.Minute
	defaultPaymeLogin              = "Paycom"
	defaultOrderStatusChangedLimit = 15 * time.Second
)

// Load читает конфигурацию HTTP-сервиса и бота.
func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

// LoadWorker читает конфигурацию kafka-воркера: база и HTTP-сервер ему не нужны.
func LoadWorker() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateTelegram(cfg.Telegram); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	if err := validateKafka(cfg.Kafka); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func (d Database) ConnString() string {
	if d.DSN != "" {
		return d.DSN
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     d.DBName,
		RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
	}
	return u.String()
}

func (s HTTPServer) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

func loadFromEnv() (*Config, error) {
	telegramRequestTimeout, err := osGetEnvDuration("TELEGRAM_REQUEST_TIMEOUT", defaultTelegramRequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	telegramPollTimeout, err := osGetEnvDuration("TELEGRAM_POLL_TIMEOUT", defaultTelegramPollTimeout)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT", defaultRequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS", defaultRateLimitQPS)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST", defaultRateLimitBurst)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	clickServiceID, err := osGetInt64("CLICK_SERVICE_ID")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	sessionTTL, err := osGetEnvDuration("REGISTRATION_SESSION_TTL", defaultRegistrationSessionTTL)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	cleanupInterval, err := osGetEnvDuration("REGISTRATION_CLEANUP_INTERVAL", defaultRegistrationCleanup)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	orderStatusChangedTimeout, err := osGetEnvDuration("KAFKA_HANDLER_ORDER_STATUS_CHANGED_PROCESS_TIMEOUT", defaultOrderStatusChangedLimit)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		Telegram: Telegram{
			BotToken:       os.Getenv("BOT_TOKEN"),
			RequestTimeout: telegramRequestTimeout,
			PollTimeout:    telegramPollTimeout,
		},
		Server: HTTPServer{
			Host:             osGetString("WEBHOOK_HOST", defaultWebhookHost),
			Port:             osGetString("WEBHOOK_PORT", defaultWebhookPort),
			APISecretKey:     os.Getenv("API_SECRET_KEY"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
		},
		Website: Website{
			URL: osGetString("WEBSITE_URL", defaultWebsiteURL),
		},
		Database: Database{
			DSN:      os.Getenv("POSTGRES_DSN"),
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  osGetString("POSTGRES_SSLMODE", "disable"),
		},
		Payments: Payments{
			Click: Click{
				ServiceID: clickServiceID,
				SecretKey: os.Getenv("CLICK_SECRET_KEY"),
			},
			Payme: Payme{
				Login:       osGetString("PAYME_LOGIN", defaultPaymeLogin),
				MerchantKey: os.Getenv("PAYME_MERCHANT_KEY"),
			},
		},
		Registration: Registration{
			SessionTTL:      sessionTTL,
			CleanupInterval: cleanupInterval,
		},
		Kafka: Kafka{
			Brokers:         os.Getenv("KAFKA_BROKERS"),
			Topic:           os.Getenv("KAFKA_TOPIC"),
			ConsumerGroup:   os.Getenv("KAFKA_CONSUMER_GROUP"),
			PortHealthcheck: os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Handlers: KafkaHandlers{
				OrderStatusChanged: OrderStatusChanged{
					ProcessTimeout: orderStatusChangedTimeout,
				},
			},
		},
	}, nil
}

func validateConfig(cfg *Config) error {
	if err := validateTelegram(cfg.Telegram); err != nil {
		return err
	}

	if cfg.Server.Port == "" {
		return errors.New("WEBHOOK_PORT is required")
	}
	if cfg.Server.APISecretKey == "" {
		return errors.New("API_SECRET_KEY is required")
	}
	if cfg.Server.RequestTimeout <= 0 {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT must be positive")
	}
	if cfg.Server.RateLimiterQPS <= 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS must be positive")
	}
	if cfg.Server.RateLimiterBurst <= 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST must be positive")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PPROF_PORT is required when PPROF_ENABLED=true")
	}

	if cfg.Website.URL == "" {
		return errors.New("WEBSITE_URL is required")
	}

	if cfg.Database.DSN == "" {
		if cfg.Database.Host == "" {
			return errors.New("POSTGRES_HOST is required (or POSTGRES_DSN)")
		}
		if cfg.Database.Port == "" {
			return errors.New("POSTGRES_PORT is required (or POSTGRES_DSN)")
		}
		if cfg.Database.User == "" {
			return errors.New("POSTGRES_USER is required (or POSTGRES_DSN)")
		}
		if cfg.Database.DBName == "" {
			return errors.New("POSTGRES_DB is required (or POSTGRES_DSN)")
		}
	}

	if cfg.Payments.Click.SecretKey == "" {
		return errors.New("CLICK_SECRET_KEY is required")
	}
	if cfg.Payments.Click.ServiceID <= 0 {
		return errors.New("CLICK_SERVICE_ID is required")
	}
	if cfg.Payments.Payme.MerchantKey == "" {
		return errors.New("PAYME_MERCHANT_KEY is required")
	}

	if cfg.Registration.SessionTTL <= 0 {
		return errors.New("REGISTRATION_SESSION_TTL must be positive")
	}
	if cfg.Registration.CleanupInterval <= 0 {
		return errors.New("REGISTRATION_CLEANUP_INTERVAL must be positive")
	}

	return nil
}

func validateTelegram(cfg Telegram) error {
	if cfg.BotToken == "" {
		return errors.New("BOT_TOKEN is required")
	}
	if cfg.RequestTimeout <= 0 {
		return errors.New("TELEGRAM_REQUEST_TIMEOUT must be positive")
	}
	if cfg.PollTimeout <= 0 {
		return errors.New("TELEGRAM_POLL_TIMEOUT must be positive")
	}
	return nil
}

func validateKafka(cfg Kafka) error {
	if cfg.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if cfg.Topic == "" {
		return errors.New("KAFKA_TOPIC is required")
	}
	if cfg.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if cfg.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}
	if cfg.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}
	if cfg.Handlers.OrderStatusChanged.ProcessTimeout <= 0 {
		return errors.New("KAFKA_HANDLER_ORDER_STATUS_CHANGED_PROCESS_TIMEOUT must be positive")
	}
	return nil
}

func osGetString(s, fallback string) string {
	if val := os.Getenv(s); val != "" {
		return val
	}
	return fallback
}

func osGetInt(s string, fallback int) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return fallback, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetInt64(s string) (int64, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid int64 format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string, fallback time.Duration) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return fallback, nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
