package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

const (
	defaultJWTLifetime    = 24 * time.Hour
	defaultStorageRoot    = "./uploads"
	defaultMaxUploadBytes = int64(10 << 20)
	defaultUserCacheSize  = 1024
	defaultUserCacheTTL   = 10 * time.Minute
	defaultBcryptCost     = 10
)

type (
	APP struct {
		Name        string
		Host        string
		Port        string
		Env         string
		JWTSecret   string
		JWTLifetime time.Duration
		BcryptCost  int
	}
	Storage struct {
		Root           string
		MaxUploadBytes int64
	}
	Cache struct {
		UserSize int
		UserTTL  time.Duration
	}
	DB struct {
		User     string
		Password string
		Name     string
		Host     string
		Port     string
		SSLMode  string
	}
	MQ struct {
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
	}

	Config struct {
		App     APP
		Storage Storage
		Cache   Cache
		DB      DB
		MQ      MQ
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v, err := strconv.ParseInt(getEnv(key, ""), 10, 64); err == nil {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(getEnv(key, "")); err == nil && v > 0 {
		return v
	}
	return def
}

func Load() Config {
	app := APP{
		Name:        getEnv("SERVICE_NAME", "filevault"),
		Host:        getEnv("SERVICE_HOST", ""),
		Port:        getEnv("SERVICE_PORT", "8080"),
		Env:         getEnv("SERVICE_ENV", ""),
		JWTSecret:   getEnv("SERVICE_JWT_SECRET", ""),
		JWTLifetime: getEnvDuration("SERVICE_JWT_LIFETIME", defaultJWTLifetime),
		BcryptCost:  getEnvInt("SERVICE_BCRYPT_COST", defaultBcryptCost),
	}
	storage := Storage{
		Root:           getEnv("STORAGE_ROOT", defaultStorageRoot),
		MaxUploadBytes: getEnvInt64("STORAGE_MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
	}
	cache := Cache{
		UserSize: getEnvInt("USER_CACHE_SIZE", defaultUserCacheSize),
		UserTTL:  getEnvDuration("USER_CACHE_TTL", defaultUserCacheTTL),
	}
	db := DB{
		User:     getEnv("POSTGRES_USER", ""),
		Password: getEnv("POSTGRES_PASSWORD", ""),
		Name:     getEnv("POSTGRES_DB", ""),
		Host:     getEnv("POSTGRES_HOST", ""),
		Port:     getEnv("POSTGRES_PORT", ""),
		SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
	}
	mq := MQ{
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", ""),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", "filevault.events"),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", "direct"),
		QueueName:    getEnv("RABBITMQ_QUEUE_NAME", "filevault.audit"),
	}

	return Config{
		App:     app,
		Storage: storage,
		Cache:   cache,
		DB:      db,
		MQ:      mq,
	}
}

func (c Config) DBDSN() (string, error) {
	return c.dbURL("postgres")
}

// MigrateDSN is DBDSN with the scheme golang-migrate's pgx/v5 driver expects.
func (c Config) MigrateDSN() (string, error) {
	return c.dbURL("pgx5")
}

func (c Config) dbURL(scheme string) (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	u := url.URL{
		Scheme:   scheme,
		User:     url.UserPassword(c.DB.User, c.DB.Password),
		Host:     c.DB.Host + ":" + c.DB.Port,
		Path:     "/" + c.DB.Name,
		RawQuery: url.Values{"sslmode": []string{c.DB.SSLMode}}.Encode(),
	}
	return u.String(), nil
}

// MQEnabled reports whether a broker is configured. Without one, domain
// events are discarded.
func (c Config) MQEnabled() bool { return c.MQ.Host != "" }

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}
