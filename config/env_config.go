package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type EnvConfig struct {
	Server struct {
		ListenAddress string
	}
	Auth struct {
		PublicAPIKey string
	}
	CORS struct {
		AllowDomains string
	}
	Redis struct {
		Password  string
		Database  int
		RedisHost string
		RedisPort string
	}
	Minio struct {
		Endpoint  string
		AccessKey string
		SecretKey string
		UseSSL    bool
	}
	RabbitMQ struct {
		Host     string
		Port     string
		Username string
		Password string
	}
	Photo struct {
		Bucket        string
		MaxSizeBytes  int64         // Max decoded photo size (default 5MB)
		SignedURLTTL  time.Duration // Validity window for presigned URLs
		MaxExpiryDays int           // Upper bound for event expiry
	}
	Sweeper struct {
		Interval time.Duration
	}
	Grafana struct {
		OTLPEndpoint string
		ServiceName  string
	}
	Environment struct {
		Mode string
	}
}

func LoadEnvConfig() *EnvConfig {
	var config EnvConfig

	config.Server.ListenAddress = os.Getenv("LISTEN_ADDRESS")
	if config.Server.ListenAddress == "" {
		config.Server.ListenAddress = ":8080"
	}

	config.Auth.PublicAPIKey = os.Getenv("PUBLIC_API_KEY")

	config.CORS.AllowDomains = os.Getenv("ALLOWED_DOMAINS")
	if config.CORS.AllowDomains == "" {
		config.CORS.AllowDomains = "*"
	}

	config.Redis.Password = os.Getenv("REDIS_PASSWORD")
	config.Redis.Database, _ = strconv.Atoi(os.Getenv("REDIS_DB"))
	config.Redis.RedisHost = os.Getenv("REDIS_HOST")
	if config.Redis.RedisHost == "" {
		config.Redis.RedisHost = "localhost"
	}
	config.Redis.RedisPort = os.Getenv("REDIS_PORT")
	if config.Redis.RedisPort == "" {
		config.Redis.RedisPort = "6379"
	}

	config.Minio.Endpoint = os.Getenv("MINIO_ENDPOINT")
	config.Minio.AccessKey = os.Getenv("MINIO_ACCESS_KEY")
	config.Minio.SecretKey = os.Getenv("MINIO_SECRET_KEY")
	config.Minio.UseSSL = os.Getenv("MINIO_USE_SSL") == "true"

	// RabbitMQ
	config.RabbitMQ.Host = os.Getenv("RABBITMQ_HOST")
	if config.RabbitMQ.Host == "" {
		config.RabbitMQ.Host = "localhost"
	}
	config.RabbitMQ.Port = os.Getenv("RABBITMQ_PORT")
	if config.RabbitMQ.Port == "" {
		config.RabbitMQ.Port = "5672"
	}
	config.RabbitMQ.Username = os.Getenv("RABBITMQ_USER")
	if config.RabbitMQ.Username == "" {
		config.RabbitMQ.Username = "guest"
	}
	config.RabbitMQ.Password = os.Getenv("RABBITMQ_PASSWORD")
	if config.RabbitMQ.Password == "" {
		config.RabbitMQ.Password = "guest"
	}

	config.Photo.Bucket = os.Getenv("PHOTO_BUCKET")
	if config.Photo.Bucket == "" {
		config.Photo.Bucket = "event-photos"
	}
	if sizeStr := os.Getenv("PHOTO_MAX_SIZE_BYTES"); sizeStr != "" {
		if size, err := strconv.ParseInt(sizeStr, 10, 64); err == nil {
			config.Photo.MaxSizeBytes = size
		}
	}
	if config.Photo.MaxSizeBytes == 0 {
		config.Photo.MaxSizeBytes = 5242880 // Default 5MB
	}
	if ttlStr := os.Getenv("SIGNED_URL_TTL"); ttlStr != "" {
		if ttl, err := time.ParseDuration(ttlStr); err == nil {
			config.Photo.SignedURLTTL = ttl
		}
	}
	if config.Photo.SignedURLTTL == 0 {
		config.Photo.SignedURLTTL = time.Hour
	}
	if daysStr := os.Getenv("MAX_EXPIRY_DAYS"); daysStr != "" {
		if days, err := strconv.Atoi(daysStr); err == nil && days > 0 {
			config.Photo.MaxExpiryDays = days
		}
	}
	if config.Photo.MaxExpiryDays == 0 {
		config.Photo.MaxExpiryDays = 30
	}

	if intervalStr := os.Getenv("SWEEP_INTERVAL"); intervalStr != "" {
		if interval, err := time.ParseDuration(intervalStr); err == nil {
			config.Sweeper.Interval = interval
		}
	}
	if config.Sweeper.Interval == 0 {
		config.Sweeper.Interval = time.Hour
	}

	// Grafana/OpenTelemetry
	grafanaEndpoint := os.Getenv("GRAFANA_OTLP_ENDPOINT")
	// Remove protocol for OpenTelemetry client to avoid duplicate protocols
	if strings.HasPrefix(grafanaEndpoint, "https://") {
		config.Grafana.OTLPEndpoint = strings.TrimPrefix(grafanaEndpoint, "https://")
	} else if strings.HasPrefix(grafanaEndpoint, "http://") {
		config.Grafana.OTLPEndpoint = strings.TrimPrefix(grafanaEndpoint, "http://")
	} else {
		config.Grafana.OTLPEndpoint = grafanaEndpoint
	}
	config.Grafana.ServiceName = os.Getenv("SERVICE_NAME")
	if config.Grafana.ServiceName == "" {
		config.Grafana.ServiceName = "eventsnap-service"
	}

	config.Environment.Mode = os.Getenv("DEPLOY_ENV")
	if config.Environment.Mode == "" {
		config.Environment.Mode = "development"
	}

	return &config
}
