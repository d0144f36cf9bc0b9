// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env-default:"local"`
	PublicBaseURL           string `yaml:"public_base_url" env-default:"http://localhost:8080"`
	StorageConnectionString string `yaml:"storage_connection_string"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	DownloadToken           `yaml:"download_token"`
	PaymentProvider         `yaml:"payment_provider"`
	Media                   `yaml:"media"`
	RabbitMQ                `yaml:"rabbitmq"`
	SMTP                    `yaml:"smtp"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:"0.0.0.0:8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis,
// где хранятся корзины пользователей
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// JWTToken структура для работы с jwt-токеном сессии
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// DownloadToken структура для настройки подписанных токенов скачивания
type DownloadToken struct {
	DownloadSecretKey string        `yaml:"download_secret_key" env:"DOWNLOAD_SECRET_KEY"`
	DownloadTTL       time.Duration `yaml:"download_ttl" env-default:"24h"`
}

// PaymentProvider структура для настройки платёжного провайдера.
// AllowUnverifiedWebhooks разрешает принимать webhook без подписи,
// когда секрет не настроен. Только для локальной разработки,
// по умолчанию выключено.
type PaymentProvider struct {
	ProviderAPIURL          string `yaml:"provider_api_url" env-default:"https://api.payments.example/v1"`
	ProviderSecretKey       string `yaml:"provider_secret_key" env:"PROVIDER_SECRET_KEY"`
	WebhookSecret           string `yaml:"webhook_secret" env:"WEBHOOK_SECRET"`
	AllowUnverifiedWebhooks bool   `yaml:"allow_unverified_webhooks" env-default:"false"`
}

// Media структура для настройки локального файлового хранилища
type Media struct {
	MediaDir      string `yaml:"media_dir" env-default:"./videos"`
	MaxUploadSize int64  `yaml:"max_upload_size" env-default:"1073741824"`
}

// RabbitMQ структура для настройки подключения к брокеру сообщений
type RabbitMQ struct {
	RabbitConnection string        `yaml:"rabbit_connection"`
	ConnectRetries   int           `yaml:"connect_retries" env-default:"5"`
	ConnectDelay     time.Duration `yaml:"connect_delay" env-default:"3s"`
}

// SMTP структура для настройки отправки почты
type SMTP struct {
	SMTPHost string `yaml:"smtp_host"`
	SMTPPort string `yaml:"smtp_port" env-default:"587"`
	SMTPUser string `yaml:"smtp_user"`
	SMTPPass string `yaml:"smtp_pass" env:"SMTP_PASS"`
}

// MustLoad функция для загрузки конфига, путь берётся из переменной CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
