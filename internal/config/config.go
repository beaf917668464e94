// Package config предоставляет структуры и функцию загрузки конфигурации бота.
package config

import (
	"log"
	"os"
	"time"

	"github.com/go-playground/validator"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/corpusfit/corpus-bot/internal/models"
)

// Config — общая структура настроек приложения.
type Config struct {
	Env                     string        `yaml:"env" env-default:"local"`
	BotToken                string        `yaml:"bot_token" env:"BOT_TOKEN" validate:"required"`
	GatewayURL              string        `yaml:"gateway_url" env-default:"https://api.telegram.org"`
	AdminIDs                []int64       `yaml:"admin_ids"`
	StorageConnectionString string        `yaml:"storage_connection_string" validate:"required"`
	MigrationsPath          string        `yaml:"migrations_path" env-default:"./migrations"`
	RetentionTTL            time.Duration `yaml:"retention_ttl" env-default:"24h"`
	ReapInterval            time.Duration `yaml:"reap_interval" env-default:"30s"`
	Plans                   []models.Plan `yaml:"plans" validate:"required,dive"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	Polling                 `yaml:"polling"`
}

// HTTPServer — настройки служебного HTTP-сервера (health, metrics, webhook).
type HTTPServer struct {
	Address     string        `yaml:"address" env-default:":8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection — настройки подключения к redis.
type RedisConnection struct {
	Addr        string        `yaml:"addr" env-default:"localhost:6379"`
	Password    string        `yaml:"password"`
	User        string        `yaml:"user"`
	DB          int           `yaml:"db"`
	MaxRetries  int           `yaml:"max_retries" env-default:"3"`
	DialTimeout time.Duration `yaml:"dial_timeout" env-default:"5s"`
	Timeout     time.Duration `yaml:"timeout" env-default:"3s"`
}

// Polling — настройки получения обновлений. Если WebhookPath задан,
// обновления принимаются по HTTP вместо long polling.
type Polling struct {
	PollTimeout time.Duration `yaml:"poll_timeout" env-default:"30s"`
	WebhookPath string        `yaml:"webhook_path"`
}

// MustLoad загружает конфиг из файла, указанного в CONFIG_PATH,
// валидирует его и завершает процесс при любой ошибке.
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
	if err := validator.New().Struct(cfg); err != nil {
		log.Fatalf("invalid config: %s", err)
	}
	return &cfg
}

// PlanByPayload возвращает план по payload инвойса.
func (c *Config) PlanByPayload(payload string) (*models.Plan, bool) {
	for i := range c.Plans {
		if c.Plans[i].Payload == payload {
			return &c.Plans[i], true
		}
	}
	return nil, false
}

// IsAdmin сообщает, входит ли пользователь в привилегированный набор.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}
