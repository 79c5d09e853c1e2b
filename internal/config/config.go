package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const defaultConfigPath = "./config/local.yaml"

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"prod"`
	HTTPServer `yaml:"http_server"`
	Backend    Backend `yaml:"backend"`
	Journal    Journal `yaml:"journal"`

	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" env-separator:","`

	AdminLogin string `yaml:"admin_login" env:"ADMIN_LOGIN"`
	AdminPass  string `yaml:"admin_pass" env:"ADMIN_PASS"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Backend описывает API калькулятора, к которому ходит страница заказа.
type Backend struct {
	BaseURL string        `yaml:"base_url" env:"BACKEND_URL" env-default:"http://localhost:5000"`
	Timeout time.Duration `yaml:"timeout" env:"BACKEND_TIMEOUT" env-default:"30s"`

	// OrdersURL - список заказов. Пусто: страница /orders калькулятора.
	OrdersURL string `yaml:"orders_url" env:"ORDERS_URL"`
}

// ListURL возвращает адрес, куда ведут ссылки "Назад" и "Вернуться к списку".
func (b Backend) ListURL() string {
	if b.OrdersURL != "" {
		return b.OrdersURL
	}
	return strings.TrimRight(b.BaseURL, "/") + "/orders"
}

// Journal - журнал действий по заказу. Пустой DSN отключает журнал.
type Journal struct {
	DSN         string `yaml:"dsn" env:"JOURNAL_DSN"`
	RecentLimit int    `yaml:"recent_limit" env-default:"5"`
}

// Load читает YAML по пути path и накладывает переменные окружения.
// Если файла нет, конфиг собирается только из окружения.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	var cfg Config

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("%s: read env: %w", op, err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: read %s: %w", op, path, err)
	}

	return &cfg, nil
}

func MustConfig() *Config {
	// .env нужен только локально, его отсутствие не ошибка
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}
