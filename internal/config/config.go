// Package config предоставялет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env        string `yaml:"env"`
	Shopify    `yaml:"shopify"`
	HTTPServer `yaml:"http_server"`
	RateLimit  `yaml:"rate_limit"`
}

// Shopify структура для настройки подключения к Admin API магазина
type Shopify struct {
	StoreDomain   string        `yaml:"store_domain" env:"SHOPIFY_STORE_DOMAIN"`
	AccessToken   string        `yaml:"access_token" env:"SHOPIFY_ACCESS_TOKEN"`
	APIKey        string        `yaml:"api_key" env:"SHOPIFY_API_KEY"`
	APISecret     string        `yaml:"api_secret" env:"SHOPIFY_API_SECRET"`
	APIVersion    string        `yaml:"api_version" env-default:"2024-10"`
	HostName      string        `yaml:"host_name" env:"SHOPIFY_HOST_NAME"`
	ClientTimeout time.Duration `yaml:"client_timeout" env-default:"15s"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// RateLimit структура для настройки ограничителя частоты запросов
type RateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"2"`
	Burst int     `yaml:"burst" env-default:"4"`
}

// MustLoad функция для загрузки конфига, возвращает конфиг, сгенерированный из config/config.yaml
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
