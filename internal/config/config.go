package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	Telegram   `yaml:"telegram"`
	Storage    `yaml:"storage"`
	Giveaway   `yaml:"giveaway"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_SERVER_ADDRESS" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env:"HTTP_SERVER_TIMEOUT" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_SERVER_IDLE_TIMEOUT" env-default:"60s"`
}

type Telegram struct {
	BotToken string        `yaml:"bot_token" env:"TELEGRAM_BOT_TOKEN"`
	APIURL   string        `yaml:"api_url" env:"TELEGRAM_API_URL" env-default:"https://api.telegram.org"`
	Timeout  time.Duration `yaml:"timeout" env:"TELEGRAM_TIMEOUT" env-default:"10s"`
}

type Storage struct {
	DSN string `yaml:"dsn" env:"STORAGE_DSN"`
}

type Giveaway struct {
	RevealDelay time.Duration `yaml:"reveal_delay" env:"GIVEAWAY_REVEAL_DELAY" env-default:"3s"`
}

// MustLoad reads the config file pointed to by CONFIG_PATH, falling back to
// environment variables only when no file is configured. A missing bot token or
// storage DSN is not an error: the handlers degrade instead.
func MustLoad() *Config {
	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read config from env: %s", err)
		}

		return &cfg
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return &cfg
}
