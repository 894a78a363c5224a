package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string     `yaml:"env" env-default:"local"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Postgres   Postgres   `yaml:"postgres"`
	JWT        JWT        `yaml:"jwt"`
	ES         ES         `yaml:"elasticsearch"`
	Minio      Minio      `yaml:"minio"`
	Assistant  Assistant  `yaml:"assistant"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:8081"`
	Timeout     time.Duration `yaml:"timeout" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type Postgres struct {
	Host     string `yaml:"host" env-default:"localhost"`
	Port     string `yaml:"port" env-default:"5432"`
	User     string `yaml:"user" env:"POSTGRES_USER"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD"`
	DBName   string `yaml:"dbname" env-default:"mentorlink"`
}

type JWT struct {
	SecretKey  string        `yaml:"secret_key" env:"JWT_SECRET"`
	AccessTTL  time.Duration `yaml:"access_token_ttl" env-default:"15m"`
	RefreshTTL time.Duration `yaml:"refresh_token_ttl" env-default:"720h"`
}

type ES struct {
	Hosts    []string `yaml:"hosts"`
	Index    string   `yaml:"index" env-default:"courses"`
	Password string   `yaml:"password" env:"ES_PASSWORD"`
}

type Minio struct {
	Endpoint        string        `yaml:"endpoint" env-default:"minio:9000"`
	AccessKey       string        `yaml:"access_key" env:"MINIO_ACCESS_KEY"`
	SecretKey       string        `yaml:"secret_key" env:"MINIO_SECRET_KEY"`
	UseSSL          bool          `yaml:"use_ssl"`
	ThumbnailBucket string        `yaml:"thumbnail_bucket" env-default:"course-thumbnails"`
	PresignTTL      time.Duration `yaml:"presign_ttl" env-default:"1h"`
}

type Assistant struct {
	APIKey          string        `yaml:"api_key" env:"GEMINI_API_KEY"`
	Model           string        `yaml:"model" env-default:"gemini-1.5-flash"`
	BaseURL         string        `yaml:"base_url" env-default:"https://generativelanguage.googleapis.com/v1beta"`
	Timeout         time.Duration `yaml:"timeout" env-default:"30s"`
	MaxOutputTokens int           `yaml:"max_output_tokens" env-default:"1024"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("Config file not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("Can not read config file %s", err)
	}

	// Missing AI credential is a startup failure, not a per-request one.
	if cfg.Assistant.APIKey == "" {
		log.Fatal("GEMINI_API_KEY is not set")
	}

	return &cfg
}
