package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"

	"storefront/internal/awswrapper"
	"storefront/internal/database"
	"storefront/internal/upstream"
)

type Config struct {
	Upstream  upstream.Config
	ServerCfg ServerConfig
	Log       LogConfig
	Database  database.PostgresConfig
	S3        awswrapper.S3ClientConfig
}

type ServerConfig struct {
	Host string
	Port string
}

func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

type LogConfig struct {
	Level  string
	Format string
}

type env struct {
	APIEndpoint string        `envconfig:"API_ENDPOINT" required:"true"`
	APIKey      string        `envconfig:"API_KEY" required:"true"`
	APITimeout  time.Duration `envconfig:"API_TIMEOUT" default:"10s"`

	ServerHost string `envconfig:"SERVER_HOST"`
	ServerPort string `envconfig:"SERVER_PORT" default:"8911"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat  string `envconfig:"LOG_FORMAT" default:"text"`

	PostgresHost     string `envconfig:"POSTGRES_HOST"`
	PostgresPort     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresUser     string `envconfig:"POSTGRES_USER"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD"`
	PostgresDBName   string `envconfig:"POSTGRES_DB_NAME"`

	S3AccessKey  string `envconfig:"AWS_S3_ACCESS_KEY"`
	S3SecretKey  string `envconfig:"AWS_S3_SECRET_KEY"`
	S3Region     string `envconfig:"AWS_S3_REGION"`
	S3BucketName string `envconfig:"AWS_S3_DEFAULT_BUCKET_NAME"`
}

// LoadConfigs reads an optional .env file into the process environment and
// decodes the environment into a Config. It is called once at startup.
func LoadConfigs() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "loading .env")
	}
	return fromEnv()
}

func fromEnv() (*Config, error) {
	var e env
	if err := envconfig.Process("", &e); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	configs := Config{
		Upstream: upstream.Config{
			Endpoint: e.APIEndpoint,
			APIKey:   e.APIKey,
			Timeout:  e.APITimeout,
		},
		ServerCfg: ServerConfig{
			Host: e.ServerHost,
			Port: e.ServerPort,
		},
		Log: LogConfig{
			Level:  e.LogLevel,
			Format: e.LogFormat,
		},
		Database: database.PostgresConfig{
			Host:     e.PostgresHost,
			Port:     e.PostgresPort,
			User:     e.PostgresUser,
			Password: e.PostgresPassword,
			DBName:   e.PostgresDBName,
		},
		S3: awswrapper.S3ClientConfig{
			AccessKey:  e.S3AccessKey,
			SecretKey:  e.S3SecretKey,
			Region:     e.S3Region,
			BucketName: e.S3BucketName,
		},
	}
	if err := configs.Upstream.Validate(); err != nil {
		return nil, err
	}
	return &configs, nil
}
