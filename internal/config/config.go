// Package config provides the structures and loader for the service
// configuration, read from a YAML file pointed at by CONFIG_PATH.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the top-level configuration shared by all binaries.
type Config struct {
	Env                     string        `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string        `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string        `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	AdminPasswordHash       string        `yaml:"admin_password_hash" env:"ADMIN_PASSWORD_HASH"`
	RabbitMQURL             string        `yaml:"rabbitmq_url" env:"RABBITMQ_URL"`
	RabbitMQMaxRetries      int           `yaml:"rabbitmq_max_retries" env-default:"5"`
	RabbitMQRetryDelay      time.Duration `yaml:"rabbitmq_retry_delay" env-default:"3s"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	SkinAI                  `yaml:"skin_ai"`
	MercadoPago             `yaml:"mercadopago"`
	SMTP                    `yaml:"smtp"`
}

// HTTPServer holds the HTTP listener settings.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"ADDRESS_HTTP" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection holds the Redis client settings.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"ADDRESS_REDIS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// SkinAI holds the settings of the external vision analyzer.
type SkinAI struct {
	APIKey    string        `yaml:"api_key" env:"SKIN_AI_API_KEY"`
	BaseURL   string        `yaml:"base_url" env-default:"https://api.openai.com/v1"`
	Model     string        `yaml:"model" env-default:"gpt-4o"`
	TimeoutAI time.Duration `yaml:"timeout" env-default:"30s"`
}

// MercadoPago holds the payment gateway settings. AccessToken may be
// empty; the webhook then acknowledges events without processing them.
type MercadoPago struct {
	AccessToken string `yaml:"access_token" env:"MERCADO_PAGO_ACCESS_TOKEN"`
	APIURL      string `yaml:"api_url" env-default:"https://api.mercadopago.com"`
}

// SMTP holds the mail transport settings used by the notification sender.
type SMTP struct {
	SMTPHost string `yaml:"smtp_host" env:"SMTP_HOST"`
	SMTPPort string `yaml:"smtp_port" env-default:"587"`
	SMTPUser string `yaml:"smtp_user" env:"SMTP_USER"`
	SMTPPass string `yaml:"smtp_pass" env:"SMTP_PASS"`
}

// MustLoad loads the configuration from CONFIG_PATH and exits the
// process when the file is missing or malformed.
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

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"StorageConnectionString: %s\n"+
			"MigrationsPath: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"SkinAI:\n"+
			"  BaseURL: %s\n"+
			"  Model: %s\n"+
			"  Timeout: %s\n"+
			"MercadoPago:\n"+
			"  APIURL: %s\n",
		c.Env,
		c.StorageConnectionString,
		c.MigrationsPath,
		c.AddressRedis,
		c.DB,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.BaseURL,
		c.Model,
		c.TimeoutAI,
		c.APIURL,
	)
}
