package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultConfigFile = "config.yaml"

type HTTPServer struct {
	Port               string `mapstructure:"port"`
	ReadHeaderTimeoutS int    `mapstructure:"read_header_timeout_sec"`
	ReadTimeoutS       int    `mapstructure:"read_timeout_sec"`
	WriteTimeoutS      int    `mapstructure:"write_timeout_sec"`
	IdleTimeoutS       int    `mapstructure:"idle_timeout_sec"`
	ShutdownTimeoutS   int    `mapstructure:"shutdown_timeout_sec"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type RateAPI struct {
	URL       string `mapstructure:"url"`
	TimeoutMs int    `mapstructure:"timeout_ms"`
}

func (c RateAPI) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

type Poller struct {
	IntervalSec   int   `mapstructure:"interval_sec"`
	RatePrecision int32 `mapstructure:"rate_precision"`
	Autostart     bool  `mapstructure:"autostart"`
}

func (c Poller) Interval() time.Duration {
	return time.Duration(c.IntervalSec) * time.Second
}

type Monitor struct {
	IntervalSec int `mapstructure:"interval_sec"`
	MaxAgeSec   int `mapstructure:"max_age_sec"`
}

type Cache struct {
	WalletTTLSec int `mapstructure:"wallet_ttl_sec"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	DbServer   DbServer   `mapstructure:"db_server"`
	HTTPClient HTTPClient `mapstructure:"http_client"`
	RateAPI    RateAPI    `mapstructure:"rate_api"`
	Poller     Poller     `mapstructure:"poller"`
	Monitor    Monitor    `mapstructure:"monitor"`
	Cache      Cache      `mapstructure:"cache"`
	Logging    Logging    `mapstructure:"logging"`
}

func Init() (*AppConfig, error) {
	// .env is optional, real env vars win anyway
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}
	return Load(DefaultConfigFile)
}

// Load reads the yaml file at path; env vars override file values.
func Load(path string) (*AppConfig, error) {
	var cfg AppConfig

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetDefault("http_server.port", "8080")
	v.SetDefault("http_server.read_header_timeout_sec", 5)
	v.SetDefault("http_server.read_timeout_sec", 15)
	v.SetDefault("http_server.write_timeout_sec", 15)
	v.SetDefault("http_server.idle_timeout_sec", 60)
	v.SetDefault("http_server.shutdown_timeout_sec", 10)
	v.SetDefault("db_server.max_conns", 10)
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("rate_api.url", "https://api.coindesk.com/v1/bpi/currentprice.json")
	v.SetDefault("rate_api.timeout_ms", 5000)
	v.SetDefault("poller.interval_sec", 60)
	v.SetDefault("poller.rate_precision", 4)
	v.SetDefault("poller.autostart", true)
	v.SetDefault("monitor.interval_sec", 60)
	v.SetDefault("monitor.max_age_sec", 300)
	v.SetDefault("cache.wallet_ttl_sec", 30)
	v.SetDefault("logging.level", "info")

	// http server env vars
	_ = v.BindEnv("http_server.port", "HTTP_PORT")

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// http client env vars
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	// rate api / poller env vars
	_ = v.BindEnv("rate_api.url", "RATE_API_URL")
	_ = v.BindEnv("rate_api.timeout_ms", "RATE_API_TIMEOUT_MS")
	_ = v.BindEnv("poller.interval_sec", "POLLER_INTERVAL_SEC")
	_ = v.BindEnv("poller.autostart", "POLLER_AUTOSTART")

	_ = v.BindEnv("logging.level", "LOG_LEVEL")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &cfg, nil
}
