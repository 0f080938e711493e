// Package config читает настройки сервиса из config.yaml и переменных окружения.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Способы сборки документа
const (
	RendererPDF  = "pdf"
	RendererHTML = "html"
)

// Server содержит настройки HTTP-сервера.
type Server struct {
	Port            string        `mapstructure:"port"`
	Debug           bool          `mapstructure:"debug"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// CreateRate запросов create в секунду, 0 отключает ограничение
	CreateRate  float64  `mapstructure:"create_rate"`
	CreateBurst int      `mapstructure:"create_burst"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// Logging содержит настройки логирования.
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Media настройки медиасервиса
type Media struct {
	URL          string        `mapstructure:"url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxAttempts  int           `mapstructure:"max_attempts"`
	InitialDelay time.Duration `mapstructure:"initial_delay"`
	MaxDelay     time.Duration `mapstructure:"max_delay"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
}

// Maps настройки статических карт
type Maps struct {
	URL    string `mapstructure:"url"`
	APIKey string `mapstructure:"api_key"`
}

// Redis общий кэш медиа. Пустой адрес означает кэш в памяти
type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// Retry параметры повторов
type Retry struct {
	MaxAttempts   int           `mapstructure:"max_attempts"`
	InitialDelay  time.Duration `mapstructure:"initial_delay"`
	MaxDelay      time.Duration `mapstructure:"max_delay"`
	BackoffFactor float64       `mapstructure:"backoff_factor"`
}

// Breaker параметры circuit breaker
type Breaker struct {
	FailureThreshold int           `mapstructure:"failure_threshold"`
	ResetTimeout     time.Duration `mapstructure:"reset_timeout"`
	HalfOpenMaxCalls int           `mapstructure:"half_open_max_calls"`
	SuccessThreshold int           `mapstructure:"success_threshold"`
}

// Gotenberg настройки конвертера HTML в PDF
type Gotenberg struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Retry   Retry         `mapstructure:"retry"`
	Breaker Breaker       `mapstructure:"breaker"`
}

// Callback настройки принимающего сервиса
type Callback struct {
	URL             string        `mapstructure:"url"`
	Port            string        `mapstructure:"port"`
	ClientID        string        `mapstructure:"client_id"`
	ClientKey       string        `mapstructure:"client_key"`
	ClientIDHeader  string        `mapstructure:"client_id_header"`
	ClientKeyHeader string        `mapstructure:"client_key_header"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// S3 содержит настройки для S3-совместимого хранилища.
type S3 struct {
	Region         string `mapstructure:"region"`
	Bucket         string `mapstructure:"bucket"`
	Endpoint       string `mapstructure:"endpoint"`
	AccessKey      string `mapstructure:"access_key"`
	SecretKey      string `mapstructure:"secret_key"`
	Prefix         string `mapstructure:"prefix"`
	ForcePathStyle bool   `mapstructure:"force_path_style"`
}

// Storage описывает хранилище готовых файлов.
type Storage struct {
	Type          string        `mapstructure:"type"`
	Dir           string        `mapstructure:"dir"`
	MaxAge        time.Duration `mapstructure:"max_age"`
	CleanupPeriod time.Duration `mapstructure:"cleanup_period"`
	S3            S3            `mapstructure:"s3"`
}

// Database статистика в PostgreSQL. Пустой URL оставляет статистику в памяти
type Database struct {
	URL string `mapstructure:"url"`
}

// Assets ресурсы шаблонов
type Assets struct {
	// Dir каталог с ресурсами поверх встроенных
	Dir string `mapstructure:"dir"`
	// BaseURL адрес сервиса, по которому Gotenberg загружает иконки, шрифты и фоны
	BaseURL string `mapstructure:"base_url"`
}

// Tracing настройки OpenTelemetry
type Tracing struct {
	Enabled      bool    `mapstructure:"enabled"`
	Endpoint     string  `mapstructure:"endpoint"`
	ServiceName  string  `mapstructure:"service_name"`
	Environment  string  `mapstructure:"environment"`
	SamplingRate float64 `mapstructure:"sampling_rate"`
}

// Generation настройки сборки презентаций
type Generation struct {
	Renderer string        `mapstructure:"renderer"`
	Workers  int           `mapstructure:"workers"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Config объединяет все разделы конфигурации.
type Config struct {
	Server     Server     `mapstructure:"server"`
	Logging    Logging    `mapstructure:"logging"`
	Media      Media      `mapstructure:"media"`
	Maps       Maps       `mapstructure:"maps"`
	Redis      Redis      `mapstructure:"redis"`
	Gotenberg  Gotenberg  `mapstructure:"gotenberg"`
	Callback   Callback   `mapstructure:"callback"`
	Storage    Storage    `mapstructure:"storage"`
	Database   Database   `mapstructure:"database"`
	Assets     Assets     `mapstructure:"assets"`
	Tracing    Tracing    `mapstructure:"tracing"`
	Generation Generation `mapstructure:"generation"`
}

// Load читает конфигурацию из файла и окружения с помощью viper.
func Load() (Config, error) {
	return LoadFrom(viper.New(), ".", "./config", "/etc/presentation-service")
}

// LoadFrom читает конфигурацию в переданный экземпляр viper, файл ищется в paths
func LoadFrom(v *viper.Viper, paths ...string) (Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)
	if err := bindEnvironmentVariables(v); err != nil {
		return Config{}, fmt.Errorf("failed to bind environment: %w", err)
	}

	// Без файла работаем на переменных окружения и значениях по умолчанию
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// setDefaults устанавливает значения по умолчанию
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.debug", false)
	v.SetDefault("server.request_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.create_rate", 10.0)
	v.SetDefault("server.create_burst", 20)
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("media.timeout", 10*time.Second)
	v.SetDefault("media.max_attempts", 3)
	v.SetDefault("media.initial_delay", 200*time.Millisecond)
	v.SetDefault("media.max_delay", 2*time.Second)
	v.SetDefault("media.cache_ttl", 30*time.Minute)

	v.SetDefault("maps.url", "https://maps.googleapis.com/maps/api/staticmap")

	v.SetDefault("redis.prefix", "presentation:media:")

	v.SetDefault("gotenberg.url", "http://gotenberg:3000")
	v.SetDefault("gotenberg.timeout", 90*time.Second)
	v.SetDefault("gotenberg.retry.max_attempts", 3)
	v.SetDefault("gotenberg.retry.initial_delay", 100*time.Millisecond)
	v.SetDefault("gotenberg.retry.max_delay", 2*time.Second)
	v.SetDefault("gotenberg.retry.backoff_factor", 2.0)
	v.SetDefault("gotenberg.breaker.failure_threshold", 5)
	v.SetDefault("gotenberg.breaker.reset_timeout", 10*time.Second)
	v.SetDefault("gotenberg.breaker.half_open_max_calls", 2)
	v.SetDefault("gotenberg.breaker.success_threshold", 2)

	v.SetDefault("callback.client_id_header", "X-Client-Id")
	v.SetDefault("callback.client_key_header", "X-Client-Key")
	v.SetDefault("callback.timeout", 60*time.Second)

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.dir", "static/result")
	v.SetDefault("storage.max_age", time.Hour)
	v.SetDefault("storage.cleanup_period", 10*time.Minute)
	v.SetDefault("storage.s3.region", "us-east-1")

	v.SetDefault("assets.base_url", "http://localhost:8080")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "otel-collector:4317")
	v.SetDefault("tracing.service_name", "presentation-service")
	v.SetDefault("tracing.environment", "production")
	v.SetDefault("tracing.sampling_rate", 1.0)

	v.SetDefault("generation.renderer", RendererPDF)
	v.SetDefault("generation.workers", 4)
	v.SetDefault("generation.timeout", 5*time.Minute)
}

// bindEnvironmentVariables привязывает к ключам привычные имена переменных окружения.
// Переменная с префиксом APP имеет приоритет
func bindEnvironmentVariables(v *viper.Viper) error {
	bindings := map[string][]string{
		"server.port":                {"APP_SERVER_PORT", "HTTP_PORT"},
		"logging.level":              {"APP_LOGGING_LEVEL", "LOG_LEVEL"},
		"media.url":                  {"APP_MEDIA_URL", "MEDIA_SERVICE"},
		"maps.api_key":               {"APP_MAPS_API_KEY", "GOOGLE_API_KEY"},
		"redis.addr":                 {"APP_REDIS_ADDR", "REDIS_ADDR"},
		"redis.password":             {"APP_REDIS_PASSWORD", "REDIS_PASSWORD"},
		"gotenberg.url":              {"APP_GOTENBERG_URL", "GOTENBERG_API_URL"},
		"callback.url":               {"APP_CALLBACK_URL", "CALLBACK_URL"},
		"callback.port":              {"APP_CALLBACK_PORT", "CALLBACK_PORT"},
		"callback.client_id":         {"APP_CALLBACK_CLIENT_ID", "CLIENT_ID"},
		"callback.client_key":        {"APP_CALLBACK_CLIENT_KEY", "CLIENT_KEY"},
		"callback.client_id_header":  {"APP_CALLBACK_CLIENT_ID_HEADER", "CLIENT_ID_HEADER"},
		"callback.client_key_header": {"APP_CALLBACK_CLIENT_KEY_HEADER", "CLIENT_KEY_HEADER"},
		"storage.type":               {"APP_STORAGE_TYPE", "STORAGE_TYPE"},
		"storage.s3.region":          {"APP_STORAGE_S3_REGION", "S3_REGION"},
		"storage.s3.bucket":          {"APP_STORAGE_S3_BUCKET", "S3_BUCKET"},
		"storage.s3.endpoint":        {"APP_STORAGE_S3_ENDPOINT", "S3_ENDPOINT"},
		"storage.s3.access_key":      {"APP_STORAGE_S3_ACCESS_KEY", "S3_ACCESS_KEY"},
		"storage.s3.secret_key":      {"APP_STORAGE_S3_SECRET_KEY", "S3_SECRET_KEY"},
		"database.url":               {"APP_DATABASE_URL", "DATABASE_URL"},
		"assets.base_url":            {"APP_ASSETS_BASE_URL", "ASSETS_BASE_URL"},
		"tracing.endpoint":           {"APP_TRACING_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("bind %s: %w", key, err)
		}
	}
	return nil
}

// validateConfig проверяет корректность конфигурации
func validateConfig(cfg Config) error {
	if cfg.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}
	if cfg.Media.URL == "" {
		return fmt.Errorf("media service url cannot be empty")
	}

	switch cfg.Generation.Renderer {
	case RendererPDF:
	case RendererHTML:
		if cfg.Gotenberg.URL == "" {
			return fmt.Errorf("gotenberg url is required for html renderer")
		}
	default:
		return fmt.Errorf("renderer must be 'pdf' or 'html', got: %s", cfg.Generation.Renderer)
	}
	if cfg.Generation.Workers <= 0 {
		return fmt.Errorf("generation workers must be positive, got: %d", cfg.Generation.Workers)
	}

	if cfg.Storage.Type != "local" && cfg.Storage.Type != "s3" {
		return fmt.Errorf("storage type must be 'local' or 's3', got: %s", cfg.Storage.Type)
	}
	if cfg.Storage.Type == "local" && cfg.Storage.Dir == "" {
		return fmt.Errorf("storage dir cannot be empty for local storage")
	}
	if cfg.Storage.Type == "s3" && cfg.Storage.S3.Bucket == "" {
		return fmt.Errorf("S3 bucket cannot be empty")
	}

	validLogLevels := []string{"debug", "info", "warn", "error", "fatal", "panic"}
	isValidLevel := false
	for _, level := range validLogLevels {
		if strings.ToLower(cfg.Logging.Level) == level {
			isValidLevel = true
			break
		}
	}
	if !isValidLevel {
		return fmt.Errorf("invalid logging level: %s. Valid levels: %v", cfg.Logging.Level, validLogLevels)
	}
	return nil
}

// Addr адрес, на котором слушает HTTP-сервер
func (c Config) Addr() string {
	return ":" + c.Server.Port
}

// IsDevelopment возвращает true, если приложение запущено в режиме разработки
func (c Config) IsDevelopment() bool {
	return c.Server.Debug
}
