package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const VERSION = "1.4"

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Tracing     TracingConfig
	Preview     PreviewConfig
	Environment string
	LogLevel    string
	Version     string
}

type ServerConfig struct {
	Port int
	Host string

	// Value of Access-Control-Allow-Origin, "*" when empty
	CORSAllowOrigin string
	// Compile requests per client per minute, 0 disables the limit
	CompileRateLimit int
	// How long in-flight requests get to finish after a shutdown signal
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type TracingConfig struct {
	Enabled             bool
	ServiceName         string
	SamplingProbability float64

	// Trace exporter: "jaeger", "zipkin", "datadog", "none"
	TraceExporter string

	JaegerEndpoint      string
	ZipkinEndpoint      string
	DatadogAgentAddress string

	// Metrics exporter: "prometheus", "datadog", "none" or comma-separated list
	MetricsExporter string
	PrometheusPort  int
}

// PreviewConfig drives the chrome and limits of the preview renderer.
type PreviewConfig struct {
	BrandName      string
	LogoText       string
	FooterText     string
	TruncateAt     int
	LiquidMaxSize  int
	CompileEnabled bool

	// Compiled emails are memoized by markup; a zero TTL disables it
	CompileCacheTTL  time.Duration
	CompileCacheSize int
}

// LoadOptions contains options for loading configuration
type LoadOptions struct {
	EnvFile string // Optional environment file to load (e.g., ".env", ".env.test")
}

// Load loads the configuration with default options
func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

// LoadWithOptions loads the configuration with the specified options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_CORS_ALLOW_ORIGIN", "*")
	v.SetDefault("SERVER_COMPILE_RATE_LIMIT", 30)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "20s")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "notifcomposer")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("VERSION", VERSION)

	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("TRACING_SERVICE_NAME", "notifcomposer-api")
	v.SetDefault("TRACING_SAMPLING_PROBABILITY", 0.1)
	v.SetDefault("TRACING_TRACE_EXPORTER", "none")
	v.SetDefault("TRACING_JAEGER_ENDPOINT", "http://localhost:14268/api/traces")
	v.SetDefault("TRACING_ZIPKIN_ENDPOINT", "http://localhost:9411/api/v2/spans")
	v.SetDefault("TRACING_DATADOG_AGENT_ADDRESS", "localhost:8126")
	v.SetDefault("TRACING_METRICS_EXPORTER", "none")
	v.SetDefault("TRACING_PROMETHEUS_PORT", 9464)

	v.SetDefault("PREVIEW_BRAND_NAME", "GRC Suite")
	v.SetDefault("PREVIEW_LOGO_TEXT", "GRC")
	v.SetDefault("PREVIEW_FOOTER_TEXT", "Este es un mensaje automático del sistema de gestión de riesgos.")
	v.SetDefault("PREVIEW_TRUNCATE_AT", 60)
	v.SetDefault("PREVIEW_LIQUID_MAX_SIZE", 16*1024)
	v.SetDefault("PREVIEW_MJML_ENABLED", true)
	v.SetDefault("PREVIEW_COMPILE_CACHE_TTL", "10m")
	v.SetDefault("PREVIEW_COMPILE_CACHE_SIZE", 256)

	if opts.EnvFile != "" {
		v.SetConfigName(opts.EnvFile)
		v.SetConfigType("env")

		currentPath, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting current directory: %w", err)
		}

		v.AddConfigPath(currentPath)

		if err := v.ReadInConfig(); err != nil {
			// It's okay if config file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	config := &Config{
		Server: ServerConfig{
			Port:             v.GetInt("SERVER_PORT"),
			Host:             v.GetString("SERVER_HOST"),
			CORSAllowOrigin:  v.GetString("SERVER_CORS_ALLOW_ORIGIN"),
			CompileRateLimit: v.GetInt("SERVER_COMPILE_RATE_LIMIT"),
			ShutdownTimeout:  v.GetDuration("SERVER_SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Tracing: TracingConfig{
			Enabled:             v.GetBool("TRACING_ENABLED"),
			ServiceName:         v.GetString("TRACING_SERVICE_NAME"),
			SamplingProbability: v.GetFloat64("TRACING_SAMPLING_PROBABILITY"),
			TraceExporter:       v.GetString("TRACING_TRACE_EXPORTER"),
			JaegerEndpoint:      v.GetString("TRACING_JAEGER_ENDPOINT"),
			ZipkinEndpoint:      v.GetString("TRACING_ZIPKIN_ENDPOINT"),
			DatadogAgentAddress: v.GetString("TRACING_DATADOG_AGENT_ADDRESS"),
			MetricsExporter:     v.GetString("TRACING_METRICS_EXPORTER"),
			PrometheusPort:      v.GetInt("TRACING_PROMETHEUS_PORT"),
		},
		Preview: PreviewConfig{
			BrandName:        v.GetString("PREVIEW_BRAND_NAME"),
			LogoText:         v.GetString("PREVIEW_LOGO_TEXT"),
			FooterText:       v.GetString("PREVIEW_FOOTER_TEXT"),
			TruncateAt:       v.GetInt("PREVIEW_TRUNCATE_AT"),
			LiquidMaxSize:    v.GetInt("PREVIEW_LIQUID_MAX_SIZE"),
			CompileEnabled:   v.GetBool("PREVIEW_MJML_ENABLED"),
			CompileCacheTTL:  v.GetDuration("PREVIEW_COMPILE_CACHE_TTL"),
			CompileCacheSize: v.GetInt("PREVIEW_COMPILE_CACHE_SIZE"),
		},
		Environment: v.GetString("ENVIRONMENT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Version:     v.GetString("VERSION"),
	}

	if config.Preview.TruncateAt <= 0 {
		return nil, fmt.Errorf("PREVIEW_TRUNCATE_AT must be positive, got %d", config.Preview.TruncateAt)
	}
	if config.Preview.CompileCacheTTL < 0 {
		return nil, fmt.Errorf("PREVIEW_COMPILE_CACHE_TTL must not be negative, got %s", config.Preview.CompileCacheTTL)
	}

	return config, nil
}

// IsDevelopment returns true if the environment is set to development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
