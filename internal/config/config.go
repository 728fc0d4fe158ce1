package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Logger   LoggerConfig
	Security SecurityConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	RenderTimeout   time.Duration
}

// DataConfig locates the static input tables. Relative file names are
// resolved against Dir.
type DataConfig struct {
	Dir             string
	OrdersFile      string
	OrderItemsFile  string
	CustomersFile   string
	RFMFile         string
	TopProductsFile string
	TopRegionsFile  string
	MapFile         string
	LoadTimeout     time.Duration
}

type LoggerConfig struct {
	Level     string
	Format    string
	AddSource bool
}

type SecurityConfig struct {
	EnableRateLimit bool
	RateLimitRPS    int
	RateLimitBurst  int
	AllowedOrigins  []string
	TrustedProxies  []string
}

// Load reads configuration from the environment. Values in a .env file
// in the working directory are applied first without overriding
// variables that are already set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnvString("SERVER_HOST", "localhost"),
			Port:            getEnvInt("SERVER_PORT", 8084),
			ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:     getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			RenderTimeout:   getEnvDuration("SERVER_RENDER_TIMEOUT", 10*time.Second),
		},
		Data: DataConfig{
			Dir:             getEnvString("DATA_DIR", "data"),
			OrdersFile:      getEnvString("ORDERS_FILE", "orders_dataset.csv"),
			OrderItemsFile:  getEnvString("ORDER_ITEMS_FILE", "order_items_dataset.csv"),
			CustomersFile:   getEnvString("CUSTOMERS_FILE", "customers_dataset.csv"),
			RFMFile:         getEnvString("RFM_FILE", "rfm.csv"),
			TopProductsFile: getEnvString("TOP_PRODUCTS_FILE", "top_5_products.csv"),
			TopRegionsFile:  getEnvString("TOP_REGIONS_FILE", "top_10_regions.csv"),
			MapFile:         getEnvString("MAP_FILE", "top_sales_customer_locations.html"),
			LoadTimeout:     getEnvDuration("DATA_LOAD_TIMEOUT", 60*time.Second),
		},
		Logger: LoggerConfig{
			Level:     getEnvString("LOG_LEVEL", "info"),
			Format:    getEnvString("LOG_FORMAT", "json"),
			AddSource: getEnvBool("LOG_ADD_SOURCE", true),
		},
		Security: SecurityConfig{
			EnableRateLimit: getEnvBool("SECURITY_RATE_LIMIT_ENABLED", true),
			RateLimitRPS:    getEnvInt("SECURITY_RATE_LIMIT_RPS", 100),
			RateLimitBurst:  getEnvInt("SECURITY_RATE_LIMIT_BURST", 10),
			AllowedOrigins:  getEnvStringSlice("SECURITY_ALLOWED_ORIGINS", []string{"http://localhost:8084"}),
			TrustedProxies:  getEnvStringSlice("SECURITY_TRUSTED_PROXIES", []string{"127.0.0.1"}),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	required := map[string]string{
		"ORDERS_FILE":       c.Data.OrdersFile,
		"ORDER_ITEMS_FILE":  c.Data.OrderItemsFile,
		"CUSTOMERS_FILE":    c.Data.CustomersFile,
		"RFM_FILE":          c.Data.RFMFile,
		"TOP_PRODUCTS_FILE": c.Data.TopProductsFile,
		"TOP_REGIONS_FILE":  c.Data.TopRegionsFile,
	}
	for key, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s cannot be empty", key)
		}
	}

	if c.Data.LoadTimeout <= 0 {
		return fmt.Errorf("data load timeout must be positive")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.Logger.Level) {
		return fmt.Errorf("invalid log level %q, must be one of: %s", c.Logger.Level, strings.Join(validLogLevels, ", "))
	}

	validLogFormats := []string{"json", "text"}
	if !contains(validLogFormats, c.Logger.Format) {
		return fmt.Errorf("invalid log format %q, must be one of: %s", c.Logger.Format, strings.Join(validLogFormats, ", "))
	}

	if c.Security.RateLimitRPS <= 0 {
		return fmt.Errorf("rate limit RPS must be positive")
	}

	if c.Security.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit burst must be positive")
	}

	return nil
}

// Path resolves name against the data directory. Absolute names and the
// empty string are returned unchanged.
func (d DataConfig) Path(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(d.Dir, name)
}

func getEnvString(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
