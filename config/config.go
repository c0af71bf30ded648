package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the process configuration, read from .env and the environment.
type Config struct {
	Port     string `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	MongoURI    string `mapstructure:"mongo_uri"`
	DBName      string `mapstructure:"db_name"`
	MemoryStore bool   `mapstructure:"memory_store"` // keep everything in process; for local runs

	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`

	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	GeminiModel  string `mapstructure:"gemini_model"`

	AWSRegion     string `mapstructure:"aws_region"`
	AWSBucketName string `mapstructure:"aws_bucket_name"`

	SendGridAPIKey  string `mapstructure:"sendgrid_api_key"`
	MailFromName    string `mapstructure:"mail_from_name"`
	MailFromAddress string `mapstructure:"mail_from_address"`

	ChromeDriverPath string `mapstructure:"chromedriver_path"`
	BrowserFallback  bool   `mapstructure:"browser_fallback"`
}

var defaults = map[string]interface{}{
	"port":              "8080",
	"log_level":         "info",
	"mongo_uri":         "mongodb://localhost:27017/",
	"db_name":           "stylewise",
	"memory_store":      false,
	"jwt_secret":        "",
	"token_ttl":         "24h",
	"gemini_api_key":    "",
	"gemini_model":      "gemini-2.5-flash-image",
	"aws_region":        "ap-south-1",
	"aws_bucket_name":   "",
	"sendgrid_api_key":  "",
	"mail_from_name":    "StyleWise",
	"mail_from_address": "no-reply@stylewise.app",
	"chromedriver_path": "",
	"browser_fallback":  true,
}

// Load reads .env if present, then environment variables (PORT, MONGO_URI, ...),
// falling back to defaults.
func Load() (*Config, error) {
	// a missing .env is fine; the environment may carry everything
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Validate reports settings the server cannot run without.
func (c *Config) Validate() error {
	var missing []string
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if !c.MemoryStore && c.MongoURI == "" {
		missing = append(missing, "MONGO_URI")
	}
	if !c.MemoryStore && c.DBName == "" {
		missing = append(missing, "DB_NAME")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	return nil
}

// StorageEnabled reports whether S3 image storage is configured.
func (c *Config) StorageEnabled() bool {
	return c.AWSBucketName != ""
}
