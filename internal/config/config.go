package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"gobi/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Insights InsightsConfig
	Metrics  MetricsConfig
	LogLevel string `validate:"omitempty,oneof=ERROR WARN INFO DEBUG TRACE"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port        string `validate:"required,numeric"`
	APIPort     string `validate:"required,numeric"`
	GinMode     string `validate:"oneof=debug release test"`
	MaxUploadMB int    `validate:"min=1,max=1024"`
}

// DataConfig holds dataset loading and export settings
type DataConfig struct {
	File        string
	ExportDir   string `validate:"required"`
	PreviewRows int    `validate:"min=1,max=20"`
}

// InsightsConfig holds automated insight settings
type InsightsConfig struct {
	OutlierZ float64 `validate:"gt=0"`
	TopN     int     `validate:"min=3,max=20"`
}

// MetricsConfig holds prometheus settings
type MetricsConfig struct {
	Enabled bool
}

// MaxUploadBytes returns the upload limit in bytes
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Server.MaxUploadMB) << 20
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:   *loadServerConfig(),
		Data:     *loadDataConfig(),
		Insights: *loadInsightsConfig(),
		Metrics:  MetricsConfig{Enabled: getEnvBoolOrDefault("METRICS_ENABLED", true)},
		LogLevel: strings.ToUpper(getEnvOrDefault("LOG_LEVEL", "")),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:        getEnvOrDefault("PORT", "8080"),
		APIPort:     getEnvOrDefault("API_PORT", "8081"),
		GinMode:     getEnvOrDefault("GIN_MODE", "debug"),
		MaxUploadMB: getEnvIntOrDefault("MAX_UPLOAD_MB", 50),
	}
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		File:        getEnvOrDefault("DATA_FILE", ""),
		ExportDir:   getEnvOrDefault("EXPORT_DIR", os.TempDir()),
		PreviewRows: getEnvIntOrDefault("PREVIEW_ROWS", 5),
	}
}

func loadInsightsConfig() *InsightsConfig {
	return &InsightsConfig{
		OutlierZ: getEnvFloatOrDefault("OUTLIER_Z", 2.5),
		TopN:     getEnvIntOrDefault("TOP_N", 5),
	}
}

var validate = validator.New()

func validateConfig(config *Config) error {
	err := validate.Struct(config)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.ConfigInvalid(err.Error())
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return errors.ConfigInvalid(strings.Join(msgs, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "numeric":
		return fmt.Sprintf("%s must be a number", field)
	}
	return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
