package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort   string  `envconfig:"HTTP_PORT"   default:":8082"`
	LogLevel   string  `envconfig:"LOG_LEVEL"   default:"info"`
	TaxRate    float64 `envconfig:"TAX_RATE"    default:"0.15"`
	DataDir    string  `envconfig:"DATA_DIR"    default:""`
	CatalogCSV string  `envconfig:"CATALOG_CSV" default:""`
}

var (
	config Config
	once   sync.Once
)

func LoadConfig(logger *logrus.Logger) *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		} else if err == nil {
			logger.Info("Loaded configuration from .env file")
		}

		if err := envconfig.Process("", &config); err != nil {
			logger.Fatalf("Failed to process configuration from environment variables: %v", err)
		}

		if config.DataDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				logger.Warnf("Could not resolve home directory, using working directory: %v", err)
				home = "."
			}
			config.DataDir = filepath.Join(home, ".cart_service")
		}
		if config.TaxRate < 0 {
			logger.Fatalf("Configuration error: TAX_RATE must be non-negative, got %f", config.TaxRate)
		}

		logger.Infof("Configuration loaded: Port=%s, LogLevel=%s, TaxRate=%.2f, DataDir=%s",
			config.HTTPPort, config.LogLevel, config.TaxRate, config.DataDir)
	})
	return &config
}

// CartSnapshotPath is where the cart snapshot lives.
func (c *Config) CartSnapshotPath() string {
	return filepath.Join(c.DataDir, "cart.csv")
}

// SettingsPath is where the settings snapshot lives.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.DataDir, "settings.properties")
}
