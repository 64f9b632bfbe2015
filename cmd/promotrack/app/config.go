package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from config files,
// environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool

	// Config file
	ConfigFile string

	// Tracker configuration
	DataDir string

	// Logging configuration
	LogLevel  string
	LogFormat string
}

// DefaultDataDir is the data directory used when nothing else configures one.
const DefaultDataDir = "data"

// LoadConfig loads configuration from all sources in order of precedence:
// command-line flags (applied later by cobra), environment variables,
// .env files, the config file, then defaults.
func LoadConfig() (*Config, error) {
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("PROMOTRACK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".promotrack")
		}
	}

	// A missing config file is fine; every setting has a default.
	_ = viper.ReadInConfig()

	config := &Config{
		Verbose:    viper.GetBool("verbose"),
		Quiet:      viper.GetBool("quiet"),
		ConfigFile: viper.ConfigFileUsed(),
		DataDir:    viper.GetString("data_dir"),
		LogLevel:   getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat:  getEnvOrDefault("LOG_FORMAT", "auto"),
	}

	if config.DataDir == "" {
		config.DataDir = DefaultDataDir
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags so flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet bool, dataDir, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	if dataDir != "" {
		c.DataDir = dataDir
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files;
// .env.local overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if
// not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
