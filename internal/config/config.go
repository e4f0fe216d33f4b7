package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	MongoDB  MongoDBConfig  `yaml:"mongodb"`
	Paths    PathsConfig    `yaml:"paths"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Status   StatusConfig   `yaml:"status"`
	Profile  ProfileConfig  `yaml:"profile"`
	Log      LogConfig      `yaml:"log"`
}

// MongoDBConfig holds MongoDB connection details
type MongoDBConfig struct {
	URI                    string        `yaml:"uri"`
	Username               string        `yaml:"username"`
	Password               string        `yaml:"password"`
	Host                   string        `yaml:"host"`
	Port                   string        `yaml:"port"`
	Database               string        `yaml:"database"`
	AuthSource             string        `yaml:"auth_source"` // Database to authenticate against (default: admin)
	CompanyCollection      string        `yaml:"company_collection"`
	TaskCollection         string        `yaml:"task_collection"`
	ServerSelectionTimeout time.Duration `yaml:"server_selection_timeout"`
	ConnectTimeout         time.Duration `yaml:"connect_timeout"`
	SocketTimeout          time.Duration `yaml:"socket_timeout"`
	MaxPoolSize            uint64        `yaml:"max_pool_size"`
	RetryWrites            bool          `yaml:"retry_writes"`
	TLSCAFile              string        `yaml:"tls_ca_file"`
}

// PathsConfig holds the CSV input and output locations
type PathsConfig struct {
	InputDir    string `yaml:"input_dir"`
	OutputDir   string `yaml:"output_dir"`
	MappingFile string `yaml:"mapping_file"` // File name inside InputDir
}

// DefaultsConfig holds default limits offered at the prompts
type DefaultsConfig struct {
	ExportLimit    int64 `yaml:"export_limit"`
	ShortNameLimit int64 `yaml:"short_name_limit"`
	BatchSize      int32 `yaml:"batch_size"`
}

// StatusConfig holds the default transition statuses
type StatusConfig struct {
	Old string `yaml:"old"`
	New string `yaml:"new"`
}

// ProfileConfig holds profile URL settings
type ProfileConfig struct {
	BaseURL string `yaml:"base_url"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or console
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		MongoDB: MongoDBConfig{
			Host:                   "localhost",
			Port:                   "27017",
			Database:               "owler",
			AuthSource:             "admin",
			CompanyCollection:      "company",
			TaskCollection:         "cp_task",
			ServerSelectionTimeout: 30 * time.Second,
			ConnectTimeout:         30 * time.Second,
			SocketTimeout:          120 * time.Second,
			MaxPoolSize:            50,
			RetryWrites:            true,
		},
		Paths: PathsConfig{
			InputDir:  "CSV_Reports/Input_CSV",
			OutputDir: "CSV_Reports/Output_CSV",
		},
		Defaults: DefaultsConfig{
			ExportLimit:    10000,
			ShortNameLimit: 250000,
			BatchSize:      10000,
		},
		Status: StatusConfig{
			Old: "OPEN",
			New: "CLEAR_QUEUE",
		},
		Profile: ProfileConfig{
			BaseURL: "https://www.owler.com/iaApp",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from defaults, an optional YAML file and
// environment variables, in that order of increasing precedence.
func LoadConfig(path string) (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnv(config)

	if err := ValidateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnv overrides config values with environment variables when set
func applyEnv(c *Config) {
	m := &c.MongoDB
	m.URI = getEnv("MONGODB_URI", m.URI)
	m.Username = getEnv("MONGODB_USERNAME", m.Username)
	m.Password = getEnv("MONGODB_PASSWORD", m.Password)
	m.Host = getEnv("MONGODB_HOST", m.Host)
	m.Port = getEnv("MONGODB_PORT", m.Port)
	m.Database = getEnv("MONGODB_DATABASE", m.Database)
	m.AuthSource = getEnv("MONGODB_AUTH_SOURCE", m.AuthSource)
	m.CompanyCollection = getEnv("MONGODB_COMPANY_COLLECTION", m.CompanyCollection)
	m.TaskCollection = getEnv("MONGODB_TASK_COLLECTION", m.TaskCollection)
	m.ServerSelectionTimeout = getEnvDuration("MONGODB_SERVER_SELECTION_TIMEOUT", m.ServerSelectionTimeout)
	m.ConnectTimeout = getEnvDuration("MONGODB_CONNECT_TIMEOUT", m.ConnectTimeout)
	m.SocketTimeout = getEnvDuration("MONGODB_SOCKET_TIMEOUT", m.SocketTimeout)
	m.MaxPoolSize = uint64(getEnvInt("MONGODB_MAX_POOL_SIZE", int(m.MaxPoolSize)))
	m.RetryWrites = getEnvBool("MONGODB_RETRY_WRITES", m.RetryWrites)
	m.TLSCAFile = getEnv("MONGODB_TLS_CA_FILE", m.TLSCAFile)

	c.Paths.InputDir = getEnv("INPUT_CSV_DIR", c.Paths.InputDir)
	c.Paths.OutputDir = getEnv("OUTPUT_CSV_DIR", c.Paths.OutputDir)
	c.Paths.MappingFile = getEnv("MAPPING_FILE", c.Paths.MappingFile)

	c.Defaults.ExportLimit = int64(getEnvInt("DEFAULT_EXPORT_LIMIT", int(c.Defaults.ExportLimit)))
	c.Defaults.ShortNameLimit = int64(getEnvInt("DEFAULT_SHORTNAME_LIMIT", int(c.Defaults.ShortNameLimit)))
	c.Defaults.BatchSize = int32(getEnvInt("DEFAULT_BATCH_SIZE", int(c.Defaults.BatchSize)))

	c.Status.Old = getEnv("STATUS_OLD", c.Status.Old)
	c.Status.New = getEnv("STATUS_NEW", c.Status.New)

	c.Profile.BaseURL = getEnv("PROFILE_BASE_URL", c.Profile.BaseURL)

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
}

// ValidateConfig validates that required configuration values are present
func ValidateConfig(config *Config) error {
	if config.MongoDB.URI == "" && config.MongoDB.Host == "" {
		return fmt.Errorf("MONGODB_URI or MONGODB_HOST is required")
	}
	if config.MongoDB.Database == "" {
		return fmt.Errorf("MONGODB_DATABASE is required")
	}
	if config.MongoDB.CompanyCollection == "" || config.MongoDB.TaskCollection == "" {
		return fmt.Errorf("company and task collection names are required")
	}
	if config.Defaults.ExportLimit <= 0 || config.Defaults.ShortNameLimit <= 0 {
		return fmt.Errorf("default limits must be positive")
	}
	if config.Defaults.BatchSize < 0 {
		return fmt.Errorf("DEFAULT_BATCH_SIZE must not be negative")
	}
	switch strings.ToLower(config.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", config.Log.Format)
	}
	return nil
}

// Helper functions for environment variable access
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
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
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
