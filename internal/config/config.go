package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// ShiftInfo is the default shift metadata echoed in schedule notifications.
type ShiftInfo struct {
	StartTime     string `yaml:"startTime,omitempty"`
	EndTime       string `yaml:"endTime,omitempty"`
	LunchDuration string `yaml:"lunchDuration,omitempty"`
	Location      string `yaml:"location,omitempty"`
}

// Config represents the application configuration
type Config struct {
	// WMS report/order API
	WiseBaseURL    string `yaml:"wiseBaseURL" validate:"required,url"`
	WiseAPIKey     string `yaml:"wiseAPIKey" validate:"required"`
	WiseCompanyID  string `yaml:"wiseCompanyID" validate:"required"`
	WiseFacilityID string `yaml:"wiseFacilityID" validate:"required"`
	WiseUser       string `yaml:"wiseUser,omitempty"`
	WiseCustomerID string `yaml:"wiseCustomerID" validate:"required"`

	// Storage
	DatabaseURL string `yaml:"databaseURL" validate:"required"`

	// Notifications
	GmailUserID string   `yaml:"gmailUserID" validate:"required"`
	Recipients  []string `yaml:"recipients" validate:"required,min=1,dive,email"`

	// Scheduling behavior
	// WorkweekRule is an optional rrule whose occurrences define working
	// days; empty means Monday through Friday.
	WorkweekRule string `yaml:"workweekRule,omitempty"`
	// SharedAllocationPool makes the two scheduling days compete for the
	// same employees; the default allocates each day from a fresh pool.
	SharedAllocationPool bool `yaml:"sharedAllocationPool,omitempty"`
	HistoryDays          int  `yaml:"historyDays,omitempty" validate:"omitempty,min=1"`

	// HTTP front-end
	ListenAddr string `yaml:"listenAddr,omitempty"`

	DefaultShift ShiftInfo `yaml:"defaultShift,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from scheduler_config.yaml,
// looking in the current directory first, then the user's home directory.
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration with an environment suffix; env="test"
// looks for scheduler_config.test.yaml.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// Validate validates the configuration struct and checks the workweek rrule
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.WorkweekRule != "" {
		if _, err := rrule.StrToRRule(cfg.WorkweekRule); err != nil {
			return fmt.Errorf("invalid workweekRule: %w", err)
		}
	}

	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.HistoryDays == 0 {
		cfg.HistoryDays = 7
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
}

// findConfigFile searches for the config file in the current directory and
// the home directory, optionally with an environment suffix.
func findConfigFile(env string) (string, error) {
	configFileName := "scheduler_config.yaml"
	if env != "" {
		configFileName = "scheduler_config." + env + ".yaml"
	}

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
