package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"threatscape/types"
)

// Config represents the main application configuration
type Config struct {
	ServerPort         int                     `json:"server_port" yaml:"server_port"`
	EnhancementProfile string                  `json:"enhancement_profile" yaml:"enhancement_profile"`
	Enhancement        types.EnhancementConfig `json:"enhancement" yaml:"enhancement"`
	RandomSeed         int64                   `json:"random_seed" yaml:"random_seed"`
	DataEngine         DataEngineConfig        `json:"data_engine" yaml:"data_engine"`
	RateLimitWindow    time.Duration           `json:"rate_limit_window" yaml:"rate_limit_window"`
	RateLimitRequests  int                     `json:"rate_limit_requests" yaml:"rate_limit_requests"`
}

// DataEngineConfig represents configuration for the event streaming layer
type DataEngineConfig struct {
	Enable          bool     `json:"enable" yaml:"enable"`
	EnableKafka     bool     `json:"enable_kafka" yaml:"enable_kafka"`
	EnableWebSocket bool     `json:"enable_websocket" yaml:"enable_websocket"`
	KafkaBrokers    []string `json:"kafka_brokers" yaml:"kafka_brokers"`
	KafkaTopic      string   `json:"kafka_topic" yaml:"kafka_topic"`
	ClientID        string   `json:"client_id" yaml:"client_id"`
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		ServerPort:         getEnvInt("SERVER_PORT", 8080),
		EnhancementProfile: getEnv("ENHANCEMENT_PROFILE", ""),
		Enhancement: types.EnhancementConfig{
			AddExternalThreats:           getEnvBool("ADD_EXTERNAL_THREATS", true),
			AddVulnerabilities:           getEnvBool("ADD_VULNERABILITIES", true),
			AddPrivilegedAccounts:        getEnvBool("ADD_PRIVILEGED_ACCOUNTS", true),
			AddNetworkDevices:            getEnvBool("ADD_NETWORK_DEVICES", true),
			AddSecurityControls:          getEnvBool("ADD_SECURITY_CONTROLS", true),
			AddComplianceNodes:           getEnvBool("ADD_COMPLIANCE_NODES", true),
			EnhanceExistingNodes:         getEnvBool("ENHANCE_EXISTING_NODES", true),
			GenerateRealisticConnections: getEnvBool("GENERATE_REALISTIC_CONNECTIONS", true),
		},
		RandomSeed:        int64(getEnvInt("RANDOM_SEED", 0)),
		RateLimitWindow:   time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
		RateLimitRequests: getEnvInt("RATE_LIMIT_REQUESTS", 120),
		DataEngine: DataEngineConfig{
			Enable:          getEnvBool("DATA_ENGINE_ENABLE", true),
			EnableKafka:     getEnvBool("KAFKA_ENABLE", false),
			EnableWebSocket: getEnvBool("WEBSOCKET_ENABLE", true),
			KafkaBrokers:    strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			KafkaTopic:      getEnv("KAFKA_TOPIC", "threatscape-events"),
			ClientID:        getEnv("KAFKA_CLIENT_ID", "threatscape"),
		},
	}

	// An on-disk profile, when named, overrides the per-stage env toggles.
	if cfg.EnhancementProfile != "" {
		if profile, err := LoadEnhancementProfile(cfg.EnhancementProfile); err == nil {
			cfg.Enhancement = profile
		}
	}

	return cfg
}

// LoadEnhancementProfile reads a YAML enhancement profile from disk.
func LoadEnhancementProfile(path string) (types.EnhancementConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.EnhancementConfig{}, fmt.Errorf("failed to read enhancement profile: %w", err)
	}

	var profile types.EnhancementConfig
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return types.EnhancementConfig{}, fmt.Errorf("failed to parse enhancement profile: %w", err)
	}

	return profile, nil
}

// getEnv retrieves environment variable with fallback
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool retrieves boolean environment variable with fallback
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvInt retrieves integer environment variable with fallback
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// SettingsValidator defines the interface for validating settings
type SettingsValidator interface {
	Validate(settings *Config) error
}

// SettingsChangeListener defines the interface for listening to settings changes
type SettingsChangeListener interface {
	OnSettingsChanged(oldSettings, newSettings *Config)
}

// SettingsManager manages application settings with validation and persistence
type SettingsManager struct {
	settings   *Config
	validators []SettingsValidator
	listeners  []SettingsChangeListener
	mutex      sync.RWMutex
}

// DefaultSettingsValidator provides default validation for settings
type DefaultSettingsValidator struct{}

// Validate validates the configuration settings
func (v *DefaultSettingsValidator) Validate(settings *Config) error {
	if settings.ServerPort < 1 || settings.ServerPort > 65535 {
		return fmt.Errorf("server_port must be between 1 and 65535")
	}

	if settings.RateLimitWindow < time.Second {
		return fmt.Errorf("rate_limit_window must be at least 1 second")
	}

	if settings.RateLimitRequests < 1 {
		return fmt.Errorf("rate_limit_requests must be positive")
	}

	if settings.DataEngine.EnableKafka && len(settings.DataEngine.KafkaBrokers) == 0 {
		return fmt.Errorf("kafka_brokers is required when kafka is enabled")
	}

	return nil
}

// NewSettingsManager creates a new settings manager
func NewSettingsManager() *SettingsManager {
	return &SettingsManager{
		settings:   getDefaultSettings(),
		validators: []SettingsValidator{&DefaultSettingsValidator{}},
		listeners:  make([]SettingsChangeListener, 0),
	}
}

// GetDefaultSettings returns default configuration settings
func (sm *SettingsManager) GetDefaultSettings() *Config {
	return getDefaultSettings()
}

// getDefaultSettings returns default configuration settings
func getDefaultSettings() *Config {
	return &Config{
		ServerPort:        8080,
		Enhancement:       types.FullEnhancementConfig(),
		RateLimitWindow:   time.Minute,
		RateLimitRequests: 120,
		DataEngine: DataEngineConfig{
			Enable:          true,
			EnableWebSocket: true,
			KafkaBrokers:    []string{"localhost:9092"},
			KafkaTopic:      "threatscape-events",
			ClientID:        "threatscape",
		},
	}
}

// GetSettings returns a copy of the current settings
func (sm *SettingsManager) GetSettings() *Config {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	// Return a deep copy to prevent external modifications
	settingsCopy, _ := json.Marshal(sm.settings)
	var copy Config
	json.Unmarshal(settingsCopy, &copy)

	return &copy
}

// UpdateSettings updates the settings after validation
func (sm *SettingsManager) UpdateSettings(newSettings *Config) error {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	for _, validator := range sm.validators {
		if err := validator.Validate(newSettings); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	oldSettings := sm.settings
	sm.settings = newSettings

	for _, listener := range sm.listeners {
		listener.OnSettingsChanged(oldSettings, newSettings)
	}

	return nil
}

// AddValidator adds a settings validator
func (sm *SettingsManager) AddValidator(validator SettingsValidator) {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()
	sm.validators = append(sm.validators, validator)
}

// AddChangeListener adds a settings change listener
func (sm *SettingsManager) AddChangeListener(listener SettingsChangeListener) {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()
	sm.listeners = append(sm.listeners, listener)
}

// SaveToFile saves the current settings to a file
func (sm *SettingsManager) SaveToFile(filename string) error {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	data, err := json.MarshalIndent(sm.settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	err = os.WriteFile(filename, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}

// LoadFromFile loads settings from a file
func (sm *SettingsManager) LoadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read settings file: %w", err)
	}

	var newSettings Config
	err = json.Unmarshal(data, &newSettings)
	if err != nil {
		return fmt.Errorf("failed to parse settings file: %w", err)
	}

	for _, validator := range sm.validators {
		if err := validator.Validate(&newSettings); err != nil {
			return fmt.Errorf("loaded settings validation failed: %w", err)
		}
	}

	sm.mutex.Lock()
	oldSettings := sm.settings
	sm.settings = &newSettings
	sm.mutex.Unlock()

	for _, listener := range sm.listeners {
		listener.OnSettingsChanged(oldSettings, &newSettings)
	}

	return nil
}
