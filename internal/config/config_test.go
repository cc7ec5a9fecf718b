package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.True(t, cfg.Enhancement.AddExternalThreats)
	assert.True(t, cfg.Enhancement.EnhanceExistingNodes)
	assert.Equal(t, []string{"localhost:9092"}, cfg.DataEngine.KafkaBrokers)
	assert.Equal(t, "threatscape-events", cfg.DataEngine.KafkaTopic)
	assert.False(t, cfg.DataEngine.EnableKafka)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ADD_EXTERNAL_THREATS", "false")
	t.Setenv("KAFKA_ENABLE", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("RANDOM_SEED", "42")

	cfg := Load()

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.False(t, cfg.Enhancement.AddExternalThreats)
	assert.True(t, cfg.Enhancement.AddVulnerabilities, "untouched toggles keep their defaults")
	assert.True(t, cfg.DataEngine.EnableKafka)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.DataEngine.KafkaBrokers)
	assert.Equal(t, int64(42), cfg.RandomSeed)
}

func TestLoad_InvalidEnvValuesFallBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("ADD_VULNERABILITIES", "not-a-bool")

	cfg := Load()

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.True(t, cfg.Enhancement.AddVulnerabilities)
}

func TestLoadEnhancementProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")

	content := []byte(`add_external_threats: true
add_vulnerabilities: false
enhance_existing_nodes: true
generate_realistic_connections: false
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	profile, err := LoadEnhancementProfile(path)
	require.NoError(t, err)

	assert.True(t, profile.AddExternalThreats)
	assert.False(t, profile.AddVulnerabilities)
	assert.True(t, profile.EnhanceExistingNodes)
	assert.False(t, profile.GenerateRealisticConnections)
	assert.False(t, profile.AddNetworkDevices, "unnamed toggles stay off")
}

func TestLoadEnhancementProfile_MissingFile(t *testing.T) {
	_, err := LoadEnhancementProfile("/nonexistent/profile.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read enhancement profile")
}

func TestLoadEnhancementProfile_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml: ["), 0644))

	_, err := LoadEnhancementProfile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse enhancement profile")
}

func TestLoad_ProfileOverridesEnvToggles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("add_external_threats: false\n"), 0644))

	t.Setenv("ENHANCEMENT_PROFILE", path)
	t.Setenv("ADD_EXTERNAL_THREATS", "true")

	cfg := Load()

	assert.False(t, cfg.Enhancement.AddExternalThreats, "the on-disk profile wins over env toggles")
}

func TestDefaultSettingsValidator(t *testing.T) {
	validator := &DefaultSettingsValidator{}

	valid := getDefaultSettings()
	assert.NoError(t, validator.Validate(valid))

	badPort := getDefaultSettings()
	badPort.ServerPort = 0
	assert.Error(t, validator.Validate(badPort))

	badWindow := getDefaultSettings()
	badWindow.RateLimitWindow = time.Millisecond
	assert.Error(t, validator.Validate(badWindow))

	badKafka := getDefaultSettings()
	badKafka.DataEngine.EnableKafka = true
	badKafka.DataEngine.KafkaBrokers = nil
	assert.Error(t, validator.Validate(badKafka))
}

func TestSettingsManager_UpdateAndListeners(t *testing.T) {
	sm := NewSettingsManager()

	var notified bool
	sm.AddChangeListener(listenerFunc(func(oldSettings, newSettings *Config) {
		notified = true
		assert.NotEqual(t, oldSettings.ServerPort, newSettings.ServerPort)
	}))

	updated := sm.GetDefaultSettings()
	updated.ServerPort = 9999
	require.NoError(t, sm.UpdateSettings(updated))

	assert.True(t, notified)
	assert.Equal(t, 9999, sm.GetSettings().ServerPort)
}

func TestSettingsManager_RejectsInvalidUpdate(t *testing.T) {
	sm := NewSettingsManager()

	bad := sm.GetDefaultSettings()
	bad.ServerPort = -1

	err := sm.UpdateSettings(bad)
	require.Error(t, err)
	assert.Equal(t, 8080, sm.GetSettings().ServerPort, "failed updates leave settings untouched")
}

func TestSettingsManager_SaveAndLoadRoundTrip(t *testing.T) {
	sm := NewSettingsManager()
	path := filepath.Join(t.TempDir(), "settings.json")

	updated := sm.GetDefaultSettings()
	updated.ServerPort = 9191
	require.NoError(t, sm.UpdateSettings(updated))
	require.NoError(t, sm.SaveToFile(path))

	fresh := NewSettingsManager()
	require.NoError(t, fresh.LoadFromFile(path))
	assert.Equal(t, 9191, fresh.GetSettings().ServerPort)
}

// listenerFunc adapts a function to the SettingsChangeListener interface.
type listenerFunc func(oldSettings, newSettings *Config)

func (f listenerFunc) OnSettingsChanged(oldSettings, newSettings *Config) {
	f(oldSettings, newSettings)
}
