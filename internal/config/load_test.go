package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp switches to an empty directory so no config.yaml is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	original, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(original)
	})
	return dir
}

// TestLoadDefaults verifies the defaults used when nothing is configured.
func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeoutSeconds)
	assert.Equal(t, "./logs", cfg.Log.Dir)
	assert.Equal(t, "info", cfg.Log.RequestLevel)
	assert.Equal(t, "info", cfg.Log.TaskLevel)
	assert.Equal(t, "./Storage/data.json", cfg.Storage.Path)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "tasks-api", cfg.Telemetry.ServiceName)
}

// TestLoadFromEnv verifies that the Load function correctly reads values from environment variables.
func TestLoadFromEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("TASKS_SERVER_PORT", "9090")
	t.Setenv("TASKS_LOG_REQUEST_LEVEL", "debug")
	t.Setenv("TASKS_LOG_TASK_LEVEL", "error")
	t.Setenv("TASKS_STORAGE_PATH", "/var/lib/tasks/data.json")
	t.Setenv("TASKS_TELEMETRY_ENABLED", "true")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.RequestLevel)
	assert.Equal(t, "error", cfg.Log.TaskLevel)
	assert.Equal(t, "/var/lib/tasks/data.json", cfg.Storage.Path)
	assert.True(t, cfg.Telemetry.Enabled)
}

// TestLoadFromFile verifies that config.yaml is read and that the
// environment overrides it.
func TestLoadFromFile(t *testing.T) {
	dir := chdirTemp(t)
	content := []byte("server:\n  port: 4000\nlog:\n  dir: /tmp/task-logs\n  task_level: debug\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o644))
	t.Setenv("TASKS_SERVER_PORT", "5000")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "/tmp/task-logs", cfg.Log.Dir)
	assert.Equal(t, "debug", cfg.Log.TaskLevel)
	assert.Equal(t, "info", cfg.Log.RequestLevel)
}

// TestLoadValidationErrors verifies that the Load function correctly validates the configuration.
func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name    string
		envVars map[string]string
	}{
		{name: "Invalid port number", envVars: map[string]string{"TASKS_SERVER_PORT": "999999"}},
		{name: "Invalid request log level", envVars: map[string]string{"TASKS_LOG_REQUEST_LEVEL": "verbose"}},
		{name: "Invalid task log level", envVars: map[string]string{"TASKS_LOG_TASK_LEVEL": "trace"}},
		{name: "Negative shutdown timeout", envVars: map[string]string{"TASKS_SERVER_SHUTDOWN_TIMEOUT_SECONDS": "-1"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			chdirTemp(t)
			for name, value := range tc.envVars {
				t.Setenv(name, value)
			}

			cfg, err := Load()

			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
			assert.Nil(t, cfg)
		})
	}
}

// TestLoadTelemetryRequiresServiceName verifies the conditional requirement
// on the telemetry service name.
func TestLoadTelemetryRequiresServiceName(t *testing.T) {
	dir := chdirTemp(t)
	content := []byte("telemetry:\n  enabled: true\n  service_name: \"\"\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o644))

	cfg, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Nil(t, cfg)
}
