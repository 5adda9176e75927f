package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	Log       LogConfig       `mapstructure:"log"       validate:"required"`
	Storage   StorageConfig   `mapstructure:"storage"   validate:"required"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port int `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	// ShutdownTimeoutSeconds bounds the graceful HTTP shutdown. The final
	// snapshot save is not subject to it.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
}

// LogConfig contains the settings of the request and task loggers.
type LogConfig struct {
	Dir          string `mapstructure:"dir"           validate:"required"`
	RequestLevel string `mapstructure:"request_level" validate:"required,oneof=debug info warn error"`
	TaskLevel    string `mapstructure:"task_level"    validate:"required,oneof=debug info warn error"`
}

// StorageConfig contains the location of the JSON snapshot.
type StorageConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// TelemetryConfig controls OpenTelemetry tracing.
type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name" validate:"required_if=Enabled true"`
}
