package config

import (
	"os"
	"strconv"
	"strings"

	"pdf-tools-server/internal/domain"
)

const defaultSettingsPath = "./configs/settings.yml"

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort                string
	MaxFileSize               int64
	LogLevel                  string
	SettingsPath              string
	EndpointsToRemove         []string
	GroupsToRemove            []string
	CheckOptionalDependencies bool
	AdminSecret               string
	SupabaseURL               string
	SupabaseKey               string
	AllowedOrigins            []string
}

// NewConfig creates a configuration from the environment and the settings file.
// Environment values win over the file.
func NewConfig() (*AppConfig, error) {
	settingsPath := getEnvOrDefault("SETTINGS_PATH", defaultSettingsPath)
	settings, err := LoadSettings(settingsPath)
	if err != nil {
		return nil, err
	}
	return newConfigFromSettings(settingsPath, settings), nil
}

func newConfigFromSettings(settingsPath string, settings *Settings) *AppConfig {
	maxFileSize := int64(50 * 1024 * 1024) // 50MB default
	if settings.System.MaxFileSizeMB > 0 {
		maxFileSize = settings.System.MaxFileSizeMB * 1024 * 1024
	}

	origins := settings.System.CorsAllowedOrigins
	if len(origins) == 0 {
		origins = []string{
			"http://localhost:5173",
			"http://localhost:4173",
			"http://localhost:3000",
		}
	}

	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:                getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		MaxFileSize:               getEnvInt64OrDefault("MAX_FILE_SIZE", maxFileSize),
		LogLevel:                  getEnvOrDefault("LOG_LEVEL", "info"),
		SettingsPath:              settingsPath,
		EndpointsToRemove:         getEnvListOrDefault("ENDPOINTS_TO_REMOVE", settings.Endpoints.ToRemove),
		GroupsToRemove:            getEnvListOrDefault("ENDPOINTS_GROUPS_TO_REMOVE", settings.Endpoints.GroupsToRemove),
		CheckOptionalDependencies: getEnvBoolOrDefault("CHECK_OPTIONAL_DEPENDENCIES", settings.System.CheckOptionalDependencies),
		AdminSecret:               getEnvOrDefault("ADMIN_API_SECRET", ""),
		SupabaseURL:               getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:               getEnvOrDefault("SUPABASE_SERVICE_ROLE_KEY", ""),
		AllowedOrigins:            getEnvListOrDefault("CORS_ALLOWED_ORIGINS", origins),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetMaxFileSize returns the maximum allowed upload size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetEndpointsToRemove returns a copy of the endpoint removal list
func (c *AppConfig) GetEndpointsToRemove() []string {
	return append([]string(nil), c.EndpointsToRemove...)
}

// GetGroupsToRemove returns a copy of the group removal list
func (c *AppConfig) GetGroupsToRemove() []string {
	return append([]string(nil), c.GroupsToRemove...)
}

func (c *AppConfig) GetCheckOptionalDependencies() bool {
	return c.CheckOptionalDependencies
}

func (c *AppConfig) GetAdminSecret() string {
	return c.AdminSecret
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase service role key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

func (c *AppConfig) GetAllowedOrigins() []string {
	return c.AllowedOrigins
}

var _ domain.Config = (*AppConfig)(nil)

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
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

// getEnvListOrDefault splits a comma separated variable, dropping blank items
func getEnvListOrDefault(key string, defaultValue []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}

	items := make([]string, 0)
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
