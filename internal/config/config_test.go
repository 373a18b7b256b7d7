package config

import (
	"os"
	"path/filepath"
	"testing"
)

const defaultMaxFileSize int64 = 50 * 1024 * 1024

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "SERVER_PORT", "MAX_FILE_SIZE", "LOG_LEVEL", "ENDPOINTS_TO_REMOVE",
		"ENDPOINTS_GROUPS_TO_REMOVE", "CHECK_OPTIONAL_DEPENDENCIES", "ADMIN_API_SECRET",
		"SUPABASE_URL", "SUPABASE_SERVICE_ROLE_KEY", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write settings: %v", err)
	}
	return path
}

func TestNewConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SETTINGS_PATH", filepath.Join(t.TempDir(), "missing.yml"))

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.GetServerPort() != "8080" {
		t.Fatalf("expected default server port 8080, got %s", cfg.GetServerPort())
	}
	if cfg.GetMaxFileSize() != defaultMaxFileSize {
		t.Fatalf("expected default max file size %d, got %d", defaultMaxFileSize, cfg.GetMaxFileSize())
	}
	if cfg.GetLogLevel() != "info" {
		t.Fatalf("expected default log level info, got %s", cfg.GetLogLevel())
	}
	if len(cfg.GetEndpointsToRemove()) != 0 || len(cfg.GetGroupsToRemove()) != 0 {
		t.Fatalf("expected empty removal lists, got %v / %v", cfg.GetEndpointsToRemove(), cfg.GetGroupsToRemove())
	}
	if cfg.GetCheckOptionalDependencies() {
		t.Fatalf("expected optional dependency checks to be off")
	}
	if cfg.GetAdminSecret() != "" || cfg.GetSupabaseURL() != "" || cfg.GetSupabaseKey() != "" {
		t.Fatalf("expected empty secrets")
	}
	if len(cfg.GetAllowedOrigins()) != 3 {
		t.Fatalf("expected default dev origins, got %v", cfg.GetAllowedOrigins())
	}
}

func TestNewConfig_SettingsFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("SETTINGS_PATH", writeSettings(t, `
endpoints:
  toRemove:
    - crop
    - " rotate-pdf "
  groupsToRemove:
    - LibreOffice
system:
  maxFileSizeMB: 10
  checkOptionalDependencies: true
  corsAllowedOrigins:
    - https://pdf.example.com
`))

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := cfg.GetEndpointsToRemove(); len(got) != 2 || got[0] != "crop" || got[1] != " rotate-pdf " {
		t.Fatalf("unexpected endpoints to remove: %q", got)
	}
	if got := cfg.GetGroupsToRemove(); len(got) != 1 || got[0] != "LibreOffice" {
		t.Fatalf("unexpected groups to remove: %v", got)
	}
	if cfg.GetMaxFileSize() != 10*1024*1024 {
		t.Fatalf("expected 10MB max file size, got %d", cfg.GetMaxFileSize())
	}
	if !cfg.GetCheckOptionalDependencies() {
		t.Fatalf("expected optional dependency checks to be on")
	}
	if got := cfg.GetAllowedOrigins(); len(got) != 1 || got[0] != "https://pdf.example.com" {
		t.Fatalf("unexpected origins: %v", got)
	}
}

func TestNewConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SETTINGS_PATH", writeSettings(t, "endpoints:\n  toRemove: [crop]\n"))
	t.Setenv("PORT", "9090")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("MAX_FILE_SIZE", "12345")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ENDPOINTS_TO_REMOVE", "merge-pdfs, split-pdfs,,")
	t.Setenv("ENDPOINTS_GROUPS_TO_REMOVE", "Calibre")
	t.Setenv("CHECK_OPTIONAL_DEPENDENCIES", "true")
	t.Setenv("ADMIN_API_SECRET", "s3cret")
	t.Setenv("SUPABASE_URL", "http://localhost:54321")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "test-key")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.GetServerPort() != "9090" {
		t.Fatalf("expected server port 9090, got %s", cfg.GetServerPort())
	}
	if cfg.GetMaxFileSize() != 12345 {
		t.Fatalf("expected max file size 12345, got %d", cfg.GetMaxFileSize())
	}
	if cfg.GetLogLevel() != "debug" {
		t.Fatalf("expected log level debug, got %s", cfg.GetLogLevel())
	}
	if got := cfg.GetEndpointsToRemove(); len(got) != 2 || got[0] != "merge-pdfs" || got[1] != "split-pdfs" {
		t.Fatalf("expected env list to replace file list, got %v", got)
	}
	if got := cfg.GetGroupsToRemove(); len(got) != 1 || got[0] != "Calibre" {
		t.Fatalf("unexpected groups to remove: %v", got)
	}
	if !cfg.GetCheckOptionalDependencies() {
		t.Fatalf("expected optional dependency checks to be on")
	}
	if cfg.GetAdminSecret() != "s3cret" {
		t.Fatalf("expected admin secret, got %s", cfg.GetAdminSecret())
	}
	if cfg.GetSupabaseURL() != "http://localhost:54321" || cfg.GetSupabaseKey() != "test-key" {
		t.Fatalf("unexpected supabase settings: %s %s", cfg.GetSupabaseURL(), cfg.GetSupabaseKey())
	}
}

func TestNewConfig_Fallbacks(t *testing.T) {
	clearEnv(t)
	t.Setenv("SETTINGS_PATH", "")
	t.Setenv("SERVER_PORT", "9091")
	t.Setenv("MAX_FILE_SIZE", "not-a-number")
	t.Setenv("CHECK_OPTIONAL_DEPENDENCIES", "maybe")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.GetServerPort() != "9091" {
		t.Fatalf("expected server port 9091, got %s", cfg.GetServerPort())
	}
	if cfg.GetMaxFileSize() != defaultMaxFileSize {
		t.Fatalf("expected default max file size %d, got %d", defaultMaxFileSize, cfg.GetMaxFileSize())
	}
	if cfg.GetCheckOptionalDependencies() {
		t.Fatalf("expected invalid bool to fall back to false")
	}
}

func TestNewConfig_InvalidSettingsFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("SETTINGS_PATH", writeSettings(t, "endpoints: [unterminated"))

	if _, err := NewConfig(); err == nil {
		t.Fatalf("expected parse error for malformed settings")
	}
}

func TestGetEndpointsToRemove_ReturnsCopy(t *testing.T) {
	cfg := &AppConfig{EndpointsToRemove: []string{"crop"}}

	list := cfg.GetEndpointsToRemove()
	list[0] = "changed"

	if cfg.EndpointsToRemove[0] != "crop" {
		t.Fatalf("expected config list to be unchanged, got %v", cfg.EndpointsToRemove)
	}
}
