package domain

import (
	"context"
	"io"
)

// ImageRemover strips embedded images from a PDF document
type ImageRemover interface {
	RemoveImages(ctx context.Context, in io.ReadSeeker, out io.Writer) (*ImageRemovalResult, error)
}

// EndpointService manages which document endpoints are currently served
type EndpointService interface {
	IsEndpointEnabled(name string) bool
	EndpointStatus(name string) EndpointStatus
	Statuses() []EndpointStatus
	Groups() map[string][]string
	SetEndpointEnabled(ctx context.Context, name string, enabled bool) error
	SetGroupEnabled(ctx context.Context, group string, enabled bool) error
}

// DependencyChecker reports whether an external tool is installed
type DependencyChecker interface {
	IsInstalled(command string) bool
}

// OverrideRepository persists administrator endpoint toggles
type OverrideRepository interface {
	List(ctx context.Context) ([]EndpointOverride, error)
	Save(ctx context.Context, override EndpointOverride) error
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetEndpointsToRemove() []string
	GetGroupsToRemove() []string
	GetCheckOptionalDependencies() bool
	GetAdminSecret() string
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetAllowedOrigins() []string
}
