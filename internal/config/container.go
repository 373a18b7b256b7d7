package config

import (
	"context"
	"fmt"
	"net/http"

	"pdf-tools-server/internal/domain"
	"pdf-tools-server/internal/handler"
	"pdf-tools-server/internal/metrics"
	"pdf-tools-server/internal/repository"
	"pdf-tools-server/internal/service"
	"pdf-tools-server/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config             domain.Config
	Logger             domain.Logger
	Metrics            *metrics.Metrics
	SupabaseClient     domain.SupabaseClient
	OverrideRepository domain.OverrideRepository
	EndpointRegistry   *service.EndpointRegistry
	EndpointService    *service.EndpointService
	ImageRemover       domain.ImageRemover
}

// NewContainer creates a new dependency injection container and resolves the
// endpoint registry
func NewContainer(ctx context.Context) (*Container, error) {
	cfg, err := NewConfig()
	if err != nil {
		return nil, err
	}
	return NewContainerWithConfig(ctx, cfg, logger.NewLogger(cfg.GetLogLevel()))
}

// NewContainerWithConfig wires the dependencies around an existing config and logger
func NewContainerWithConfig(ctx context.Context, cfg domain.Config, appLogger domain.Logger) (*Container, error) {
	appMetrics := metrics.New()

	// Override store is optional
	supabaseClient := repository.NewSupabaseClient(cfg, appLogger)
	var overrides domain.OverrideRepository
	if cfg.GetSupabaseURL() != "" && cfg.GetSupabaseKey() != "" {
		if err := supabaseClient.Initialize(); err != nil {
			return nil, err
		}
		overrides = repository.NewSupabaseOverrideRepository(supabaseClient, appLogger)
	} else {
		appLogger.Warn("Supabase is not configured, endpoint overrides will not be persisted")
	}

	registry := service.NewEndpointRegistry(appLogger)
	endpointService := service.NewEndpointService(
		registry,
		cfg,
		service.NewPathDependencyChecker(appLogger),
		overrides,
		appMetrics,
		appLogger,
	)
	if err := endpointService.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize endpoints: %w", err)
	}

	return &Container{
		Config:             cfg,
		Logger:             appLogger,
		Metrics:            appMetrics,
		SupabaseClient:     supabaseClient,
		OverrideRepository: overrides,
		EndpointRegistry:   registry,
		EndpointService:    endpointService,
		ImageRemover:       service.NewImageRemovalService(appLogger),
	}, nil
}

// Router builds the HTTP handler for the container's services
func (c *Container) Router() http.Handler {
	requestMiddleware := handler.NewRequestMiddleware(c.Metrics, c.Logger)
	endpointGate := handler.NewEndpointGate(c.EndpointService, c.Metrics, c.Logger)

	return handler.NewRouter(handler.RouterConfig{
		ImageRemovalHandler: handler.NewImageRemovalHandler(
			c.ImageRemover,
			c.Config.GetMaxFileSize(),
			c.Metrics,
			c.Logger,
		),
		EndpointHandler:   handler.NewEndpointHandler(c.EndpointService),
		AdminHandler:      handler.NewAdminHandler(c.EndpointService, c.Config.GetAdminSecret(), c.Logger),
		EndpointGate:      endpointGate.Middleware,
		RequestMiddleware: requestMiddleware.Middleware,
		MetricsHandler:    c.Metrics.Handler(),
		AllowedOrigins:    c.Config.GetAllowedOrigins(),
	})
}

// GetEndpointService returns the endpoint service instance
func (c *Container) GetEndpointService() domain.EndpointService {
	return c.EndpointService
}
