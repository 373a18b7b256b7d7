package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"pdf-tools-server/internal/domain"
)

// EndpointMetrics receives registry changes
type EndpointMetrics interface {
	SetEnabledEndpoints(count int)
}

// EndpointService applies operator configuration and administrator overrides
// to the endpoint registry.
type EndpointService struct {
	registry  *EndpointRegistry
	config    domain.Config
	checker   domain.DependencyChecker
	overrides domain.OverrideRepository
	metrics   EndpointMetrics
	logger    domain.Logger
	now       func() time.Time
}

// NewEndpointService creates the service. overrides and metrics may be nil.
func NewEndpointService(
	registry *EndpointRegistry,
	config domain.Config,
	checker domain.DependencyChecker,
	overrides domain.OverrideRepository,
	metrics EndpointMetrics,
	logger domain.Logger,
) *EndpointService {
	return &EndpointService{
		registry:  registry,
		config:    config,
		checker:   checker,
		overrides: overrides,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// Initialize disables the configured endpoints and groups, the groups whose
// tooling is missing, and finally replays persisted overrides.
func (s *EndpointService) Initialize(ctx context.Context) error {
	endpointsToRemove := s.config.GetEndpointsToRemove()
	groupsToRemove := append(s.config.GetGroupsToRemove(), s.missingToolGroups()...)

	s.registry.DisableEndpoints(endpointsToRemove)
	s.registry.DisableGroups(groupsToRemove)

	if err := s.applyOverrides(ctx); err != nil {
		return err
	}

	s.logger.Info("Endpoint configuration loaded",
		"endpoints_removed", len(endpointsToRemove),
		"groups_removed", len(groupsToRemove),
		"enabled", s.registry.EnabledCount(),
	)
	s.publish()
	return nil
}

func (s *EndpointService) missingToolGroups() []string {
	var missing []string
	if !s.checker.IsInstalled(toolCommands[GroupCalibre]) {
		missing = append(missing, GroupCalibre)
	}
	if !s.config.GetCheckOptionalDependencies() {
		return missing
	}

	groups := make([]string, 0, len(toolCommands))
	for group := range toolCommands {
		if group != GroupCalibre {
			groups = append(groups, group)
		}
	}
	sort.Strings(groups)
	for _, group := range groups {
		if !s.checker.IsInstalled(toolCommands[group]) {
			missing = append(missing, group)
		}
	}
	return missing
}

func (s *EndpointService) applyOverrides(ctx context.Context) error {
	if s.overrides == nil {
		return nil
	}

	overrides, err := s.overrides.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load endpoint overrides: %w", err)
	}

	sort.SliceStable(overrides, func(i, j int) bool {
		return overrides[i].UpdatedAt.Before(overrides[j].UpdatedAt)
	})
	for _, o := range overrides {
		switch o.Kind {
		case domain.OverrideKindGroup:
			if !s.setGroup(o.Name, o.Enabled) {
				s.logger.Warn("Ignoring override for unknown group", "group", o.Name)
			}
		case domain.OverrideKindEndpoint:
			s.setEndpoint(o.Name, o.Enabled)
		default:
			s.logger.Warn("Ignoring override with unknown kind", "name", o.Name, "kind", o.Kind)
		}
	}
	s.logger.Debug("Applied endpoint overrides", "count", len(overrides))
	return nil
}

func (s *EndpointService) IsEndpointEnabled(name string) bool {
	return s.registry.IsEndpointEnabled(name)
}

func (s *EndpointService) EndpointStatus(name string) domain.EndpointStatus {
	return s.registry.Status(name)
}

func (s *EndpointService) Statuses() []domain.EndpointStatus {
	return s.registry.Statuses()
}

func (s *EndpointService) Groups() map[string][]string {
	return s.registry.Groups()
}

// SetEndpointEnabled toggles one endpoint and persists the decision
func (s *EndpointService) SetEndpointEnabled(ctx context.Context, name string, enabled bool) error {
	name = normalizeEndpoint(name)
	if name == "" {
		return domain.ErrInvalidEndpoint
	}

	s.setEndpoint(name, enabled)
	s.publish()
	return s.persist(ctx, domain.EndpointOverride{Name: name, Kind: domain.OverrideKindEndpoint, Enabled: enabled})
}

// SetGroupEnabled toggles every endpoint of a group and persists the decision
func (s *EndpointService) SetGroupEnabled(ctx context.Context, group string, enabled bool) error {
	group = strings.TrimSpace(group)
	if !s.setGroup(group, enabled) {
		return fmt.Errorf("%w: %s", domain.ErrGroupNotFound, group)
	}

	s.publish()
	return s.persist(ctx, domain.EndpointOverride{Name: group, Kind: domain.OverrideKindGroup, Enabled: enabled})
}

func (s *EndpointService) setEndpoint(name string, enabled bool) {
	if enabled {
		s.registry.EnableEndpoint(name)
	} else {
		s.registry.DisableEndpoint(name)
	}
}

func (s *EndpointService) setGroup(group string, enabled bool) bool {
	if enabled {
		return s.registry.EnableGroup(group)
	}
	return s.registry.DisableGroup(group)
}

func (s *EndpointService) persist(ctx context.Context, override domain.EndpointOverride) error {
	if s.overrides == nil {
		return nil
	}

	override.UpdatedAt = s.now().UTC()
	if err := s.overrides.Save(ctx, override); err != nil {
		s.logger.Error("Failed to persist endpoint override", err, "name", override.Name, "kind", override.Kind)
		return fmt.Errorf("failed to persist override: %w", err)
	}
	return nil
}

func (s *EndpointService) publish() {
	if s.metrics != nil {
		s.metrics.SetEnabledEndpoints(s.registry.EnabledCount())
	}
}

var _ domain.EndpointService = (*EndpointService)(nil)
