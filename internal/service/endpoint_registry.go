package service

import (
	"sort"
	"strings"
	"sync"

	"pdf-tools-server/internal/domain"
)

// EndpointRegistry tracks which document endpoints are enabled and which
// groups they belong to. Endpoints never toggled are enabled.
type EndpointRegistry struct {
	mu       sync.RWMutex
	statuses map[string]bool
	groups   map[string]map[string]struct{}
	logger   domain.Logger
}

// NewEndpointRegistry creates a registry populated with the default groups
func NewEndpointRegistry(logger domain.Logger) *EndpointRegistry {
	r := NewEmptyEndpointRegistry(logger)
	for _, g := range defaultEndpointGroups {
		r.AddEndpointsToGroup(g.name, g.endpoints...)
	}
	return r
}

// NewEmptyEndpointRegistry creates a registry without any groups
func NewEmptyEndpointRegistry(logger domain.Logger) *EndpointRegistry {
	return &EndpointRegistry{
		statuses: make(map[string]bool),
		groups:   make(map[string]map[string]struct{}),
		logger:   logger,
	}
}

func normalizeEndpoint(name string) string {
	return strings.TrimPrefix(strings.TrimSpace(name), "/")
}

func (r *EndpointRegistry) EnableEndpoint(endpoint string) {
	endpoint = normalizeEndpoint(endpoint)
	if endpoint == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses[endpoint] = true
}

// DisableEndpoint switches an endpoint off, logging only the first time
func (r *EndpointRegistry) DisableEndpoint(endpoint string) {
	endpoint = normalizeEndpoint(endpoint)
	if endpoint == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.disableLocked(endpoint)
}

func (r *EndpointRegistry) disableLocked(endpoint string) {
	if enabled, known := r.statuses[endpoint]; known && !enabled {
		return
	}
	r.logger.Info("Disabling endpoint", "endpoint", endpoint)
	r.statuses[endpoint] = false
}

func (r *EndpointRegistry) IsEndpointEnabled(endpoint string) bool {
	endpoint = normalizeEndpoint(endpoint)

	r.mu.RLock()
	defer r.mu.RUnlock()
	if enabled, ok := r.statuses[endpoint]; ok {
		return enabled
	}
	return true
}

func (r *EndpointRegistry) AddEndpointToGroup(group, endpoint string) {
	r.AddEndpointsToGroup(group, endpoint)
}

func (r *EndpointRegistry) AddEndpointsToGroup(group string, endpoints ...string) {
	group = strings.TrimSpace(group)
	if group == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	members, ok := r.groups[group]
	if !ok {
		members = make(map[string]struct{})
		r.groups[group] = members
	}
	for _, endpoint := range endpoints {
		if endpoint = normalizeEndpoint(endpoint); endpoint != "" {
			members[endpoint] = struct{}{}
		}
	}
}

// EnableGroup enables every member of group. It reports whether the group exists.
func (r *EndpointRegistry) EnableGroup(group string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.groups[strings.TrimSpace(group)]
	if !ok {
		return false
	}
	for endpoint := range members {
		r.statuses[endpoint] = true
	}
	return true
}

// DisableGroup disables every member of group. It reports whether the group exists.
func (r *EndpointRegistry) DisableGroup(group string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.groups[strings.TrimSpace(group)]
	if !ok {
		return false
	}
	for _, endpoint := range sortedKeys(members) {
		r.disableLocked(endpoint)
	}
	return true
}

func (r *EndpointRegistry) DisableEndpoints(endpoints []string) {
	for _, endpoint := range endpoints {
		r.DisableEndpoint(endpoint)
	}
}

// DisableGroups disables each listed group; unknown groups are logged and skipped
func (r *EndpointRegistry) DisableGroups(groups []string) {
	for _, group := range groups {
		if !r.DisableGroup(group) {
			r.logger.Warn("Unknown endpoint group", "group", strings.TrimSpace(group))
		}
	}
}

// Groups returns a sorted copy of the group membership table
func (r *EndpointRegistry) Groups() map[string][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string][]string, len(r.groups))
	for group, members := range r.groups {
		out[group] = sortedKeys(members)
	}
	return out
}

// GroupsOf lists the groups an endpoint belongs to, sorted
func (r *EndpointRegistry) GroupsOf(endpoint string) []string {
	endpoint = normalizeEndpoint(endpoint)

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.groupsOfLocked(endpoint)
}

func (r *EndpointRegistry) groupsOfLocked(endpoint string) []string {
	groups := make([]string, 0)
	for group, members := range r.groups {
		if _, ok := members[endpoint]; ok {
			groups = append(groups, group)
		}
	}
	sort.Strings(groups)
	return groups
}

// Status returns the state of a single endpoint
func (r *EndpointRegistry) Status(endpoint string) domain.EndpointStatus {
	endpoint = normalizeEndpoint(endpoint)

	r.mu.RLock()
	defer r.mu.RUnlock()
	enabled, ok := r.statuses[endpoint]
	return domain.EndpointStatus{
		Name:    endpoint,
		Enabled: enabled || !ok,
		Groups:  r.groupsOfLocked(endpoint),
	}
}

// Statuses lists every known endpoint sorted by name
func (r *EndpointRegistry) Statuses() []domain.EndpointStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make(map[string]struct{}, len(r.statuses))
	for endpoint := range r.statuses {
		names[endpoint] = struct{}{}
	}
	for _, members := range r.groups {
		for endpoint := range members {
			names[endpoint] = struct{}{}
		}
	}

	out := make([]domain.EndpointStatus, 0, len(names))
	for _, endpoint := range sortedKeys(names) {
		enabled, ok := r.statuses[endpoint]
		out = append(out, domain.EndpointStatus{
			Name:    endpoint,
			Enabled: enabled || !ok,
			Groups:  r.groupsOfLocked(endpoint),
		})
	}
	return out
}

// EnabledCount returns how many known endpoints are enabled
func (r *EndpointRegistry) EnabledCount() int {
	count := 0
	for _, status := range r.Statuses() {
		if status.Enabled {
			count++
		}
	}
	return count
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
