package domain

import "time"

// OverrideKind tells whether an override targets one endpoint or a whole group
type OverrideKind string

const (
	OverrideKindEndpoint OverrideKind = "endpoint"
	OverrideKindGroup    OverrideKind = "group"
)

// EndpointStatus is the externally visible state of one endpoint
type EndpointStatus struct {
	Name    string   `json:"name"`
	Enabled bool     `json:"enabled"`
	Groups  []string `json:"groups"`
}

// EndpointOverride is an administrator decision that outlives a restart
type EndpointOverride struct {
	Name      string       `json:"name"`
	Kind      OverrideKind `json:"kind"`
	Enabled   bool         `json:"enabled"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// EndpointsResponse is the payload of the endpoint listing route
type EndpointsResponse struct {
	Endpoints []EndpointStatus    `json:"endpoints"`
	Groups    map[string][]string `json:"groups"`
}
