package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pdf-tools-server/internal/domain"

	"github.com/supabase-community/postgrest-go"
)

const endpointOverridesTable = "endpoint_overrides"

// SupabaseOverrideRepository stores endpoint overrides in the endpoint_overrides table
type SupabaseOverrideRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

// NewSupabaseOverrideRepository creates a new override repository
func NewSupabaseOverrideRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) *SupabaseOverrideRepository {
	return &SupabaseOverrideRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

type overrideRow struct {
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Enabled   bool      `json:"enabled"`
	UpdatedAt time.Time `json:"updated_at"`
}

// List returns all stored overrides, oldest first
func (r *SupabaseOverrideRepository) List(ctx context.Context) ([]domain.EndpointOverride, error) {
	client := r.supabaseClient.DB()
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	data, _, err := client.From(endpointOverridesTable).
		Select("name,kind,enabled,updated_at", "", false).
		Order("updated_at", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list endpoint overrides: %w", err)
	}

	var rows []overrideRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	overrides := make([]domain.EndpointOverride, 0, len(rows))
	for _, row := range rows {
		overrides = append(overrides, domain.EndpointOverride{
			Name:      row.Name,
			Kind:      domain.OverrideKind(row.Kind),
			Enabled:   row.Enabled,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return overrides, nil
}

// Save upserts an override keyed by (name, kind)
func (r *SupabaseOverrideRepository) Save(ctx context.Context, override domain.EndpointOverride) error {
	client := r.supabaseClient.DB()
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	data := overrideRow{
		Name:      override.Name,
		Kind:      string(override.Kind),
		Enabled:   override.Enabled,
		UpdatedAt: override.UpdatedAt,
	}

	_, _, err := client.From(endpointOverridesTable).
		Upsert(data, "name,kind", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to save endpoint override: %w", err)
	}

	r.logger.Info("Endpoint override saved", "name", override.Name, "kind", override.Kind, "enabled", override.Enabled)
	return nil
}

var _ domain.OverrideRepository = (*SupabaseOverrideRepository)(nil)
