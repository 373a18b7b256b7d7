package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"pdf-tools-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticEndpoints struct {
	statuses []domain.EndpointStatus
	groups   map[string][]string
}

func (s staticEndpoints) IsEndpointEnabled(name string) bool { return true }

func (s staticEndpoints) EndpointStatus(name string) domain.EndpointStatus {
	return domain.EndpointStatus{Name: name, Enabled: true}
}

func (s staticEndpoints) Statuses() []domain.EndpointStatus { return s.statuses }

func (s staticEndpoints) Groups() map[string][]string { return s.groups }

func (s staticEndpoints) SetEndpointEnabled(ctx context.Context, name string, enabled bool) error {
	return nil
}

func (s staticEndpoints) SetGroupEnabled(ctx context.Context, group string, enabled bool) error {
	return nil
}

func TestPrintEndpoints(t *testing.T) {
	endpoints := staticEndpoints{
		statuses: []domain.EndpointStatus{
			{Name: "book-to-pdf", Enabled: false, Groups: []string{"Calibre", "Java"}},
			{Name: "remove-image-pdf", Enabled: true, Groups: []string{}},
		},
		groups: map[string][]string{
			"Python":  {"html-to-pdf"},
			"Calibre": {"book-to-pdf", "pdf-to-book"},
		},
	}

	var out bytes.Buffer
	require.NoError(t, printEndpoints(&out, endpoints, false))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"ENDPOINT", "ENABLED", "GROUPS"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"book-to-pdf", "false", "Calibre,Java"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"remove-image-pdf", "true"}, strings.Fields(lines[2]))
}

func TestPrintEndpoints_Groups(t *testing.T) {
	endpoints := staticEndpoints{
		groups: map[string][]string{
			"Python":  {"html-to-pdf"},
			"Calibre": {"book-to-pdf", "pdf-to-book"},
		},
	}

	var out bytes.Buffer
	require.NoError(t, printEndpoints(&out, endpoints, true))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"Calibre", "book-to-pdf,pdf-to-book"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"Python", "html-to-pdf"}, strings.Fields(lines[2]))
}
