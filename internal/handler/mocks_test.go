package handler

import (
	"context"
	"io"
	"strings"

	"pdf-tools-server/internal/domain"
)

// MockEndpointService is an in-memory domain.EndpointService for handler tests
type MockEndpointService struct {
	disabled map[string]bool
	groups   map[string][]string
	setErr   error
}

func NewMockEndpointService() *MockEndpointService {
	return &MockEndpointService{
		disabled: make(map[string]bool),
		groups: map[string][]string{
			"Calibre": {"book-to-pdf", "pdf-to-book"},
		},
	}
}

func (m *MockEndpointService) IsEndpointEnabled(name string) bool {
	return !m.disabled[name]
}

func (m *MockEndpointService) EndpointStatus(name string) domain.EndpointStatus {
	groups := make([]string, 0)
	for group, members := range m.groups {
		for _, member := range members {
			if member == name {
				groups = append(groups, group)
			}
		}
	}
	return domain.EndpointStatus{Name: name, Enabled: !m.disabled[name], Groups: groups}
}

func (m *MockEndpointService) Statuses() []domain.EndpointStatus {
	return []domain.EndpointStatus{
		m.EndpointStatus("book-to-pdf"),
		m.EndpointStatus("pdf-to-book"),
	}
}

func (m *MockEndpointService) Groups() map[string][]string {
	return m.groups
}

func (m *MockEndpointService) SetEndpointEnabled(ctx context.Context, name string, enabled bool) error {
	if name == "" {
		return domain.ErrInvalidEndpoint
	}
	m.disabled[name] = !enabled
	return m.setErr
}

func (m *MockEndpointService) SetGroupEnabled(ctx context.Context, group string, enabled bool) error {
	group = strings.TrimSpace(group)
	members, ok := m.groups[group]
	if !ok {
		return domain.ErrGroupNotFound
	}
	for _, member := range members {
		m.disabled[member] = !enabled
	}
	return m.setErr
}

// MockImageRemover echoes its input, or fails with err
type MockImageRemover struct {
	err    error
	result *domain.ImageRemovalResult
	called bool
}

func (m *MockImageRemover) RemoveImages(ctx context.Context, in io.ReadSeeker, out io.Writer) (*domain.ImageRemovalResult, error) {
	m.called = true
	if m.err != nil {
		return nil, m.err
	}
	if _, err := io.Copy(out, in); err != nil {
		return nil, err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &domain.ImageRemovalResult{PageCount: 1}, nil
}
