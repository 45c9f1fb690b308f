package db

import (
	"context"
	"strings"
	"sync"

	"github.com/staffpoints/backend/internal/model"
)

// Memory is a process-local backend for tests and throwaway instances.
// A nil users slice means the credential store has not been created.
type Memory struct {
	mu    sync.Mutex
	users []model.User
	staff []model.Staff
	slips []model.Slip
}

func NewMemory() *Memory {
	return &Memory{}
}

// NewMemoryWithUsers starts from an existing credential list, as if it had
// been written by an older release.
func NewMemoryWithUsers(users []model.User) *Memory {
	m := &Memory{}
	m.users = append([]model.User{}, users...)
	return m
}

func (m *Memory) LoadUsers(_ context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.users == nil {
		return nil, ErrNotExist
	}
	return append([]model.User{}, m.users...), nil
}

func (m *Memory) SaveUsers(_ context.Context, users []model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = append([]model.User{}, users...)
	return nil
}

func (m *Memory) ListStaff(_ context.Context) ([]model.Staff, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Staff{}, m.staff...), nil
}

func (m *Memory) InsertStaff(_ context.Context, staff model.Staff) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.staff {
		if strings.EqualFold(existing.Name, staff.Name) {
			return ErrConflict
		}
	}
	m.staff = append(m.staff, staff)
	return nil
}

func (m *Memory) DeleteStaff(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.staff[:0]
	for _, existing := range m.staff {
		if !strings.EqualFold(existing.Name, name) {
			kept = append(kept, existing)
		}
	}
	m.staff = kept
	return nil
}

func (m *Memory) ListSlips(_ context.Context) ([]model.Slip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Slip{}, m.slips...), nil
}

func (m *Memory) InsertSlip(_ context.Context, slip model.Slip) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slips = append(m.slips, slip)
	return nil
}
