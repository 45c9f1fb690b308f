package db

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/staffpoints/backend/internal/model"
)

const (
	UsersFile = "users.json"
	StaffFile = "staff.json"
	SlipsFile = "slips.json"
)

// Files keeps users, staff and slips in separate JSON files under one
// directory.
type Files struct {
	users *JSONFile[model.User]
	staff *JSONFile[model.Staff]
	slips *JSONFile[model.Slip]
}

func NewFiles(dir string) *Files {
	return &Files{
		users: NewJSONFile[model.User](filepath.Join(dir, UsersFile)),
		staff: NewJSONFile[model.Staff](filepath.Join(dir, StaffFile)),
		slips: NewJSONFile[model.Slip](filepath.Join(dir, SlipsFile)),
	}
}

func (f *Files) LoadUsers(_ context.Context) ([]model.User, error) {
	return f.users.Load()
}

func (f *Files) SaveUsers(_ context.Context, users []model.User) error {
	return f.users.Save(users)
}

func (f *Files) ListStaff(_ context.Context) ([]model.Staff, error) {
	staff, err := f.staff.Load()
	if IsNotExist(err) {
		return []model.Staff{}, nil
	}
	return staff, err
}

func (f *Files) InsertStaff(_ context.Context, staff model.Staff) error {
	return f.staff.Update(func(items []model.Staff) ([]model.Staff, error) {
		for _, existing := range items {
			if strings.EqualFold(existing.Name, staff.Name) {
				return nil, ErrConflict
			}
		}
		return append(items, staff), nil
	})
}

func (f *Files) DeleteStaff(_ context.Context, name string) error {
	return f.staff.Update(func(items []model.Staff) ([]model.Staff, error) {
		kept := items[:0]
		for _, existing := range items {
			if !strings.EqualFold(existing.Name, name) {
				kept = append(kept, existing)
			}
		}
		return kept, nil
	})
}

func (f *Files) ListSlips(_ context.Context) ([]model.Slip, error) {
	slips, err := f.slips.Load()
	if IsNotExist(err) {
		return []model.Slip{}, nil
	}
	return slips, err
}

func (f *Files) InsertSlip(_ context.Context, slip model.Slip) error {
	return f.slips.Update(func(items []model.Slip) ([]model.Slip, error) {
		return append(items, slip), nil
	})
}
