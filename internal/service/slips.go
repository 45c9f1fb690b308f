package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/staffpoints/backend/internal/db"
	"github.com/staffpoints/backend/internal/model"
)

const maxStaffNameLength = 128

type StaffRepo interface {
	ListStaff(ctx context.Context) ([]model.Staff, error)
	InsertStaff(ctx context.Context, staff model.Staff) error
	DeleteStaff(ctx context.Context, name string) error
}

type SlipRepo interface {
	ListSlips(ctx context.Context) ([]model.Slip, error)
	InsertSlip(ctx context.Context, slip model.Slip) error
}

type StaffService struct {
	repo StaffRepo
}

func NewStaffService(repo StaffRepo) *StaffService {
	return &StaffService{repo: repo}
}

func (s *StaffService) List(ctx context.Context) ([]model.Staff, error) {
	staff, err := s.repo.ListStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	return staff, nil
}

func (s *StaffService) Add(ctx context.Context, name string) (*model.Staff, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "must not be empty")
	}
	if len(name) > maxStaffNameLength {
		return nil, invalid("name", "too long")
	}

	staff := model.Staff{Name: name}
	if err := s.repo.InsertStaff(ctx, staff); err != nil {
		if errors.Is(err, db.ErrConflict) {
			return nil, ErrDuplicateStaff
		}
		return nil, fmt.Errorf("insert staff: %w", err)
	}
	return &staff, nil
}

func (s *StaffService) Remove(ctx context.Context, name string) error {
	if err := s.repo.DeleteStaff(ctx, name); err != nil {
		return fmt.Errorf("delete staff: %w", err)
	}
	return nil
}

// Lookup matches name case-insensitively and returns the directory's casing.
func (s *StaffService) Lookup(ctx context.Context, name string) (*model.Staff, error) {
	staff, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, st := range staff {
		if strings.EqualFold(st.Name, strings.TrimSpace(name)) {
			found := st
			return &found, nil
		}
	}
	return nil, ErrUnknownStaff
}

type SlipService struct {
	repo  SlipRepo
	staff *StaffService
	now   func() time.Time
}

func NewSlipService(repo SlipRepo, staff *StaffService) *SlipService {
	return &SlipService{repo: repo, staff: staff, now: time.Now}
}

// List returns slips newest date first.
func (s *SlipService) List(ctx context.Context) ([]model.Slip, error) {
	slips, err := s.repo.ListSlips(ctx)
	if err != nil {
		return nil, fmt.Errorf("list slips: %w", err)
	}
	sort.SliceStable(slips, func(i, j int) bool {
		if slips[i].Date != slips[j].Date {
			return slips[i].Date > slips[j].Date
		}
		return slips[i].CreatedAt.After(slips[j].CreatedAt)
	})
	return slips, nil
}

func (s *SlipService) Create(ctx context.Context, req model.CreateSlipRequest, createdBy string) (*model.Slip, error) {
	if _, err := time.Parse(model.SlipDateLayout, req.Date); err != nil {
		return nil, invalid("date", "must be YYYY-MM-DD")
	}
	if req.Points == nil || !validAmount(*req.Points) {
		return nil, invalid("points", "must be a non-negative number")
	}
	if req.Hours == nil || !validAmount(*req.Hours) {
		return nil, invalid("hours", "must be a non-negative number")
	}

	staff, err := s.staff.Lookup(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	slip := model.Slip{
		ID:        uuid.NewString(),
		Name:      staff.Name,
		Date:      req.Date,
		Points:    *req.Points,
		Hours:     *req.Hours,
		CreatedBy: createdBy,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.InsertSlip(ctx, slip); err != nil {
		return nil, fmt.Errorf("insert slip: %w", err)
	}
	return &slip, nil
}

func validAmount(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
