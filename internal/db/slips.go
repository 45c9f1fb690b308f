package db

import (
	"context"
	"fmt"

	"github.com/staffpoints/backend/internal/model"
)

func (db *Postgres) ListStaff(ctx context.Context) ([]model.Staff, error) {
	rows, err := db.DB.QueryContext(ctx, `SELECT name FROM staff ORDER BY LOWER(name)`)
	if err != nil {
		return nil, fmt.Errorf("query staff: %w", err)
	}
	defer rows.Close()

	staff := []model.Staff{}
	for rows.Next() {
		var s model.Staff
		if err := rows.Scan(&s.Name); err != nil {
			return nil, fmt.Errorf("scan staff: %w", err)
		}
		staff = append(staff, s)
	}
	return staff, rows.Err()
}

func (db *Postgres) InsertStaff(ctx context.Context, staff model.Staff) error {
	_, err := db.DB.ExecContext(ctx, `INSERT INTO staff (name, created_at) VALUES ($1, NOW())`, staff.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (db *Postgres) DeleteStaff(ctx context.Context, name string) error {
	_, err := db.DB.ExecContext(ctx, `DELETE FROM staff WHERE LOWER(name) = LOWER($1)`, name)
	return err
}

func (db *Postgres) ListSlips(ctx context.Context) ([]model.Slip, error) {
	query := `
		SELECT id, name, slip_date, points, hours, created_by, created_at
		FROM slips
		ORDER BY slip_date DESC, created_at DESC
	`
	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query slips: %w", err)
	}
	defer rows.Close()

	slips := []model.Slip{}
	for rows.Next() {
		var s model.Slip
		if err := rows.Scan(&s.ID, &s.Name, &s.Date, &s.Points, &s.Hours, &s.CreatedBy, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan slip: %w", err)
		}
		slips = append(slips, s)
	}
	return slips, rows.Err()
}

func (db *Postgres) InsertSlip(ctx context.Context, slip model.Slip) error {
	query := `
		INSERT INTO slips (id, name, slip_date, points, hours, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := db.DB.ExecContext(ctx, query, slip.ID, slip.Name, slip.Date, slip.Points, slip.Hours, slip.CreatedBy, slip.CreatedAt)
	return err
}
