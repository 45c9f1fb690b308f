package model

import "time"

const SlipDateLayout = "2006-01-02"

type Staff struct {
	Name string `json:"name"`
}

type CreateStaffRequest struct {
	Name string `json:"name" binding:"required"`
}

type Slip struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Date      string    `json:"date"`
	Points    float64   `json:"points"`
	Hours     float64   `json:"hours"`
	CreatedBy string    `json:"createdBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Points and hours are pointers so a missing field can be told apart from 0.
type CreateSlipRequest struct {
	Name   string   `json:"name" binding:"required"`
	Date   string   `json:"date" binding:"required"`
	Points *float64 `json:"points" binding:"required"`
	Hours  *float64 `json:"hours" binding:"required"`
}
