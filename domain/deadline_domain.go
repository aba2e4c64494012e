package domain

import (
	"time"
)

var (
	MessageSuccessGetDeadlines = "deadlines retrieved successfully"
	MessageFailedGetDeadlines  = "failed to retrieve deadlines"
)

type (
	DeadlineResponse struct {
		Name          string    `json:"name"`
		Kind          string    `json:"kind"` // "VAT_PREREGISTRATION", "VAT_YEARLY", "INCOME_TAX"
		DueDate       time.Time `json:"due_date"`
		RemainingDays int       `json:"remaining_days"`
		Overdue       bool      `json:"overdue"`
	}
)
