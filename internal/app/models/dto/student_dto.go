package dto

import "github.com/campuscrm/admitdesk/internal/pkg/ingest"

// BulkIngestRequest carries the loosely-typed rows from a spreadsheet upload.
// Header spellings vary per export tool; see the ingest package for the
// accepted aliases.
type BulkIngestRequest struct {
	Rows []ingest.Row `json:"rows" binding:"required"`
}

// BulkIngestResult reports how many rows were stored and how many were
// dropped during field extraction. Duplicates skipped by the store are
// reflected in a lower inserted count, never in an error.
type BulkIngestResult struct {
	Inserted int64 `json:"inserted"`
	Rejected int   `json:"rejected"`
}

// UpdateStudentRequest represents a call-record update. Empty strings clear
// the optional fields.
type UpdateStudentRequest struct {
	Status     string `json:"status" binding:"required" example:"INTERESTED"`
	Interest   string `json:"interest" example:"MBA"`
	Notes      string `json:"notes"`
	PrevCourse string `json:"prevCourse"`
}

// DashboardStats represents the aggregate dashboard payload
type DashboardStats struct {
	Total          int64            `json:"total"`
	InterestGroups map[string]int64 `json:"interestGroups"`
	StatusGroups   map[string]int64 `json:"statusGroups"`
}
