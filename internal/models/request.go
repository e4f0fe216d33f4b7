package models

import (
	"strconv"
	"strings"
)

// TransitionRequest represents the parameters of a bulk status transition
type TransitionRequest struct {
	OldStatus TaskStatus `json:"oldStatus"`
	NewStatus TaskStatus `json:"newStatus"`
	TaskType  string     `json:"taskType"`
	CompanyID string     `json:"companyId,omitempty"` // Optional, empty means all companies
	Limit     *int64     `json:"limit,omitempty"`     // Optional, nil means no limit
}

// Normalize trims whitespace from all string fields
func (r *TransitionRequest) Normalize() {
	r.OldStatus = TaskStatus(strings.TrimSpace(string(r.OldStatus)))
	r.NewStatus = TaskStatus(strings.TrimSpace(string(r.NewStatus)))
	r.TaskType = strings.TrimSpace(r.TaskType)
	r.CompanyID = strings.TrimSpace(r.CompanyID)
}

// Validate checks the request before any connection is made
func (r TransitionRequest) Validate() error {
	if r.TaskType == "" {
		return ValidationError("task type is required")
	}
	if r.OldStatus == "" || r.NewStatus == "" {
		return ValidationError("old and new status are required")
	}
	if r.OldStatus == r.NewStatus {
		return ValidationError("old and new status are both %q", r.OldStatus)
	}
	if r.Limit != nil && *r.Limit <= 0 {
		return ValidationError("limit must be a positive number, got %d", *r.Limit)
	}
	return nil
}

// ExportTaskCompaniesRequest represents the parameters of a company id export by task type
type ExportTaskCompaniesRequest struct {
	TaskType string     `json:"taskType"`
	Status   TaskStatus `json:"status,omitempty"` // Optional, defaults to OPEN
	Limit    int64      `json:"limit,omitempty"`  // Optional, defaults to the configured export limit
}

// Normalize trims fields and upper-cases the task type
func (r *ExportTaskCompaniesRequest) Normalize() {
	r.TaskType = strings.ToUpper(strings.TrimSpace(r.TaskType))
	r.Status = TaskStatus(strings.TrimSpace(string(r.Status)))
}

// Validate checks the request before any connection is made
func (r ExportTaskCompaniesRequest) Validate() error {
	if r.TaskType == "" {
		return ValidationError("task type is required")
	}
	if r.Limit <= 0 {
		return ValidationError("limit must be a positive number, got %d", r.Limit)
	}
	return nil
}

// ExportShortNamesRequest represents the parameters of a company short name export
type ExportShortNamesRequest struct {
	Limit     int64 `json:"limit,omitempty"`
	BatchSize int32 `json:"batchSize,omitempty"`
}

// Validate checks the request before any connection is made
func (r ExportShortNamesRequest) Validate() error {
	if r.Limit <= 0 {
		return ValidationError("limit must be a positive number, got %d", r.Limit)
	}
	if r.BatchSize < 0 {
		return ValidationError("batch size must not be negative, got %d", r.BatchSize)
	}
	return nil
}

// MapShortNamesRequest represents the parameters of a short name mapping run
type MapShortNamesRequest struct {
	MappingFile string `json:"mappingFile"`
	InputFile   string `json:"inputFile"`
	OutputDir   string `json:"outputDir"`
}

// Validate checks that all paths are present
func (r MapShortNamesRequest) Validate() error {
	if strings.TrimSpace(r.MappingFile) == "" {
		return ValidationError("mapping file is required")
	}
	if strings.TrimSpace(r.InputFile) == "" {
		return ValidationError("input file is required")
	}
	if strings.TrimSpace(r.OutputDir) == "" {
		return ValidationError("output directory is required")
	}
	return nil
}

// ProfileURLRequest represents the parameters of a profile URL generation run
type ProfileURLRequest struct {
	InputFile string `json:"inputFile"`
	OutputDir string `json:"outputDir"`
}

// Validate checks that all paths are present
func (r ProfileURLRequest) Validate() error {
	if strings.TrimSpace(r.InputFile) == "" {
		return ValidationError("input file is required")
	}
	if strings.TrimSpace(r.OutputDir) == "" {
		return ValidationError("output directory is required")
	}
	return nil
}

// ParseLimit parses an operator-entered limit.
// Empty input returns def; anything else must be a positive integer.
func ParseLimit(input string, def *int64) (*int64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		return nil, ValidationError("invalid limit %q: must be a number", input)
	}
	if n <= 0 {
		return nil, ValidationError("limit must be a positive number, got %d", n)
	}
	return &n, nil
}

// StatusCountsRequest represents the parameters of a status breakdown
type StatusCountsRequest struct {
	TaskType string `json:"taskType"`
}

// Validate checks that a task type is present
func (r StatusCountsRequest) Validate() error {
	if strings.TrimSpace(r.TaskType) == "" {
		return ValidationError("task type is required")
	}
	return nil
}
