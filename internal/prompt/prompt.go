// Package prompt gathers command parameters from the operator with huh forms.
// Every form result goes through the same parsing as a parameters file, so
// the commands only ever see validated requests.
package prompt

import (
	"cptask-tools/internal/models"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
)

// Prompter runs interactive forms on the terminal
type Prompter struct {
	accessible bool
}

// New returns a prompter. Setting ACCESSIBLE in the environment switches
// the forms to plain line-based prompts.
func New() *Prompter {
	return &Prompter{accessible: os.Getenv("ACCESSIBLE") != ""}
}

func (p *Prompter) run(form *huh.Form) error {
	err := form.WithAccessible(p.accessible).WithTheme(huh.ThemeBase()).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return models.ErrCancelled
	}
	if err != nil {
		return fmt.Errorf("form error: %w", err)
	}
	return nil
}

// Transition asks for the company id, task type and limit of a status
// transition from oldStatus to newStatus
func (p *Prompter) Transition(oldStatus, newStatus models.TaskStatus) (models.TransitionRequest, error) {
	var companyID, taskType, limitInput string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Company ID").
				Description("Optional, leave empty for all companies").
				Value(&companyID),
			huh.NewInput().
				Title("Task Type").
				Description("Required").
				Value(&taskType).
				Validate(required("task type")),
			huh.NewInput().
				Title("Limit").
				Description("Optional, leave empty to update all matching documents").
				Value(&limitInput).
				Validate(validLimit),
		),
	)
	if err := p.run(form); err != nil {
		return models.TransitionRequest{}, err
	}

	return ParseTransition(companyID, taskType, limitInput, oldStatus, newStatus)
}

// ExportTaskCompanies asks for the task type and limit of a company id export
func (p *Prompter) ExportTaskCompanies(defaultLimit int64) (models.ExportTaskCompaniesRequest, error) {
	var taskType, limitInput string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task Type").
				Value(&taskType).
				Validate(required("task type")),
			huh.NewInput().
				Title("Limit").
				Description(fmt.Sprintf("Default: %d", defaultLimit)).
				Value(&limitInput).
				Validate(validLimit),
		),
	)
	if err := p.run(form); err != nil {
		return models.ExportTaskCompaniesRequest{}, err
	}

	return ParseExportTaskCompanies(taskType, limitInput, defaultLimit)
}

// ExportShortNames asks for the number of companies to export
func (p *Prompter) ExportShortNames(defaultLimit int64, batchSize int32) (models.ExportShortNamesRequest, error) {
	var limitInput string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Limit").
				Description(fmt.Sprintf("Default: %d", defaultLimit)).
				Value(&limitInput).
				Validate(validLimit),
		),
	)
	if err := p.run(form); err != nil {
		return models.ExportShortNamesRequest{}, err
	}

	limit, err := models.ParseLimit(limitInput, &defaultLimit)
	if err != nil {
		return models.ExportShortNamesRequest{}, err
	}
	return models.ExportShortNamesRequest{Limit: *limit, BatchSize: batchSize}, nil
}

// TaskType asks for a task type only
func (p *Prompter) TaskType() (string, error) {
	var taskType string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task Type").
				Value(&taskType).
				Validate(required("task type")),
		),
	)
	if err := p.run(form); err != nil {
		return "", err
	}
	return strings.TrimSpace(taskType), nil
}

// SelectFile lets the operator pick one of files, listed by base name
func (p *Prompter) SelectFile(title string, files []string) (string, error) {
	if len(files) == 0 {
		return "", models.ValidationError("no files to select from")
	}

	options := make([]huh.Option[string], len(files))
	for i, f := range files {
		options[i] = huh.NewOption(fmt.Sprintf("%d. %s", i+1, filepath.Base(f)), f)
	}

	var selected string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(options...).
				Value(&selected),
		),
	)
	if err := p.run(form); err != nil {
		return "", err
	}
	return selected, nil
}

// Confirm asks a yes/no question. A "no" returns models.ErrDeclined.
func (p *Prompter) Confirm(title, description string) error {
	var ok bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	)
	if err := p.run(form); err != nil {
		return err
	}
	if !ok {
		return models.ErrDeclined
	}
	return nil
}

// ParseTransition builds a validated transition request from raw answers
func ParseTransition(companyID, taskType, limitInput string, oldStatus, newStatus models.TaskStatus) (models.TransitionRequest, error) {
	limit, err := models.ParseLimit(limitInput, nil)
	if err != nil {
		return models.TransitionRequest{}, err
	}

	req := models.TransitionRequest{
		OldStatus: oldStatus,
		NewStatus: newStatus,
		TaskType:  taskType,
		CompanyID: companyID,
		Limit:     limit,
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return models.TransitionRequest{}, err
	}
	return req, nil
}

// ParseExportTaskCompanies builds a validated export request from raw answers
func ParseExportTaskCompanies(taskType, limitInput string, defaultLimit int64) (models.ExportTaskCompaniesRequest, error) {
	limit, err := models.ParseLimit(limitInput, &defaultLimit)
	if err != nil {
		return models.ExportTaskCompaniesRequest{}, err
	}

	req := models.ExportTaskCompaniesRequest{TaskType: taskType, Limit: *limit}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return models.ExportTaskCompaniesRequest{}, err
	}
	return req, nil
}

func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func validLimit(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return fmt.Errorf("limit must be a positive number")
	}
	return nil
}
