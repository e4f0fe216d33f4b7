package services

import (
	"context"
	"cptask-tools/internal/csvio"
	"cptask-tools/internal/mapping"
	"cptask-tools/internal/models"
	"cptask-tools/internal/query"
	"cptask-tools/internal/record"
	"cptask-tools/internal/utils"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// TaskFinder reads cp_task documents
type TaskFinder interface {
	FindTasks(ctx context.Context, filter, projection bson.D, limit int64) ([]record.Document, error)
}

// CompanyStreamer reads company documents that carry a short name
type CompanyStreamer interface {
	StreamCompanyShortNames(ctx context.Context, limit int64, batchSize int32, fn func(models.CompanyRecord) error) (int64, error)
}

// ExportResult describes one export run. Path is empty when nothing was written.
type ExportResult struct {
	Retrieved int64
	Written   int64
	Columns   []string
	Path      string
	Elapsed   time.Duration
}

// ExportService writes store extracts to CSV files in the output directory
type ExportService struct {
	tasks     TaskFinder
	companies CompanyStreamer
	outputDir string
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService creates a new export service
func NewExportService(tasks TaskFinder, companies CompanyStreamer, outputDir string, logger *zap.Logger) *ExportService {
	return &ExportService{
		tasks:     tasks,
		companies: companies,
		outputDir: outputDir,
		logger:    logger,
		now:       time.Now,
	}
}

// ExportTaskCompanies writes the company_id of tasks with the requested
// status and task type to <TASK_TYPE>_<count>.csv
func (s *ExportService) ExportTaskCompanies(ctx context.Context, req models.ExportTaskCompaniesRequest) (*ExportResult, error) {
	req.Normalize()
	if req.Status == "" {
		req.Status = models.TaskStatusOpen
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	filter := bson.D{
		{Key: query.FieldStatus, Value: string(req.Status)},
		{Key: query.FieldTaskType, Value: req.TaskType},
	}
	projection := bson.D{
		{Key: query.FieldCompanyID, Value: 1},
		{Key: query.FieldID, Value: 0},
	}

	start := s.now()
	docs, err := s.tasks.FindTasks(ctx, filter, projection, req.Limit)
	if err != nil {
		return nil, err
	}
	result := &ExportResult{Retrieved: int64(len(docs)), Elapsed: s.now().Sub(start)}
	s.logger.Info("Fetched tasks",
		zap.String("task_type", req.TaskType),
		zap.String("status", string(req.Status)),
		zap.Int("count", len(docs)))

	if len(docs) == 0 {
		return result, nil
	}

	path := filepath.Join(s.outputDir, fmt.Sprintf("%s_%d.csv", req.TaskType, len(docs)))
	columns, err := csvio.WriteDocumentsFile(path, docs)
	if err != nil {
		return nil, err
	}
	result.Written = int64(len(docs))
	result.Columns = columns
	result.Path = path
	return result, nil
}

// ExportShortNames streams companies with a short name into
// company_id_short_name_unique_<limit>_<timestamp>.csv. The file is only
// created once the first row is ready.
func (s *ExportService) ExportShortNames(ctx context.Context, req models.ExportShortNamesRequest) (result *ExportResult, err error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := s.now()
	path := filepath.Join(s.outputDir, fmt.Sprintf("company_id_short_name_unique_%d_%s.csv",
		req.Limit, utils.FileTimestamp(start)))

	var (
		file *os.File
		rw   *csvio.RowWriter
	)
	defer func() {
		if file == nil {
			return
		}
		if cerr := file.Close(); cerr != nil && err == nil {
			err = models.IOError("close", path, cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	retrieved, err := s.companies.StreamCompanyShortNames(ctx, req.Limit, req.BatchSize, func(c models.CompanyRecord) error {
		if c.ShortName == nil || strings.TrimSpace(*c.ShortName) == "" {
			return nil
		}
		if rw == nil {
			f, err := csvio.CreateFile(path)
			if err != nil {
				return err
			}
			file = f
			rw, err = csvio.NewRowWriter(f, []string{mapping.ColumnCompanyID, mapping.ColumnShortName})
			if err != nil {
				return models.IOError("write", path, err)
			}
		}
		if err := rw.Write([]string{record.FromBSON(c.ID).String(), *c.ShortName}); err != nil {
			return models.IOError("write", path, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result = &ExportResult{
		Retrieved: retrieved,
		Columns:   []string{mapping.ColumnCompanyID, mapping.ColumnShortName},
		Elapsed:   s.now().Sub(start),
	}
	if rw == nil {
		return result, nil
	}
	if err := rw.Flush(); err != nil {
		return nil, models.IOError("write", path, err)
	}
	result.Written = int64(rw.Count())
	result.Path = path

	s.logger.Info("Exported short names",
		zap.Int64("retrieved", result.Retrieved),
		zap.Int64("written", result.Written),
		zap.String("path", path))
	return result, nil
}
