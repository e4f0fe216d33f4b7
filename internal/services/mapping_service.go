package services

import (
	"cptask-tools/internal/csvio"
	"cptask-tools/internal/mapping"
	"cptask-tools/internal/models"
	"cptask-tools/internal/utils"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Output columns of a short name mapping run
var mappedHeader = []string{"_id", "short_name"}

// MappingResult summarizes a short name mapping run
type MappingResult struct {
	MappingEntries int
	Overwrites     int
	Processed      int
	Resolved       int
	Unresolved     int
	Path           string
	LoadTime       time.Duration
	MapTime        time.Duration
}

// MappingService resolves company ids of an input CSV against a mapping export
type MappingService struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewMappingService creates a new mapping service
func NewMappingService(logger *zap.Logger) *MappingService {
	return &MappingService{logger: logger, now: time.Now}
}

// MapShortNames loads the mapping file, joins the company_id column of the
// input file against it and writes _id,short_name rows to
// <input>_output_<timestamp>.csv in the output directory.
func (s *MappingService) MapShortNames(req models.MapShortNamesRequest) (*MappingResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := s.now()
	index, err := mapping.Load(req.MappingFile)
	if err != nil {
		return nil, err
	}
	if index.Len() == 0 {
		return nil, models.ValidationError("mapping file %s has no %s entries",
			filepath.Base(req.MappingFile), mapping.ColumnCompanyID)
	}
	result := &MappingResult{
		MappingEntries: index.Len(),
		Overwrites:     index.Overwrites(),
		LoadTime:       s.now().Sub(start),
	}
	s.logger.Info("Loaded mapping",
		zap.String("file", req.MappingFile),
		zap.Int("entries", index.Len()),
		zap.Int("overwrites", index.Overwrites()))

	ids, err := csvio.ReadColumn(req.InputFile, mapping.ColumnCompanyID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, models.ValidationError("no %s values found in %s",
			mapping.ColumnCompanyID, filepath.Base(req.InputFile))
	}

	start = s.now()
	joined := mapping.Join(ids, index)
	result.MapTime = s.now().Sub(start)
	result.Processed = len(joined.Records)
	result.Resolved = joined.Resolved
	result.Unresolved = joined.Unresolved

	rows := make([][]string, len(joined.Records))
	for i, r := range joined.Records {
		rows[i] = []string{r.CompanyID, r.ShortName}
	}

	result.Path = filepath.Join(req.OutputDir, fmt.Sprintf("%s_output_%s.csv",
		baseName(req.InputFile), utils.FileTimestamp(s.now())))
	if err := csvio.WriteRowsFile(result.Path, mappedHeader, rows); err != nil {
		return nil, err
	}

	s.logger.Info("Mapped short names",
		zap.Int("processed", result.Processed),
		zap.Int("resolved", result.Resolved),
		zap.String("path", result.Path))
	return result, nil
}

// baseName returns the file name of path without its extension
func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
