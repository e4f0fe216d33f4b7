package services

import (
	"cptask-tools/internal/csvio"
	"cptask-tools/internal/models"
	"cptask-tools/internal/utils"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

var profileHeader = []string{"_id", "short_name", "profile_url"}

// ProfileResult summarizes a profile URL generation run
type ProfileResult struct {
	Processed  int
	WithURL    int
	WithoutURL int
	Skipped    int // rows without an _id
	Path       string
}

// ProfileService adds company profile URLs to mapped short name files
type ProfileService struct {
	baseURL string
	logger  *zap.Logger
	now     func() time.Time
}

// NewProfileService creates a new profile service for URLs under baseURL
func NewProfileService(baseURL string, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
		now:     time.Now,
	}
}

// ProfileURL returns <base>/<id>/<short-name>-company-profile, with spaces in
// the short name replaced by hyphens. It is empty when shortName is empty.
func (s *ProfileService) ProfileURL(id, shortName string) string {
	if shortName == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s-company-profile", s.baseURL, id, strings.ReplaceAll(shortName, " ", "-"))
}

// GenerateURLs reads _id,short_name rows from the input file and writes
// _id,short_name,profile_url rows to <input>_with_urls_<timestamp>.csv.
func (s *ProfileService) GenerateURLs(req models.ProfileURLRequest) (*ProfileResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	input, err := csvio.ReadFile(req.InputFile)
	if err != nil {
		return nil, err
	}

	result := &ProfileResult{}
	rows := make([][]string, 0, len(input))
	for _, row := range input {
		id := row.Get("_id")
		if id == "" {
			result.Skipped++
			continue
		}
		name := row.Get("short_name")
		url := s.ProfileURL(id, name)
		if url == "" {
			result.WithoutURL++
		} else {
			result.WithURL++
		}
		rows = append(rows, []string{id, name, url})
	}
	result.Processed = len(rows)

	if len(rows) == 0 {
		return nil, models.ValidationError("no rows with an _id found in %s", filepath.Base(req.InputFile))
	}

	result.Path = filepath.Join(req.OutputDir, fmt.Sprintf("%s_with_urls_%s.csv",
		baseName(req.InputFile), utils.FileTimestamp(s.now())))
	if err := csvio.WriteRowsFile(result.Path, profileHeader, rows); err != nil {
		return nil, err
	}

	s.logger.Info("Generated profile URLs",
		zap.Int("processed", result.Processed),
		zap.Int("with_url", result.WithURL),
		zap.String("path", result.Path))
	return result, nil
}
