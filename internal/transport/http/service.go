package http

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"aircli/internal/config"
	"aircli/internal/dataset"
	"aircli/internal/errors"
	"aircli/pkg/contracts/domain"
)

// DatasetService guards a DataSet for concurrent HTTP callers. The dataset
// itself is single-threaded by design; this wrapper owns the lock because
// the transport is what introduces concurrency.
type DatasetService struct {
	mu     sync.RWMutex
	ds     *dataset.DataSet
	cfg    *config.Config
	logger *slog.Logger
}

// NewDatasetService wraps ds for use by the HTTP handlers.
func NewDatasetService(ds *dataset.DataSet, cfg *config.Config, logger *slog.Logger) *DatasetService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetService{
		ds:     ds,
		cfg:    cfg,
		logger: logger.With(slog.String("component", "dataset_service")),
	}
}

// Status describes the dataset state for the status endpoint.
type Status struct {
	Header string `json:"header"`
	Loaded bool   `json:"loaded"`
	Count  int    `json:"count"`
}

// Status returns the current dataset state.
func (s *DatasetService) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{
		Header: s.ds.Header(),
		Loaded: s.ds.Loaded(),
		Count:  s.ds.Count(),
	}
}

// Load reloads the dataset from a file under the configured data
// directory. Only plain file names are accepted; path traversal and
// absolute paths are rejected.
func (s *DatasetService) Load(ctx context.Context, name, format string) (int, error) {
	if name == "" {
		return 0, errors.NewValidationError("file name is required")
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return 0, errors.NewValidationError("file name must not contain path separators").
			WithContext("file", name)
	}
	path := s.cfg.ResolveDataPath(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		count int
		err   error
	)
	switch strings.ToLower(format) {
	case "", "csv":
		count, err = s.ds.LoadFile(path)
	case "xlsx", "excel":
		count, err = s.ds.LoadExcel(path, s.cfg.Data.ExcelSheet)
	default:
		return 0, errors.NewValidationError("format must be csv or xlsx").
			WithContext("format", format)
	}
	if err != nil {
		return 0, err
	}

	datasetLoads.Inc()
	datasetRecords.Set(float64(count))
	s.logger.InfoContext(ctx, "dataset reloaded",
		slog.String("path", path),
		slog.Int("records", count))
	return count, nil
}

// Labels returns the category's labels, all or active-only.
func (s *DatasetService) Labels(cat domain.Category, activeOnly bool) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if activeOnly {
		return s.ds.ActiveLabels(cat)
	}
	return s.ds.Labels(cat)
}

// ToggleLabel flips one label's active flag.
func (s *DatasetService) ToggleLabel(cat domain.Category, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ds.ToggleLabel(cat, label)
}

// CrossTabStatistics answers the raw pairwise statistics query.
func (s *DatasetService) CrossTabStatistics(zipLabel, timeLabel string) (domain.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	statQueries.WithLabelValues("cross").Inc()
	return s.ds.CrossTabStatistics(zipLabel, timeLabel)
}

// TableStatistics answers the activation-gated single-axis query.
func (s *DatasetService) TableStatistics(cat domain.Category, label string) (domain.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	statQueries.WithLabelValues("field").Inc()
	return s.ds.TableStatistics(cat, label)
}

// RenderCrossTable renders the cross table as plain text.
func (s *DatasetService) RenderCrossTable(stat domain.Stat) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var sb strings.Builder
	if err := s.ds.WriteCrossTable(&sb, stat); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderFieldTable renders the field table as plain text.
func (s *DatasetService) RenderFieldTable(cat domain.Category) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var sb strings.Builder
	if err := s.ds.WriteFieldTable(&sb, cat); err != nil {
		return "", err
	}
	return sb.String(), nil
}
