package services

import (
	"context"
	"cptask-tools/internal/models"
	"cptask-tools/internal/query"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// TaskStore is the part of the cp_task collection a status transition needs
type TaskStore interface {
	CountTasks(ctx context.Context, filter bson.D) (int64, error)
	SelectTaskIDs(ctx context.Context, filter bson.D, limit int64) ([]interface{}, error)
	UpdateTaskStatus(ctx context.Context, filter bson.D, status string) (models.UpdateResult, error)
}

// TransitionResult describes one status transition run
type TransitionResult struct {
	Filter      query.FilterQuery
	Limited     bool
	Candidates  int64 // matching count, or number of ids selected when limited
	NoDocuments bool
	Matched     int64
	Modified    int64
	Remaining   *int64 // documents still matching the filter after the write, nil if the recount failed
	Warning     *models.PartialMatchWarning
}

// TransitionService moves cp_task documents from one status to another
type TransitionService struct {
	store  TaskStore
	logger *zap.Logger
}

// NewTransitionService creates a new transition service
func NewTransitionService(store TaskStore, logger *zap.Logger) *TransitionService {
	return &TransitionService{
		store:  store,
		logger: logger,
	}
}

// Plan normalizes and validates req and returns the filter it selects with.
// It does not touch the store.
func Plan(req *models.TransitionRequest) (query.FilterQuery, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return query.FilterQuery{}, err
	}
	return query.Build(string(req.OldStatus), req.TaskType, req.CompanyID)
}

// Transition sets NewStatus on the documents in OldStatus matching the
// request. Without a limit every match is updated in one statement. With a
// limit, up to Limit ids are selected first and only those are updated; the
// old status is not re-checked between selection and update.
//
// Nothing is written when no document matches. Cancelling ctx before the
// write aborts the run; once started the write is not interrupted.
func (s *TransitionService) Transition(ctx context.Context, req models.TransitionRequest) (*TransitionResult, error) {
	q, err := Plan(&req)
	if err != nil {
		return nil, err
	}

	result := &TransitionResult{Filter: q, Limited: req.Limit != nil}
	filter := q.BSON()
	logger := s.logger.With(zap.String("filter", q.String()))

	var target bson.D
	if req.Limit == nil {
		count, err := s.store.CountTasks(ctx, filter)
		if err != nil {
			return nil, err
		}
		result.Candidates = count
		target = filter
	} else {
		ids, err := s.store.SelectTaskIDs(ctx, filter, *req.Limit)
		if err != nil {
			return nil, err
		}
		result.Candidates = int64(len(ids))
		target = query.ByIDs(ids)
	}
	logger.Debug("Selected documents for transition", zap.Int64("candidates", result.Candidates))

	if result.Candidates == 0 {
		result.NoDocuments = true
		logger.Info("No documents to transition")
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrCancelled, err)
	}

	update, err := s.store.UpdateTaskStatus(context.WithoutCancel(ctx), target, string(req.NewStatus))
	if err != nil {
		return nil, err
	}
	result.Matched = update.Matched
	result.Modified = update.Modified

	if update.Modified < update.Matched {
		result.Warning = &models.PartialMatchWarning{Matched: update.Matched, Modified: update.Modified}
		logger.Warn("Partial transition", zap.String("warning", result.Warning.String()))
	}

	remaining, err := s.store.CountTasks(context.WithoutCancel(ctx), filter)
	if err != nil {
		logger.Warn("Failed to recount documents after transition", zap.Error(err))
	} else {
		result.Remaining = &remaining
	}

	return result, nil
}
