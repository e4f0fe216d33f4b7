package query

import (
	"cptask-tools/internal/models"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// Field names of cp_task documents
const (
	FieldID        = "_id"
	FieldStatus    = "status"
	FieldTaskType  = "task_type"
	FieldCompanyID = "company_id"
)

// FilterQuery is an exact-match predicate over status, task type and an
// optional company id
type FilterQuery struct {
	Status    string
	TaskType  string
	CompanyID *CompanyID
}

// Build returns the filter for status and taskType, plus companyID when it is
// not empty
func Build(status, taskType, companyID string) (FilterQuery, error) {
	status = strings.TrimSpace(status)
	taskType = strings.TrimSpace(taskType)
	companyID = strings.TrimSpace(companyID)

	if status == "" {
		return FilterQuery{}, models.ValidationError("status is required")
	}
	if taskType == "" {
		return FilterQuery{}, models.ValidationError("task type is required")
	}

	q := FilterQuery{Status: status, TaskType: taskType}
	if companyID != "" {
		id, err := CoerceCompanyID(companyID)
		if err != nil {
			return FilterQuery{}, err
		}
		q.CompanyID = &id
	}
	return q, nil
}

// BSON renders the filter as a driver document
func (q FilterQuery) BSON() bson.D {
	filter := bson.D{
		{Key: FieldStatus, Value: q.Status},
		{Key: FieldTaskType, Value: q.TaskType},
	}
	if q.CompanyID != nil {
		filter = append(filter, bson.E{Key: FieldCompanyID, Value: q.CompanyID.Value()})
	}
	return filter
}

// String renders the filter as relaxed Extended JSON
func (q FilterQuery) String() string {
	data, err := bson.MarshalExtJSON(q.BSON(), false, false)
	if err != nil {
		return "<invalid filter>"
	}
	return string(data)
}

// ByIDs matches exactly the given document ids
func ByIDs(ids []interface{}) bson.D {
	return bson.D{{Key: FieldID, Value: bson.D{{Key: "$in", Value: bson.A(ids)}}}}
}

// SetStatus is the update document that moves matched tasks to status
func SetStatus(status string) bson.D {
	return bson.D{{Key: "$set", Value: bson.D{{Key: FieldStatus, Value: status}}}}
}
