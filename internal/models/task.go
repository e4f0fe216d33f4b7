package models

// TaskStatus represents the status of a cp_task document
type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "OPEN"
	TaskStatusClearQueue TaskStatus = "CLEAR_QUEUE"
)

// TaskRecord represents a cp_task document.
// ID and CompanyID keep their store-native types (int64, ObjectID or string).
type TaskRecord struct {
	ID        interface{} `bson:"_id,omitempty" json:"id,omitempty"`
	CompanyID interface{} `bson:"company_id,omitempty" json:"companyId,omitempty"`
	Status    TaskStatus  `bson:"status" json:"status"`
	TaskType  string      `bson:"task_type" json:"taskType"`
}

// UpdateResult holds the counts reported by a bulk status update
type UpdateResult struct {
	Matched  int64 `json:"matched"`
	Modified int64 `json:"modified"`
}

// StatusCount is one row of a per-status breakdown for a task type
type StatusCount struct {
	Status string `bson:"_id" json:"status"`
	Count  int64  `bson:"count" json:"count"`
}
