package database

import (
	"context"
	"cptask-tools/internal/models"
	"cptask-tools/internal/query"
	"cptask-tools/internal/record"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// CountTasks counts cp_task documents matching filter
func (c *MongoDBClient) CountTasks(ctx context.Context, filter bson.D) (int64, error) {
	n, err := c.tasks.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return n, nil
}

// SelectTaskIDs returns the _id of up to limit documents matching filter.
// Only the _id field is fetched.
func (c *MongoDBClient) SelectTaskIDs(ctx context.Context, filter bson.D, limit int64) ([]interface{}, error) {
	opts := options.Find().
		SetProjection(bson.D{{Key: query.FieldID, Value: 1}}).
		SetLimit(limit)

	cursor, err := c.tasks.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to select task ids: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID interface{} `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode task ids: %w", err)
	}

	ids := make([]interface{}, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids, nil
}

// UpdateTaskStatus sets status on every document matching filter
func (c *MongoDBClient) UpdateTaskStatus(ctx context.Context, filter bson.D, status string) (models.UpdateResult, error) {
	res, err := c.tasks.UpdateMany(ctx, filter, query.SetStatus(status))
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("failed to update task status: %w", err)
	}
	c.logger.Info("Task status updated",
		zap.String("status", status),
		zap.Int64("matched", res.MatchedCount),
		zap.Int64("modified", res.ModifiedCount))
	return models.UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

// FindTasks returns up to limit documents matching filter with the given
// projection, converted to ordered records
func (c *MongoDBClient) FindTasks(ctx context.Context, filter, projection bson.D, limit int64) ([]record.Document, error) {
	opts := options.Find().SetLimit(limit)
	if projection != nil {
		opts.SetProjection(projection)
	}

	cursor, err := c.tasks.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var raw []bson.D
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}

	docs := make([]record.Document, len(raw))
	for i, d := range raw {
		docs[i] = record.DocumentFromBSON(d)
	}
	return docs, nil
}

// CountTasksByStatus returns the number of documents per status for a task type,
// sorted by status
func (c *MongoDBClient) CountTasksByStatus(ctx context.Context, taskType string) ([]models.StatusCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: query.FieldTaskType, Value: taskType}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + query.FieldStatus},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := c.tasks.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate task statuses: %w", err)
	}
	defer cursor.Close(ctx)

	var counts []models.StatusCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("failed to decode task statuses: %w", err)
	}
	return counts, nil
}
