package database

import (
	"context"
	"cptask-tools/internal/models"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ShortNameFilter matches companies whose short_name is present, not null and not empty
func ShortNameFilter() bson.D {
	return bson.D{{Key: "short_name", Value: bson.D{
		{Key: "$exists", Value: true},
		{Key: "$nin", Value: bson.A{"", nil}},
	}}}
}

// StreamCompanyShortNames iterates over up to limit companies with a short name,
// calling fn for each one. It returns the number of documents read.
func (c *MongoDBClient) StreamCompanyShortNames(
	ctx context.Context,
	limit int64,
	batchSize int32,
	fn func(models.CompanyRecord) error,
) (int64, error) {
	opts := options.Find().
		SetProjection(bson.D{{Key: "_id", Value: 1}, {Key: "short_name", Value: 1}}).
		SetLimit(limit)
	if batchSize > 0 {
		opts.SetBatchSize(batchSize)
	}

	cursor, err := c.companies.Find(ctx, ShortNameFilter(), opts)
	if err != nil {
		return 0, fmt.Errorf("failed to query companies: %w", err)
	}
	defer cursor.Close(ctx)

	var n int64
	for cursor.Next(ctx) {
		var company models.CompanyRecord
		if err := cursor.Decode(&company); err != nil {
			return n, fmt.Errorf("failed to decode company: %w", err)
		}
		n++
		if err := fn(company); err != nil {
			return n, err
		}
	}
	if err := cursor.Err(); err != nil {
		return n, fmt.Errorf("company cursor failed: %w", err)
	}
	return n, nil
}
