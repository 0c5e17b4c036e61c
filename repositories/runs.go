package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"snippet-bot/models"
)

type RunRepository struct {
	col *mongo.Collection
}

func NewRunRepository(db *mongo.Database) *RunRepository {
	return &RunRepository{col: db.Collection("runs")}
}

// Insert stores a finished run record and returns its generated ID.
func (r *RunRepository) Insert(ctx context.Context, run *models.Run) (*mongo.InsertOneResult, error) {
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now()
	}
	return r.col.InsertOne(ctx, run)
}

// ListRecent returns the latest runs, newest first.
func (r *RunRepository) ListRecent(ctx context.Context, limit int64) ([]models.Run, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	findOpts := options.Find().SetLimit(limit).SetSort(bson.D{
		{Key: "started_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	cur, err := r.col.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var results []models.Run
	for cur.Next(ctx) {
		var run models.Run
		if err := cur.Decode(&run); err != nil {
			return nil, err
		}
		results = append(results, run)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
