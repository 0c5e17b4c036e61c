package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"snippet-bot/models"
)

type AIRequestLogRepository struct {
	col *mongo.Collection
}

func NewAIRequestLogRepository(db *mongo.Database) *AIRequestLogRepository {
	return &AIRequestLogRepository{col: db.Collection("ai_logs")}
}

func (r *AIRequestLogRepository) Insert(ctx context.Context, log models.AIRequestLog) (*mongo.InsertOneResult, error) {
	return r.col.InsertOne(ctx, log)
}
