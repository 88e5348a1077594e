package database

import (
	"context"
	"fmt"
	"time"

	"pickem-engine-go/logging"
	"pickem-engine-go/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSeasonStateRepository stores the per-league current-week pointer as a
// single row, advanced only through a conditional update.
type MongoSeasonStateRepository struct {
	collection *mongo.Collection
	logger     *logging.Logger
}

func NewMongoSeasonStateRepository(db *MongoDB) *MongoSeasonStateRepository {
	collection := db.GetCollection("season_state")
	logger := logging.WithPrefix("mongo_season_repo")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "league", Value: 1},
			{Key: "season", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		logger.Errorf("Failed to create index on season_state collection: %v", err)
	}

	return &MongoSeasonStateRepository{
		collection: collection,
		logger:     logger,
	}
}

// Get returns the league's season state, or nil if none has been created
func (r *MongoSeasonStateRepository) Get(ctx context.Context, league models.League, season int) (*models.SeasonState, error) {
	filter := bson.M{"league": league, "season": season}

	var state models.SeasonState
	err := r.collection.FindOne(ctx, filter).Decode(&state)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find season state for %s %d: %w", league, season, err)
	}

	return &state, nil
}

// EnsureExists inserts a week-1 row for the league and season if none exists
func (r *MongoSeasonStateRepository) EnsureExists(ctx context.Context, league models.League, season int) error {
	if !league.HasWeeks() {
		return nil
	}

	filter := bson.M{"league": league, "season": season}
	update := bson.M{
		"$setOnInsert": bson.M{
			"league":       league,
			"season":       season,
			"current_week": 1,
			"max_week":     league.MaxWeek(),
			"updated_at":   time.Now(),
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to ensure season state for %s %d: %w", league, season, err)
	}
	return nil
}

// AdvanceWeek moves the pointer from expectedWeek to expectedWeek+1, guarded
// on the row still holding expectedWeek and not already being at the final
// week. Returns false when the guard fails, which a concurrent run losing the
// race treats as a no-op.
func (r *MongoSeasonStateRepository) AdvanceWeek(ctx context.Context, league models.League, season, expectedWeek int) (bool, error) {
	filter := bson.M{
		"league":       league,
		"season":       season,
		"current_week": expectedWeek,
		"max_week":     bson.M{"$gt": expectedWeek},
	}

	update := bson.M{
		"$set": bson.M{
			"current_week": expectedWeek + 1,
			"updated_at":   time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to advance week for %s %d: %w", league, season, err)
	}

	return result.MatchedCount > 0, nil
}
