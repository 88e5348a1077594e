package database

import (
	"context"
	"fmt"
	"time"

	"pickem-engine-go/logging"
	"pickem-engine-go/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoPickRepository implements pick persistence for MongoDB
type MongoPickRepository struct {
	collection *mongo.Collection
	logger     *logging.Logger
}

// NewMongoPickRepository creates a new MongoDB pick repository
func NewMongoPickRepository(db *MongoDB) *MongoPickRepository {
	collection := db.GetCollection("picks")
	logger := logging.WithPrefix("mongo_pick_repo")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "game_id", Value: 1},
				{Key: "graded_at", Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "game_id", Value: 1},
			},
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Errorf("Failed to create indexes on picks collection: %v", err)
	}

	return &MongoPickRepository{
		collection: collection,
		logger:     logger,
	}
}

// FindUngradedByGame returns the game's picks that the grader has not yet
// processed. A nil filter on graded_at matches both absent and null fields.
func (r *MongoPickRepository) FindUngradedByGame(ctx context.Context, gameID string) ([]*models.Pick, error) {
	filter := bson.M{
		"game_id":   gameID,
		"graded_at": nil,
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find ungraded picks for game %s: %w", gameID, err)
	}
	defer cursor.Close(ctx)

	var picks []*models.Pick
	if err := cursor.All(ctx, &picks); err != nil {
		return nil, fmt.Errorf("failed to decode picks: %w", err)
	}

	return picks, nil
}

// GradePick writes both grading fields in one conditional update, guarded on
// the pick never having been graded. Returns false when a concurrent run won
// the race; the grade is then discarded as a no-op.
func (r *MongoPickRepository) GradePick(ctx context.Context, pickID primitive.ObjectID, grade models.PickGrade) (bool, error) {
	filter := bson.M{
		"_id":       pickID,
		"graded_at": nil,
	}

	update := bson.M{
		"$set": bson.M{
			"correct":            grade.Correct,
			"over_under_correct": grade.OverUnderCorrect,
			"graded_at":          grade.GradedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to grade pick %s: %w", pickID.Hex(), err)
	}

	return result.MatchedCount > 0, nil
}

// InsertPick stores a new pick. The submission flow lives outside this
// service; this exists for seeding and integration tooling.
func (r *MongoPickRepository) InsertPick(ctx context.Context, pick *models.Pick) error {
	if pick.CreatedAt.IsZero() {
		pick.CreatedAt = time.Now()
	}

	if _, err := r.collection.InsertOne(ctx, pick); err != nil {
		return fmt.Errorf("failed to insert pick: %w", err)
	}
	return nil
}
