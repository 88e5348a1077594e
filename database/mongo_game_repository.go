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

// resolvableStatuses are the pre-final statuses a game may be resolved from
var resolvableStatuses = bson.A{models.GameStatusScheduled, models.GameStatusInProgress}

type MongoGameRepository struct {
	collection *mongo.Collection
	logger     *logging.Logger
}

func NewMongoGameRepository(db *MongoDB) *MongoGameRepository {
	collection := db.GetCollection("games")
	logger := logging.WithPrefix("mongo_game_repo")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "league", Value: 1},
				{Key: "season", Value: 1},
				{Key: "week", Value: 1},
				{Key: "status", Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: "league", Value: 1},
				{Key: "status", Value: 1},
				{Key: "kickoff", Value: 1},
			},
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Errorf("Failed to create indexes on games collection: %v", err)
	}

	return &MongoGameRepository{
		collection: collection,
		logger:     logger,
	}
}

// FindByID gets a game by its internal ID
func (r *MongoGameRepository) FindByID(ctx context.Context, id string) (*models.Game, error) {
	var game models.Game
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&game)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find game %s: %w", id, err)
	}
	return &game, nil
}

// FindUnresolved returns the league's non-final, non-cancelled games whose
// kickoff falls inside the lookback window. Games older than the window are
// treated as abandoned and never retried.
func (r *MongoGameRepository) FindUnresolved(ctx context.Context, league models.League, windowStart, now time.Time) ([]*models.Game, error) {
	filter := bson.M{
		"league": league,
		"status": bson.M{"$in": resolvableStatuses},
		"kickoff": bson.M{
			"$gte": windowStart,
			"$lte": now,
		},
	}

	sortOptions := options.Find().SetSort(bson.D{
		{Key: "kickoff", Value: 1},
		{Key: "home", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, filter, sortOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to find unresolved games for %s: %w", league, err)
	}
	defer cursor.Close(ctx)

	var games []*models.Game
	if err := cursor.All(ctx, &games); err != nil {
		return nil, fmt.Errorf("failed to decode games: %w", err)
	}

	return games, nil
}

// CountPendingInWeek counts the week's games that have not reached a final
// or cancelled status. The season advancer moves the week pointer only when
// this count is zero.
func (r *MongoGameRepository) CountPendingInWeek(ctx context.Context, league models.League, season, week int) (int64, error) {
	filter := bson.M{
		"league": league,
		"season": season,
		"week":   week,
		"status": bson.M{"$in": resolvableStatuses},
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending games for %s week %d: %w", league, week, err)
	}
	return count, nil
}

// ResolveGame writes the full outcome in one conditional update, guarded on
// the game still being in a pre-final status. Returns false when a concurrent
// run already resolved the game; the caller must then skip grading.
func (r *MongoGameRepository) ResolveGame(ctx context.Context, gameID string, outcome models.GameOutcome) (bool, error) {
	filter := bson.M{
		"id":     gameID,
		"status": bson.M{"$in": resolvableStatuses},
	}

	update := bson.M{
		"$set": bson.M{
			"status":      models.GameStatusFinal,
			"home_score":  outcome.HomeScore,
			"away_score":  outcome.AwayScore,
			"covered_by":  outcome.CoveredBy,
			"went_over":   outcome.WentOver,
			"resolved_at": outcome.ResolvedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to resolve game %s: %w", gameID, err)
	}

	return result.MatchedCount > 0, nil
}

// UpsertGame inserts or replaces a game record. Used by the catalog ingestion
// side and by seeding utilities; the resolver itself only issues conditional
// updates.
func (r *MongoGameRepository) UpsertGame(ctx context.Context, game *models.Game) error {
	filter := bson.M{"id": game.ID}
	opts := options.Replace().SetUpsert(true)

	if _, err := r.collection.ReplaceOne(ctx, filter, game, opts); err != nil {
		return fmt.Errorf("failed to upsert game %s: %w", game.ID, err)
	}
	return nil
}
