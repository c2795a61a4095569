package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"nationwide/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	achievementsCollection = "achievements"
	videosCollection       = "videos"
)

var achievementSortFields = map[string]string{
	models.AchievementSortDate:        "date",
	models.AchievementSortCreatedAt:   "created_at",
	models.AchievementSortTitle:       "title",
	models.AchievementSortStudentName: "student_name",
}

// EnsureMongoIndexes creates the indexes the listings sort on. It is idempotent.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(achievementsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: -1}},
	}); err != nil {
		return fmt.Errorf("failed to index achievements: %w", err)
	}
	if _, err := db.Collection(videosCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: 1}},
	}); err != nil {
		return fmt.Errorf("failed to index videos: %w", err)
	}
	return nil
}

type MongoAchievementRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

func NewMongoAchievementRepository(db *mongo.Database, logger *zap.Logger) *MongoAchievementRepository {
	return &MongoAchievementRepository{
		coll:   db.Collection(achievementsCollection),
		logger: logger,
	}
}

func (r *MongoAchievementRepository) Create(ctx context.Context, a *models.Achievement) error {
	_, err := r.coll.InsertOne(ctx, a)
	return err
}

func (r *MongoAchievementRepository) GetByID(ctx context.Context, id string) (*models.Achievement, error) {
	var a models.Achievement
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *MongoAchievementRepository) Update(ctx context.Context, a *models.Achievement) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoAchievementRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoAchievementRepository) List(ctx context.Context, filter models.AchievementFilter) ([]*models.Achievement, int64, error) {
	query := bson.M{}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
			bson.M{"student_name": pattern},
		}
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	field, ok := achievementSortFields[filter.SortBy]
	if !ok {
		field = "created_at"
	}
	direction := 1
	if filter.SortDesc {
		direction = -1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: field, Value: direction}, {Key: "_id", Value: 1}}).
		SetSkip(int64(filter.Offset)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	achievements := []*models.Achievement{}
	if err := cur.All(ctx, &achievements); err != nil {
		return nil, 0, err
	}
	return achievements, total, nil
}

type MongoVideoRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

func NewMongoVideoRepository(db *mongo.Database, logger *zap.Logger) *MongoVideoRepository {
	return &MongoVideoRepository{
		coll:   db.Collection(videosCollection),
		logger: logger,
	}
}

func (r *MongoVideoRepository) Create(ctx context.Context, v *models.Video) error {
	_, err := r.coll.InsertOne(ctx, v)
	return err
}

func (r *MongoVideoRepository) GetByID(ctx context.Context, id string) (*models.Video, error) {
	var v models.Video
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *MongoVideoRepository) Update(ctx context.Context, v *models.Video) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": v.ID}, v)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoVideoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoVideoRepository) List(ctx context.Context, activeOnly bool) ([]*models.Video, error) {
	query := bson.M{}
	if activeOnly {
		query["is_active"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: 1}})

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	videos := []*models.Video{}
	if err := cur.All(ctx, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}
