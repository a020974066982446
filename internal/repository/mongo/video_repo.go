package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"vidtube/internal/domain"
	"vidtube/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const videoCollectionName = "videos"

// ownerLookupStages joins a video document to its owner and rebuilds the
// embedded document from an explicit field allowlist. Rebuilding (rather
// than excluding) means new User fields never leak into catalog responses.
func ownerLookupStages() []bson.M {
	return []bson.M{
		{"$lookup": bson.M{
			"from":         userCollectionName,
			"localField":   "owner",
			"foreignField": "_id",
			"as":           "ownerInfo",
		}},
		{"$unwind": "$ownerInfo"},
		{"$addFields": bson.M{
			"ownerInfo": bson.M{
				"_id":      "$ownerInfo._id",
				"username": "$ownerInfo.username",
				"fullname": "$ownerInfo.fullname",
				"avatar":   "$ownerInfo.avatar",
			},
		}},
	}
}

// mongoVideoRepository implements repository.VideoRepository using MongoDB.
type mongoVideoRepository struct {
	collection *mongo.Collection
}

// NewMongoVideoRepository creates a new instance of mongoVideoRepository.
func NewMongoVideoRepository(db *mongo.Database) repository.VideoRepository {
	return &mongoVideoRepository{
		collection: db.Collection(videoCollectionName),
	}
}

// Create inserts a new video into the catalog.
func (r *mongoVideoRepository) Create(ctx context.Context, video *domain.Video) (primitive.ObjectID, error) {
	if video.Title == "" || video.OwnerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("video title and owner are required")
	}

	video.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	video.CreatedAt = now
	video.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, video)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a bare video document.
func (r *mongoVideoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error) {
	var video domain.Video
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&video)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &video, nil
}

// GetWithOwner retrieves a video joined to its owner's public profile.
func (r *mongoVideoRepository) GetWithOwner(ctx context.Context, id primitive.ObjectID) (*domain.VideoWithOwner, error) {
	pipeline := []bson.M{{"$match": bson.M{"_id": id}}}
	pipeline = append(pipeline, ownerLookupStages()...)

	rows, err := r.aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, repository.ErrNotFound
	}
	return &rows[0], nil
}

// List executes the full catalog pipeline: match, sort, paginate, then join
// each row to its owner projection. Only published videos are ever returned.
func (r *mongoVideoRepository) List(ctx context.Context, q repository.VideoQuery) ([]domain.VideoWithOwner, error) {
	match := bson.M{"isPublished": true}
	if q.OwnerID != nil {
		match["owner"] = *q.OwnerID
	}
	if q.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		match["$or"] = []bson.M{
			{"title": pattern},
			{"description": pattern},
		}
	}

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	order := -1
	if q.SortAsc {
		order = 1
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 10
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$sort": bson.D{{Key: sortBy, Value: order}, {Key: "_id", Value: order}}},
		{"$skip": (page - 1) * limit},
		{"$limit": limit},
	}
	pipeline = append(pipeline, ownerLookupStages()...)

	return r.aggregate(ctx, pipeline)
}

// ListByIDs fetches the given videos with their owner projections, newest
// first. Used for watch history and liked-videos listings.
func (r *mongoVideoRepository) ListByIDs(ctx context.Context, ids []primitive.ObjectID, publishedOnly bool) ([]domain.VideoWithOwner, error) {
	if len(ids) == 0 {
		return []domain.VideoWithOwner{}, nil
	}

	match := bson.M{"_id": bson.M{"$in": ids}}
	if publishedOnly {
		match["isPublished"] = true
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$sort": bson.D{{Key: "createdAt", Value: -1}}},
	}
	pipeline = append(pipeline, ownerLookupStages()...)

	return r.aggregate(ctx, pipeline)
}

func (r *mongoVideoRepository) aggregate(ctx context.Context, pipeline []bson.M) ([]domain.VideoWithOwner, error) {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rows := []domain.VideoWithOwner{}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Update persists mutable video fields (title, description, thumbnail).
func (r *mongoVideoRepository) Update(ctx context.Context, video *domain.Video) error {
	update := bson.M{
		"$set": bson.M{
			"title":        video.Title,
			"description":  video.Description,
			"thumbnail":    video.Thumbnail,
			"thumbnailKey": video.ThumbnailKey,
			"updatedAt":    time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": video.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a video document.
func (r *mongoVideoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// IncrementViews bumps the view counter by exactly one. A single-document
// $inc, so concurrent fetches never lose increments.
func (r *mongoVideoRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetPublished flips the publish flag.
func (r *mongoVideoRepository) SetPublished(ctx context.Context, id primitive.ObjectID, published bool) error {
	update := bson.M{
		"$set": bson.M{
			"isPublished": published,
			"updatedAt":   time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CountByOwner counts all of an owner's videos, published or not.
func (r *mongoVideoRepository) CountByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"owner": ownerID})
}

// SumViewsByOwner totals the view counters across an owner's videos.
func (r *mongoVideoRepository) SumViewsByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"owner": ownerID}},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$views"}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total int64 `bson:"total"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

// ListIDsByOwner returns the ids of all of an owner's videos.
func (r *mongoVideoRepository) ListIDsByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"owner": ownerID},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids, nil
}

// ListByOwnerAll returns all of an owner's videos with owner projections,
// drafts included, newest first.
func (r *mongoVideoRepository) ListByOwnerAll(ctx context.Context, ownerID primitive.ObjectID) ([]domain.VideoWithOwner, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"owner": ownerID}},
		{"$sort": bson.D{{Key: "createdAt", Value: -1}}},
	}
	pipeline = append(pipeline, ownerLookupStages()...)

	return r.aggregate(ctx, pipeline)
}

// EnsureVideoIndexes creates necessary indexes for the videos collection.
func EnsureVideoIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "isPublished", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
