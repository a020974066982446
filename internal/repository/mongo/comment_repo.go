package mongo

import (
	"context"
	"errors"
	"time"

	"vidtube/internal/domain"
	"vidtube/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const commentCollectionName = "comments"

// mongoCommentRepository implements repository.CommentRepository using MongoDB.
type mongoCommentRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentRepository creates a new instance of mongoCommentRepository.
func NewMongoCommentRepository(db *mongo.Database) repository.CommentRepository {
	return &mongoCommentRepository{
		collection: db.Collection(commentCollectionName),
	}
}

// Create inserts a new comment.
func (r *mongoCommentRepository) Create(ctx context.Context, comment *domain.Comment) (primitive.ObjectID, error) {
	if comment.Content == "" || comment.VideoID == primitive.NilObjectID || comment.OwnerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("comment content, video and owner are required")
	}

	comment.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, comment)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a comment by id.
func (r *mongoCommentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// ListByVideo retrieves a page of a video's comments joined to their
// authors' public profiles, newest first.
func (r *mongoCommentRepository) ListByVideo(ctx context.Context, videoID primitive.ObjectID, page, limit int64) ([]domain.CommentWithOwner, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	pipeline := []bson.M{
		{"$match": bson.M{"video": videoID}},
		{"$sort": bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}},
		{"$skip": (page - 1) * limit},
		{"$limit": limit},
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

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := []domain.CommentWithOwner{}
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// Update replaces the comment's content and returns the updated document.
func (r *mongoCommentRepository) Update(ctx context.Context, id primitive.ObjectID, content string) (*domain.Comment, error) {
	update := bson.M{
		"$set": bson.M{
			"content":   content,
			"updatedAt": time.Now().UTC(),
		},
	}

	var comment domain.Comment
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// Delete removes a comment.
func (r *mongoCommentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureCommentIndexes creates necessary indexes for the comments collection.
func EnsureCommentIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "video", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
