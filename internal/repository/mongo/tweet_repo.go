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

const tweetCollectionName = "tweets"

// mongoTweetRepository implements repository.TweetRepository using MongoDB.
type mongoTweetRepository struct {
	collection *mongo.Collection
}

// NewMongoTweetRepository creates a new instance of mongoTweetRepository.
func NewMongoTweetRepository(db *mongo.Database) repository.TweetRepository {
	return &mongoTweetRepository{
		collection: db.Collection(tweetCollectionName),
	}
}

// Create inserts a new tweet.
func (r *mongoTweetRepository) Create(ctx context.Context, tweet *domain.Tweet) (primitive.ObjectID, error) {
	if tweet.Content == "" || tweet.OwnerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("tweet content and owner are required")
	}

	tweet.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	tweet.CreatedAt = now
	tweet.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, tweet)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a tweet by id.
func (r *mongoTweetRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Tweet, error) {
	var tweet domain.Tweet
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&tweet)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &tweet, nil
}

// ListByOwner retrieves a user's tweets, newest first.
func (r *mongoTweetRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Tweet, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"owner": ownerID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tweets := []domain.Tweet{}
	if err = cursor.All(ctx, &tweets); err != nil {
		return nil, err
	}
	return tweets, nil
}

// Update replaces the tweet's content and returns the updated document.
func (r *mongoTweetRepository) Update(ctx context.Context, id primitive.ObjectID, content string) (*domain.Tweet, error) {
	update := bson.M{
		"$set": bson.M{
			"content":   content,
			"updatedAt": time.Now().UTC(),
		},
	}

	var tweet domain.Tweet
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&tweet)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &tweet, nil
}

// Delete removes a tweet.
func (r *mongoTweetRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureTweetIndexes creates necessary indexes for the tweets collection.
func EnsureTweetIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
