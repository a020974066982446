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

const subscriptionCollectionName = "subscriptions"

// mongoSubscriptionRepository implements repository.SubscriptionRepository using MongoDB.
type mongoSubscriptionRepository struct {
	collection *mongo.Collection
}

// NewMongoSubscriptionRepository creates a new instance of mongoSubscriptionRepository.
func NewMongoSubscriptionRepository(db *mongo.Database) repository.SubscriptionRepository {
	return &mongoSubscriptionRepository{
		collection: db.Collection(subscriptionCollectionName),
	}
}

// Find looks up the relation row for a (channel, subscriber) pair.
func (r *mongoSubscriptionRepository) Find(ctx context.Context, channelID, subscriberID primitive.ObjectID) (*domain.Subscription, error) {
	filter := bson.M{
		"channel":    channelID,
		"subscriber": subscriberID,
	}

	var sub domain.Subscription
	err := r.collection.FindOne(ctx, filter).Decode(&sub)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// Create inserts a relation row. The (channel, subscriber) unique index
// rejects duplicates, which surface as ErrDuplicate.
func (r *mongoSubscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) (primitive.ObjectID, error) {
	sub.ID = primitive.NewObjectID()
	sub.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, sub)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// Delete removes a relation row by id.
func (r *mongoSubscriptionRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CountByChannel counts a channel's subscribers by equality filter,
// recomputed per request.
func (r *mongoSubscriptionRepository) CountByChannel(ctx context.Context, channelID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"channel": channelID})
}

// ListChannels returns the public profiles of every channel the subscriber
// follows.
func (r *mongoSubscriptionRepository) ListChannels(ctx context.Context, subscriberID primitive.ObjectID) ([]domain.OwnerProjection, error) {
	return r.listProfiles(ctx, bson.M{"subscriber": subscriberID}, "channel")
}

// ListSubscribers returns the public profiles of a channel's subscribers.
func (r *mongoSubscriptionRepository) ListSubscribers(ctx context.Context, channelID primitive.ObjectID) ([]domain.OwnerProjection, error) {
	return r.listProfiles(ctx, bson.M{"channel": channelID}, "subscriber")
}

// listProfiles joins relation rows to the users collection and returns the
// allowlisted profile projection for the given side of the relation.
func (r *mongoSubscriptionRepository) listProfiles(ctx context.Context, match bson.M, side string) ([]domain.OwnerProjection, error) {
	pipeline := []bson.M{
		{"$match": match},
		{"$lookup": bson.M{
			"from":         userCollectionName,
			"localField":   side,
			"foreignField": "_id",
			"as":           "profile",
		}},
		{"$unwind": "$profile"},
		{"$replaceRoot": bson.M{"newRoot": bson.M{
			"_id":      "$profile._id",
			"username": "$profile.username",
			"fullname": "$profile.fullname",
			"avatar":   "$profile.avatar",
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	profiles := []domain.OwnerProjection{}
	if err = cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// EnsureSubscriptionIndexes creates the unique compound index that enforces
// the at-most-one-subscription-per-pair invariant under concurrent toggles.
func EnsureSubscriptionIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "channel", Value: 1}, {Key: "subscriber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "subscriber", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
