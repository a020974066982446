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

const likeCollectionName = "likes"

// subjectField maps a like subject to its bson field name.
func subjectField(subject domain.LikeSubject) string {
	switch subject {
	case domain.LikeSubjectComment:
		return "comment"
	case domain.LikeSubjectTweet:
		return "tweet"
	default:
		return "video"
	}
}

// mongoLikeRepository implements repository.LikeRepository using MongoDB.
type mongoLikeRepository struct {
	collection *mongo.Collection
}

// NewMongoLikeRepository creates a new instance of mongoLikeRepository.
func NewMongoLikeRepository(db *mongo.Database) repository.LikeRepository {
	return &mongoLikeRepository{
		collection: db.Collection(likeCollectionName),
	}
}

// FindForSubject looks up the relation row for a (subject, actor) pair.
func (r *mongoLikeRepository) FindForSubject(ctx context.Context, subject domain.LikeSubject, subjectID, actorID primitive.ObjectID) (*domain.Like, error) {
	filter := bson.M{
		subjectField(subject): subjectID,
		"likedBy":             actorID,
	}

	var like domain.Like
	err := r.collection.FindOne(ctx, filter).Decode(&like)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &like, nil
}

// Create inserts a relation row. The partial unique indexes reject a second
// row for the same (subject, likedBy) pair; that surfaces as ErrDuplicate so
// the toggle engine can treat a lost race as "already liked".
func (r *mongoLikeRepository) Create(ctx context.Context, like *domain.Like) (primitive.ObjectID, error) {
	like.ID = primitive.NewObjectID()
	like.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, like)
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
func (r *mongoLikeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CountForSubject counts likes for one subject by equality filter. Counts
// are recomputed per request; no cached counter field exists anywhere.
func (r *mongoLikeRepository) CountForSubject(ctx context.Context, subject domain.LikeSubject, subjectID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{subjectField(subject): subjectID})
}

// CountForVideos counts likes across a set of videos.
func (r *mongoLikeRepository) CountForVideos(ctx context.Context, videoIDs []primitive.ObjectID) (int64, error) {
	if len(videoIDs) == 0 {
		return 0, nil
	}
	return r.collection.CountDocuments(ctx, bson.M{"video": bson.M{"$in": videoIDs}})
}

// ListVideoIDsLikedBy returns the ids of all videos the actor has liked.
func (r *mongoLikeRepository) ListVideoIDsLikedBy(ctx context.Context, actorID primitive.ObjectID) ([]primitive.ObjectID, error) {
	filter := bson.M{
		"likedBy": actorID,
		"video":   bson.M{"$exists": true},
	}

	cursor, err := r.collection.Find(ctx, filter,
		options.Find().SetProjection(bson.M{"video": 1}).SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		VideoID primitive.ObjectID `bson:"video"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, len(docs))
	for i, d := range docs {
		ids[i] = d.VideoID
	}
	return ids, nil
}

// DeleteForVideo prunes all likes referencing a deleted video.
func (r *mongoLikeRepository) DeleteForVideo(ctx context.Context, videoID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"video": videoID})
	return err
}

// EnsureLikeIndexes creates the partial unique compound indexes that enforce
// the at-most-one-like-per-pair invariant under concurrent toggles. Partial
// because each Like populates exactly one subject field.
func EnsureLikeIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := make([]mongo.IndexModel, 0, 3)
	for _, field := range []string{"video", "comment", "tweet"} {
		indexes = append(indexes, mongo.IndexModel{
			Keys: bson.D{{Key: field, Value: 1}, {Key: "likedBy", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{field: bson.M{"$exists": true}}),
		})
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
