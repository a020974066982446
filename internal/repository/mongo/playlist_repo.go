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

const playlistCollectionName = "playlists"

// mongoPlaylistRepository implements repository.PlaylistRepository using MongoDB.
type mongoPlaylistRepository struct {
	collection *mongo.Collection
}

// NewMongoPlaylistRepository creates a new instance of mongoPlaylistRepository.
func NewMongoPlaylistRepository(db *mongo.Database) repository.PlaylistRepository {
	return &mongoPlaylistRepository{
		collection: db.Collection(playlistCollectionName),
	}
}

// Create inserts a new playlist.
func (r *mongoPlaylistRepository) Create(ctx context.Context, playlist *domain.Playlist) (primitive.ObjectID, error) {
	if playlist.Name == "" || playlist.OwnerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("playlist name and owner are required")
	}

	playlist.ID = primitive.NewObjectID()
	if playlist.VideoIDs == nil {
		playlist.VideoIDs = []primitive.ObjectID{}
	}
	now := time.Now().UTC()
	playlist.CreatedAt = now
	playlist.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, playlist)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a playlist by id.
func (r *mongoPlaylistRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Playlist, error) {
	var playlist domain.Playlist
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&playlist)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &playlist, nil
}

// ListByOwner retrieves all of an owner's playlists, newest first.
func (r *mongoPlaylistRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Playlist, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"owner": ownerID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	playlists := []domain.Playlist{}
	if err = cursor.All(ctx, &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

// Update sets the playlist's name and/or description. Empty arguments leave
// the corresponding field untouched.
func (r *mongoPlaylistRepository) Update(ctx context.Context, id primitive.ObjectID, name, description string) (*domain.Playlist, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if name != "" {
		set["name"] = name
	}
	if description != "" {
		set["description"] = description
	}

	var playlist domain.Playlist
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&playlist)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &playlist, nil
}

// Delete removes a playlist wholesale.
func (r *mongoPlaylistRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AddVideo appends a video to the membership set. $addToSet keeps the
// append idempotent at the store even if the service-level duplicate check
// races another writer.
func (r *mongoPlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID primitive.ObjectID) error {
	update := bson.M{
		"$addToSet": bson.M{"videos": videoID},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": playlistID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// RemoveVideo filters a video out of the membership set.
func (r *mongoPlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID primitive.ObjectID) error {
	update := bson.M{
		"$pull": bson.M{"videos": videoID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": playlistID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsurePlaylistIndexes creates necessary indexes for the playlists collection.
func EnsurePlaylistIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
