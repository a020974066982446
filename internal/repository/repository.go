package repository

import (
	"context"

	"vidtube/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// VideoQuery carries the catalog listing parameters. Zero values mean
// "no filter"; Page and Limit are expected to be normalized by the caller.
type VideoQuery struct {
	Search  string              // case-insensitive substring over title/description
	OwnerID *primitive.ObjectID // restrict to one owner's catalog
	SortBy  string              // createdAt, views, duration or title
	SortAsc bool
	Page    int64 // 1-based
	Limit   int64
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error
	AddToWatchHistory(ctx context.Context, userID, videoID primitive.ObjectID) error
}

// VideoRepository defines the interface for interacting with the video
// catalog, including the joined listing pipeline.
type VideoRepository interface {
	Create(ctx context.Context, video *domain.Video) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error)
	GetWithOwner(ctx context.Context, id primitive.ObjectID) (*domain.VideoWithOwner, error)
	List(ctx context.Context, q VideoQuery) ([]domain.VideoWithOwner, error)
	ListByIDs(ctx context.Context, ids []primitive.ObjectID, publishedOnly bool) ([]domain.VideoWithOwner, error)
	Update(ctx context.Context, video *domain.Video) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	IncrementViews(ctx context.Context, id primitive.ObjectID) error
	SetPublished(ctx context.Context, id primitive.ObjectID, published bool) error
	CountByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error)
	SumViewsByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error)
	ListIDsByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]primitive.ObjectID, error)
	ListByOwnerAll(ctx context.Context, ownerID primitive.ObjectID) ([]domain.VideoWithOwner, error)
}

// LikeRepository defines the interface for like relation rows.
// Create must return ErrDuplicate when the (subject, likedBy) unique index
// rejects the insert.
type LikeRepository interface {
	FindForSubject(ctx context.Context, subject domain.LikeSubject, subjectID, actorID primitive.ObjectID) (*domain.Like, error)
	Create(ctx context.Context, like *domain.Like) (primitive.ObjectID, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountForSubject(ctx context.Context, subject domain.LikeSubject, subjectID primitive.ObjectID) (int64, error)
	CountForVideos(ctx context.Context, videoIDs []primitive.ObjectID) (int64, error)
	ListVideoIDsLikedBy(ctx context.Context, actorID primitive.ObjectID) ([]primitive.ObjectID, error)
	DeleteForVideo(ctx context.Context, videoID primitive.ObjectID) error
}

// SubscriptionRepository defines the interface for subscription relation
// rows. Create must return ErrDuplicate on a (channel, subscriber) conflict.
type SubscriptionRepository interface {
	Find(ctx context.Context, channelID, subscriberID primitive.ObjectID) (*domain.Subscription, error)
	Create(ctx context.Context, sub *domain.Subscription) (primitive.ObjectID, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountByChannel(ctx context.Context, channelID primitive.ObjectID) (int64, error)
	ListChannels(ctx context.Context, subscriberID primitive.ObjectID) ([]domain.OwnerProjection, error)
	ListSubscribers(ctx context.Context, channelID primitive.ObjectID) ([]domain.OwnerProjection, error)
}

// PlaylistRepository defines the interface for playlists and their
// membership updates.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *domain.Playlist) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Playlist, error)
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Playlist, error)
	Update(ctx context.Context, id primitive.ObjectID, name, description string) (*domain.Playlist, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddVideo(ctx context.Context, playlistID, videoID primitive.ObjectID) error
	RemoveVideo(ctx context.Context, playlistID, videoID primitive.ObjectID) error
}

// TweetRepository defines the interface for tweets.
type TweetRepository interface {
	Create(ctx context.Context, tweet *domain.Tweet) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Tweet, error)
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Tweet, error)
	Update(ctx context.Context, id primitive.ObjectID, content string) (*domain.Tweet, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CommentRepository defines the interface for video comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Comment, error)
	ListByVideo(ctx context.Context, videoID primitive.ObjectID, page, limit int64) ([]domain.CommentWithOwner, error)
	Update(ctx context.Context, id primitive.ObjectID, content string) (*domain.Comment, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
