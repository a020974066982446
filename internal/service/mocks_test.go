package service

import (
	"context"
	"time"

	"vidtube/internal/domain"
	"vidtube/internal/repository"
	"vidtube/internal/storage"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockUserRepo mocks repository.UserRepository.
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockUserRepo) SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error {
	args := m.Called(ctx, id, token)
	return args.Error(0)
}
func (m *MockUserRepo) AddToWatchHistory(ctx context.Context, userID, videoID primitive.ObjectID) error {
	args := m.Called(ctx, userID, videoID)
	return args.Error(0)
}

// MockVideoRepo mocks repository.VideoRepository.
type MockVideoRepo struct {
	mock.Mock
}

func (m *MockVideoRepo) Create(ctx context.Context, video *domain.Video) (primitive.ObjectID, error) {
	args := m.Called(ctx, video)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}
func (m *MockVideoRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Video), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockVideoRepo) GetWithOwner(ctx context.Context, id primitive.ObjectID) (*domain.VideoWithOwner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.VideoWithOwner), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockVideoRepo) List(ctx context.Context, q repository.VideoQuery) ([]domain.VideoWithOwner, error) {
	args := m.Called(ctx, q)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.VideoWithOwner), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockVideoRepo) ListByIDs(ctx context.Context, ids []primitive.ObjectID, publishedOnly bool) ([]domain.VideoWithOwner, error) {
	args := m.Called(ctx, ids, publishedOnly)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.VideoWithOwner), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockVideoRepo) Update(ctx context.Context, video *domain.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}
func (m *MockVideoRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockVideoRepo) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockVideoRepo) SetPublished(ctx context.Context, id primitive.ObjectID, published bool) error {
	args := m.Called(ctx, id, published)
	return args.Error(0)
}
func (m *MockVideoRepo) CountByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockVideoRepo) SumViewsByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockVideoRepo) ListIDsByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]primitive.ObjectID, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) != nil {
		return args.Get(0).([]primitive.ObjectID), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockVideoRepo) ListByOwnerAll(ctx context.Context, ownerID primitive.ObjectID) ([]domain.VideoWithOwner, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.VideoWithOwner), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockLikeRepo mocks repository.LikeRepository.
type MockLikeRepo struct {
	mock.Mock
}

func (m *MockLikeRepo) FindForSubject(ctx context.Context, subject domain.LikeSubject, subjectID, actorID primitive.ObjectID) (*domain.Like, error) {
	args := m.Called(ctx, subject, subjectID, actorID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Like), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockLikeRepo) Create(ctx context.Context, like *domain.Like) (primitive.ObjectID, error) {
	args := m.Called(ctx, like)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}
func (m *MockLikeRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockLikeRepo) CountForSubject(ctx context.Context, subject domain.LikeSubject, subjectID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, subject, subjectID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockLikeRepo) CountForVideos(ctx context.Context, videoIDs []primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, videoIDs)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockLikeRepo) ListVideoIDsLikedBy(ctx context.Context, actorID primitive.ObjectID) ([]primitive.ObjectID, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) != nil {
		return args.Get(0).([]primitive.ObjectID), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockLikeRepo) DeleteForVideo(ctx context.Context, videoID primitive.ObjectID) error {
	args := m.Called(ctx, videoID)
	return args.Error(0)
}

// MockSubscriptionRepo mocks repository.SubscriptionRepository.
type MockSubscriptionRepo struct {
	mock.Mock
}

func (m *MockSubscriptionRepo) Find(ctx context.Context, channelID, subscriberID primitive.ObjectID) (*domain.Subscription, error) {
	args := m.Called(ctx, channelID, subscriberID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Subscription), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockSubscriptionRepo) Create(ctx context.Context, sub *domain.Subscription) (primitive.ObjectID, error) {
	args := m.Called(ctx, sub)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}
func (m *MockSubscriptionRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockSubscriptionRepo) CountByChannel(ctx context.Context, channelID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, channelID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockSubscriptionRepo) ListChannels(ctx context.Context, subscriberID primitive.ObjectID) ([]domain.OwnerProjection, error) {
	args := m.Called(ctx, subscriberID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.OwnerProjection), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockSubscriptionRepo) ListSubscribers(ctx context.Context, channelID primitive.ObjectID) ([]domain.OwnerProjection, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.OwnerProjection), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockPlaylistRepo mocks repository.PlaylistRepository.
type MockPlaylistRepo struct {
	mock.Mock
}

func (m *MockPlaylistRepo) Create(ctx context.Context, playlist *domain.Playlist) (primitive.ObjectID, error) {
	args := m.Called(ctx, playlist)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}
func (m *MockPlaylistRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Playlist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Playlist), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockPlaylistRepo) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Playlist, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Playlist), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockPlaylistRepo) Update(ctx context.Context, id primitive.ObjectID, name, description string) (*domain.Playlist, error) {
	args := m.Called(ctx, id, name, description)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Playlist), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockPlaylistRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPlaylistRepo) AddVideo(ctx context.Context, playlistID, videoID primitive.ObjectID) error {
	args := m.Called(ctx, playlistID, videoID)
	return args.Error(0)
}
func (m *MockPlaylistRepo) RemoveVideo(ctx context.Context, playlistID, videoID primitive.ObjectID) error {
	args := m.Called(ctx, playlistID, videoID)
	return args.Error(0)
}

// MockTweetRepo mocks repository.TweetRepository.
type MockTweetRepo struct {
	mock.Mock
}

func (m *MockTweetRepo) Create(ctx context.Context, tweet *domain.Tweet) (primitive.ObjectID, error) {
	args := m.Called(ctx, tweet)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}
func (m *MockTweetRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Tweet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Tweet), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockTweetRepo) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Tweet, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Tweet), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockTweetRepo) Update(ctx context.Context, id primitive.ObjectID, content string) (*domain.Tweet, error) {
	args := m.Called(ctx, id, content)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Tweet), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockTweetRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCommentRepo mocks repository.CommentRepository.
type MockCommentRepo struct {
	mock.Mock
}

func (m *MockCommentRepo) Create(ctx context.Context, comment *domain.Comment) (primitive.ObjectID, error) {
	args := m.Called(ctx, comment)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}
func (m *MockCommentRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockCommentRepo) ListByVideo(ctx context.Context, videoID primitive.ObjectID, page, limit int64) ([]domain.CommentWithOwner, error) {
	args := m.Called(ctx, videoID, page, limit)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.CommentWithOwner), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockCommentRepo) Update(ctx context.Context, id primitive.ObjectID, content string) (*domain.Comment, error) {
	args := m.Called(ctx, id, content)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockCommentRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMediaStorage mocks storage.MediaStorage.
type MockMediaStorage struct {
	mock.Mock
}

func (m *MockMediaStorage) PresignUpload(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, contentType, expires)
	return args.String(0), args.Error(1)
}
func (m *MockMediaStorage) StatObject(ctx context.Context, objectKey string) (*storage.ObjectInfo, error) {
	args := m.Called(ctx, objectKey)
	if args.Get(0) != nil {
		return args.Get(0).(*storage.ObjectInfo), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockMediaStorage) PublicURL(objectKey string) string {
	args := m.Called(objectKey)
	return args.String(0)
}
func (m *MockMediaStorage) DeleteObject(ctx context.Context, objectKey string) error {
	args := m.Called(ctx, objectKey)
	return args.Error(0)
}
