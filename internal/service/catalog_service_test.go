package service

import (
	"context"
	"testing"

	"vidtube/internal/domain"
	"vidtube/internal/repository"
	"vidtube/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newCatalogFixture() (*MockVideoRepo, *MockUserRepo, *MockLikeRepo, *MockMediaStorage, CatalogService) {
	videoRepo := new(MockVideoRepo)
	userRepo := new(MockUserRepo)
	likeRepo := new(MockLikeRepo)
	media := new(MockMediaStorage)
	svc := NewCatalogService(videoRepo, userRepo, likeRepo, media, zap.NewNop())
	return videoRepo, userRepo, likeRepo, media, svc
}

func TestCatalogList_ParameterCoercion(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults applied for empty parameters", func(t *testing.T) {
		videoRepo, _, _, _, svc := newCatalogFixture()
		videoRepo.On("List", ctx, repository.VideoQuery{
			SortBy: "createdAt",
			Page:   1,
			Limit:  10,
		}).Return([]domain.VideoWithOwner{}, nil).Once()

		rows, err := svc.List(ctx, CatalogQuery{})

		assert.NoError(t, err)
		assert.Empty(t, rows)
		videoRepo.AssertExpectations(t)
	})

	t.Run("malformed numbers fall back to defaults", func(t *testing.T) {
		videoRepo, _, _, _, svc := newCatalogFixture()
		videoRepo.On("List", ctx, repository.VideoQuery{
			SortBy: "createdAt",
			Page:   1,
			Limit:  10,
		}).Return([]domain.VideoWithOwner{}, nil).Once()

		_, err := svc.List(ctx, CatalogQuery{Page: "abc", Limit: "-3"})

		assert.NoError(t, err)
		videoRepo.AssertExpectations(t)
	})

	t.Run("limit is capped", func(t *testing.T) {
		videoRepo, _, _, _, svc := newCatalogFixture()
		videoRepo.On("List", ctx, repository.VideoQuery{
			SortBy: "createdAt",
			Page:   2,
			Limit:  100,
		}).Return([]domain.VideoWithOwner{}, nil).Once()

		_, err := svc.List(ctx, CatalogQuery{Page: "2", Limit: "5000"})

		assert.NoError(t, err)
		videoRepo.AssertExpectations(t)
	})

	t.Run("unknown sort field falls back to createdAt", func(t *testing.T) {
		videoRepo, _, _, _, svc := newCatalogFixture()
		videoRepo.On("List", ctx, repository.VideoQuery{
			SortBy:  "createdAt",
			SortAsc: true,
			Page:    1,
			Limit:   10,
		}).Return([]domain.VideoWithOwner{}, nil).Once()

		_, err := svc.List(ctx, CatalogQuery{SortBy: "passwordHash", SortType: "asc"})

		assert.NoError(t, err)
		videoRepo.AssertExpectations(t)
	})

	t.Run("allowlisted sort field passes through", func(t *testing.T) {
		videoRepo, _, _, _, svc := newCatalogFixture()
		videoRepo.On("List", ctx, repository.VideoQuery{
			SortBy: "views",
			Page:   1,
			Limit:  10,
		}).Return([]domain.VideoWithOwner{}, nil).Once()

		_, err := svc.List(ctx, CatalogQuery{SortBy: "views", SortType: "desc"})

		assert.NoError(t, err)
		videoRepo.AssertExpectations(t)
	})

	t.Run("malformed userId rejected", func(t *testing.T) {
		_, _, _, _, svc := newCatalogFixture()

		_, err := svc.List(ctx, CatalogQuery{UserID: "not-a-hex-id"})

		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("valid userId becomes owner filter", func(t *testing.T) {
		videoRepo, _, _, _, svc := newCatalogFixture()
		ownerID := primitive.NewObjectID()
		videoRepo.On("List", ctx, repository.VideoQuery{
			OwnerID: &ownerID,
			SortBy:  "createdAt",
			Page:    1,
			Limit:   10,
		}).Return([]domain.VideoWithOwner{}, nil).Once()

		_, err := svc.List(ctx, CatalogQuery{UserID: ownerID.Hex()})

		assert.NoError(t, err)
		videoRepo.AssertExpectations(t)
	})
}

func TestCatalogGet_RecordsView(t *testing.T) {
	ctx := context.Background()
	videoID := primitive.NewObjectID()

	t.Run("anonymous fetch increments views only", func(t *testing.T) {
		videoRepo, userRepo, _, _, svc := newCatalogFixture()
		stored := &domain.VideoWithOwner{}
		stored.ID = videoID
		stored.Views = 7
		videoRepo.On("GetWithOwner", ctx, videoID).Return(stored, nil).Once()
		videoRepo.On("IncrementViews", ctx, videoID).Return(nil).Once()

		video, err := svc.Get(ctx, videoID, nil)

		assert.NoError(t, err)
		assert.Equal(t, int64(8), video.Views)
		videoRepo.AssertExpectations(t)
		userRepo.AssertNotCalled(t, "AddToWatchHistory", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("authenticated fetch also records watch history", func(t *testing.T) {
		videoRepo, userRepo, _, _, svc := newCatalogFixture()
		viewerID := primitive.NewObjectID()
		stored := &domain.VideoWithOwner{}
		stored.ID = videoID
		videoRepo.On("GetWithOwner", ctx, videoID).Return(stored, nil).Once()
		videoRepo.On("IncrementViews", ctx, videoID).Return(nil).Once()
		userRepo.On("AddToWatchHistory", ctx, viewerID, videoID).Return(nil).Once()

		_, err := svc.Get(ctx, videoID, &viewerID)

		assert.NoError(t, err)
		videoRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
	})

	t.Run("missing video", func(t *testing.T) {
		videoRepo, _, _, _, svc := newCatalogFixture()
		videoRepo.On("GetWithOwner", ctx, videoID).Return(nil, repository.ErrNotFound).Once()

		_, err := svc.Get(ctx, videoID, nil)

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCatalogPublish(t *testing.T) {
	ctx := context.Background()
	ownerID := primitive.NewObjectID()
	in := PublishInput{
		Title:        "First video",
		Description:  "A description",
		VideoKey:     "videos/abc",
		ThumbnailKey: "thumbnails/abc",
		Duration:     12.5,
	}

	t.Run("duration read from object metadata", func(t *testing.T) {
		videoRepo, _, _, media, svc := newCatalogFixture()
		media.On("StatObject", ctx, in.VideoKey).
			Return(&storage.ObjectInfo{Metadata: map[string]string{"duration": "98.4"}}, nil).Once()
		media.On("StatObject", ctx, in.ThumbnailKey).Return(&storage.ObjectInfo{}, nil).Once()
		media.On("PublicURL", in.VideoKey).Return("https://cdn/videos/abc").Once()
		media.On("PublicURL", in.ThumbnailKey).Return("https://cdn/thumbnails/abc").Once()
		videoRepo.On("Create", ctx, mock.AnythingOfType("*domain.Video")).
			Return(primitive.NewObjectID(), nil).Once()

		video, err := svc.Publish(ctx, ownerID, in)

		assert.NoError(t, err)
		assert.Equal(t, 98.4, video.Duration)
		assert.True(t, video.IsPublished)
		assert.Equal(t, int64(0), video.Views)
		videoRepo.AssertExpectations(t)
		media.AssertExpectations(t)
	})

	t.Run("falls back to request duration without metadata", func(t *testing.T) {
		videoRepo, _, _, media, svc := newCatalogFixture()
		media.On("StatObject", ctx, in.VideoKey).Return(&storage.ObjectInfo{}, nil).Once()
		media.On("StatObject", ctx, in.ThumbnailKey).Return(&storage.ObjectInfo{}, nil).Once()
		media.On("PublicURL", mock.Anything).Return("https://cdn/x")
		videoRepo.On("Create", ctx, mock.AnythingOfType("*domain.Video")).
			Return(primitive.NewObjectID(), nil).Once()

		video, err := svc.Publish(ctx, ownerID, in)

		assert.NoError(t, err)
		assert.Equal(t, 12.5, video.Duration)
	})

	t.Run("missing media object", func(t *testing.T) {
		_, _, _, media, svc := newCatalogFixture()
		media.On("StatObject", ctx, in.VideoKey).Return(nil, storage.ErrObjectNotFound).Once()

		_, err := svc.Publish(ctx, ownerID, in)

		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("blank title rejected", func(t *testing.T) {
		_, _, _, _, svc := newCatalogFixture()

		_, err := svc.Publish(ctx, ownerID, PublishInput{Title: "  ", Description: "d"})

		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestCatalogOwnership(t *testing.T) {
	ctx := context.Background()
	ownerID := primitive.NewObjectID()
	intruderID := primitive.NewObjectID()
	videoID := primitive.NewObjectID()

	t.Run("non-owner cannot toggle publish", func(t *testing.T) {
		videoRepo, _, _, _, svc := newCatalogFixture()
		videoRepo.On("GetByID", ctx, videoID).
			Return(&domain.Video{ID: videoID, OwnerID: ownerID}, nil).Once()

		_, err := svc.TogglePublish(ctx, intruderID, videoID)

		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("owner toggle flips the flag", func(t *testing.T) {
		videoRepo, _, _, _, svc := newCatalogFixture()
		videoRepo.On("GetByID", ctx, videoID).
			Return(&domain.Video{ID: videoID, OwnerID: ownerID, IsPublished: true}, nil).Once()
		videoRepo.On("SetPublished", ctx, videoID, false).Return(nil).Once()

		video, err := svc.TogglePublish(ctx, ownerID, videoID)

		assert.NoError(t, err)
		assert.False(t, video.IsPublished)
		videoRepo.AssertExpectations(t)
	})

	t.Run("delete prunes likes and media", func(t *testing.T) {
		videoRepo, _, likeRepo, media, svc := newCatalogFixture()
		videoRepo.On("GetByID", ctx, videoID).
			Return(&domain.Video{ID: videoID, OwnerID: ownerID, VideoKey: "videos/k", ThumbnailKey: "thumbnails/k"}, nil).Once()
		videoRepo.On("Delete", ctx, videoID).Return(nil).Once()
		likeRepo.On("DeleteForVideo", ctx, videoID).Return(nil).Once()
		media.On("DeleteObject", ctx, "videos/k").Return(nil).Once()
		media.On("DeleteObject", ctx, "thumbnails/k").Return(nil).Once()

		err := svc.Delete(ctx, ownerID, videoID)

		assert.NoError(t, err)
		videoRepo.AssertExpectations(t)
		likeRepo.AssertExpectations(t)
		media.AssertExpectations(t)
	})
}

func TestCatalogWatchHistory(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	historyIDs := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}

	t.Run("history resolved as published videos", func(t *testing.T) {
		videoRepo, userRepo, _, _, svc := newCatalogFixture()
		userRepo.On("GetByID", ctx, userID).
			Return(&domain.User{ID: userID, WatchHistory: historyIDs}, nil).Once()
		videoRepo.On("ListByIDs", ctx, historyIDs, true).
			Return([]domain.VideoWithOwner{{}, {}}, nil).Once()

		videos, err := svc.WatchHistory(ctx, userID)

		assert.NoError(t, err)
		assert.Len(t, videos, 2)
		videoRepo.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, userRepo, _, _, svc := newCatalogFixture()
		userRepo.On("GetByID", ctx, userID).Return(nil, repository.ErrNotFound).Once()

		_, err := svc.WatchHistory(ctx, userID)

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
