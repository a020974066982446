package service

import (
	"context"
	"testing"

	"vidtube/internal/domain"
	"vidtube/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type engagementFixture struct {
	likeRepo    *MockLikeRepo
	subRepo     *MockSubscriptionRepo
	videoRepo   *MockVideoRepo
	commentRepo *MockCommentRepo
	tweetRepo   *MockTweetRepo
	userRepo    *MockUserRepo
	svc         EngagementService
}

func newEngagementFixture() *engagementFixture {
	f := &engagementFixture{
		likeRepo:    new(MockLikeRepo),
		subRepo:     new(MockSubscriptionRepo),
		videoRepo:   new(MockVideoRepo),
		commentRepo: new(MockCommentRepo),
		tweetRepo:   new(MockTweetRepo),
		userRepo:    new(MockUserRepo),
	}
	f.svc = NewEngagementService(f.likeRepo, f.subRepo, f.videoRepo, f.commentRepo, f.tweetRepo, f.userRepo, zap.NewNop())
	return f
}

func TestToggleLike(t *testing.T) {
	ctx := context.Background()
	videoID := primitive.NewObjectID()
	actorID := primitive.NewObjectID()

	t.Run("absent relation is created", func(t *testing.T) {
		f := newEngagementFixture()
		f.videoRepo.On("GetByID", ctx, videoID).Return(&domain.Video{ID: videoID}, nil).Once()
		f.likeRepo.On("FindForSubject", ctx, domain.LikeSubjectVideo, videoID, actorID).
			Return(nil, repository.ErrNotFound).Once()
		f.likeRepo.On("Create", ctx, mock.AnythingOfType("*domain.Like")).
			Return(primitive.NewObjectID(), nil).Once()

		liked, err := f.svc.ToggleLike(ctx, domain.LikeSubjectVideo, videoID, actorID)

		assert.NoError(t, err)
		assert.True(t, liked)
		f.likeRepo.AssertExpectations(t)
	})

	t.Run("present relation is removed", func(t *testing.T) {
		f := newEngagementFixture()
		likeID := primitive.NewObjectID()
		f.videoRepo.On("GetByID", ctx, videoID).Return(&domain.Video{ID: videoID}, nil).Once()
		f.likeRepo.On("FindForSubject", ctx, domain.LikeSubjectVideo, videoID, actorID).
			Return(&domain.Like{ID: likeID, VideoID: &videoID, LikedByID: actorID}, nil).Once()
		f.likeRepo.On("Delete", ctx, likeID).Return(nil).Once()

		liked, err := f.svc.ToggleLike(ctx, domain.LikeSubjectVideo, videoID, actorID)

		assert.NoError(t, err)
		assert.False(t, liked)
		f.likeRepo.AssertExpectations(t)
	})

	t.Run("lost insert race reads as already liked", func(t *testing.T) {
		f := newEngagementFixture()
		f.videoRepo.On("GetByID", ctx, videoID).Return(&domain.Video{ID: videoID}, nil).Once()
		f.likeRepo.On("FindForSubject", ctx, domain.LikeSubjectVideo, videoID, actorID).
			Return(nil, repository.ErrNotFound).Once()
		f.likeRepo.On("Create", ctx, mock.AnythingOfType("*domain.Like")).
			Return(primitive.NilObjectID, repository.ErrDuplicate).Once()

		liked, err := f.svc.ToggleLike(ctx, domain.LikeSubjectVideo, videoID, actorID)

		assert.NoError(t, err)
		assert.True(t, liked)
	})

	t.Run("lost delete race reads as unliked", func(t *testing.T) {
		f := newEngagementFixture()
		likeID := primitive.NewObjectID()
		f.videoRepo.On("GetByID", ctx, videoID).Return(&domain.Video{ID: videoID}, nil).Once()
		f.likeRepo.On("FindForSubject", ctx, domain.LikeSubjectVideo, videoID, actorID).
			Return(&domain.Like{ID: likeID}, nil).Once()
		f.likeRepo.On("Delete", ctx, likeID).Return(repository.ErrNotFound).Once()

		liked, err := f.svc.ToggleLike(ctx, domain.LikeSubjectVideo, videoID, actorID)

		assert.NoError(t, err)
		assert.False(t, liked)
	})

	t.Run("missing subject rejected per kind", func(t *testing.T) {
		f := newEngagementFixture()
		commentID := primitive.NewObjectID()
		f.commentRepo.On("GetByID", ctx, commentID).Return(nil, repository.ErrNotFound).Once()

		_, err := f.svc.ToggleLike(ctx, domain.LikeSubjectComment, commentID, actorID)

		assert.ErrorIs(t, err, ErrCommentNotFound)
		f.likeRepo.AssertNotCalled(t, "FindForSubject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("tweet subject verified against tweets", func(t *testing.T) {
		f := newEngagementFixture()
		tweetID := primitive.NewObjectID()
		f.tweetRepo.On("GetByID", ctx, tweetID).Return(&domain.Tweet{ID: tweetID}, nil).Once()
		f.likeRepo.On("FindForSubject", ctx, domain.LikeSubjectTweet, tweetID, actorID).
			Return(nil, repository.ErrNotFound).Once()
		f.likeRepo.On("Create", ctx, mock.AnythingOfType("*domain.Like")).
			Return(primitive.NewObjectID(), nil).Once()

		liked, err := f.svc.ToggleLike(ctx, domain.LikeSubjectTweet, tweetID, actorID)

		assert.NoError(t, err)
		assert.True(t, liked)
		f.tweetRepo.AssertExpectations(t)
	})
}

func TestToggleSubscription(t *testing.T) {
	ctx := context.Background()
	channelID := primitive.NewObjectID()
	subscriberID := primitive.NewObjectID()

	t.Run("subscribe then unsubscribe alternates", func(t *testing.T) {
		f := newEngagementFixture()
		subID := primitive.NewObjectID()
		f.userRepo.On("GetByID", ctx, channelID).Return(&domain.User{ID: channelID}, nil).Twice()
		f.subRepo.On("Find", ctx, channelID, subscriberID).
			Return(nil, repository.ErrNotFound).Once()
		f.subRepo.On("Create", ctx, mock.AnythingOfType("*domain.Subscription")).
			Return(subID, nil).Once()

		subscribed, err := f.svc.ToggleSubscription(ctx, channelID, subscriberID)
		assert.NoError(t, err)
		assert.True(t, subscribed)

		f.subRepo.On("Find", ctx, channelID, subscriberID).
			Return(&domain.Subscription{ID: subID, ChannelID: channelID, SubscriberID: subscriberID}, nil).Once()
		f.subRepo.On("Delete", ctx, subID).Return(nil).Once()

		subscribed, err = f.svc.ToggleSubscription(ctx, channelID, subscriberID)
		assert.NoError(t, err)
		assert.False(t, subscribed)
		f.subRepo.AssertExpectations(t)
	})

	t.Run("self subscription rejected", func(t *testing.T) {
		f := newEngagementFixture()

		_, err := f.svc.ToggleSubscription(ctx, channelID, channelID)

		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown channel rejected", func(t *testing.T) {
		f := newEngagementFixture()
		f.userRepo.On("GetByID", ctx, channelID).Return(nil, repository.ErrNotFound).Once()

		_, err := f.svc.ToggleSubscription(ctx, channelID, subscriberID)

		assert.ErrorIs(t, err, ErrChannelNotFound)
	})

	t.Run("duplicate insert race reads as subscribed", func(t *testing.T) {
		f := newEngagementFixture()
		f.userRepo.On("GetByID", ctx, channelID).Return(&domain.User{ID: channelID}, nil).Once()
		f.subRepo.On("Find", ctx, channelID, subscriberID).
			Return(nil, repository.ErrNotFound).Once()
		f.subRepo.On("Create", ctx, mock.AnythingOfType("*domain.Subscription")).
			Return(primitive.NilObjectID, repository.ErrDuplicate).Once()

		subscribed, err := f.svc.ToggleSubscription(ctx, channelID, subscriberID)

		assert.NoError(t, err)
		assert.True(t, subscribed)
	})
}

func TestRelationAggregators(t *testing.T) {
	ctx := context.Background()

	t.Run("counts come straight from the store", func(t *testing.T) {
		f := newEngagementFixture()
		videoID := primitive.NewObjectID()
		channelID := primitive.NewObjectID()
		f.likeRepo.On("CountForSubject", ctx, domain.LikeSubjectVideo, videoID).Return(int64(3), nil).Once()
		f.subRepo.On("CountByChannel", ctx, channelID).Return(int64(42), nil).Once()

		likes, err := f.svc.CountLikes(ctx, domain.LikeSubjectVideo, videoID)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), likes)

		subs, err := f.svc.CountSubscribers(ctx, channelID)
		assert.NoError(t, err)
		assert.Equal(t, int64(42), subs)
	})

	t.Run("is subscribed", func(t *testing.T) {
		f := newEngagementFixture()
		channelID := primitive.NewObjectID()
		viewerID := primitive.NewObjectID()
		f.subRepo.On("Find", ctx, channelID, viewerID).
			Return(nil, repository.ErrNotFound).Once()

		subscribed, err := f.svc.IsSubscribed(ctx, channelID, viewerID)

		assert.NoError(t, err)
		assert.False(t, subscribed)
	})

	t.Run("liked videos resolved published-only", func(t *testing.T) {
		f := newEngagementFixture()
		actorID := primitive.NewObjectID()
		ids := []primitive.ObjectID{primitive.NewObjectID()}
		f.likeRepo.On("ListVideoIDsLikedBy", ctx, actorID).Return(ids, nil).Once()
		f.videoRepo.On("ListByIDs", ctx, ids, true).
			Return([]domain.VideoWithOwner{{}}, nil).Once()

		videos, err := f.svc.ListLikedVideos(ctx, actorID)

		assert.NoError(t, err)
		assert.Len(t, videos, 1)
		f.videoRepo.AssertExpectations(t)
	})
}
