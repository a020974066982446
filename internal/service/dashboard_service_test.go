package service

import (
	"context"
	"testing"

	"vidtube/internal/domain"
	"vidtube/internal/repository"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestDashboardStats(t *testing.T) {
	ctx := context.Background()
	channelID := primitive.NewObjectID()

	t.Run("figures assembled from the collections", func(t *testing.T) {
		videoRepo := new(MockVideoRepo)
		likeRepo := new(MockLikeRepo)
		subRepo := new(MockSubscriptionRepo)
		userRepo := new(MockUserRepo)
		svc := NewDashboardService(videoRepo, likeRepo, subRepo, userRepo, zap.NewNop())

		videoIDs := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}
		userRepo.On("GetByID", ctx, channelID).Return(&domain.User{ID: channelID}, nil).Once()
		videoRepo.On("CountByOwner", ctx, channelID).Return(int64(2), nil).Once()
		videoRepo.On("SumViewsByOwner", ctx, channelID).Return(int64(150), nil).Once()
		subRepo.On("CountByChannel", ctx, channelID).Return(int64(9), nil).Once()
		videoRepo.On("ListIDsByOwner", ctx, channelID).Return(videoIDs, nil).Once()
		likeRepo.On("CountForVideos", ctx, videoIDs).Return(int64(31), nil).Once()

		stats, err := svc.Stats(ctx, channelID)

		assert.NoError(t, err)
		assert.Equal(t, &ChannelStats{
			TotalVideos:      2,
			TotalViews:       150,
			TotalSubscribers: 9,
			TotalLikes:       31,
		}, stats)
		videoRepo.AssertExpectations(t)
	})

	t.Run("unknown channel", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewDashboardService(new(MockVideoRepo), new(MockLikeRepo), new(MockSubscriptionRepo), userRepo, zap.NewNop())
		userRepo.On("GetByID", ctx, channelID).Return(nil, repository.ErrNotFound).Once()

		_, err := svc.Stats(ctx, channelID)

		assert.ErrorIs(t, err, ErrChannelNotFound)
	})
}
