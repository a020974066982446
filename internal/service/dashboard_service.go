package service

import (
	"context"
	"errors"

	"vidtube/internal/domain"
	"vidtube/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ChannelStats aggregates a channel's standing. Every figure is recomputed
// from the underlying collections on each call.
type ChannelStats struct {
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalLikes       int64 `json:"totalLikes"`
}

type DashboardService interface {
	Stats(ctx context.Context, channelID primitive.ObjectID) (*ChannelStats, error)
	Videos(ctx context.Context, channelID primitive.ObjectID) ([]domain.VideoWithOwner, error)
}

// dashboardService implements the DashboardService interface.
type dashboardService struct {
	videoRepo repository.VideoRepository
	likeRepo  repository.LikeRepository
	subRepo   repository.SubscriptionRepository
	userRepo  repository.UserRepository
	log       *zap.Logger
}

// NewDashboardService creates a new instance of dashboardService.
func NewDashboardService(videoRepo repository.VideoRepository, likeRepo repository.LikeRepository, subRepo repository.SubscriptionRepository, userRepo repository.UserRepository, log *zap.Logger) DashboardService {
	return &dashboardService{videoRepo: videoRepo, likeRepo: likeRepo, subRepo: subRepo, userRepo: userRepo, log: log}
}

func (s *dashboardService) Stats(ctx context.Context, channelID primitive.ObjectID) (*ChannelStats, error) {
	if _, err := s.userRepo.GetByID(ctx, channelID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}

	totalVideos, err := s.videoRepo.CountByOwner(ctx, channelID)
	if err != nil {
		return nil, err
	}

	totalViews, err := s.videoRepo.SumViewsByOwner(ctx, channelID)
	if err != nil {
		return nil, err
	}

	totalSubscribers, err := s.subRepo.CountByChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}

	videoIDs, err := s.videoRepo.ListIDsByOwner(ctx, channelID)
	if err != nil {
		return nil, err
	}
	totalLikes, err := s.likeRepo.CountForVideos(ctx, videoIDs)
	if err != nil {
		return nil, err
	}

	s.log.Debug("channel stats computed",
		zap.String("channelId", channelID.Hex()),
		zap.Int64("videos", totalVideos),
		zap.Int64("likes", totalLikes))

	return &ChannelStats{
		TotalVideos:      totalVideos,
		TotalViews:       totalViews,
		TotalSubscribers: totalSubscribers,
		TotalLikes:       totalLikes,
	}, nil
}

// Videos returns every video the channel owns, drafts included, newest
// first.
func (s *dashboardService) Videos(ctx context.Context, channelID primitive.ObjectID) ([]domain.VideoWithOwner, error) {
	if _, err := s.userRepo.GetByID(ctx, channelID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}
	return s.videoRepo.ListByOwnerAll(ctx, channelID)
}
