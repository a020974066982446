package service

import (
	"context"
	"errors"
	"fmt"

	"vidtube/internal/domain"
	"vidtube/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	ErrChannelNotFound   = fmt.Errorf("channel %w", ErrNotFound)
	ErrSelfSubscription  = fmt.Errorf("cannot subscribe to your own channel: %w", ErrValidation)
	ErrUnknownLikeSubject = errors.New("unknown like subject")
)

type EngagementService interface {
	ToggleLike(ctx context.Context, subject domain.LikeSubject, subjectID, actorID primitive.ObjectID) (liked bool, err error)
	ToggleSubscription(ctx context.Context, channelID, subscriberID primitive.ObjectID) (subscribed bool, err error)
	CountLikes(ctx context.Context, subject domain.LikeSubject, subjectID primitive.ObjectID) (int64, error)
	CountSubscribers(ctx context.Context, channelID primitive.ObjectID) (int64, error)
	IsSubscribed(ctx context.Context, channelID, subscriberID primitive.ObjectID) (bool, error)
	ListSubscribedChannels(ctx context.Context, subscriberID primitive.ObjectID) ([]domain.OwnerProjection, error)
	ListChannelSubscribers(ctx context.Context, channelID primitive.ObjectID) ([]domain.OwnerProjection, error)
	ListLikedVideos(ctx context.Context, actorID primitive.ObjectID) ([]domain.VideoWithOwner, error)
}

// engagementService implements the EngagementService interface.
type engagementService struct {
	likeRepo    repository.LikeRepository
	subRepo     repository.SubscriptionRepository
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
	tweetRepo   repository.TweetRepository
	userRepo    repository.UserRepository
	log         *zap.Logger
}

// NewEngagementService creates a new instance of engagementService.
func NewEngagementService(
	likeRepo repository.LikeRepository,
	subRepo repository.SubscriptionRepository,
	videoRepo repository.VideoRepository,
	commentRepo repository.CommentRepository,
	tweetRepo repository.TweetRepository,
	userRepo repository.UserRepository,
	log *zap.Logger,
) EngagementService {
	return &engagementService{
		likeRepo:    likeRepo,
		subRepo:     subRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		tweetRepo:   tweetRepo,
		userRepo:    userRepo,
		log:         log,
	}
}

// ToggleLike flips the like relation for a (subject, actor) pair: delete it
// when present, insert it when absent. Two rapid calls alternate state.
// The existence-check-then-write race is closed by the store's unique
// indexes: a lost-race insert surfaces as a duplicate conflict and is
// reported as "already liked" rather than an error.
func (s *engagementService) ToggleLike(ctx context.Context, subject domain.LikeSubject, subjectID, actorID primitive.ObjectID) (bool, error) {
	if subjectID == primitive.NilObjectID || actorID == primitive.NilObjectID {
		return false, fmt.Errorf("subject and actor ids are required: %w", ErrValidation)
	}

	if err := s.subjectExists(ctx, subject, subjectID); err != nil {
		return false, err
	}

	existing, err := s.likeRepo.FindForSubject(ctx, subject, subjectID, actorID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}

	if existing != nil {
		if err := s.likeRepo.Delete(ctx, existing.ID); err != nil {
			// A concurrent toggle already removed the row; the pair is
			// unliked either way.
			if errors.Is(err, repository.ErrNotFound) {
				return false, nil
			}
			return false, err
		}
		return false, nil
	}

	if _, err = s.likeRepo.Create(ctx, domain.NewLike(subject, subjectID, actorID)); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost the insert race: the relation exists, which is the
			// outcome this call wanted.
			s.log.Debug("concurrent like insert collided",
				zap.String("subject", string(subject)),
				zap.String("subjectId", subjectID.Hex()))
			return true, nil
		}
		return false, err
	}
	return true, nil
}

// subjectExists verifies the like target uniformly for all subject kinds.
func (s *engagementService) subjectExists(ctx context.Context, subject domain.LikeSubject, subjectID primitive.ObjectID) error {
	var err error
	var notFound error

	switch subject {
	case domain.LikeSubjectVideo:
		_, err = s.videoRepo.GetByID(ctx, subjectID)
		notFound = ErrVideoNotFound
	case domain.LikeSubjectComment:
		_, err = s.commentRepo.GetByID(ctx, subjectID)
		notFound = ErrCommentNotFound
	case domain.LikeSubjectTweet:
		_, err = s.tweetRepo.GetByID(ctx, subjectID)
		notFound = ErrTweetNotFound
	default:
		return ErrUnknownLikeSubject
	}

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound
		}
		return err
	}
	return nil
}

// ToggleSubscription flips the subscription relation for a
// (channel, subscriber) pair with the same find-delete-or-insert shape as
// ToggleLike, backed by the (channel, subscriber) unique index.
func (s *engagementService) ToggleSubscription(ctx context.Context, channelID, subscriberID primitive.ObjectID) (bool, error) {
	if channelID == primitive.NilObjectID || subscriberID == primitive.NilObjectID {
		return false, fmt.Errorf("channel and subscriber ids are required: %w", ErrValidation)
	}
	if channelID == subscriberID {
		return false, ErrSelfSubscription
	}

	if _, err := s.userRepo.GetByID(ctx, channelID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrChannelNotFound
		}
		return false, err
	}

	existing, err := s.subRepo.Find(ctx, channelID, subscriberID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}

	if existing != nil {
		if err := s.subRepo.Delete(ctx, existing.ID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return false, nil
			}
			return false, err
		}
		return false, nil
	}

	sub := &domain.Subscription{ChannelID: channelID, SubscriberID: subscriberID}
	if _, err = s.subRepo.Create(ctx, sub); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.log.Debug("concurrent subscription insert collided",
				zap.String("channelId", channelID.Hex()))
			return true, nil
		}
		return false, err
	}
	return true, nil
}

// CountLikes counts like rows for one subject, recomputed per request.
func (s *engagementService) CountLikes(ctx context.Context, subject domain.LikeSubject, subjectID primitive.ObjectID) (int64, error) {
	return s.likeRepo.CountForSubject(ctx, subject, subjectID)
}

// CountSubscribers counts subscription rows for one channel, recomputed
// per request.
func (s *engagementService) CountSubscribers(ctx context.Context, channelID primitive.ObjectID) (int64, error) {
	return s.subRepo.CountByChannel(ctx, channelID)
}

// IsSubscribed reports whether the subscriber currently follows the channel.
func (s *engagementService) IsSubscribed(ctx context.Context, channelID, subscriberID primitive.ObjectID) (bool, error) {
	_, err := s.subRepo.Find(ctx, channelID, subscriberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListSubscribedChannels returns the channels a user follows, public
// profiles only.
func (s *engagementService) ListSubscribedChannels(ctx context.Context, subscriberID primitive.ObjectID) ([]domain.OwnerProjection, error) {
	return s.subRepo.ListChannels(ctx, subscriberID)
}

// ListChannelSubscribers returns a channel's subscribers, public profiles
// only.
func (s *engagementService) ListChannelSubscribers(ctx context.Context, channelID primitive.ObjectID) ([]domain.OwnerProjection, error) {
	return s.subRepo.ListSubscribers(ctx, channelID)
}

// ListLikedVideos returns the published videos the actor has liked.
func (s *engagementService) ListLikedVideos(ctx context.Context, actorID primitive.ObjectID) ([]domain.VideoWithOwner, error) {
	ids, err := s.likeRepo.ListVideoIDsLikedBy(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return s.videoRepo.ListByIDs(ctx, ids, true)
}
