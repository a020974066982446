package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vidtube/internal/domain"
	"vidtube/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	ErrTweetAccessDenied   = fmt.Errorf("tweet does not belong to user: %w", ErrAccessDenied)
	ErrCommentAccessDenied = fmt.Errorf("comment does not belong to user: %w", ErrAccessDenied)
)

type SocialService interface {
	CreateTweet(ctx context.Context, ownerID primitive.ObjectID, content string) (*domain.Tweet, error)
	ListTweetsByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Tweet, error)
	UpdateTweet(ctx context.Context, tweetID, ownerID primitive.ObjectID, content string) (*domain.Tweet, error)
	DeleteTweet(ctx context.Context, tweetID, ownerID primitive.ObjectID) error

	CreateComment(ctx context.Context, videoID, ownerID primitive.ObjectID, content string) (*domain.Comment, error)
	ListComments(ctx context.Context, videoID primitive.ObjectID, page, limit int64) ([]domain.CommentWithOwner, error)
	UpdateComment(ctx context.Context, commentID, ownerID primitive.ObjectID, content string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, commentID, ownerID primitive.ObjectID) error
}

// socialService implements the SocialService interface.
type socialService struct {
	tweetRepo   repository.TweetRepository
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
	userRepo    repository.UserRepository
	log         *zap.Logger
}

// NewSocialService creates a new instance of socialService.
func NewSocialService(tweetRepo repository.TweetRepository, commentRepo repository.CommentRepository, videoRepo repository.VideoRepository, userRepo repository.UserRepository, log *zap.Logger) SocialService {
	return &socialService{tweetRepo: tweetRepo, commentRepo: commentRepo, videoRepo: videoRepo, userRepo: userRepo, log: log}
}

func (s *socialService) CreateTweet(ctx context.Context, ownerID primitive.ObjectID, content string) (*domain.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("tweet content is required: %w", ErrValidation)
	}

	tweet := &domain.Tweet{Content: content, OwnerID: ownerID}
	id, err := s.tweetRepo.Create(ctx, tweet)
	if err != nil {
		s.log.Error("failed to create tweet", zap.String("owner", ownerID.Hex()), zap.Error(err))
		return nil, err
	}
	tweet.ID = id
	return tweet, nil
}

func (s *socialService) ListTweetsByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Tweet, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.tweetRepo.ListByOwner(ctx, userID)
}

func (s *socialService) UpdateTweet(ctx context.Context, tweetID, ownerID primitive.ObjectID, content string) (*domain.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("tweet content is required: %w", ErrValidation)
	}

	if _, err := s.ownedTweet(ctx, tweetID, ownerID); err != nil {
		return nil, err
	}

	updated, err := s.tweetRepo.Update(ctx, tweetID, content)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTweetNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *socialService) DeleteTweet(ctx context.Context, tweetID, ownerID primitive.ObjectID) error {
	if _, err := s.ownedTweet(ctx, tweetID, ownerID); err != nil {
		return err
	}
	return s.tweetRepo.Delete(ctx, tweetID)
}

func (s *socialService) CreateComment(ctx context.Context, videoID, ownerID primitive.ObjectID, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("comment content is required: %w", ErrValidation)
	}

	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	comment := &domain.Comment{Content: content, VideoID: videoID, OwnerID: ownerID}
	id, err := s.commentRepo.Create(ctx, comment)
	if err != nil {
		s.log.Error("failed to create comment", zap.String("video", videoID.Hex()), zap.Error(err))
		return nil, err
	}
	comment.ID = id
	return comment, nil
}

func (s *socialService) ListComments(ctx context.Context, videoID primitive.ObjectID, page, limit int64) ([]domain.CommentWithOwner, error) {
	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return s.commentRepo.ListByVideo(ctx, videoID, page, limit)
}

func (s *socialService) UpdateComment(ctx context.Context, commentID, ownerID primitive.ObjectID, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("comment content is required: %w", ErrValidation)
	}

	if _, err := s.ownedComment(ctx, commentID, ownerID); err != nil {
		return nil, err
	}

	updated, err := s.commentRepo.Update(ctx, commentID, content)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *socialService) DeleteComment(ctx context.Context, commentID, ownerID primitive.ObjectID) error {
	if _, err := s.ownedComment(ctx, commentID, ownerID); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, commentID)
}

func (s *socialService) ownedTweet(ctx context.Context, tweetID, ownerID primitive.ObjectID) (*domain.Tweet, error) {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTweetNotFound
		}
		return nil, err
	}
	if tweet.OwnerID != ownerID {
		return nil, ErrTweetAccessDenied
	}
	return tweet, nil
}

func (s *socialService) ownedComment(ctx context.Context, commentID, ownerID primitive.ObjectID) (*domain.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if comment.OwnerID != ownerID {
		return nil, ErrCommentAccessDenied
	}
	return comment, nil
}
