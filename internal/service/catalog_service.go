package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"vidtube/internal/domain"
	"vidtube/internal/repository"
	"vidtube/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	ErrVideoAccessDenied = fmt.Errorf("only the owner may modify this video: %w", ErrAccessDenied)
	ErrMediaNotUploaded  = fmt.Errorf("media file and thumbnail must be uploaded first: %w", ErrValidation)
)

const (
	defaultPage  int64 = 1
	defaultLimit int64 = 10
	maxLimit     int64 = 100
)

// sortableFields is the allowlist of catalog sort keys. Anything else
// falls back to createdAt.
var sortableFields = map[string]bool{
	"createdAt": true,
	"views":     true,
	"duration":  true,
	"title":     true,
}

// CatalogQuery carries the raw listing parameters as they arrive from the
// query string. Coercion to numbers and the sort allowlist are applied by
// the engine; anything malformed falls back to the defaults.
type CatalogQuery struct {
	Search   string
	UserID   string // hex id, optional: restrict to one owner's catalog
	SortBy   string
	SortType string // "asc" or "desc" (default)
	Page     string
	Limit    string
}

// PublishInput carries the fields needed to create a catalog entry. Both
// media objects must already exist in the media store.
type PublishInput struct {
	Title        string
	Description  string
	VideoKey     string
	ThumbnailKey string
	Duration     float64 // fallback when the store has no duration metadata
}

// UpdateInput carries the mutable video fields. Empty fields are left
// untouched; ThumbnailKey replaces the thumbnail when set.
type UpdateInput struct {
	Title        string
	Description  string
	ThumbnailKey string
}

type CatalogService interface {
	List(ctx context.Context, q CatalogQuery) ([]domain.VideoWithOwner, error)
	Publish(ctx context.Context, ownerID primitive.ObjectID, in PublishInput) (*domain.Video, error)
	Get(ctx context.Context, videoID primitive.ObjectID, viewerID *primitive.ObjectID) (*domain.VideoWithOwner, error)
	Update(ctx context.Context, ownerID, videoID primitive.ObjectID, in UpdateInput) (*domain.Video, error)
	Delete(ctx context.Context, ownerID, videoID primitive.ObjectID) error
	TogglePublish(ctx context.Context, ownerID, videoID primitive.ObjectID) (*domain.Video, error)
	WatchHistory(ctx context.Context, userID primitive.ObjectID) ([]domain.VideoWithOwner, error)
}

// catalogService implements the CatalogService interface.
type catalogService struct {
	videoRepo repository.VideoRepository
	userRepo  repository.UserRepository
	likeRepo  repository.LikeRepository
	media     storage.MediaStorage
	log       *zap.Logger
}

// NewCatalogService creates a new instance of catalogService.
func NewCatalogService(
	videoRepo repository.VideoRepository,
	userRepo repository.UserRepository,
	likeRepo repository.LikeRepository,
	media storage.MediaStorage,
	log *zap.Logger,
) CatalogService {
	return &catalogService{
		videoRepo: videoRepo,
		userRepo:  userRepo,
		likeRepo:  likeRepo,
		media:     media,
		log:       log,
	}
}

// List executes the catalog query: published videos only, optionally
// filtered by free text and owner, sorted and paginated, each row joined to
// its owner's public profile. Read-only; an empty page is a valid outcome.
func (s *catalogService) List(ctx context.Context, q CatalogQuery) ([]domain.VideoWithOwner, error) {
	query := repository.VideoQuery{
		Search: strings.TrimSpace(q.Search),
		SortBy: "createdAt",
		Page:   coerceInt(q.Page, defaultPage),
		Limit:  coerceInt(q.Limit, defaultLimit),
	}
	if query.Page < 1 {
		query.Page = defaultPage
	}
	if query.Limit < 1 {
		query.Limit = defaultLimit
	}
	if query.Limit > maxLimit {
		query.Limit = maxLimit
	}

	if sortableFields[q.SortBy] {
		query.SortBy = q.SortBy
	}
	query.SortAsc = strings.EqualFold(q.SortType, "asc")

	if q.UserID != "" {
		ownerID, err := primitive.ObjectIDFromHex(q.UserID)
		if err != nil {
			return nil, fmt.Errorf("userId is not a valid id: %w", ErrValidation)
		}
		query.OwnerID = &ownerID
	}

	return s.videoRepo.List(ctx, query)
}

// coerceInt parses a numeric query parameter, falling back to def for
// missing or non-numeric values.
func coerceInt(raw string, def int64) int64 {
	if raw == "" {
		return def
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}
	return n
}

// Publish creates a catalog entry for media that is already stored. The
// duration comes from the object metadata the upload client recorded,
// falling back to the request field.
func (s *catalogService) Publish(ctx context.Context, ownerID primitive.ObjectID, in PublishInput) (*domain.Video, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("title and description are required: %w", ErrValidation)
	}
	if in.VideoKey == "" || in.ThumbnailKey == "" {
		return nil, ErrMediaNotUploaded
	}

	videoInfo, err := s.media.StatObject(ctx, in.VideoKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, ErrMediaNotUploaded
		}
		return nil, fmt.Errorf("media store check failed: %w", ErrUpstream)
	}
	if _, err = s.media.StatObject(ctx, in.ThumbnailKey); err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, ErrMediaNotUploaded
		}
		return nil, fmt.Errorf("media store check failed: %w", ErrUpstream)
	}

	duration := in.Duration
	if raw, ok := videoInfo.Metadata["duration"]; ok {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed > 0 {
			duration = parsed
		}
	}

	video := &domain.Video{
		VideoFile:    s.media.PublicURL(in.VideoKey),
		Thumbnail:    s.media.PublicURL(in.ThumbnailKey),
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		Duration:     duration,
		Views:        0,
		IsPublished:  true,
		OwnerID:      ownerID,
		VideoKey:     in.VideoKey,
		ThumbnailKey: in.ThumbnailKey,
	}

	videoID, err := s.videoRepo.Create(ctx, video)
	if err != nil {
		return nil, err
	}
	video.ID = videoID

	s.log.Info("video published",
		zap.String("videoId", videoID.Hex()),
		zap.String("owner", ownerID.Hex()))
	return video, nil
}

// Get fetches a video with its owner projection and records the view:
// the counter is incremented on every successful fetch with no per-viewer
// deduplication, and an authenticated viewer's watch history gains the
// video at most once.
func (s *catalogService) Get(ctx context.Context, videoID primitive.ObjectID, viewerID *primitive.ObjectID) (*domain.VideoWithOwner, error) {
	video, err := s.videoRepo.GetWithOwner(ctx, videoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	if err = s.videoRepo.IncrementViews(ctx, videoID); err != nil {
		return nil, err
	}
	video.Views++

	if viewerID != nil {
		if err = s.userRepo.AddToWatchHistory(ctx, *viewerID, videoID); err != nil {
			return nil, err
		}
	}

	return video, nil
}

// Update edits title, description and/or thumbnail, owner only.
func (s *catalogService) Update(ctx context.Context, ownerID, videoID primitive.ObjectID, in UpdateInput) (*domain.Video, error) {
	if in.Title == "" && in.Description == "" && in.ThumbnailKey == "" {
		return nil, fmt.Errorf("at least one of title, description or thumbnail is required: %w", ErrValidation)
	}

	video, err := s.ownedVideo(ctx, ownerID, videoID)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		video.Title = strings.TrimSpace(in.Title)
	}
	if in.Description != "" {
		video.Description = strings.TrimSpace(in.Description)
	}
	if in.ThumbnailKey != "" {
		if _, err = s.media.StatObject(ctx, in.ThumbnailKey); err != nil {
			if errors.Is(err, storage.ErrObjectNotFound) {
				return nil, ErrMediaNotUploaded
			}
			return nil, fmt.Errorf("media store check failed: %w", ErrUpstream)
		}
		oldKey := video.ThumbnailKey
		video.ThumbnailKey = in.ThumbnailKey
		video.Thumbnail = s.media.PublicURL(in.ThumbnailKey)
		if oldKey != "" && oldKey != in.ThumbnailKey {
			if err := s.media.DeleteObject(ctx, oldKey); err != nil {
				s.log.Warn("failed to delete replaced thumbnail", zap.String("key", oldKey), zap.Error(err))
			}
		}
	}

	if err = s.videoRepo.Update(ctx, video); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return video, nil
}

// Delete removes a video, its likes and its media objects, owner only.
// Media deletion is best effort: a dangling object is preferable to a
// catalog row pointing at deleted media.
func (s *catalogService) Delete(ctx context.Context, ownerID, videoID primitive.ObjectID) error {
	video, err := s.ownedVideo(ctx, ownerID, videoID)
	if err != nil {
		return err
	}

	if err = s.videoRepo.Delete(ctx, videoID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrVideoNotFound
		}
		return err
	}

	if err = s.likeRepo.DeleteForVideo(ctx, videoID); err != nil {
		s.log.Warn("failed to prune likes for deleted video", zap.String("videoId", videoID.Hex()), zap.Error(err))
	}

	for _, key := range []string{video.VideoKey, video.ThumbnailKey} {
		if key == "" {
			continue
		}
		if err := s.media.DeleteObject(ctx, key); err != nil {
			s.log.Warn("failed to delete media object", zap.String("key", key), zap.Error(err))
		}
	}

	s.log.Info("video deleted",
		zap.String("videoId", videoID.Hex()),
		zap.String("owner", ownerID.Hex()))
	return nil
}

// TogglePublish flips the publish flag, owner only.
func (s *catalogService) TogglePublish(ctx context.Context, ownerID, videoID primitive.ObjectID) (*domain.Video, error) {
	video, err := s.ownedVideo(ctx, ownerID, videoID)
	if err != nil {
		return nil, err
	}

	if err = s.videoRepo.SetPublished(ctx, videoID, !video.IsPublished); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	video.IsPublished = !video.IsPublished
	return video, nil
}

// WatchHistory returns the published videos in a user's watch history.
func (s *catalogService) WatchHistory(ctx context.Context, userID primitive.ObjectID) ([]domain.VideoWithOwner, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.videoRepo.ListByIDs(ctx, user.WatchHistory, true)
}

// ownedVideo fetches a video and verifies the caller owns it.
func (s *catalogService) ownedVideo(ctx context.Context, ownerID, videoID primitive.ObjectID) (*domain.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	if video.OwnerID != ownerID {
		return nil, ErrVideoAccessDenied
	}
	return video, nil
}
