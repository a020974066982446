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
	ErrPlaylistAccessDenied = fmt.Errorf("playlist does not belong to user: %w", ErrAccessDenied)
	ErrVideoAlreadyInList   = fmt.Errorf("video already in playlist: %w", ErrConflict)
	ErrVideoNotInList       = fmt.Errorf("video not in playlist: %w", ErrNotFound)
)

type CreatePlaylistInput struct {
	Name        string
	Description string
}

type UpdatePlaylistInput struct {
	Name        *string
	Description *string
}

type PlaylistService interface {
	Create(ctx context.Context, ownerID primitive.ObjectID, in CreatePlaylistInput) (*domain.Playlist, error)
	GetByID(ctx context.Context, playlistID primitive.ObjectID) (*domain.Playlist, error)
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Playlist, error)
	Update(ctx context.Context, playlistID, ownerID primitive.ObjectID, in UpdatePlaylistInput) (*domain.Playlist, error)
	Delete(ctx context.Context, playlistID, ownerID primitive.ObjectID) error
	AddVideo(ctx context.Context, playlistID, videoID, ownerID primitive.ObjectID) (*domain.Playlist, error)
	RemoveVideo(ctx context.Context, playlistID, videoID, ownerID primitive.ObjectID) (*domain.Playlist, error)
}

// playlistService implements the PlaylistService interface.
type playlistService struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    repository.VideoRepository
	userRepo     repository.UserRepository
	log          *zap.Logger
}

// NewPlaylistService creates a new instance of playlistService.
func NewPlaylistService(playlistRepo repository.PlaylistRepository, videoRepo repository.VideoRepository, userRepo repository.UserRepository, log *zap.Logger) PlaylistService {
	return &playlistService{playlistRepo: playlistRepo, videoRepo: videoRepo, userRepo: userRepo, log: log}
}

func (s *playlistService) Create(ctx context.Context, ownerID primitive.ObjectID, in CreatePlaylistInput) (*domain.Playlist, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("playlist name is required: %w", ErrValidation)
	}

	playlist := &domain.Playlist{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		OwnerID:     ownerID,
		VideoIDs:    []primitive.ObjectID{},
	}

	id, err := s.playlistRepo.Create(ctx, playlist)
	if err != nil {
		s.log.Error("failed to create playlist", zap.String("owner", ownerID.Hex()), zap.Error(err))
		return nil, err
	}
	playlist.ID = id
	return playlist, nil
}

func (s *playlistService) GetByID(ctx context.Context, playlistID primitive.ObjectID) (*domain.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, err
	}
	return playlist, nil
}

func (s *playlistService) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Playlist, error) {
	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.playlistRepo.ListByOwner(ctx, ownerID)
}

func (s *playlistService) Update(ctx context.Context, playlistID, ownerID primitive.ObjectID, in UpdatePlaylistInput) (*domain.Playlist, error) {
	if in.Name == nil && in.Description == nil {
		return nil, fmt.Errorf("nothing to update: %w", ErrValidation)
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, fmt.Errorf("playlist name cannot be empty: %w", ErrValidation)
	}

	if _, err := s.ownedPlaylist(ctx, playlistID, ownerID); err != nil {
		return nil, err
	}

	var name, description string
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		description = strings.TrimSpace(*in.Description)
	}

	updated, err := s.playlistRepo.Update(ctx, playlistID, name, description)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *playlistService) Delete(ctx context.Context, playlistID, ownerID primitive.ObjectID) error {
	if _, err := s.ownedPlaylist(ctx, playlistID, ownerID); err != nil {
		return err
	}
	return s.playlistRepo.Delete(ctx, playlistID)
}

// AddVideo appends a video to the playlist. Membership is a set: adding a
// video that is already present is a conflict, not a silent no-op.
func (s *playlistService) AddVideo(ctx context.Context, playlistID, videoID, ownerID primitive.ObjectID) (*domain.Playlist, error) {
	playlist, err := s.ownedPlaylist(ctx, playlistID, ownerID)
	if err != nil {
		return nil, err
	}

	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	if playlist.Contains(videoID) {
		return nil, ErrVideoAlreadyInList
	}

	if err := s.playlistRepo.AddVideo(ctx, playlistID, videoID); err != nil {
		return nil, err
	}
	return s.playlistRepo.GetByID(ctx, playlistID)
}

// RemoveVideo drops a video from the playlist. Removing a video that is not
// a member reports not-found so the caller can tell a stale reference from
// a successful removal.
func (s *playlistService) RemoveVideo(ctx context.Context, playlistID, videoID, ownerID primitive.ObjectID) (*domain.Playlist, error) {
	playlist, err := s.ownedPlaylist(ctx, playlistID, ownerID)
	if err != nil {
		return nil, err
	}

	if !playlist.Contains(videoID) {
		return nil, ErrVideoNotInList
	}

	if err := s.playlistRepo.RemoveVideo(ctx, playlistID, videoID); err != nil {
		return nil, err
	}
	return s.playlistRepo.GetByID(ctx, playlistID)
}

// ownedPlaylist fetches a playlist and verifies the caller owns it.
func (s *playlistService) ownedPlaylist(ctx context.Context, playlistID, ownerID primitive.ObjectID) (*domain.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, err
	}
	if playlist.OwnerID != ownerID {
		return nil, ErrPlaylistAccessDenied
	}
	return playlist, nil
}
