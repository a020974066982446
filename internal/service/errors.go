package service

import (
	"errors"
	"fmt"
)

// Error taxonomy shared across services. Handlers translate these to HTTP
// statuses with errors.Is; specific failures wrap one of the base kinds.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrAccessDenied = errors.New("access denied")
	ErrUpstream     = errors.New("upstream failure")
)

// Named failures used across more than one service.
var (
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
	ErrVideoNotFound    = fmt.Errorf("video %w", ErrNotFound)
	ErrCommentNotFound  = fmt.Errorf("comment %w", ErrNotFound)
	ErrTweetNotFound    = fmt.Errorf("tweet %w", ErrNotFound)
	ErrPlaylistNotFound = fmt.Errorf("playlist %w", ErrNotFound)
)
