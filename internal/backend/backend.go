package backend

import (
	"context"
	"errors"
)

//go:generate mockgen -source=backend.go -destination=mocks/mock_backend.go -package=mocks

// Backend is a search/content provider. Implementations return provider-shaped
// values; the normalize package turns them into the public schema.
type Backend interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]Hit, error)
	Content(ctx context.Context, id string) (Content, error)
	FileInfo(ctx context.Context, id string) (*FileInfo, error)
}

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrUnavailable     = errors.New("backend surface unavailable")
	ErrUnreadableShape = errors.New("unreadable backend response")
)
