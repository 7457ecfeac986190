package status

import (
	"context"
	"time"

	"github.com/orgball2608/status-engine/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=status.go -destination=mocks/mock.go

// Repository is the persistence adapter the engine saves through. Load methods
// return nil with a nil error when nothing has been stored yet.
type Repository interface {
	LoadPosts(ctx context.Context) ([]domain.StatusPost, error)
	SavePosts(ctx context.Context, posts []domain.StatusPost) error
	LoadSettings(ctx context.Context) (*domain.StatusSettings, error)
	SaveSettings(ctx context.Context, settings domain.StatusSettings) error

	// PurgeExpired deletes stored posts whose expiry is at or before the cutoff
	// and reports how many were removed.
	PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error)
}
