package repository

import (
	"context"

	"github.com/skycastapp/skycast-api/internal/domain"
)

// Usecases depend on this interface, not the pgx implementation, so tests
// can inject fakes and the storage engine stays swappable.
type FavoriteRepository interface {
	Create(ctx context.Context, fav *domain.FavoriteCity) (*domain.FavoriteCity, error)

	// FindByCity returns ErrFavoriteNotFound when no record matches.
	// An empty country matches on city name alone.
	FindByCity(ctx context.Context, userID, cityName, country string) (*domain.FavoriteCity, error)

	ListByUser(ctx context.Context, userID string) ([]*domain.FavoriteCity, error)

	// DeleteOwned removes the favorite only when it belongs to userID.
	// Missing and foreign records are indistinguishable to the caller.
	DeleteOwned(ctx context.Context, id, userID string) error

	Count(ctx context.Context) (int64, error)
}
