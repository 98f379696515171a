package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/skycastapp/skycast-api/internal/domain"
	"github.com/skycastapp/skycast-api/internal/repository"
)

type FavoriteUsecase struct {
	repo repository.FavoriteRepository
}

func NewFavoriteUsecase(repo repository.FavoriteRepository) *FavoriteUsecase {
	return &FavoriteUsecase{repo: repo}
}

type AddFavoriteInput struct {
	UserID   string
	CityName string
	Country  string
	Lat      *float64
	Lon      *float64
}

// Add saves a city for the user. Adding a city that is already saved is a
// success with created=false, not an error. The lookup here is an
// optimization; the (user_id, city_name) unique index is what actually
// prevents duplicates under concurrent adds.
func (u *FavoriteUsecase) Add(ctx context.Context, input AddFavoriteInput) (*domain.FavoriteCity, bool, error) {
	if strings.TrimSpace(input.CityName) == "" {
		return nil, false, domain.ErrCityNameRequired
	}

	existing, err := u.repo.FindByCity(ctx, input.UserID, input.CityName, "")
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrFavoriteNotFound) {
		return nil, false, fmt.Errorf("check existing favorite: %w", err)
	}

	created, err := u.repo.Create(ctx, &domain.FavoriteCity{
		UserID:   input.UserID,
		CityName: input.CityName,
		Country:  input.Country,
		Lat:      input.Lat,
		Lon:      input.Lon,
	})
	if err != nil {
		// A concurrent add won the race between our lookup and insert.
		if errors.Is(err, domain.ErrDuplicateFavorite) {
			existing, findErr := u.repo.FindByCity(ctx, input.UserID, input.CityName, "")
			if findErr != nil {
				return nil, false, fmt.Errorf("find favorite after duplicate insert: %w", findErr)
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("create favorite: %w", err)
	}
	return created, true, nil
}

// List returns the user's favorites in storage order; empty is not an error.
func (u *FavoriteUsecase) List(ctx context.Context, userID string) ([]*domain.FavoriteCity, error) {
	favs, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return favs, nil
}

// Remove deletes the favorite when it belongs to userID. A missing id and a
// foreign id both return ErrFavoriteNotFound.
func (u *FavoriteUsecase) Remove(ctx context.Context, userID, favoriteID string) error {
	if err := u.repo.DeleteOwned(ctx, favoriteID, userID); err != nil {
		if errors.Is(err, domain.ErrFavoriteNotFound) {
			return domain.ErrFavoriteNotFound
		}
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

// Check reports whether the user has saved the city. "Not found" is a false
// result, never an error.
func (u *FavoriteUsecase) Check(ctx context.Context, userID, cityName, country string) (bool, error) {
	if strings.TrimSpace(cityName) == "" {
		return false, domain.ErrCityNameRequired
	}

	_, err := u.repo.FindByCity(ctx, userID, cityName, country)
	if err != nil {
		if errors.Is(err, domain.ErrFavoriteNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("check favorite: %w", err)
	}
	return true, nil
}
