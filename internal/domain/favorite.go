package domain

import (
	"errors"
	"time"
)

// ErrFavoriteNotFound covers both "no such favorite" and "owned by someone
// else". Callers get a single signal so the API never reveals whether a
// foreign record exists.
var ErrFavoriteNotFound = errors.New("favorite not found")

// ErrCityNameRequired rejects add/check calls with an empty city name.
var ErrCityNameRequired = errors.New("city name is required")

// ErrDuplicateFavorite signals the (userID, cityName) unique index fired on
// insert. The service resolves it to an idempotent "already exists" outcome.
var ErrDuplicateFavorite = errors.New("favorite already exists")

// FavoriteCity is one user's saved city. Country and coordinates are
// optional; at most one record exists per (UserID, CityName).
type FavoriteCity struct {
	ID        string
	UserID    string
	CityName  string
	Country   string
	Lat       *float64
	Lon       *float64
	CreatedAt time.Time
}
