package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skycastapp/skycast-api/internal/domain"
)

type FavoriteRepository struct {
	pool *pgxpool.Pool
}

func NewFavoriteRepository(pool *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{pool: pool}
}

func (r *FavoriteRepository) Create(ctx context.Context, fav *domain.FavoriteCity) (*domain.FavoriteCity, error) {
	query := `
		INSERT INTO favorite_cities (user_id, city_name, country, lat, lon)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, city_name, country, lat, lon, created_at`

	row := r.pool.QueryRow(ctx, query, fav.UserID, fav.CityName, fav.Country, fav.Lat, fav.Lon)

	created, err := scanFavorite(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrDuplicateFavorite
		}
		return nil, err
	}
	return created, nil
}

func (r *FavoriteRepository) FindByCity(ctx context.Context, userID, cityName, country string) (*domain.FavoriteCity, error) {
	query := `
		SELECT id, user_id, city_name, country, lat, lon, created_at
		FROM favorite_cities
		WHERE user_id = $1 AND city_name = $2 AND ($3 = '' OR country = $3)`

	return scanFavorite(r.pool.QueryRow(ctx, query, userID, cityName, country))
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID string) ([]*domain.FavoriteCity, error) {
	query := `
		SELECT id, user_id, city_name, country, lat, lon, created_at
		FROM favorite_cities
		WHERE user_id = $1
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	var favs []*domain.FavoriteCity
	for rows.Next() {
		f, err := scanFavorite(rows)
		if err != nil {
			return nil, err
		}
		favs = append(favs, f)
	}
	return favs, rows.Err()
}

func (r *FavoriteRepository) DeleteOwned(ctx context.Context, id, userID string) error {
	// Ownership lives in the WHERE clause: a foreign id and a missing id
	// both report zero rows, so the caller cannot tell them apart.
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM favorite_cities WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}

func (r *FavoriteRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM favorite_cities`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count favorites: %w", err)
	}
	return n, nil
}

func scanFavorite(row pgx.Row) (*domain.FavoriteCity, error) {
	var f domain.FavoriteCity
	err := row.Scan(&f.ID, &f.UserID, &f.CityName, &f.Country, &f.Lat, &f.Lon, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFavoriteNotFound
		}
		return nil, fmt.Errorf("scan favorite: %w", err)
	}
	return &f, nil
}
