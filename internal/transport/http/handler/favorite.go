package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skycastapp/skycast-api/internal/domain"
	"github.com/skycastapp/skycast-api/internal/usecase"
)

type favoriteUsecaser interface {
	Add(ctx context.Context, input usecase.AddFavoriteInput) (*domain.FavoriteCity, bool, error)
	List(ctx context.Context, userID string) ([]*domain.FavoriteCity, error)
	Remove(ctx context.Context, userID, favoriteID string) error
	Check(ctx context.Context, userID, cityName, country string) (bool, error)
}

type FavoriteHandler struct {
	favorites favoriteUsecaser
	logger    *slog.Logger
}

func NewFavoriteHandler(favorites favoriteUsecaser, logger *slog.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		favorites: favorites,
		logger:    logger.With("component", "favorite_handler"),
	}
}

type addFavoriteRequest struct {
	CityName string   `json:"cityName" binding:"required"`
	Country  string   `json:"country"`
	Lat      *float64 `json:"lat"`
	Lon      *float64 `json:"lon"`
}

type favoriteResponse struct {
	ID        string    `json:"id"`
	CityName  string    `json:"cityName"`
	Country   string    `json:"country,omitempty"`
	Lat       *float64  `json:"lat,omitempty"`
	Lon       *float64  `json:"lon,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func toFavoriteResponse(f *domain.FavoriteCity) favoriteResponse {
	return favoriteResponse{
		ID:        f.ID,
		CityName:  f.CityName,
		Country:   f.Country,
		Lat:       f.Lat,
		Lon:       f.Lon,
		CreatedAt: f.CreatedAt,
	}
}

// POST /api/favorites
// 201 on a new favorite, 200 when the city was already saved — repeat adds
// are a success, not a conflict.
func (h *FavoriteHandler) Add(c *gin.Context) {
	var req addFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": errCityRequired})
		return
	}

	fav, created, err := h.favorites.Add(c.Request.Context(), usecase.AddFavoriteInput{
		UserID:   c.GetString("userID"),
		CityName: req.CityName,
		Country:  req.Country,
		Lat:      req.Lat,
		Lon:      req.Lon,
	})
	if err != nil {
		if errors.Is(err, domain.ErrCityNameRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": errCityRequired})
			return
		}
		h.logger.Error("add favorite", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": errServerError})
		return
	}

	if !created {
		c.JSON(http.StatusOK, gin.H{"msg": "City already in favorites"})
		return
	}
	c.JSON(http.StatusCreated, toFavoriteResponse(fav))
}

// GET /api/favorites
func (h *FavoriteHandler) List(c *gin.Context) {
	favs, err := h.favorites.List(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.logger.Error("list favorites", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": errServerError})
		return
	}

	out := make([]favoriteResponse, 0, len(favs))
	for _, f := range favs {
		out = append(out, toFavoriteResponse(f))
	}
	c.JSON(http.StatusOK, out)
}

// DELETE /api/favorites/:id
// Missing and foreign favorites share one 404 so the endpoint never reveals
// whether another user's record exists.
func (h *FavoriteHandler) Remove(c *gin.Context) {
	err := h.favorites.Remove(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrFavoriteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": errFavoriteNotFound})
			return
		}
		h.logger.Error("remove favorite", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": errServerError})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "City removed from favorites"})
}

// GET /api/favorites/check?city=&country=
func (h *FavoriteHandler) Check(c *gin.Context) {
	city := c.Query("city")
	country := c.Query("country")

	exists, err := h.favorites.Check(c.Request.Context(), c.GetString("userID"), city, country)
	if err != nil {
		if errors.Is(err, domain.ErrCityNameRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": errCityRequired})
			return
		}
		h.logger.Error("check favorite", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": errServerError})
		return
	}

	c.JSON(http.StatusOK, gin.H{"exists": exists})
}
