package httptransport

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"

	"github.com/skycastapp/skycast-api/internal/transport/http/handler"
	"github.com/skycastapp/skycast-api/internal/transport/http/middleware"
)

func NewRouter(
	logger *slog.Logger,
	authHandler *handler.AuthHandler,
	weatherHandler *handler.WeatherHandler,
	favoriteHandler *handler.FavoriteHandler,
	hmacKey []byte,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Authorization", "Content-Type"},
		MaxAge:          12 * time.Hour,
	}))
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)

	// Weather routes are public: the frontend shows weather before login.
	api.GET("/weather", weatherHandler.CurrentByCity)
	api.GET("/weather/coords", weatherHandler.CurrentByCoords)
	api.GET("/forecast", weatherHandler.Forecast)

	favorites := api.Group("/favorites", middleware.Auth(hmacKey))
	favorites.POST("", favoriteHandler.Add)
	favorites.GET("", favoriteHandler.List)
	favorites.GET("/check", favoriteHandler.Check)
	favorites.DELETE("/:id", favoriteHandler.Remove)

	return r
}
