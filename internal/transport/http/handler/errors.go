package handler

const (
	errServerError        = "Server error"
	errUserExists         = "User already exists"
	errInvalidCredentials = "Invalid credentials"
	errCityRequired       = "City name is required"
	errCoordsRequired     = "Coordinates required"
	errCityNotFound       = "City not found"
	errLocationNotFound   = "Location not found"
	errForecastFailed     = "Failed to fetch forecast data"
	errFavoriteNotFound   = "City not found or not authorized"
)
