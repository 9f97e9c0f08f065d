// Package handler exposes the HTTP handlers.  This file holds the public
// catalog endpoints: locations, movies, theaters, coupons, layouts and
// showtime listings.  None of them need a signed-in user.
package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/repository"
	"github.com/iliyamo/cinema-seat-booking/internal/service"
)

// BrowseHandler serves the read-only catalog.
type BrowseHandler struct {
	Catalog   *repository.CatalogRepo
	Showtimes *service.ShowtimeService
}

func NewBrowseHandler(catalog *repository.CatalogRepo, showtimes *service.ShowtimeService) *BrowseHandler {
	return &BrowseHandler{Catalog: catalog, Showtimes: showtimes}
}

// LocationDetail is a location with its theaters and the movies on screen.
type LocationDetail struct {
	Location model.Location  `json:"location"`
	Movies   []model.Movie   `json:"movies"`
	Theaters []model.Theater `json:"theaters"`
}

// ListLocations: GET /v1/locations
func (h *BrowseHandler) ListLocations(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": h.Catalog.Locations()})
}

// GetLocation: GET /v1/locations/:id
func (h *BrowseHandler) GetLocation(c echo.Context) error {
	loc, err := h.Catalog.Location(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
	}
	theaters := h.Catalog.TheatersByLocation(loc.ID)
	if theaters == nil {
		theaters = []model.Theater{}
	}
	return c.JSON(http.StatusOK, LocationDetail{Location: loc, Movies: h.Catalog.Movies(), Theaters: theaters})
}

// ListCoupons: GET /v1/coupons
func (h *BrowseHandler) ListCoupons(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": h.Catalog.Coupons()})
}

// GetLayout: GET /v1/layouts/:id
func (h *BrowseHandler) GetLayout(c echo.Context) error {
	layout, err := h.Catalog.Layout(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "layout not found"})
	}
	return c.JSON(http.StatusOK, layout)
}

// ListShowtimes: GET /v1/showtimes?movie_id=&location_id=&date=&language=
// Showtimes are grouped by theater ID.
func (h *BrowseHandler) ListShowtimes(c echo.Context) error {
	movieID := strings.TrimSpace(c.QueryParam("movie_id"))
	locationID := strings.TrimSpace(c.QueryParam("location_id"))
	date := strings.TrimSpace(c.QueryParam("date"))
	language := strings.TrimSpace(c.QueryParam("language"))
	if movieID == "" || locationID == "" || date == "" || language == "" {
		return badRequest(c, "movie_id, location_id, date and language are required")
	}

	byTheater, err := h.Showtimes.ShowtimesForLocation(c.Request().Context(), movieID, locationID, date, language)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"movie_id":    movieID,
		"location_id": locationID,
		"date":        date,
		"language":    language,
		"theaters":    byTheater,
	})
}
