package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"parkspot-backend/internal/geo"
	"parkspot-backend/internal/streets"
)

// GetStreets handles GET /streets?latitude=&longitude=.
func (h *Handler) GetStreets(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("latitude"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("longitude"), 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude are required"})
		return
	}

	center := geo.Coordinate{Latitude: lat, Longitude: lng}
	if !center.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordinate out of range"})
		return
	}

	segments, err := h.estimator.GetStreets(c.Request.Context(), center)
	if err != nil {
		if errors.Is(err, streets.ErrNoData) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "road data unavailable", "details": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if segments == nil {
		segments = []streets.Segment{}
	}
	c.JSON(http.StatusOK, segments)
}
