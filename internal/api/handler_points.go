package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"parkspot-backend/internal/geo"
	"parkspot-backend/internal/model"
	"parkspot-backend/internal/points"
	"parkspot-backend/internal/report"
)

// parkPointResponse is the wire shape of an active park point.
type parkPointResponse struct {
	ID               string         `json:"id"`
	OwnerID          string         `json:"ownerId"`
	Coordinate       geo.Coordinate `json:"coordinate"`
	CreatedAt        time.Time      `json:"createdAt"`
	DurationMinutes  int            `json:"durationMinutes"`
	RemainingMinutes int            `json:"remainingMinutes"`
}

func toParkPointResponse(p points.ParkPoint) parkPointResponse {
	return parkPointResponse{
		ID:               p.ID,
		OwnerID:          p.Owner.String(),
		Coordinate:       p.Coordinate,
		CreatedAt:        p.CreatedAt,
		DurationMinutes:  p.DurationMinutes,
		RemainingMinutes: p.RemainingMinutes,
	}
}

func toParkPointResponses(pts []points.ParkPoint) []parkPointResponse {
	out := make([]parkPointResponse, 0, len(pts))
	for _, p := range pts {
		out = append(out, toParkPointResponse(p))
	}
	return out
}

// GetParkPoints handles GET /park-points. With latitude/longitude/radius
// query params the list is filtered by proximity; the filter is advisory.
func (h *Handler) GetParkPoints(c *gin.Context) {
	active := h.points.ListActive()

	latStr, lngStr := c.Query("latitude"), c.Query("longitude")
	if latStr != "" && lngStr != "" {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lng, errLng := strconv.ParseFloat(lngStr, 64)
		if errLat != nil || errLng != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid latitude/longitude"})
			return
		}
		radius := 1000.0
		if radiusStr := c.Query("radius"); radiusStr != "" {
			r, err := strconv.ParseFloat(radiusStr, 64)
			if err != nil || r <= 0 {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid radius"})
				return
			}
			radius = r
		}

		center := geo.Coordinate{Latitude: lat, Longitude: lng}
		filtered := make([]points.ParkPoint, 0, len(active))
		for _, p := range active {
			if geo.DistanceM(center, p.Coordinate) <= radius {
				filtered = append(filtered, p)
			}
		}
		active = filtered
	}

	c.JSON(http.StatusOK, toParkPointResponses(active))
}

type postParkPointRequest struct {
	OwnerID         string         `json:"ownerId"`
	Coordinate      geo.Coordinate `json:"coordinate"`
	DurationMinutes int            `json:"durationMinutes"`
}

// PostParkPoint handles POST /park-points.
func (h *Handler) PostParkPoint(c *gin.Context) {
	var req postParkPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.OwnerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "ownerId is required"})
		return
	}

	p, err := h.points.Create(points.UserOwner(req.OwnerID), req.Coordinate, req.DurationMinutes)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, toParkPointResponse(p))
}

// DeleteParkPoint handles DELETE /park-points/:id?ownerId=...
func (h *Handler) DeleteParkPoint(c *gin.Context) {
	ownerID := c.Query("ownerId")
	if ownerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "ownerId is required"})
		return
	}

	err := h.points.Delete(c.Param("id"), ownerID)
	switch {
	case errors.Is(err, points.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "park point not found"})
	case errors.Is(err, points.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "park point belongs to another user"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.Status(http.StatusNoContent)
	}
}

type reportParkPointRequest struct {
	Type    string `json:"type" binding:"required"`
	OwnerID string `json:"ownerId"`
}

// ReportParkPoint handles POST /park-points/:id/report. The point is removed
// even when persisting the report fails; only the persistence error is
// surfaced in that case.
func (h *Handler) ReportParkPoint(c *gin.Context) {
	var req reportParkPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !model.ValidReportType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be \"parked\" or \"wrong_location\""})
		return
	}
	reporter := req.OwnerID
	if reporter == "" {
		reporter = "anonymous"
	}

	remaining, err := h.points.ReportAndRemove(c.Request.Context(), c.Param("id"), reporter, req.Type)
	switch {
	case errors.Is(err, points.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "park point not found"})
	case errors.Is(err, report.ErrStorage):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "report could not be saved", "details": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, toParkPointResponses(remaining))
	}
}
