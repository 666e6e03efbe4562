package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"parkspot-backend/internal/model"
)

type postParkReportRequest struct {
	OwnerID    string  `json:"ownerId" binding:"required"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	ReportType string  `json:"reportType" binding:"required"`
	StreetName string  `json:"streetName"`
}

// PostParkReport handles POST /park-reports.
func (h *Handler) PostParkReport(c *gin.Context) {
	var req postParkReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !model.ValidReportType(req.ReportType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reportType must be \"parked\" or \"wrong_location\""})
		return
	}

	record := model.ParkReport{
		OwnerID:    req.OwnerID,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		ReportType: req.ReportType,
		StreetName: req.StreetName,
		CreatedAt:  time.Now().UTC(),
	}

	id, err := h.reports.Save(c.Request.Context(), record)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "report could not be saved", "details": err.Error()})
		return
	}

	record.ID = id
	c.JSON(http.StatusCreated, record)
}

// GetParkReports handles GET /park-reports, returning the newest records for
// the analytics view. Sits behind the response cache middleware.
func (h *Handler) GetParkReports(c *gin.Context) {
	reports, err := h.reports.ListRecent(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reports could not be retrieved", "details": err.Error()})
		return
	}
	if reports == nil {
		reports = []model.ParkReport{}
	}
	c.JSON(http.StatusOK, reports)
}
