package handlers

import (
	"strconv"

	"parkpro/internal/services"
	"parkpro/internal/utils"
	"parkpro/internal/validators"
	"parkpro/pkg/logger"

	"github.com/gin-gonic/gin"
)

type StationHandler struct {
	stationService      *services.StationService
	availabilityService *services.AvailabilityService
	bookingService      *services.BookingService
	logger              *logger.Logger
}

func NewStationHandler(
	stationService *services.StationService,
	availabilityService *services.AvailabilityService,
	bookingService *services.BookingService,
	logger *logger.Logger,
) *StationHandler {
	return &StationHandler{
		stationService:      stationService,
		availabilityService: availabilityService,
		bookingService:      bookingService,
		logger:              logger,
	}
}

func (h *StationHandler) GetStation(c *gin.Context) {
	station, err := h.stationService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Station retrieved successfully", station)
}

func (h *StationHandler) ListStations(c *gin.Context) {
	stations, err := h.stationService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Stations retrieved successfully", stations)
}

// GetStationAvailability returns the station-wide hourly availability
// over the station's configured hours.
func (h *StationHandler) GetStationAvailability(c *gin.Context) {
	day, ok := parseDateQuery(c)
	if !ok {
		return
	}

	availability, err := h.availabilityService.StationAvailability(c.Request.Context(), c.Param("id"), day)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Availability retrieved successfully", gin.H{
		"station_id": c.Param("id"),
		"date":       day.Format("2006-01-02"),
		"hours":      availability,
	})
}

func (h *StationHandler) GetOperatingHours(c *gin.Context) {
	openAt, closeAt, err := h.stationService.OperatingHours(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Operating hours retrieved successfully", gin.H{
		"open_at":  openAt,
		"close_at": closeAt,
	})
}

func (h *StationHandler) SetOperatingHours(c *gin.Context) {
	var req services.OperatingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format")
		return
	}

	if verrs := validators.ValidateStruct(&req); len(verrs) > 0 {
		utils.ValidationErrorResponse(c, verrs.Fields())
		return
	}

	station, err := h.stationService.SetOperatingHours(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Operating hours updated successfully", station)
}

// GetDashboardStats returns today's station dashboard aggregate.
func (h *StationHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.bookingService.StationStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Dashboard stats retrieved successfully", stats)
}

func (h *StationHandler) GetRecentBookings(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)

	bookings, err := h.bookingService.RecentForStation(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Recent bookings retrieved successfully", bookings)
}
