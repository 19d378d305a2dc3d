package handlers

import (
	"time"

	"parkpro/internal/services"
	"parkpro/internal/utils"
	"parkpro/pkg/logger"

	"github.com/gin-gonic/gin"
)

type SlotHandler struct {
	slotService         *services.SlotService
	availabilityService *services.AvailabilityService
	logger              *logger.Logger
}

func NewSlotHandler(
	slotService *services.SlotService,
	availabilityService *services.AvailabilityService,
	logger *logger.Logger,
) *SlotHandler {
	return &SlotHandler{
		slotService:         slotService,
		availabilityService: availabilityService,
		logger:              logger,
	}
}

func (h *SlotHandler) CreateSlot(c *gin.Context) {
	var req services.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format")
		return
	}

	slot, err := h.slotService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Slot created successfully", slot)
}

func (h *SlotHandler) GetSlot(c *gin.Context) {
	slot, err := h.slotService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Slot retrieved successfully", slot)
}

func (h *SlotHandler) ListSlots(c *gin.Context) {
	if stationID := c.Query("station_id"); stationID != "" {
		slots, err := h.slotService.ListByStation(c.Request.Context(), stationID)
		if err != nil {
			respondError(c, err)
			return
		}
		utils.SuccessResponse(c, "Slots retrieved successfully", slots)
		return
	}

	slots, err := h.slotService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Slots retrieved successfully", slots)
}

func (h *SlotHandler) UpdateSlot(c *gin.Context) {
	var req services.UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format")
		return
	}

	slot, err := h.slotService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Slot updated successfully", slot)
}

func (h *SlotHandler) DeleteSlot(c *gin.Context) {
	if err := h.slotService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Slot deleted successfully", nil)
}

// GetSlotAvailability returns the hourly availability of one slot for the
// requested date (today when absent).
func (h *SlotHandler) GetSlotAvailability(c *gin.Context) {
	day, ok := parseDateQuery(c)
	if !ok {
		return
	}

	hours, err := h.availabilityService.SlotAvailability(c.Request.Context(), c.Param("id"), day)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Availability retrieved successfully", gin.H{
		"slot_id": c.Param("id"),
		"date":    day.Format("2006-01-02"),
		"hours":   hours,
	})
}

func parseDateQuery(c *gin.Context) (time.Time, bool) {
	dateStr := c.Query("date")
	if dateStr == "" {
		return time.Now(), true
	}

	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid date, expected YYYY-MM-DD")
		return time.Time{}, false
	}

	return day, true
}
