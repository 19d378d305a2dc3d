package services

import (
	"context"
	"fmt"
	"time"

	"parkpro/internal/models"
	"parkpro/internal/repositories/interfaces"
	"parkpro/internal/utils"
	"parkpro/pkg/logger"
)

// Slot-level availability counts bookings holding capacity after payment.
var slotBlockingStatuses = []models.BookingStatus{
	models.BookingStatusActive,
	models.BookingStatusConfirmed,
}

// Station-level availability additionally treats unpaid reservation holds
// as blocking, but not yet-unconfirmed active bookings. The two views
// intentionally disagree; clients depend on each as it stands.
var stationBlockingStatuses = []models.BookingStatus{
	models.BookingStatusReserved,
	models.BookingStatusConfirmed,
}

type AvailabilityService struct {
	bookingRepo interfaces.BookingRepository
	slotRepo    interfaces.SlotRepository
	stationRepo interfaces.StationRepository
	logger      *logger.Logger
}

func NewAvailabilityService(
	bookingRepo interfaces.BookingRepository,
	slotRepo interfaces.SlotRepository,
	stationRepo interfaces.StationRepository,
	logger *logger.Logger,
) *AvailabilityService {
	return &AvailabilityService{
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		stationRepo: stationRepo,
		logger:      logger,
	}
}

// ComputeHourly builds the hourly availability sequence for one day.
// Buckets run [h:00, h+1:00) from openAt to closeAt; a bucket is available
// when no booking overlaps it under the open-interval test, so a booking
// ending exactly at a bucket's start does not block it. A window where
// closeAt is not after openAt yields no buckets.
func ComputeHourly(openAt, closeAt string, day time.Time, bookings []*models.Booking) ([]models.HourlySlot, error) {
	openHour, _, err := utils.ParseHHMM(openAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	closeHour, _, err := utils.ParseHHMM(closeAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if closeHour <= openHour {
		return []models.HourlySlot{}, nil
	}

	hours := make([]models.HourlySlot, 0, closeHour-openHour)
	for hour := openHour; hour < closeHour; hour++ {
		start := utils.AtHourMinute(day, hour, 0)
		end := start.Add(time.Hour)

		available := true
		for _, booking := range bookings {
			if booking.Overlaps(start, end) {
				available = false
				break
			}
		}

		hours = append(hours, models.HourlySlot{
			StartTime: utils.FormatHHMM(hour, 0),
			EndTime:   utils.FormatHHMM(hour+1, 0),
			Available: available,
		})
	}

	return hours, nil
}

// SlotAvailability returns the day's hourly picture for a single slot.
// The window is the fixed platform booking window, not the station's
// configured hours.
func (s *AvailabilityService) SlotAvailability(ctx context.Context, slotCode string, day time.Time) ([]models.HourlySlot, error) {
	slot, err := s.slotRepo.GetBySlotCode(ctx, slotCode)
	if err != nil {
		return nil, fmt.Errorf("%w: slot %s", ErrNotFound, slotCode)
	}

	dayStart := utils.StartOfDay(day)
	dayEnd := dayStart.AddDate(0, 0, 1)

	bookings, err := s.bookingRepo.GetForSlotOnDay(ctx, slot.ID, dayStart, dayEnd, slotBlockingStatuses)
	if err != nil {
		return nil, err
	}

	openAt := utils.FormatHHMM(utils.BookingOpenHour, 0)
	closeAt := utils.FormatHHMM(utils.BookingCloseHour, 0)

	return ComputeHourly(openAt, closeAt, dayStart, bookings)
}

// StationAvailability returns one station-wide hourly sequence for the
// day, computed over the station's own operating hours. A bucket is
// blocked when any booking at the station overlaps it, regardless of
// which slot holds it.
func (s *AvailabilityService) StationAvailability(ctx context.Context, stationIDOrCode string, day time.Time) ([]models.HourlySlot, error) {
	station, err := s.stationRepo.Resolve(ctx, stationIDOrCode)
	if err != nil {
		return nil, fmt.Errorf("%w: station %s", ErrNotFound, stationIDOrCode)
	}

	dayStart := utils.StartOfDay(day)
	dayEnd := dayStart.AddDate(0, 0, 1)

	bookings, err := s.bookingRepo.GetForStationOnDay(ctx, station.ID, dayStart, dayEnd, stationBlockingStatuses)
	if err != nil {
		return nil, err
	}

	openAt, closeAt := station.OperatingHours()

	return ComputeHourly(openAt, closeAt, dayStart, bookings)
}
