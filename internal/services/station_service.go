package services

import (
	"context"
	"fmt"

	"parkpro/internal/models"
	"parkpro/internal/repositories/interfaces"
	"parkpro/internal/utils"
	"parkpro/pkg/logger"
)

type StationService struct {
	stationRepo interfaces.StationRepository
	logger      *logger.Logger
}

func NewStationService(
	stationRepo interfaces.StationRepository,
	logger *logger.Logger,
) *StationService {
	return &StationService{
		stationRepo: stationRepo,
		logger:      logger,
	}
}

func (s *StationService) Get(ctx context.Context, idOrCode string) (*models.Station, error) {
	station, err := s.stationRepo.Resolve(ctx, idOrCode)
	if err != nil {
		return nil, fmt.Errorf("%w: station %s", ErrNotFound, idOrCode)
	}
	return station, nil
}

func (s *StationService) List(ctx context.Context) ([]*models.Station, error) {
	return s.stationRepo.List(ctx)
}

type OperatingHoursRequest struct {
	OpenAt  string `json:"open_at" binding:"required" validate:"required,hhmm"`
	CloseAt string `json:"close_at" binding:"required" validate:"required,hhmm"`
}

// SetOperatingHours updates a station's open and close times. The hours
// drive station-level availability; the platform booking window for slot
// bookings is unaffected.
func (s *StationService) SetOperatingHours(ctx context.Context, idOrCode string, req *OperatingHoursRequest) (*models.Station, error) {
	openHour, openMin, err := utils.ParseHHMM(req.OpenAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	closeHour, closeMin, err := utils.ParseHHMM(req.CloseAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if closeHour*60+closeMin <= openHour*60+openMin {
		return nil, fmt.Errorf("%w: close time must be after open time", ErrValidation)
	}

	station, err := s.stationRepo.Resolve(ctx, idOrCode)
	if err != nil {
		return nil, fmt.Errorf("%w: station %s", ErrNotFound, idOrCode)
	}

	if err := s.stationRepo.UpdateOperatingHours(ctx, station.ID, req.OpenAt, req.CloseAt); err != nil {
		return nil, err
	}

	station.OpenAt = req.OpenAt
	station.CloseAt = req.CloseAt

	s.logger.WithStationID(station.ID).WithFields(map[string]interface{}{
		"open_at":  req.OpenAt,
		"close_at": req.CloseAt,
		"event":    utils.EventStationHoursSaved,
	}).Info("Station operating hours updated")

	return station, nil
}

// OperatingHours returns the station's effective hours, defaults applied.
func (s *StationService) OperatingHours(ctx context.Context, idOrCode string) (string, string, error) {
	station, err := s.stationRepo.Resolve(ctx, idOrCode)
	if err != nil {
		return "", "", fmt.Errorf("%w: station %s", ErrNotFound, idOrCode)
	}

	openAt, closeAt := station.OperatingHours()
	return openAt, closeAt, nil
}
