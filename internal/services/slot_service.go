package services

import (
	"context"
	"fmt"

	"parkpro/internal/models"
	"parkpro/internal/repositories/interfaces"
	"parkpro/internal/utils"
	"parkpro/pkg/logger"
)

type SlotService struct {
	slotRepo    interfaces.SlotRepository
	stationRepo interfaces.StationRepository
	logger      *logger.Logger
}

func NewSlotService(
	slotRepo interfaces.SlotRepository,
	stationRepo interfaces.StationRepository,
	logger *logger.Logger,
) *SlotService {
	return &SlotService{
		slotRepo:    slotRepo,
		stationRepo: stationRepo,
		logger:      logger,
	}
}

type CreateSlotRequest struct {
	StationID string   `json:"station_id" binding:"required"`
	Type      string   `json:"type" binding:"required"`
	Price     float64  `json:"price" binding:"gte=0"`
	Images    []string `json:"images"`
}

func (s *SlotService) Create(ctx context.Context, req *CreateSlotRequest) (*models.Slot, error) {
	if _, err := s.stationRepo.Resolve(ctx, req.StationID); err != nil {
		return nil, fmt.Errorf("%w: station %s", ErrNotFound, req.StationID)
	}

	code, err := s.nextSlotCode(ctx)
	if err != nil {
		return nil, err
	}

	slot := &models.Slot{
		SlotID:       code,
		StationID:    req.StationID,
		Type:         req.Type,
		Price:        req.Price,
		Status:       models.SlotStatusEnabled,
		Availability: models.SlotAvailabilityFree,
		Images:       req.Images,
	}

	if err := s.slotRepo.Create(ctx, slot); err != nil {
		return nil, err
	}

	s.logger.WithField("slot_id", slot.SlotID).Info("Slot created")

	return slot, nil
}

// nextSlotCode derives the next slXXX display code from the current slot
// count and probes for collisions, stepping forward on each hit. Codes
// grow past three digits once the count does.
func (s *SlotService) nextSlotCode(ctx context.Context) (string, error) {
	slots, err := s.slotRepo.List(ctx)
	if err != nil {
		return "", err
	}

	next := len(slots) + 1
	for attempt := 0; attempt < utils.SlotCodeMaxRetries; attempt++ {
		code := fmt.Sprintf("sl%0*d", utils.SlotCodeWidth, next+attempt)
		if _, err := s.slotRepo.GetBySlotCode(ctx, code); err != nil {
			return code, nil
		}
	}

	return "", fmt.Errorf("%w: could not allocate slot code", ErrConflict)
}

func (s *SlotService) Get(ctx context.Context, slotCode string) (*models.Slot, error) {
	slot, err := s.slotRepo.GetBySlotCode(ctx, slotCode)
	if err != nil {
		return nil, fmt.Errorf("%w: slot %s", ErrNotFound, slotCode)
	}
	return slot, nil
}

func (s *SlotService) List(ctx context.Context) ([]*models.Slot, error) {
	return s.slotRepo.List(ctx)
}

// ListByStation returns the station's slots, matching historical documents
// that reference the station by code as well as by hex id.
func (s *SlotService) ListByStation(ctx context.Context, stationIDOrCode string) ([]*models.Slot, error) {
	station, err := s.stationRepo.Resolve(ctx, stationIDOrCode)
	if err != nil {
		return nil, fmt.Errorf("%w: station %s", ErrNotFound, stationIDOrCode)
	}

	seen := make(map[string]bool)
	var slots []*models.Slot
	for _, ref := range []string{station.StationID, station.ID.Hex()} {
		if ref == "" {
			continue
		}
		found, err := s.slotRepo.GetByStationID(ctx, ref)
		if err != nil {
			return nil, err
		}
		for _, slot := range found {
			if !seen[slot.SlotID] {
				seen[slot.SlotID] = true
				slots = append(slots, slot)
			}
		}
	}

	return slots, nil
}

type UpdateSlotRequest struct {
	Type         *string                  `json:"type"`
	Price        *float64                 `json:"price"`
	Status       *models.SlotStatus       `json:"status"`
	Availability *models.SlotAvailability `json:"availability"`
	Images       []string                 `json:"images"`
}

func (s *SlotService) Update(ctx context.Context, slotCode string, req *UpdateSlotRequest) (*models.Slot, error) {
	slot, err := s.slotRepo.GetBySlotCode(ctx, slotCode)
	if err != nil {
		return nil, fmt.Errorf("%w: slot %s", ErrNotFound, slotCode)
	}

	updates := map[string]interface{}{}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
		}
		updates["price"] = *req.Price
	}
	if req.Status != nil {
		if *req.Status != models.SlotStatusEnabled && *req.Status != models.SlotStatusDisabled {
			return nil, fmt.Errorf("%w: invalid slot status", ErrValidation)
		}
		updates["status"] = *req.Status
	}
	if req.Availability != nil {
		if *req.Availability != models.SlotAvailabilityFree && *req.Availability != models.SlotAvailabilityOccupied {
			return nil, fmt.Errorf("%w: invalid slot availability", ErrValidation)
		}
		updates["availability"] = *req.Availability
	}
	if req.Images != nil {
		updates["images"] = req.Images
	}

	if len(updates) == 0 {
		return slot, nil
	}

	if err := s.slotRepo.Update(ctx, slot.ID, updates); err != nil {
		return nil, err
	}

	return s.slotRepo.GetByID(ctx, slot.ID)
}

func (s *SlotService) Delete(ctx context.Context, slotCode string) error {
	slot, err := s.slotRepo.GetBySlotCode(ctx, slotCode)
	if err != nil {
		return fmt.Errorf("%w: slot %s", ErrNotFound, slotCode)
	}

	if err := s.slotRepo.Delete(ctx, slot.ID); err != nil {
		return err
	}

	s.logger.WithField("slot_id", slot.SlotID).Info("Slot deleted")

	return nil
}
