package services

import (
	"context"
	"fmt"

	"parkpro/internal/models"
	"parkpro/internal/repositories/interfaces"
	"parkpro/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FavoriteService struct {
	favoriteRepo interfaces.FavoriteRepository
	stationRepo  interfaces.StationRepository
	logger       *logger.Logger
}

func NewFavoriteService(
	favoriteRepo interfaces.FavoriteRepository,
	stationRepo interfaces.StationRepository,
	logger *logger.Logger,
) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		stationRepo:  stationRepo,
		logger:       logger,
	}
}

func (s *FavoriteService) Add(ctx context.Context, userID primitive.ObjectID, stationIDOrCode string) error {
	station, err := s.stationRepo.Resolve(ctx, stationIDOrCode)
	if err != nil {
		return fmt.Errorf("%w: station %s", ErrNotFound, stationIDOrCode)
	}

	exists, err := s.favoriteRepo.Exists(ctx, userID, station.ID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: station already in favorites", ErrConflict)
	}

	return s.favoriteRepo.Add(ctx, userID, station.ID)
}

func (s *FavoriteService) Remove(ctx context.Context, userID primitive.ObjectID, stationIDOrCode string) error {
	station, err := s.stationRepo.Resolve(ctx, stationIDOrCode)
	if err != nil {
		return fmt.Errorf("%w: station %s", ErrNotFound, stationIDOrCode)
	}

	if err := s.favoriteRepo.Remove(ctx, userID, station.ID); err != nil {
		return fmt.Errorf("%w: favorite", ErrNotFound)
	}

	return nil
}

// List returns the user's starred stations, skipping any that have been
// deleted since they were starred.
func (s *FavoriteService) List(ctx context.Context, userID primitive.ObjectID) ([]*models.Station, error) {
	favorites, err := s.favoriteRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	stations := make([]*models.Station, 0, len(favorites))
	for _, favorite := range favorites {
		station, err := s.stationRepo.GetByID(ctx, favorite.StationID)
		if err != nil {
			continue
		}
		stations = append(stations, station)
	}

	return stations, nil
}
