package handlers

import (
	"parkpro/internal/services"
	"parkpro/internal/utils"
	"parkpro/pkg/logger"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	favoriteService *services.FavoriteService
	logger          *logger.Logger
}

func NewFavoriteHandler(favoriteService *services.FavoriteService, logger *logger.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
		logger:          logger,
	}
}

func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.favoriteService.Add(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Station added to favorites", nil)
}

func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.favoriteService.Remove(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Station removed from favorites", nil)
}

func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	stations, err := h.favoriteService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Favorites retrieved successfully", stations)
}
