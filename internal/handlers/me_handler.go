package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/telehealth-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/httperr"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/logging"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/middleware"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/models"
	ucScheduling "github.com/BruksfildServices01/telehealth-scheduler/internal/usecase/scheduling"
)

type MeHandler struct {
	repo           domain.Repository
	updateTimezone *ucScheduling.UpdateProviderTimezone
	logger         *zap.Logger
}

func NewMeHandler(
	repo domain.Repository,
	updateTimezone *ucScheduling.UpdateProviderTimezone,
	logger *zap.Logger,
) *MeHandler {
	return &MeHandler{
		repo:           repo,
		updateTimezone: updateTimezone,
		logger:         logging.OrNop(logger),
	}
}

type UpdateMeRequest struct {
	Timezone string `json:"timezone" binding:"required"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	providerID, ok := middleware.ProviderID(c)
	if !ok {
		httperr.Unauthorized(c, "provider_not_in_context", "Unauthorized")
		return
	}

	provider, err := h.repo.GetProvider(c.Request.Context(), providerID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"provider": profile(provider)})
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	providerID, ok := middleware.ProviderID(c)
	if !ok {
		httperr.Unauthorized(c, "provider_not_in_context", "Unauthorized")
		return
	}

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	provider, err := h.updateTimezone.Execute(c.Request.Context(), providerID, req.Timezone)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"provider": profile(provider)})
}

func profile(p *models.Provider) gin.H {
	return gin.H{
		"id":       p.ID,
		"name":     p.Name,
		"email":    p.Email,
		"timezone": p.Timezone,
	}
}
