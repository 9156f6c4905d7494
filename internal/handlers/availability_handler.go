package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/telehealth-scheduler/internal/httperr"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/logging"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/middleware"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/models"
	ucScheduling "github.com/BruksfildServices01/telehealth-scheduler/internal/usecase/scheduling"
)

type AvailabilityHandler struct {
	get            *ucScheduling.GetAvailability
	saveWeekly     *ucScheduling.SaveWeeklyAvailability
	saveExceptions *ucScheduling.SaveAvailabilityExceptions
	logger         *zap.Logger
}

func NewAvailabilityHandler(
	get *ucScheduling.GetAvailability,
	saveWeekly *ucScheduling.SaveWeeklyAvailability,
	saveExceptions *ucScheduling.SaveAvailabilityExceptions,
	logger *zap.Logger,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		get:            get,
		saveWeekly:     saveWeekly,
		saveExceptions: saveExceptions,
		logger:         logging.OrNop(logger),
	}
}

type WeeklyWindow struct {
	DayOfWeek *int   `json:"day_of_week" binding:"required,min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type WeeklyAvailabilityRequest struct {
	Timezone string         `json:"timezone" binding:"required"`
	Windows  []WeeklyWindow `json:"windows" binding:"dive"`
}

type ExceptionEntry struct {
	Date        string  `json:"date" binding:"required"`
	IsAvailable bool    `json:"is_available"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	Reason      string  `json:"reason" binding:"max=255"`
}

type ExceptionsRequest struct {
	Exceptions []ExceptionEntry `json:"exceptions" binding:"dive"`
}

func (h *AvailabilityHandler) Get(c *gin.Context) {
	providerID, ok := middleware.ProviderID(c)
	if !ok {
		httperr.Unauthorized(c, "provider_not_in_context", "Unauthorized")
		return
	}

	view, err := h.get.Execute(c.Request.Context(), providerID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// UpdateWeekly replaces every weekly window; an empty list clears them.
func (h *AvailabilityHandler) UpdateWeekly(c *gin.Context) {
	providerID, ok := middleware.ProviderID(c)
	if !ok {
		httperr.Unauthorized(c, "provider_not_in_context", "Unauthorized")
		return
	}

	var req WeeklyAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	rows := make([]models.ProviderAvailability, 0, len(req.Windows))
	for _, w := range req.Windows {
		rows = append(rows, models.ProviderAvailability{
			DayOfWeek: *w.DayOfWeek,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
		})
	}

	if err := h.saveWeekly.Execute(c.Request.Context(), providerID, req.Timezone, rows); err != nil {
		writeError(c, h.logger, err)
		return
	}

	h.Get(c)
}

func (h *AvailabilityHandler) GetExceptions(c *gin.Context) {
	providerID, ok := middleware.ProviderID(c)
	if !ok {
		httperr.Unauthorized(c, "provider_not_in_context", "Unauthorized")
		return
	}

	view, err := h.get.Execute(c.Request.Context(), providerID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"timezone":   view.Timezone,
		"exceptions": view.Exceptions,
	})
}

func (h *AvailabilityHandler) UpdateExceptions(c *gin.Context) {
	providerID, ok := middleware.ProviderID(c)
	if !ok {
		httperr.Unauthorized(c, "provider_not_in_context", "Unauthorized")
		return
	}

	var req ExceptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	rows := make([]models.AvailabilityException, 0, len(req.Exceptions))
	for _, e := range req.Exceptions {
		rows = append(rows, models.AvailabilityException{
			ExceptionDate: e.Date,
			IsAvailable:   e.IsAvailable,
			StartTime:     e.StartTime,
			EndTime:       e.EndTime,
			Reason:        e.Reason,
		})
	}

	if err := h.saveExceptions.Execute(c.Request.Context(), providerID, rows); err != nil {
		writeError(c, h.logger, err)
		return
	}

	h.GetExceptions(c)
}
