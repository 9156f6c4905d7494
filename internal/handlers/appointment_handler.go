package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/telehealth-scheduler/internal/dto"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/httperr"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/logging"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/middleware"
	ucScheduling "github.com/BruksfildServices01/telehealth-scheduler/internal/usecase/scheduling"
)

// ======================================================
// HANDLER
// ======================================================

// AppointmentHandler is the provider's own agenda.
type AppointmentHandler struct {
	listByDate *ucScheduling.ListAppointmentsByDate
	cancel     *ucScheduling.CancelAppointment
	logger     *zap.Logger
}

func NewAppointmentHandler(
	listByDate *ucScheduling.ListAppointmentsByDate,
	cancel *ucScheduling.CancelAppointment,
	logger *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		listByDate: listByDate,
		cancel:     cancel,
		logger:     logging.OrNop(logger),
	}
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	providerID, ok := middleware.ProviderID(c)
	if !ok {
		httperr.Unauthorized(c, "provider_not_in_context", "Unauthorized")
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "date is required (YYYY-MM-DD)")
		return
	}

	out, err := h.listByDate.Execute(c.Request.Context(), providerID, date)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.List[dto.AppointmentListDTO](c, out)
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	providerID, ok := middleware.ProviderID(c)
	if !ok {
		httperr.Unauthorized(c, "provider_not_in_context", "Unauthorized")
		return
	}

	appointmentID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), providerID, appointmentID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(*ap))
}
