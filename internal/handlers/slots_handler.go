package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/telehealth-scheduler/internal/dto"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/httperr"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/logging"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/timezone"
	ucScheduling "github.com/BruksfildServices01/telehealth-scheduler/internal/usecase/scheduling"
)

const (
	defaultSlotDuration = 30
	maxSlotDuration     = 8 * 60
	defaultMaxSlots     = 20
	maxMaxSlots         = 200
)

// ======================================================
// HANDLER
// ======================================================

// SlotsHandler serves the patient facing booking flow.
type SlotsHandler struct {
	slots    *ucScheduling.GetNextAvailableSlots
	check    *ucScheduling.ValidateSlotAvailability
	suggest  *ucScheduling.SuggestAlternativeAppointmentTimes
	validate *ucScheduling.ValidateAppointmentCreation
	create   *ucScheduling.CreateAppointment
	logger   *zap.Logger
}

func NewSlotsHandler(
	slots *ucScheduling.GetNextAvailableSlots,
	check *ucScheduling.ValidateSlotAvailability,
	suggest *ucScheduling.SuggestAlternativeAppointmentTimes,
	validate *ucScheduling.ValidateAppointmentCreation,
	create *ucScheduling.CreateAppointment,
	logger *zap.Logger,
) *SlotsHandler {
	return &SlotsHandler{
		slots:    slots,
		check:    check,
		suggest:  suggest,
		validate: validate,
		create:   create,
		logger:   logging.OrNop(logger),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ValidateAppointmentRequest struct {
	ProviderID uint   `json:"provider_id" binding:"required"`
	PatientID  uint   `json:"patient_id" binding:"required"`
	Datetime   string `json:"datetime" binding:"required"`
	Duration   int    `json:"duration" binding:"required,min=1,max=480"`
	Buffer     *int   `json:"buffer_minutes" binding:"omitempty,min=0,max=240"`
}

type CreateAppointmentRequest struct {
	ProviderID uint   `json:"provider_id" binding:"required"`
	PatientID  uint   `json:"patient_id" binding:"required"`
	Datetime   string `json:"datetime" binding:"required"`
	Duration   int    `json:"duration" binding:"required,min=1,max=480"`
	Type       string `json:"type"`
	Reason     string `json:"reason" binding:"max=255"`
}

// ======================================================
// SLOTS
// ======================================================

func (h *SlotsHandler) Slots(c *gin.Context) {
	providerID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	duration, ok := intQuery(c, "duration", defaultSlotDuration, 1, maxSlotDuration)
	if !ok {
		return
	}
	limit, ok := intQuery(c, "max", defaultMaxSlots, 1, maxMaxSlots)
	if !ok {
		return
	}
	buffer, ok := intQuery(c, "buffer", ucScheduling.UsePolicyBuffer, 0, 240)
	if !ok {
		return
	}

	slots := h.slots.Execute(c.Request.Context(), ucScheduling.GetNextAvailableSlotsInput{
		ProviderID:          providerID,
		SlotDurationMinutes: duration,
		MaxSlots:            limit,
		BufferMinutes:       buffer,
	})

	c.JSON(http.StatusOK, gin.H{
		"provider_id": providerID,
		"duration":    duration,
		"slots":       slots,
	})
}

func (h *SlotsHandler) CheckSlot(c *gin.Context) {
	providerID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	slot, err := timezone.ParseInstant(c.Query("datetime"))
	if err != nil {
		httperr.BadRequest(c, "invalid_datetime", "datetime must be an ISO-8601 instant")
		return
	}

	duration, ok := intQuery(c, "duration", defaultSlotDuration, 1, maxSlotDuration)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.check.Execute(c.Request.Context(), providerID, slot, duration))
}

func (h *SlotsHandler) Suggestions(c *gin.Context) {
	providerID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	requested, err := timezone.ParseInstant(c.Query("datetime"))
	if err != nil {
		httperr.BadRequest(c, "invalid_datetime", "datetime must be an ISO-8601 instant")
		return
	}

	duration, ok := intQuery(c, "duration", defaultSlotDuration, 1, maxSlotDuration)
	if !ok {
		return
	}
	limit, ok := intQuery(c, "max", ucScheduling.DefaultMaxSuggestions, 1, 20)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suggestions": h.suggest.Execute(c.Request.Context(), ucScheduling.SuggestAlternativesInput{
			ProviderID:      providerID,
			Requested:       requested,
			DurationMinutes: duration,
			MaxSuggestions:  limit,
		}),
	})
}

// ======================================================
// BOOKING
// ======================================================

// Validate always answers 200; the verdict is in the body.
func (h *SlotsHandler) Validate(c *gin.Context) {
	var req ValidateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	start, err := timezone.ParseInstant(req.Datetime)
	if err != nil {
		httperr.BadRequest(c, "invalid_datetime", "datetime must be an ISO-8601 instant")
		return
	}

	buffer := ucScheduling.UsePolicyBuffer
	if req.Buffer != nil {
		buffer = *req.Buffer
	}

	c.JSON(http.StatusOK, h.validate.Execute(c.Request.Context(), ucScheduling.ValidateAppointmentInput{
		ProviderID:      req.ProviderID,
		PatientID:       req.PatientID,
		Datetime:        start,
		DurationMinutes: req.Duration,
		BufferMinutes:   buffer,
	}))
}

func (h *SlotsHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	start, err := timezone.ParseInstant(req.Datetime)
	if err != nil {
		httperr.BadRequest(c, "invalid_datetime", "datetime must be an ISO-8601 instant")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucScheduling.CreateAppointmentInput{
		ProviderID:      req.ProviderID,
		PatientID:       req.PatientID,
		Datetime:        start,
		DurationMinutes: req.Duration,
		Type:            req.Type,
		Reason:          req.Reason,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.Created(c, dto.FromAppointment(*ap))
}

// ======================================================
// PARAM HELPERS
// ======================================================

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Invalid "+name)
		return 0, false
	}
	return uint(v), true
}

// intQuery reads an optional integer query parameter bounded by [lo, hi].
func intQuery(c *gin.Context, name string, def, lo, hi int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < lo || v > hi {
		httperr.BadRequest(c, "invalid_"+name, name+" must be between "+strconv.Itoa(lo)+" and "+strconv.Itoa(hi))
		return 0, false
	}
	return v, true
}
