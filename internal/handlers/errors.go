package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/telehealth-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/httperr"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/models"
	ucScheduling "github.com/BruksfildServices01/telehealth-scheduler/internal/usecase/scheduling"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/validators"
)

// rejection extends the standard error envelope with the appointment that
// caused a conflict.
type rejection struct {
	httperr.HTTPError
	ConflictingAppointment *models.Appointment `json:"conflicting_appointment,omitempty"`
}

func statusForCode(code string) int {
	switch code {
	case domain.CodeProviderNotFound, domain.CodePatientNotFound, domain.CodeAppointmentNotFound:
		return http.StatusNotFound
	case domain.CodeSlotTaken, domain.CodeProviderConflict, domain.CodePatientConflict:
		return http.StatusConflict
	case domain.CodeValidationFailed:
		return http.StatusServiceUnavailable
	}
	return http.StatusBadRequest
}

// writeError maps use case errors onto HTTP responses. Anything that is not
// a business error is logged and hidden behind a 500.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	var rejected *ucScheduling.RejectedError
	if errors.As(err, &rejected) {
		c.JSON(statusForCode(rejected.Result.Code), rejection{
			HTTPError: httperr.HTTPError{
				Code:    rejected.Result.Code,
				Message: rejected.Result.Error,
			},
			ConflictingAppointment: rejected.Result.ConflictingAppointment,
		})
		return
	}

	if code, ok := httperr.BusinessCode(err); ok {
		httperr.Write(c, statusForCode(code), code, messageFor(code))
		return
	}

	logger.Error("request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	httperr.Internal(c, "internal_error", "Something went wrong. Please try again.")
}

var validationMessages = map[string]string{
	validators.CodeInvalidTimezone:     "Unknown timezone",
	validators.CodeInvalidDayOfWeek:    "day_of_week must be between 0 (Monday) and 6 (Sunday)",
	validators.CodeInvalidTime:         "Times must use HH:MM or HH:MM:SS",
	validators.CodeInvalidTimeRange:    "start_time must be before end_time",
	validators.CodeOverlappingWindows:  "Availability windows on the same day must not overlap",
	validators.CodeInvalidDate:         "Dates must use YYYY-MM-DD",
	validators.CodeIncompleteTimeRange: "start_time and end_time must be given together",
}

func messageFor(code string) string {
	if m, ok := validationMessages[code]; ok {
		return m
	}
	return domain.Message(code)
}
