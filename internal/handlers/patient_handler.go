package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/telehealth-scheduler/internal/dto"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/httperr"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/logging"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/middleware"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/models"
	ucScheduling "github.com/BruksfildServices01/telehealth-scheduler/internal/usecase/scheduling"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/validators"
)

type PatientHandler struct {
	db           *gorm.DB
	appointments *ucScheduling.ListPatientAppointments
	logger       *zap.Logger
}

func NewPatientHandler(
	db *gorm.DB,
	appointments *ucScheduling.ListPatientAppointments,
	logger *zap.Logger,
) *PatientHandler {
	return &PatientHandler{
		db:           db,
		appointments: appointments,
		logger:       logging.OrNop(logger),
	}
}

type CreatePatientRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Email string `json:"email" binding:"required"`
	Phone string `json:"phone" binding:"max=20"`
}

// ======================================================
// CREATE (PUBLIC)
// ======================================================

// Create returns the existing patient when the email is already known.
func (h *PatientHandler) Create(c *gin.Context) {
	var req CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailSyntaxValid(email) {
		httperr.BadRequest(c, "invalid_email", "The email address is not valid.")
		return
	}

	patient := models.Patient{
		Name:  strings.TrimSpace(req.Name),
		Email: email,
		Phone: strings.TrimSpace(req.Phone),
	}

	res := h.db.WithContext(c.Request.Context()).
		Where(models.Patient{Email: email}).
		FirstOrCreate(&patient)
	if res.Error != nil {
		writeError(c, h.logger, res.Error)
		return
	}

	status := http.StatusOK
	if res.RowsAffected > 0 {
		status = http.StatusCreated
	}
	c.JSON(status, patient)
}

// ======================================================
// UPCOMING APPOINTMENTS (PUBLIC)
// ======================================================

// Appointments requires the patient's email in the X-Patient-Email header.
func (h *PatientHandler) Appointments(c *gin.Context) {
	patientID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	out, err := h.appointments.Execute(
		c.Request.Context(),
		patientID,
		c.GetHeader(middleware.PatientEmailHeader),
	)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.List[dto.AppointmentListDTO](c, out)
}

// ======================================================
// LIST (PROVIDER)
// ======================================================

// List returns patients that have booked with the authenticated provider,
// optionally filtered by name, email or phone.
func (h *PatientHandler) List(c *gin.Context) {
	providerID, ok := middleware.ProviderID(c)
	if !ok {
		httperr.Unauthorized(c, "provider_not_in_context", "Unauthorized")
		return
	}

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).
		Model(&models.Patient{}).
		Where("id IN (?)", h.db.Model(&models.Appointment{}).
			Select("patient_id").
			Where("provider_id = ?", providerID))

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var patients []models.Patient
	if err := q.Order("name ASC").Find(&patients).Error; err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.List(c, patients)
}
