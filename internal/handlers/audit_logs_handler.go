package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/telehealth-scheduler/internal/audit"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/httperr"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/logging"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/middleware"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/models"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/timezone"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/validators"
)

type AuditLogLister interface {
	List(ctx context.Context, providerID uint, f audit.Filter) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	logs   AuditLogLister
	logger *zap.Logger
}

func NewAuditLogsHandler(logs AuditLogLister, logger *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, logger: logging.OrNop(logger)}
}

type auditLogPage struct {
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
	Logs  []models.AuditLog `json:"logs"`
}

// List serves GET /api/me/audit-logs?action=&entity=&from=&to=&page=&limit=.
// from/to are calendar dates (UTC); to is inclusive.
func (h *AuditLogsHandler) List(c *gin.Context) {
	providerID, ok := middleware.ProviderID(c)
	if !ok {
		httperr.Unauthorized(c, "provider_not_in_context", "Unauthorized")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(audit.DefaultPageSize)))

	filter := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   page,
		Limit:  limit,
	}.Normalize()

	if v := c.Query("from"); v != "" {
		from, err := time.Parse(timezone.DateLayout, v)
		if err != nil {
			httperr.BadRequest(c, validators.CodeInvalidDate, messageFor(validators.CodeInvalidDate))
			return
		}
		filter.From = from
	}
	if v := c.Query("to"); v != "" {
		to, err := time.Parse(timezone.DateLayout, v)
		if err != nil {
			httperr.BadRequest(c, validators.CodeInvalidDate, messageFor(validators.CodeInvalidDate))
			return
		}
		filter.To = to.AddDate(0, 0, 1)
	}

	logs, total, err := h.logs.List(c.Request.Context(), providerID, filter)
	if err != nil {
		h.logger.Error("audit log listing failed", zap.Uint("provider_id", providerID), zap.Error(err))
		httperr.Internal(c, "audit_list_failed", "Unable to list audit logs.")
		return
	}

	httpresp.OK(c, auditLogPage{
		Page:  filter.Page,
		Limit: filter.Limit,
		Total: total,
		Logs:  logs,
	})
}
