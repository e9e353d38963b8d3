package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Nicksok2413/Kronon/internal/domain/apperrors"
	"github.com/Nicksok2413/Kronon/internal/domain/dto"
	"github.com/Nicksok2413/Kronon/internal/usecase"
)

// AdminHandler exposes the staff-only recovery and audit surface: listing
// soft-deleted clients, restore, purge and the cross-entity change log.
type AdminHandler struct {
	logger        *zap.Logger
	clientUsecase *usecase.ClientUsecase
	auditUsecase  *usecase.AuditUsecase
}

// NewAdminHandler creates a new admin handler instance
func NewAdminHandler(logger *zap.Logger, clientUsecase *usecase.ClientUsecase, auditUsecase *usecase.AuditUsecase) *AdminHandler {
	return &AdminHandler{
		logger:        logger,
		clientUsecase: clientUsecase,
		auditUsecase:  auditUsecase,
	}
}

// ListClients handles GET /api/v1/admin/clients. The deleted query
// parameter selects visibility: live (default), only, all.
func (h *AdminHandler) ListClients(c echo.Context) error {
	var filter dto.ClientFilter
	if err := c.Bind(&filter); err != nil {
		return respondError(c, h.logger, apperrors.Validation("invalid query parameters"))
	}
	switch filter.Deleted {
	case "", "live", "only", "all":
	default:
		return respondError(c, h.logger, apperrors.Validation("deleted must be one of: live, only, all"))
	}

	result, err := h.clientUsecase.ListAdmin(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, result)
}

// RestoreClient handles POST /api/v1/admin/clients/:id/restore
func (h *AdminHandler) RestoreClient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, h.logger, apperrors.Validation("invalid client id"))
	}

	client, err := h.clientUsecase.Restore(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, client)
}

// PurgeClient handles DELETE /api/v1/admin/clients/:id
func (h *AdminHandler) PurgeClient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, h.logger, apperrors.Validation("invalid client id"))
	}

	if err := h.clientUsecase.Purge(c.Request().Context(), id); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListAuditEvents handles GET /api/v1/admin/audit
func (h *AdminHandler) ListAuditEvents(c echo.Context) error {
	var filter dto.AuditFilter
	if err := c.Bind(&filter); err != nil {
		return respondError(c, h.logger, apperrors.Validation("invalid query parameters"))
	}

	result, err := h.auditUsecase.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, result)
}
