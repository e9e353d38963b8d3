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

// ClientHandler handles client-related HTTP requests
type ClientHandler struct {
	logger        *zap.Logger
	clientUsecase *usecase.ClientUsecase
}

// NewClientHandler creates a new client handler instance
func NewClientHandler(logger *zap.Logger, clientUsecase *usecase.ClientUsecase) *ClientHandler {
	return &ClientHandler{logger: logger, clientUsecase: clientUsecase}
}

// List handles GET /api/v1/clients
func (h *ClientHandler) List(c echo.Context) error {
	var filter dto.ClientFilter
	if err := c.Bind(&filter); err != nil {
		return respondError(c, h.logger, apperrors.Validation("invalid query parameters"))
	}

	result, err := h.clientUsecase.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Get handles GET /api/v1/clients/:id
func (h *ClientHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, h.logger, apperrors.Validation("invalid client id"))
	}

	client, err := h.clientUsecase.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, client)
}

// Create handles POST /api/v1/clients
func (h *ClientHandler) Create(c echo.Context) error {
	var in dto.ClientCreate
	if err := bindAndValidate(c, &in); err != nil {
		return respondError(c, h.logger, err)
	}

	client, err := h.clientUsecase.Create(c.Request().Context(), in)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, client)
}

// Update handles PATCH /api/v1/clients/:id
func (h *ClientHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, h.logger, apperrors.Validation("invalid client id"))
	}

	var in dto.ClientUpdate
	if err := bindAndValidate(c, &in); err != nil {
		return respondError(c, h.logger, err)
	}

	client, err := h.clientUsecase.Update(c.Request().Context(), id, in)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, client)
}

// Delete handles DELETE /api/v1/clients/:id
func (h *ClientHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, h.logger, apperrors.Validation("invalid client id"))
	}

	if err := h.clientUsecase.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// History handles GET /api/v1/clients/:id/history (staff only, enforced by
// route middleware)
func (h *ClientHandler) History(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, h.logger, apperrors.Validation("invalid client id"))
	}

	var query dto.HistoryQuery
	if err := c.Bind(&query); err != nil {
		return respondError(c, h.logger, apperrors.Validation("invalid query parameters"))
	}

	history, err := h.clientUsecase.History(c.Request().Context(), id, query)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, history)
}
