package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Nicksok2413/Kronon/internal/domain/apperrors"
	"github.com/Nicksok2413/Kronon/internal/domain/dto"
	"github.com/Nicksok2413/Kronon/internal/middleware/auth"
	"github.com/Nicksok2413/Kronon/internal/usecase"
)

// UserHandler handles employee-related HTTP requests
type UserHandler struct {
	logger      *zap.Logger
	userUsecase *usecase.UserUsecase
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(logger *zap.Logger, userUsecase *usecase.UserUsecase) *UserHandler {
	return &UserHandler{logger: logger, userUsecase: userUsecase}
}

// List handles GET /api/v1/users
func (h *UserHandler) List(c echo.Context) error {
	var filter dto.UserFilter
	if err := c.Bind(&filter); err != nil {
		return respondError(c, h.logger, apperrors.Validation("invalid query parameters"))
	}

	result, err := h.userUsecase.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Get handles GET /api/v1/users/:id
func (h *UserHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, h.logger, apperrors.Validation("invalid user id"))
	}

	user, err := h.userUsecase.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, user)
}

// Me handles GET /api/v1/users/me
func (h *UserHandler) Me(c echo.Context) error {
	authUser, err := auth.GetUserFromContext(c)
	if err != nil {
		return respondError(c, h.logger, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
	}

	user, err := h.userUsecase.Get(c.Request().Context(), authUser.ID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, user)
}

// Create handles POST /api/v1/users (staff only)
func (h *UserHandler) Create(c echo.Context) error {
	var in dto.UserCreate
	if err := bindAndValidate(c, &in); err != nil {
		return respondError(c, h.logger, err)
	}

	user, err := h.userUsecase.Create(c.Request().Context(), in)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, user)
}

// Update handles PATCH /api/v1/users/:id (staff only)
func (h *UserHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, h.logger, apperrors.Validation("invalid user id"))
	}

	var in dto.UserUpdate
	if err := bindAndValidate(c, &in); err != nil {
		return respondError(c, h.logger, err)
	}

	user, err := h.userUsecase.Update(c.Request().Context(), id, in)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /api/v1/users/:id (staff only)
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, h.logger, apperrors.Validation("invalid user id"))
	}

	if err := h.userUsecase.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}
