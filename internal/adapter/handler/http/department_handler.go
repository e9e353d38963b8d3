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

// DepartmentHandler handles department-related HTTP requests
type DepartmentHandler struct {
	logger            *zap.Logger
	departmentUsecase *usecase.DepartmentUsecase
}

// NewDepartmentHandler creates a new department handler instance
func NewDepartmentHandler(logger *zap.Logger, departmentUsecase *usecase.DepartmentUsecase) *DepartmentHandler {
	return &DepartmentHandler{logger: logger, departmentUsecase: departmentUsecase}
}

// List handles GET /api/v1/departments
func (h *DepartmentHandler) List(c echo.Context) error {
	var filter dto.DepartmentFilter
	if err := c.Bind(&filter); err != nil {
		return respondError(c, h.logger, apperrors.Validation("invalid query parameters"))
	}

	result, err := h.departmentUsecase.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Get handles GET /api/v1/departments/:id
func (h *DepartmentHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, h.logger, apperrors.Validation("invalid department id"))
	}

	department, err := h.departmentUsecase.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, department)
}

// Create handles POST /api/v1/departments (staff only)
func (h *DepartmentHandler) Create(c echo.Context) error {
	var in dto.DepartmentCreate
	if err := bindAndValidate(c, &in); err != nil {
		return respondError(c, h.logger, err)
	}

	department, err := h.departmentUsecase.Create(c.Request().Context(), in)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, department)
}

// Update handles PATCH /api/v1/departments/:id (staff only)
func (h *DepartmentHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, h.logger, apperrors.Validation("invalid department id"))
	}

	var in dto.DepartmentUpdate
	if err := bindAndValidate(c, &in); err != nil {
		return respondError(c, h.logger, err)
	}

	department, err := h.departmentUsecase.Update(c.Request().Context(), id, in)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, department)
}

// Delete handles DELETE /api/v1/departments/:id (staff only)
func (h *DepartmentHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, h.logger, apperrors.Validation("invalid department id"))
	}

	if err := h.departmentUsecase.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}
