package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Nicksok2413/Kronon/internal/domain/dto"
	"github.com/Nicksok2413/Kronon/internal/middleware/auth"
	"github.com/Nicksok2413/Kronon/internal/usecase"
)

// AuthHandler issues access tokens against employee credentials.
type AuthHandler struct {
	logger      *zap.Logger
	userUsecase *usecase.UserUsecase
	jwtSecret   string
	tokenTTL    time.Duration
}

// NewAuthHandler creates a new auth handler instance
func NewAuthHandler(logger *zap.Logger, userUsecase *usecase.UserUsecase, jwtSecret string, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		logger:      logger,
		userUsecase: userUsecase,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var in dto.LoginRequest
	if err := bindAndValidate(c, &in); err != nil {
		return respondError(c, h.logger, err)
	}

	user, err := h.userUsecase.Authenticate(c.Request().Context(), in.Email, in.Password)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	token, err := auth.IssueToken(h.jwtSecret, h.tokenTTL, user)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	h.logger.Info("User logged in", zap.String("user_id", user.ID.String()))

	return c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(h.tokenTTL.Seconds()),
		User:        dto.NewUserOut(user),
	})
}
