package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	domainErrors "github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/errors"
	"github.com/v5hhrxpsqg-tech/Scribeer/internal/middleware/auth"
	"github.com/v5hhrxpsqg-tech/Scribeer/internal/usecase"
	apperrors "github.com/v5hhrxpsqg-tech/Scribeer/pkg/errors"
	"go.uber.org/zap"
)

// CreditBalanceResponse is the signed-in user's remaining minutes
type CreditBalanceResponse struct {
	Email            string     `json:"email"`
	CreditsRemaining string     `json:"credits_remaining"`
	LastUsed         *time.Time `json:"last_used,omitempty"`
}

type CreditHandler struct {
	service *usecase.CreditQueryService
	logger  *zap.Logger
}

func NewCreditHandler(service *usecase.CreditQueryService, logger *zap.Logger) *CreditHandler {
	return &CreditHandler{
		service: service,
		logger:  logger,
	}
}

// GetCredits handles GET /api/v1/credits
func (h *CreditHandler) GetCredits(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	account, err := h.service.GetBalance(c.Request().Context(), user.Email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAccountNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "No credits found for this account")
		}
		apperrors.LogError(h.logger, err, "Failed to get credit balance",
			zap.String("email", user.Email))
		return apperrors.ToHTTPError(apperrors.Wrap(err, "Failed to get credit balance"))
	}

	return c.JSON(http.StatusOK, CreditBalanceResponse{
		Email:            account.Email,
		CreditsRemaining: account.CreditsRemaining.String(),
		LastUsed:         account.LastUsed,
	})
}
