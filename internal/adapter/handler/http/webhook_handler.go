package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/entity"
	domainErrors "github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/errors"
	"github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/provider"
	"github.com/v5hhrxpsqg-tech/Scribeer/internal/usecase"
	apperrors "github.com/v5hhrxpsqg-tech/Scribeer/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const stripeSignatureHeader = "Stripe-Signature"

// Audit outcomes
const (
	outcomeCredited  = "credited"
	outcomeIgnored   = "ignored"
	outcomeDuplicate = "duplicate"
	outcomeRejected  = "rejected"
	outcomeFailed    = "failed"
)

// WebhookResponse is the JSON body of every 200 reply
type WebhookResponse struct {
	Received     bool  `json:"received"`
	CreditsAdded int64 `json:"credits_added,omitempty"`
	Duplicate    bool  `json:"duplicate,omitempty"`
}

type WebhookHandler struct {
	verifier      provider.WebhookVerifier
	service       *usecase.WebhookService
	webhookSecret string
	maxBodyBytes  int64
	logger        *zap.Logger
}

func NewWebhookHandler(
	verifier provider.WebhookVerifier,
	service *usecase.WebhookService,
	webhookSecret string,
	maxBodyBytes int64,
	logger *zap.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		verifier:      verifier,
		service:       service,
		webhookSecret: webhookSecret,
		maxBodyBytes:  maxBodyBytes,
		logger:        logger,
	}
}

// HandleWebhook receives a provider notification. Every failure is answered
// with plain text by respondError; success is JSON.
func (h *WebhookHandler) HandleWebhook(c echo.Context) error {
	start := time.Now()

	event, result, err := h.process(c)

	fields := []zap.Field{
		zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		zap.String("provider", h.verifier.GetProviderName()),
		zap.Duration("duration", time.Since(start)),
	}
	if event != nil {
		fields = append(fields,
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)))
	}

	if err != nil {
		return h.respondError(c, err, fields)
	}

	response := WebhookResponse{Received: true}
	outcome := outcomeIgnored
	switch {
	case result.Duplicate:
		outcome = outcomeDuplicate
		response.Duplicate = true
	case result.Applied != nil:
		outcome = outcomeCredited
		response.CreditsAdded = result.Applied.Credits
		fields = append(fields,
			zap.String("email", result.Applied.Email),
			zap.Int64("credits", result.Applied.Credits),
			zap.String("new_balance", result.Applied.NewBalance.String()),
			zap.Bool("account_created", result.Applied.Created))
	}

	h.logger.Info("Webhook processed", append(fields, zap.String("outcome", outcome))...)
	return c.JSON(http.StatusOK, response)
}

// process runs verification and the credit flow. A panic anywhere below is
// reported as an unclassified error.
func (h *WebhookHandler) process(c echo.Context) (event *entity.PaymentEvent, result *usecase.WebhookResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("Recovered panic in webhook flow", zap.Any("panic", r), zap.Stack("stack"))
			err = domainErrors.NewUnclassifiedError(fmt.Errorf("%v", r))
		}
	}()

	signature := c.Request().Header.Get(stripeSignatureHeader)
	if signature == "" || h.webhookSecret == "" {
		return nil, nil, domainErrors.NewMissingCredentialsError()
	}

	payload, err := h.readBody(c)
	if err != nil {
		return nil, nil, domainErrors.NewUnclassifiedError(err)
	}

	event, err = h.verifier.ParseWebhook(c.Request().Context(), payload, signature, h.webhookSecret)
	if err != nil {
		return nil, nil, err
	}

	result, err = h.service.HandleEvent(c.Request().Context(), event)
	return event, result, err
}

// readBody returns the raw body bytes exactly as received
func (h *WebhookHandler) readBody(c echo.Context) ([]byte, error) {
	body := c.Request().Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(c.Response(), body, h.maxBodyBytes)
	}

	payload, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, fmt.Errorf("error reading request body: %w", err)
	}
	return payload, nil
}

// respondError is the single place error kinds become status codes and bodies
func (h *WebhookHandler) respondError(c echo.Context, err error, fields []zap.Field) error {
	var webhookErr *domainErrors.WebhookError
	if !errors.As(err, &webhookErr) {
		webhookErr = domainErrors.NewUnclassifiedError(err)
	}

	fields = append(fields,
		zap.String("error_type", webhookErr.Type),
		zap.Int("status", webhookErr.HTTPStatus()))
	if webhookErr.Email != "" {
		fields = append(fields, zap.String("email", webhookErr.Email))
	}

	level, outcome := zapcore.WarnLevel, outcomeRejected
	if webhookErr.Type == domainErrors.ErrTypePersistence {
		level, outcome = zapcore.ErrorLevel, outcomeFailed
	}
	apperrors.LogErrorAt(h.logger, level, webhookErr, "Webhook processed", append(fields, zap.String("outcome", outcome))...)

	return c.String(webhookErr.HTTPStatus(), webhookErr.Message)
}

