package http

import (
	"context"

	"github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/entity"
)

type panickingVerifier struct{}

func (panickingVerifier) ParseWebhook(context.Context, []byte, string, string) (*entity.PaymentEvent, error) {
	panic("verifier exploded")
}

func (panickingVerifier) GetProviderName() string { return "panicking" }
