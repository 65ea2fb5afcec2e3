// Package stripetest builds signed Stripe webhook deliveries for tests.
package stripetest

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v79/webhook"
)

// Sign returns the Stripe-Signature header for payload, timestamped now.
func Sign(payload []byte, secret string) string {
	return SignAt(payload, secret, time.Now())
}

// SignAt returns the Stripe-Signature header for payload at the given time.
func SignAt(payload []byte, secret string, at time.Time) string {
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: at,
	})
	return signed.Header
}

// Event builds an event envelope around a data object.
func Event(id, eventType string, object map[string]interface{}) []byte {
	payload, err := json.Marshal(map[string]interface{}{
		"id":          id,
		"object":      "event",
		"api_version": "2024-06-20",
		"type":        eventType,
		"created":     time.Now().Unix(),
		"data": map[string]interface{}{
			"object": object,
		},
	})
	if err != nil {
		panic(fmt.Sprintf("stripetest: marshal event: %v", err))
	}
	return payload
}

// CheckoutCompleted is a checkout.session.completed event paid by email.
func CheckoutCompleted(id string, amountTotal int64, email string) []byte {
	return Event(id, "checkout.session.completed", map[string]interface{}{
		"id":               "cs_test_" + id,
		"object":           "checkout.session",
		"amount_total":     amountTotal,
		"customer_details": map[string]interface{}{"email": email},
	})
}

// PaymentIntentSucceeded is a payment_intent.succeeded event with a receipt email.
func PaymentIntentSucceeded(id string, amount int64, receiptEmail string) []byte {
	return Event(id, "payment_intent.succeeded", map[string]interface{}{
		"id":            "pi_test_" + id,
		"object":        "payment_intent",
		"amount":        amount,
		"receipt_email": receiptEmail,
	})
}
