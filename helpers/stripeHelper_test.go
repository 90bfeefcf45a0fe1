package helpers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const webhookSecret = "whsec_test"

// signPayload builds a Stripe-Signature header the way the processor does:
// t=<unix>,v1=<hex hmac-sha256 of "<unix>.<payload>">.
func signPayload(payload []byte, secret string, at time.Time) string {
	signed := fmt.Sprintf("%d.%s", at.Unix(), payload)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(signed))
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func completedSessionPayload(orderID string, amount int64) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_1",
		"object": "event",
		"api_version": "2023-10-16",
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_1",
				"object": "checkout.session",
				"amount_total": %d,
				"metadata": {"orderId": %q, "restaurantId": "rest_1"}
			}
		}
	}`, amount, orderID))
}

func TestVerifyStripeEvent(t *testing.T) {
	payload := completedSessionPayload("order_123", 2300)
	header := signPayload(payload, webhookSecret, time.Now())

	event, err := VerifyStripeEvent(payload, header, webhookSecret)
	require.NoError(t, err)
	assert.Equal(t, EventCheckoutCompleted, event.Type)
	assert.Equal(t, "order_123", event.OrderID)
	assert.Equal(t, int64(2300), event.AmountTotal)
}

func TestVerifyStripeEventBadSignature(t *testing.T) {
	payload := completedSessionPayload("order_123", 2300)
	header := signPayload(payload, "whsec_other", time.Now())

	_, err := VerifyStripeEvent(payload, header, webhookSecret)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyStripeEventTamperedPayload(t *testing.T) {
	payload := completedSessionPayload("order_123", 2300)
	header := signPayload(payload, webhookSecret, time.Now())
	tampered := completedSessionPayload("order_123", 1)

	_, err := VerifyStripeEvent(tampered, header, webhookSecret)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyStripeEventStaleTimestamp(t *testing.T) {
	payload := completedSessionPayload("order_123", 2300)
	header := signPayload(payload, webhookSecret, time.Now().Add(-time.Hour))

	_, err := VerifyStripeEvent(payload, header, webhookSecret)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyStripeEventOtherType(t *testing.T) {
	payload := []byte(`{
		"id": "evt_2",
		"object": "event",
		"api_version": "2023-10-16",
		"type": "payment_intent.created",
		"data": {"object": {"id": "pi_1", "object": "payment_intent"}}
	}`)
	header := signPayload(payload, webhookSecret, time.Now())

	event, err := VerifyStripeEvent(payload, header, webhookSecret)
	require.NoError(t, err)
	assert.Equal(t, "payment_intent.created", event.Type)
	assert.Empty(t, event.OrderID)
}
