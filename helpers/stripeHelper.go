package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// LineItem is a priced, named unit shown on the hosted checkout page.
// Amounts are integer minor units.
type LineItem struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

type CheckoutSessionParams struct {
	LineItems     []LineItem
	DeliveryPrice int64
	OrderID       string
	RestaurantID  string
}

// PaymentEvent is the verified, decoded form of a processor webhook.
type PaymentEvent struct {
	Type        string
	OrderID     string
	AmountTotal int64
}

const EventCheckoutCompleted = "checkout.session.completed"

var ErrInvalidSignature = errors.New("webhook signature verification failed")

type StripeClient struct {
	api           *client.API
	frontendURL   string
	webhookSecret string
}

func NewStripeClient(apiKey string, webhookSecret string, frontendURL string) *StripeClient {
	api := &client.API{}
	api.Init(apiKey, nil)
	return &StripeClient{
		api:           api,
		frontendURL:   frontendURL,
		webhookSecret: webhookSecret,
	}
}

// CreateCheckoutSession requests a hosted payment page from Stripe and
// returns its redirect URL. The order and restaurant ids travel in the
// session metadata so the webhook can find the order back.
func (c *StripeClient) CreateCheckoutSession(ctx context.Context, p CheckoutSessionParams) (string, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(p.LineItems))
	for _, item := range p.LineItems {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount: stripe.Int64(item.UnitAmount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:      stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: lineItems,
		ShippingOptions: []*stripe.CheckoutSessionShippingOptionParams{
			{
				ShippingRateData: &stripe.CheckoutSessionShippingOptionShippingRateDataParams{
					DisplayName: stripe.String("Delivery"),
					Type:        stripe.String("fixed_amount"),
					FixedAmount: &stripe.CheckoutSessionShippingOptionShippingRateDataFixedAmountParams{
						Amount:   stripe.Int64(p.DeliveryPrice),
						Currency: stripe.String(string(stripe.CurrencyUSD)),
					},
				},
			},
		},
		SuccessURL: stripe.String(fmt.Sprintf("%s/order-status?success=true", c.frontendURL)),
		CancelURL:  stripe.String(fmt.Sprintf("%s/detail/%s?cancelled=true", c.frontendURL, p.RestaurantID)),
	}
	params.Context = ctx
	params.AddMetadata("orderId", p.OrderID)
	params.AddMetadata("restaurantId", p.RestaurantID)

	session, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return "", err
	}
	return session.URL, nil
}

// VerifyEvent checks the payload against the shared webhook secret and the
// signature header, then decodes the fields the reconciler needs.
func (c *StripeClient) VerifyEvent(payload []byte, sigHeader string) (*PaymentEvent, error) {
	return VerifyStripeEvent(payload, sigHeader, c.webhookSecret)
}

func VerifyStripeEvent(payload []byte, sigHeader string, secret string) (*PaymentEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, sigHeader, secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, ErrInvalidSignature
	}

	paymentEvent := &PaymentEvent{Type: string(event.Type)}
	if paymentEvent.Type == EventCheckoutCompleted {
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return nil, fmt.Errorf("decoding checkout session: %w", err)
		}
		paymentEvent.OrderID = session.Metadata["orderId"]
		paymentEvent.AmountTotal = session.AmountTotal
	}
	return paymentEvent, nil
}
