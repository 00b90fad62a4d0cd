package services

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// PaymentService starts and confirms payments. Talking to the payment
// provider itself is left to the caller.
type PaymentService interface {
	CreateIntent(ctx context.Context, orderID int64) (*models.PaymentIntent, error)
	Confirm(ctx context.Context, orderID int64, intentID string) (*models.Payment, error)
}

type paymentService struct {
	api Doer
}

func NewPaymentService(api Doer) PaymentService {
	return &paymentService{api: api}
}

func (s *paymentService) CreateIntent(ctx context.Context, orderID int64) (*models.PaymentIntent, error) {
	var resp models.Envelope[models.PaymentIntent]
	body := map[string]int64{"order_id": orderID}
	if err := post(ctx, s.api, "/payments/intent", body, &resp); err != nil {
		return nil, wrap("create payment intent", err)
	}
	return &resp.Data, nil
}

func (s *paymentService) Confirm(ctx context.Context, orderID int64, intentID string) (*models.Payment, error) {
	var resp models.Envelope[models.Payment]
	body := map[string]any{"order_id": orderID, "payment_intent_id": intentID}
	if err := post(ctx, s.api, "/payments/confirm", body, &resp); err != nil {
		return nil, wrap("confirm payment", err)
	}
	return &resp.Data, nil
}
