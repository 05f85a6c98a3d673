package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"vatledger/internal/domain"
	"vatledger/internal/port"
	"vatledger/internal/vat"
)

// ConfirmationService emails customers a receipt of their order including its VAT.
type ConfirmationService interface {
	SendOrderConfirmation(ctx context.Context, tenantID, orderID uuid.UUID) error
}

type confirmationService struct {
	orders    port.OrderRepository
	settings  TenantSettingsService
	greetings GreetingService
	sender    port.EmailSender
}

// NewConfirmationService creates a new ConfirmationService implementation.
func NewConfirmationService(
	orders port.OrderRepository,
	settings TenantSettingsService,
	greetings GreetingService,
	sender port.EmailSender,
) ConfirmationService {
	return &confirmationService{
		orders:    orders,
		settings:  settings,
		greetings: greetings,
		sender:    sender,
	}
}

func (s *confirmationService) SendOrderConfirmation(ctx context.Context, tenantID, orderID uuid.UUID) error {
	order, err := s.orders.GetByID(ctx, tenantID, orderID)
	if err != nil {
		return err
	}
	email := strings.TrimSpace(order.CustomerEmail)
	if email == "" {
		return domain.ErrNoCustomerMail
	}

	ov, err := vat.ResolveOrder(order)
	if err != nil {
		return fmt.Errorf("confirmationService.SendOrderConfirmation: %w", err)
	}

	settings, err := s.settings.Get(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("confirmationService.SendOrderConfirmation settings: %w", err)
	}
	money := func(v decimal.Decimal) string {
		return vat.FormatMoney(settings.CurrencySymbol, v)
	}

	msg := &port.OrderConfirmation{
		ToEmail:   email,
		ToName:    order.CustomerName,
		Greeting:  s.greetings.NextGreeting(ctx, tenantID).Text(),
		Reference: order.Reference,
		Lines:     make([]port.ConfirmationLine, 0, len(order.Lines)),
		Net:       money(ov.Net),
		VAT:       money(ov.VAT),
		Gross:     money(ov.Gross),
		VATAmount: ov.VAT,
	}
	if msg.Reference == "" {
		msg.Reference = order.ID.String()
	}
	for i := range order.Lines {
		l := &order.Lines[i]
		name := l.ItemName
		if name == "" {
			name = vat.UnknownItemName
		}
		msg.Lines = append(msg.Lines, port.ConfirmationLine{
			Name:     name,
			Quantity: l.Quantity,
			Amount:   money(l.GrossAmount),
		})
	}

	if err := s.sender.SendOrderConfirmation(ctx, msg); err != nil {
		return fmt.Errorf("confirmationService.SendOrderConfirmation send: %w", err)
	}
	return nil
}
