package port

import (
	"context"

	"github.com/shopspring/decimal"
)

// ConfirmationLine is one order line as shown on a confirmation email.
type ConfirmationLine struct {
	Name     string
	Quantity int
	Amount   string
}

// OrderConfirmation is everything an order confirmation email renders.
// Money fields are already formatted with the tenant's currency symbol.
type OrderConfirmation struct {
	ToEmail   string
	ToName    string
	Greeting  string
	Reference string
	Lines     []ConfirmationLine
	Net       string
	VAT       string
	Gross     string
	// VATAmount is kept unformatted so senders can omit the VAT line on zero-rated orders.
	VATAmount decimal.Decimal
}

// EmailSender defines the contract for sending transactional emails.
type EmailSender interface {
	SendOrderConfirmation(ctx context.Context, msg *OrderConfirmation) error
}
