// Package email renders order confirmation messages; the ses and noop subpackages deliver them.
package email

import (
	"fmt"
	"html"
	"strings"

	"vatledger/internal/port"
)

// Subject returns the confirmation subject line.
func Subject(msg *port.OrderConfirmation) string {
	return fmt.Sprintf("Order %s confirmed", msg.Reference)
}

// TextBody renders the plain-text part.
func TextBody(msg *port.OrderConfirmation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s,\n\n", msg.Greeting, displayName(msg))
	fmt.Fprintf(&b, "Thanks for your order %s.\n\n", msg.Reference)
	for _, l := range msg.Lines {
		fmt.Fprintf(&b, "%d x %s  %s\n", l.Quantity, l.Name, l.Amount)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Subtotal (excl. VAT): %s\n", msg.Net)
	if !msg.VATAmount.IsZero() {
		fmt.Fprintf(&b, "VAT: %s\n", msg.VAT)
	}
	fmt.Fprintf(&b, "Total: %s\n", msg.Gross)
	return b.String()
}

// HTMLBody renders the HTML part. Every customer-supplied value is escaped.
func HTMLBody(msg *port.OrderConfirmation) string {
	var rows strings.Builder
	for _, l := range msg.Lines {
		fmt.Fprintf(&rows, `    <tr><td>%d &times; %s</td><td style="text-align: right;">%s</td></tr>`+"\n",
			l.Quantity, html.EscapeString(l.Name), html.EscapeString(l.Amount))
	}
	vatRow := ""
	if !msg.VATAmount.IsZero() {
		vatRow = fmt.Sprintf(`    <tr><td>VAT</td><td style="text-align: right;">%s</td></tr>`+"\n",
			html.EscapeString(msg.VAT))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">%s %s,</h2>
  <p>Thanks for your order <strong>%s</strong>.</p>
  <table style="width: 100%%; border-collapse: collapse;">
%s    <tr><td>Subtotal (excl. VAT)</td><td style="text-align: right;">%s</td></tr>
%s    <tr><td><strong>Total</strong></td><td style="text-align: right;"><strong>%s</strong></td></tr>
  </table>
</body>
</html>`,
		html.EscapeString(msg.Greeting), html.EscapeString(displayName(msg)),
		html.EscapeString(msg.Reference),
		rows.String(), html.EscapeString(msg.Net),
		vatRow, html.EscapeString(msg.Gross))
}

func displayName(msg *port.OrderConfirmation) string {
	if strings.TrimSpace(msg.ToName) == "" {
		return "there"
	}
	return msg.ToName
}
