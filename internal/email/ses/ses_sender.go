package ses

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"vatledger/internal/email"
	"vatledger/internal/port"
)

// charset is declared on every part; currency symbols such as £ and € are not ASCII.
const charset = "UTF-8"

// sendAPI is the slice of the SESv2 client the sender uses.
type sendAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type sesSender struct {
	api  sendAPI
	from string
}

// NewSESSender creates an EmailSender that delivers order confirmations through SESv2.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("ses.NewSESSender: loading aws config: %w", err)
	}
	return newSender(sesv2.NewFromConfig(cfg), fromAddress, fromName), nil
}

func newSender(api sendAPI, fromAddress, fromName string) *sesSender {
	from := (&mail.Address{Name: fromName, Address: fromAddress}).String()
	return &sesSender{api: api, from: from}
}

func (s *sesSender) SendOrderConfirmation(ctx context.Context, msg *port.OrderConfirmation) error {
	if _, err := s.api.SendEmail(ctx, s.buildInput(msg)); err != nil {
		return fmt.Errorf("ses.SendOrderConfirmation to %s: %w", msg.ToEmail, err)
	}
	return nil
}

func (s *sesSender) buildInput(msg *port.OrderConfirmation) *sesv2.SendEmailInput {
	to := msg.ToEmail
	if msg.ToName != "" {
		to = (&mail.Address{Name: msg.ToName, Address: msg.ToEmail}).String()
	}
	return &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination:      &types.Destination{ToAddresses: []string{to}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: utf8Content(email.Subject(msg)),
				Body: &types.Body{
					Html: utf8Content(email.HTMLBody(msg)),
					Text: utf8Content(email.TextBody(msg)),
				},
			},
		},
	}
}

func utf8Content(data string) *types.Content {
	return &types.Content{Data: aws.String(data), Charset: aws.String(charset)}
}
