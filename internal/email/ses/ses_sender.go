package ses

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"strconv"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"pettag/internal/config"
	"pettag/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	frontendURL string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(ctx context.Context, cfg config.EmailConfig) (port.EmailSender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(awsCfg),
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		frontendURL: cfg.FrontendURL,
	}, nil
}

func (s *sesSender) SendRenewalReminder(ctx context.Context, toEmail, toName string, reminder port.RenewalReminder) error {
	msg := buildRenewalMessage(toName, reminder, RenewURL(s.frontendURL, reminder.SubscriptionID))
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &msg.subject},
				Body: &types.Body{
					Html: &types.Content{Data: &msg.html},
					Text: &types.Content{Data: &msg.text},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

// RenewURL is the page where an owner renews the given subscription.
func RenewURL(frontendURL string, subscriptionID int64) string {
	q := url.Values{"subscription": []string{strconv.FormatInt(subscriptionID, 10)}}
	return fmt.Sprintf("%s/subscriptions/renew?%s", frontendURL, q.Encode())
}

type message struct {
	subject string
	html    string
	text    string
}

func buildRenewalMessage(name string, r port.RenewalReminder, renewURL string) message {
	endDate := r.EndDate.UTC().Format("2 January 2006")
	amount := fmt.Sprintf("%s %.2f", r.Currency, r.Amount)

	return message{
		subject: fmt.Sprintf("Your PetTag %s plan ends on %s", r.PlanType, endDate),
		text: fmt.Sprintf("Hi %s,\n\nYour %s PetTag subscription ends on %s. "+
			"Renew for %s to keep your pet's tag active:\n%s\n\nPetTag Team",
			name, r.PlanType, endDate, amount, renewURL),
		html: fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Your subscription is ending soon</h2>
  <p>Hi %s,</p>
  <p>Your <strong>%s</strong> PetTag subscription ends on <strong>%s</strong>. Once it lapses, the tag page stops showing your contact details to whoever finds your pet.</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #16A34A; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Renew for %s</a>
  </p>
  <p>Or copy and paste this link into your browser:</p>
  <p style="word-break: break-all; color: #666;">%s</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">PetTag - Smart pet identification</p>
</body>
</html>`,
			html.EscapeString(name), html.EscapeString(r.PlanType), endDate,
			html.EscapeString(renewURL), amount, html.EscapeString(renewURL)),
	}
}
