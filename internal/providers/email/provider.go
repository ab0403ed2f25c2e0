package email

import "context"

const (
	TemplatePasswordReset         = "password_reset"
	TemplateSubscriptionValidated = "subscription_validated"
)

type Provider interface {
	Send(ctx context.Context, to []string, subject string, htmlBody string) error
	SendTemplate(ctx context.Context, to []string, templateName string, data map[string]any) error
}

// NoOpProvider is used when SMTP is not configured.
type NoOpProvider struct{}

func (p *NoOpProvider) Send(ctx context.Context, to []string, subject string, htmlBody string) error {
	return nil
}

func (p *NoOpProvider) SendTemplate(ctx context.Context, to []string, templateName string, data map[string]any) error {
	return nil
}
