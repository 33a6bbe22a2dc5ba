package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplate names a message the platform sends.
type EmailTemplate string

const (
	EmailTemplateWelcome         EmailTemplate = "welcome"
	EmailTemplateRequestResolved EmailTemplate = "request_resolved"
)

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(name EmailTemplate, data any) (subject, htmlBody, textBody string, err error)
}

// WelcomeMessageEmailData holds data for the welcome email.
type WelcomeMessageEmailData struct {
	Email     string
	FirstName string
	Username  string
}

// RequestResolvedEmailData holds data for the request resolution email.
type RequestResolvedEmailData struct {
	Email           string
	Name            string
	ConferenceTitle string
	RequestType     string
	StatusLabel     string
	Approved        bool
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendWelcomeMessage(ctx context.Context, data *WelcomeMessageEmailData) error
	SendRequestResolved(ctx context.Context, data *RequestResolvedEmailData) error
}
