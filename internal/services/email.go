package services

import (
	"context"
	"fmt"
	"log/slog"

	"conferencehub/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendWelcomeMessage sends the welcome email to a newly registered account.
func (s *emailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	if data == nil {
		return fmt.Errorf("welcome message data is nil")
	}
	if err := s.send(ctx, domain.EmailTemplateWelcome, data.Email, data); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "welcome email sent", "to", data.Email)
	return nil
}

// SendRequestResolved tells the requester how their conference request was decided.
func (s *emailService) SendRequestResolved(ctx context.Context, data *domain.RequestResolvedEmailData) error {
	if data == nil {
		return fmt.Errorf("request resolved data is nil")
	}
	if err := s.send(ctx, domain.EmailTemplateRequestResolved, data.Email, data); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "request resolution email sent", "to", data.Email, "approved", data.Approved)
	return nil
}

func (s *emailService) send(ctx context.Context, template domain.EmailTemplate, to string, data any) error {
	subject, htmlBody, textBody, err := s.renderer.Render(template, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", template, err)
	}
	if err := s.mailer.Send(ctx, to, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send %s email: %w", template, err)
	}
	return nil
}
