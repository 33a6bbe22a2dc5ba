package email

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"conferencehub/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// ErrUnknownTemplate is returned for template names the platform does not send.
var ErrUnknownTemplate = errors.New("unknown email template")

// emailTemplate is one parsed message: subject line plus html and plain-text bodies.
type emailTemplate struct {
	subject *texttemplate.Template
	html    *htmltemplate.Template
	text    *texttemplate.Template
	// accepts reports whether data is the payload type this message expects.
	accepts func(data any) bool
}

type templateRenderer struct {
	templates map[domain.EmailTemplate]*emailTemplate
}

// NewTemplateRenderer parses the welcome and request-resolution messages from the embedded templates folder.
// It panics if an embedded template does not parse.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return &templateRenderer{templates: map[domain.EmailTemplate]*emailTemplate{
		domain.EmailTemplateWelcome: mustParse(domain.EmailTemplateWelcome, func(data any) bool {
			_, ok := data.(*domain.WelcomeMessageEmailData)
			return ok
		}),
		domain.EmailTemplateRequestResolved: mustParse(domain.EmailTemplateRequestResolved, func(data any) bool {
			_, ok := data.(*domain.RequestResolvedEmailData)
			return ok
		}),
	}}
}

func mustParse(name domain.EmailTemplate, accepts func(any) bool) *emailTemplate {
	base := "templates/" + string(name)
	return &emailTemplate{
		subject: texttemplate.Must(texttemplate.ParseFS(templateFS, base+"_subject.txt")),
		html:    htmltemplate.Must(htmltemplate.ParseFS(templateFS, base+".html")),
		text:    texttemplate.Must(texttemplate.ParseFS(templateFS, base+".txt")),
		accepts: accepts,
	}
}

func (r *templateRenderer) Render(name domain.EmailTemplate, data any) (subject, htmlBody, textBody string, err error) {
	t, ok := r.templates[name]
	if !ok {
		return "", "", "", fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	if !t.accepts(data) {
		return "", "", "", fmt.Errorf("%s template: unexpected data %T", name, data)
	}

	var buf bytes.Buffer
	if err := t.subject.Execute(&buf, data); err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	// Subjects are a single header line.
	subject = strings.Join(strings.Fields(buf.String()), " ")

	buf.Reset()
	if err := t.html.Execute(&buf, data); err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	htmlBody = buf.String()

	buf.Reset()
	if err := t.text.Execute(&buf, data); err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}
	return subject, htmlBody, buf.String(), nil
}
