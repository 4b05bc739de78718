package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"

	"storefront-admin/internal/config"
	"storefront-admin/internal/pkg/i18n"
)

//go:embed templates/*.html
var templateFS embed.FS

type Service interface {
	SendNewOrderEmail(ctx context.Context, order NewOrder) error
}

type NewOrder struct {
	OrderNumber   string
	CustomerName  string
	CustomerEmail string
	Total         string
	Status        string
	Link          string
}

type sender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type service struct {
	sender    sender
	config    *config.Config
	templates *template.Template
	logger    *zap.Logger
}

func NewService(cfg *config.Config, logger *zap.Logger) (Service, error) {
	client := resend.NewClient(cfg.ResendAPIKey)
	return newService(client.Emails, cfg, logger)
}

func newService(s sender, cfg *config.Config, logger *zap.Logger) (*service, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{sender: s, config: cfg, templates: tmpl, logger: logger}, nil
}

func (s *service) sendEmail(ctx context.Context, to []string, subject, templateName string, data interface{}) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Store Admin <%s>", s.config.FromEmail),
		To:      to,
		Html:    body.String(),
		Subject: subject,
	}

	resp, err := s.sender.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	s.logger.Debug("email sent", zap.String("id", resp.Id), zap.String("template", templateName))
	return nil
}

func (s *service) SendNewOrderEmail(ctx context.Context, order NewOrder) error {
	if len(s.config.AdminEmails) == 0 {
		return nil
	}

	data := struct {
		Title string
		NewOrder
	}{
		Title:    i18n.TranslateOr(s.config.Locale, "ORDER_TITLE", "New Order Received"),
		NewOrder: order,
	}
	subject := fmt.Sprintf(i18n.TranslateOr(s.config.Locale, "ORDER_EMAIL_SUBJECT", "New order #%s"), order.OrderNumber)

	return s.sendEmail(ctx, s.config.AdminEmails, subject, "new_order.html", data)
}
