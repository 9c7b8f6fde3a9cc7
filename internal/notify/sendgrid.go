package notify

import (
	"context"
	"fmt"

	"account-service/pkg/utils"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

type sendgridClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type SendGridSender struct {
	client   sendgridClient
	from     *mail.Email
	renderer *Renderer
	log      *zap.Logger
}

func NewSendGridSender(config utils.EmailConfig, renderer *Renderer, log *zap.Logger) *SendGridSender {
	return &SendGridSender{
		client:   sendgrid.NewSendClient(config.SendGridAPIKey),
		from:     mail.NewEmail(config.FromName, config.From),
		renderer: renderer,
		log:      log.With(zap.String("sender", "sendgrid")),
	}
}

func (s *SendGridSender) SendOTP(ctx context.Context, to, code, displayName string, purpose Purpose) error {
	msg, err := s.renderer.Render(purpose, code, displayName)
	if err != nil {
		return deliveryError(to, err)
	}

	email := mail.NewSingleEmail(s.from, msg.Subject, mail.NewEmail(displayName, to), msg.Text, msg.HTML)

	resp, err := s.client.SendWithContext(ctx, email)
	if err != nil {
		s.log.Error("SendGrid request failed", zap.Error(err), zap.String("to", to))
		return deliveryError(to, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.log.Error("SendGrid rejected message",
			zap.Int("status", resp.StatusCode),
			zap.String("body", resp.Body),
			zap.String("to", to))
		return deliveryError(to, fmt.Errorf("sendgrid status %d", resp.StatusCode))
	}

	s.log.Info("OTP email sent", zap.String("to", to), zap.String("purpose", string(purpose)))
	return nil
}
