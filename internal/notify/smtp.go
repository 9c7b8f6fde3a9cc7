package notify

import (
	"context"

	"account-service/pkg/utils"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPSender struct {
	dialer   dialer
	from     string
	fromName string
	renderer *Renderer
	log      *zap.Logger
}

func NewSMTPSender(config utils.EmailConfig, renderer *Renderer, log *zap.Logger) *SMTPSender {
	return &SMTPSender{
		dialer:   gomail.NewDialer(config.Host, config.Port, config.User, config.Password),
		from:     config.From,
		fromName: config.FromName,
		renderer: renderer,
		log:      log.With(zap.String("sender", "smtp")),
	}
}

// SendOTP gives up when ctx ends; the dial itself keeps running in the background until it returns.
func (s *SMTPSender) SendOTP(ctx context.Context, to, code, displayName string, purpose Purpose) error {
	msg, err := s.renderer.Render(purpose, code, displayName)
	if err != nil {
		return deliveryError(to, err)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	m.SetAddressHeader("To", to, displayName)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	m.AddAlternative("text/html", msg.HTML)

	done := make(chan error, 1)
	go func() { done <- s.dialer.DialAndSend(m) }()

	select {
	case err := <-done:
		if err != nil {
			s.log.Error("SMTP send failed", zap.Error(err), zap.String("to", to))
			return deliveryError(to, err)
		}
	case <-ctx.Done():
		s.log.Error("SMTP send timed out", zap.Error(ctx.Err()), zap.String("to", to))
		return deliveryError(to, ctx.Err())
	}

	s.log.Info("OTP email sent", zap.String("to", to), zap.String("purpose", string(purpose)))
	return nil
}
