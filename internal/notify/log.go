package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogSender writes the rendered message to the logger instead of mailing it. Development only.
type LogSender struct {
	renderer *Renderer
	log      *zap.Logger
}

func NewLogSender(renderer *Renderer, log *zap.Logger) *LogSender {
	return &LogSender{
		renderer: renderer,
		log:      log.With(zap.String("sender", "log")),
	}
}

func (s *LogSender) SendOTP(ctx context.Context, to, code, displayName string, purpose Purpose) error {
	if err := ctx.Err(); err != nil {
		return deliveryError(to, err)
	}

	msg, err := s.renderer.Render(purpose, code, displayName)
	if err != nil {
		return deliveryError(to, err)
	}

	s.log.Debug("OTP email (not delivered)",
		zap.String("to", to),
		zap.String("purpose", string(purpose)),
		zap.String("subject", msg.Subject),
		zap.String("otp_code", code),
	)
	return nil
}
