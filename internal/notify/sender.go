package notify

import (
	"context"
	"errors"
	"fmt"

	"account-service/pkg/utils"

	"go.uber.org/zap"
)

// ErrDelivery wraps every failure to hand a message to the provider.
var ErrDelivery = errors.New("notification delivery failed")

type Purpose string

const (
	PurposeVerification Purpose = "verification"
	PurposeRecovery     Purpose = "recovery"
)

// Sender delivers a one-time code to an address the account holder controls.
type Sender interface {
	SendOTP(ctx context.Context, to, code, displayName string, purpose Purpose) error
}

// NewSender picks the driver named by config.Driver.
func NewSender(config utils.EmailConfig, otpTTLMinutes int, log *zap.Logger) (Sender, error) {
	renderer, err := NewRenderer(otpTTLMinutes)
	if err != nil {
		return nil, err
	}

	switch config.Driver {
	case "sendgrid":
		return NewSendGridSender(config, renderer, log), nil
	case "smtp":
		return NewSMTPSender(config, renderer, log), nil
	case "log", "":
		return NewLogSender(renderer, log), nil
	default:
		return nil, fmt.Errorf("unknown mail driver %q", config.Driver)
	}
}

func deliveryError(to string, err error) error {
	return fmt.Errorf("%w: send to %s: %v", ErrDelivery, to, err)
}
