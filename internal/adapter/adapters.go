package adapter

import (
	"fmt"

	"github.com/MKhiriev/go-tours/internal/config"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/utils"
)

// Adapters bundles the outbound integrations used by the service layer.
type Adapters struct {
	Mailer   Mailer
	Payments PaymentGateway
}

// NewAdapters builds the mailer for cfg.Mail.Provider and the Stripe
// payment gateway.
func NewAdapters(cfg config.Adapter, logger *logger.Logger) (*Adapters, error) {
	logger.Debug().Msg("creating adapters")

	transport, err := newSender(cfg, logger)
	if err != nil {
		return nil, err
	}
	m, err := newMailer(cfg.Mail.From, transport, logger)
	if err != nil {
		return nil, err
	}

	payments, err := NewStripeGateway(cfg.Stripe, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Adapters{Mailer: m, Payments: payments}, nil
}

func newSender(cfg config.Adapter, logger *logger.Logger) (sender, error) {
	switch cfg.Mail.Provider {
	case config.MailProviderSMTP:
		return newSMTPSender(cfg.Mail), nil
	case config.MailProviderSendGrid:
		baseURL, err := normalizeBaseURL(cfg.Mail.SendGridBaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid sendgrid base url: %w", err)
		}
		client := utils.NewHTTPClient(baseURL, cfg.RequestTimeout)

		return &sendGridSender{client: client, apiKey: cfg.Mail.SendGridAPIKey}, nil
	case config.MailProviderLog, "":
		return &logSender{logger: logger}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMailProvider, cfg.Mail.Provider)
	}
}
