package adapter

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/MKhiriev/go-tours/internal/utils"
)

type sendGridAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendGridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendGridPersonalization struct {
	To []sendGridAddress `json:"to"`
}

type sendGridRequest struct {
	Personalizations []sendGridPersonalization `json:"personalizations"`
	From             sendGridAddress           `json:"from"`
	Subject          string                    `json:"subject"`
	Content          []sendGridContent         `json:"content"`
}

// sendGridSender delivers emails through the SendGrid v3 REST API.
type sendGridSender struct {
	client *utils.HTTPClient
	apiKey string
}

func (s *sendGridSender) send(ctx context.Context, msg message) error {
	from, err := mail.ParseAddress(msg.From)
	if err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(s.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(sendGridRequest{
			Personalizations: []sendGridPersonalization{
				{To: []sendGridAddress{{Email: msg.To, Name: msg.ToName}}},
			},
			From:    sendGridAddress{Email: from.Address, Name: from.Name},
			Subject: msg.Subject,
			Content: []sendGridContent{{Type: "text/html", Value: msg.HTML}},
		}).
		Post("/v3/mail/send")
	if err != nil {
		return fmt.Errorf("sendgrid request: %w", err)
	}

	return mapHTTPError(resp)
}
