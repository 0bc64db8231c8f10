// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/models"
)

const (
	subjectWelcome       = "Welcome to the Natours Family!"
	subjectPasswordReset = "Your password reset token (valid for only 10 minutes)"
)

// message is a rendered email ready for a transport.
type message struct {
	From    string
	To      string
	ToName  string
	Subject string
	HTML    string
}

// sender delivers a rendered message.
type sender interface {
	send(ctx context.Context, msg message) error
}

// mailer renders the embedded templates and delivers them through a sender.
type mailer struct {
	from      string
	templates templates
	transport sender
	logger    *logger.Logger
}

func newMailer(from string, transport sender, logger *logger.Logger) (*mailer, error) {
	t, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	return &mailer{
		from:      from,
		templates: t,
		transport: transport,
		logger:    logger,
	}, nil
}

func (m *mailer) SendWelcome(ctx context.Context, user models.User, url string) error {
	return m.send(ctx, user, templateWelcome, subjectWelcome, url)
}

func (m *mailer) SendPasswordReset(ctx context.Context, user models.User, url string) error {
	return m.send(ctx, user, templatePasswordReset, subjectPasswordReset, url)
}

func (m *mailer) send(ctx context.Context, user models.User, name, subject, url string) error {
	log := logger.FromContext(ctx)

	html, err := m.templates.render(name, templateData{
		Subject:   subject,
		FirstName: firstName(user.Name),
		URL:       url,
	})
	if err != nil {
		log.Err(err).Str("func", "*mailer.send").Str("template", name).Msg("error rendering email")
		return fmt.Errorf("%w: %w", ErrMailNotSent, err)
	}

	err = m.transport.send(ctx, message{
		From:    m.from,
		To:      user.Email,
		ToName:  user.Name,
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		log.Err(err).Str("func", "*mailer.send").Str("template", name).Msg("error sending email")
		return fmt.Errorf("%w: %w", ErrMailNotSent, err)
	}

	log.Debug().Str("template", name).Str("to", user.Email).Msg("email sent")
	return nil
}
