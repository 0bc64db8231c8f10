// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// Mail providers accepted in Adapter.Mail.Provider.
const (
	MailProviderSMTP     = "smtp"
	MailProviderSendGrid = "sendgrid"
	MailProviderLog      = "log"
)

// validate checks the final merged [StructuredConfig] before it is used at
// startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenDuration <= 0 || cfg.App.CookieExpires <= 0 {
		return fmt.Errorf("%w: token sign key, token duration and cookie lifetime are required", ErrInvalidAppConfigs)
	}
	if cfg.App.Env != EnvDevelopment && cfg.App.Env != EnvProduction {
		return fmt.Errorf("%w: unknown environment %q", ErrInvalidAppConfigs, cfg.App.Env)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.Photos.Endpoint == "" && cfg.Storage.Photos.Dir == "" {
		return fmt.Errorf("%w: photo directory or endpoint is required", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: http address is required", ErrInvalidServerConfigs)
	}
	if cfg.Server.RateLimit <= 0 || cfg.Server.RateWindow <= 0 {
		return fmt.Errorf("%w: rate limit and rate window must be positive", ErrInvalidServerConfigs)
	}

	switch cfg.Adapter.Mail.Provider {
	case MailProviderLog:
	case MailProviderSMTP:
		if cfg.Adapter.Mail.SMTPHost == "" {
			return fmt.Errorf("%w: smtp host is required", ErrInvalidAdapterConfigs)
		}
	case MailProviderSendGrid:
		if cfg.Adapter.Mail.SendGridAPIKey == "" {
			return fmt.Errorf("%w: sendgrid api key is required", ErrInvalidAdapterConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown mail provider %q", ErrInvalidAdapterConfigs, cfg.Adapter.Mail.Provider)
	}

	if cfg.Workers.HealthInterval <= 0 || cfg.Workers.ResetTokenInterval <= 0 {
		return fmt.Errorf("%w: worker intervals must be positive", ErrInvalidWorkerConfigs)
	}

	return nil
}
