// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Env:           EnvDevelopment,
			TokenIssuer:   "go-tours",
			TokenDuration: 90 * 24 * time.Hour,
			CookieExpires: 90 * 24 * time.Hour,
		},
		Storage: Storage{
			Photos: Photos{
				Dir:    "public/img/users",
				Bucket: "users",
			},
		},
		Server: Server{
			HTTPAddress:    "0.0.0.0:3000",
			RequestTimeout: 30 * time.Second,
			RateLimit:      100,
			RateWindow:     time.Hour,
			AllowedOrigins: []string{"*"},
		},
		Adapter: Adapter{
			Mail: Mail{
				Provider:        MailProviderLog,
				From:            "Natours <hello@go-tours.dev>",
				SMTPPort:        587,
				SendGridBaseURL: "https://api.sendgrid.com",
			},
			Stripe: Stripe{
				BaseURL:  "https://api.stripe.com",
				Currency: "usd",
			},
			RequestTimeout: 10 * time.Second,
		},
		Workers: Workers{
			HealthInterval:     30 * time.Second,
			ResetTokenInterval: 10 * time.Minute,
		},
	}
}
