// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		Env           string   `json:"env"`
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		CookieExpires Duration `json:"cookie_expires"`
		Version       string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Redis struct {
			Address  string `json:"address"`
			Password string `json:"password"`
			DB       int    `json:"db"`
		} `json:"redis,omitempty"`

		Photos struct {
			Dir       string `json:"dir"`
			Endpoint  string `json:"endpoint"`
			AccessKey string `json:"access_key"`
			SecretKey string `json:"secret_key"`
			Bucket    string `json:"bucket"`
			UseSSL    bool   `json:"use_ssl"`
		} `json:"photos,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
		RateLimit      int      `json:"rate_limit"`
		RateWindow     Duration `json:"rate_window"`
		AllowedOrigins []string `json:"allowed_origins"`
	} `json:"server,omitempty"`

	Adapter struct {
		Mail struct {
			Provider        string `json:"provider"`
			From            string `json:"from"`
			SMTPHost        string `json:"smtp_host"`
			SMTPPort        int    `json:"smtp_port"`
			SMTPUsername    string `json:"smtp_username"`
			SMTPPassword    string `json:"smtp_password"`
			SendGridAPIKey  string `json:"sendgrid_api_key"`
			SendGridBaseURL string `json:"sendgrid_base_url"`
		} `json:"mail,omitempty"`

		Stripe struct {
			SecretKey string `json:"secret_key"`
			BaseURL   string `json:"base_url"`
			Currency  string `json:"currency"`
		} `json:"stripe,omitempty"`

		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		HealthInterval     Duration `json:"health_interval"`
		ResetTokenInterval Duration `json:"reset_token_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Env:           jsonCfg.App.Env,
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			CookieExpires: time.Duration(jsonCfg.App.CookieExpires),
			Version:       jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Redis: Redis{
				Address:  jsonCfg.Storage.Redis.Address,
				Password: jsonCfg.Storage.Redis.Password,
				DB:       jsonCfg.Storage.Redis.DB,
			},
			Photos: Photos{
				Dir:       jsonCfg.Storage.Photos.Dir,
				Endpoint:  jsonCfg.Storage.Photos.Endpoint,
				AccessKey: jsonCfg.Storage.Photos.AccessKey,
				SecretKey: jsonCfg.Storage.Photos.SecretKey,
				Bucket:    jsonCfg.Storage.Photos.Bucket,
				UseSSL:    jsonCfg.Storage.Photos.UseSSL,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			RateLimit:      jsonCfg.Server.RateLimit,
			RateWindow:     time.Duration(jsonCfg.Server.RateWindow),
			AllowedOrigins: jsonCfg.Server.AllowedOrigins,
		},
		Adapter: Adapter{
			Mail: Mail{
				Provider:        jsonCfg.Adapter.Mail.Provider,
				From:            jsonCfg.Adapter.Mail.From,
				SMTPHost:        jsonCfg.Adapter.Mail.SMTPHost,
				SMTPPort:        jsonCfg.Adapter.Mail.SMTPPort,
				SMTPUsername:    jsonCfg.Adapter.Mail.SMTPUsername,
				SMTPPassword:    jsonCfg.Adapter.Mail.SMTPPassword,
				SendGridAPIKey:  jsonCfg.Adapter.Mail.SendGridAPIKey,
				SendGridBaseURL: jsonCfg.Adapter.Mail.SendGridBaseURL,
			},
			Stripe: Stripe{
				SecretKey: jsonCfg.Adapter.Stripe.SecretKey,
				BaseURL:   jsonCfg.Adapter.Stripe.BaseURL,
				Currency:  jsonCfg.Adapter.Stripe.Currency,
			},
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Workers: Workers{
			HealthInterval:     time.Duration(jsonCfg.Workers.HealthInterval),
			ResetTokenInterval: time.Duration(jsonCfg.Workers.ResetTokenInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as raw nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
