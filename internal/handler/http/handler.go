package http

import (
	"html/template"
	"time"

	"github.com/MKhiriev/go-tours/internal/config"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/service"
	"github.com/MKhiriev/go-tours/internal/store"
)

const (
	// maxBodySize bounds JSON request bodies.
	maxBodySize = 10 << 10
	// maxUploadSize bounds multipart bodies carrying a photo.
	maxUploadSize = 5 << 20

	jwtCookie     = "jwt"
	loggedOut     = "loggedout"
	logoutExpires = 10 * time.Second
)

// Handler serves the REST API and the rendered pages.
type Handler struct {
	services *service.Services
	limiter  store.RateLimiter
	views    map[string]*template.Template

	app    config.App
	server config.Server

	logger *logger.Logger
}

// NewHandler parses the page templates and returns a Handler. limiter
// throttles /api routes; a nil limiter disables throttling.
func NewHandler(services *service.Services, limiter store.RateLimiter, cfg *config.StructuredConfig, logger *logger.Logger) (*Handler, error) {
	views, err := parseViews()
	if err != nil {
		return nil, err
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		limiter:  limiter,
		views:    views,
		app:      cfg.App,
		server:   cfg.Server,
		logger:   logger,
	}, nil
}
