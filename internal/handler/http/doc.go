// Package http serves the tours REST API under /api/v1 and the server
// rendered pages.
//
// Every request passes the same pipeline: trace id, access log, panic
// recovery, security headers and compression. API routes additionally get
// CORS and per-IP rate limiting. Handlers return errors instead of writing
// them; [Handler.handle] turns them into the JSON error envelope for API
// routes and into the error page for everything else.
//
// The CRUD endpoints of tours, users, reviews and bookings are built from
// the generic handlers in resource.go over [service.ResourceService].
package http
