// Package server runs the HTTP API and the gRPC health server.
//
// Both transports start together and stop together: a stop signal or the
// failure of either one triggers a graceful shutdown of all of them.
package server
