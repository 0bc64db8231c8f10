package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// providerError covers the error bodies of Stripe ({"error":{"message"}})
// and SendGrid ({"errors":[{"message"}]}).
type providerError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func providerMessage(resp *resty.Response) string {
	var body providerError
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		if body.Error.Message != "" {
			return body.Error.Message
		}
		if len(body.Errors) > 0 && body.Errors[0].Message != "" {
			return body.Errors[0].Message
		}
	}

	if raw := strings.TrimSpace(string(resp.Body())); raw != "" {
		return raw
	}
	return http.StatusText(resp.StatusCode())
}

// mapHTTPError returns nil for 2xx responses and a wrapped provider sentinel
// otherwise.
func mapHTTPError(resp *resty.Response) error {
	code := resp.StatusCode()

	var sentinel error
	switch {
	case code >= http.StatusOK && code < http.StatusMultipleChoices:
		return nil
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		sentinel = ErrProviderUnauthorized
	case code == http.StatusTooManyRequests:
		sentinel = ErrProviderRateLimited
	case code >= http.StatusInternalServerError:
		sentinel = ErrProviderUnavailable
	default:
		sentinel = ErrProviderRejected
	}

	return fmt.Errorf("%w (%d): %s", sentinel, code, providerMessage(resp))
}
