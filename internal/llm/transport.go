package llm

import (
	"context"
	"errors"
	"net"
	"net/http"
)

func reasonForStatus(provider ProviderName, status int) FailureReason {
	switch {
	case status == http.StatusTooManyRequests:
		return ReasonRateLimited
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ReasonAuthFailed
	case status == http.StatusPaymentRequired && provider == ProviderOpenRouter:
		return ReasonPaymentRequired
	default:
		return ReasonHTTPError
	}
}

func statusError(provider ProviderName, status int) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Reason:   reasonForStatus(provider, status),
		Status:   status,
		Message:  http.StatusText(status),
	}
}

// transportError maps request failures to the timeout/unknown reasons.
// err.Error() can embed the request URL, which for Gemini carries the key
// in a query parameter, so the message is a fixed string.
func transportError(provider ProviderName, err error) *ProviderError {
	reason := ReasonUnknown
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		reason = ReasonTimeout
	} else if errors.As(err, &netErr) && netErr.Timeout() {
		reason = ReasonTimeout
	}
	return &ProviderError{Provider: provider, Reason: reason, Message: "request failed"}
}

func emptyResponseError(provider ProviderName) *ProviderError {
	return &ProviderError{Provider: provider, Reason: ReasonEmptyResponse, Message: "provider returned no text"}
}
