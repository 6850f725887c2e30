package api

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/idnakit/internal/registry"
	"github.com/dmitrymomot/idnakit/pkg/dnsverify"
	"github.com/dmitrymomot/idnakit/pkg/idna"
)

// Error codes returned in the "code" field of error responses.
const (
	CodeBadRequest           = "bad_request"
	CodeInvalidConfiguration = "invalid_configuration"
	CodeInputNotWellFormed   = "input_not_well_formed"
	CodeConstraintViolation  = "constraint_violation"
	CodeConversionFailed     = "conversion_failed"
	CodeNotFound             = "not_found"
	CodeAlreadyRegistered    = "already_registered"
	CodeMethodNotAllowed     = "method_not_allowed"
	CodeNotVerified          = "not_verified"
	CodeDNSLookupFailed      = "dns_lookup_failed"
	CodeInternal             = "internal_error"
)

// HTTPError is an error with everything needed to render a JSON response.
type HTTPError struct {
	// Err is the cause. It is logged, never rendered.
	Err       error  `json:"-"`
	Code      int    `json:"-"`
	ErrorCode string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func newHTTPError(code int, errorCode, message string, cause error) *HTTPError {
	return &HTTPError{Code: code, ErrorCode: errorCode, Message: message, Err: cause}
}

// badRequest reports a malformed request that never reached the converter.
func badRequest(message string) *HTTPError {
	return newHTTPError(http.StatusBadRequest, CodeBadRequest, message, nil)
}

// toHTTPError maps converter and registry errors to responses. Converter
// messages are safe to show; anything unrecognized becomes a 500 with a
// generic message.
func toHTTPError(err error) *HTTPError {
	var he *HTTPError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, idna.ErrInvalidConfiguration):
		return newHTTPError(http.StatusBadRequest, CodeInvalidConfiguration, err.Error(), err)
	case errors.Is(err, idna.ErrInputNotWellFormed):
		return newHTTPError(http.StatusBadRequest, CodeInputNotWellFormed, err.Error(), err)
	case errors.Is(err, idna.ErrConstraintViolation):
		return newHTTPError(http.StatusUnprocessableEntity, CodeConstraintViolation, err.Error(), err)
	case errors.Is(err, idna.ErrConversion):
		return newHTTPError(http.StatusUnprocessableEntity, CodeConversionFailed, err.Error(), err)
	case errors.Is(err, registry.ErrEmptyName):
		return newHTTPError(http.StatusBadRequest, CodeBadRequest, err.Error(), err)
	case errors.Is(err, registry.ErrNotFound):
		return newHTTPError(http.StatusNotFound, CodeNotFound, err.Error(), err)
	case errors.Is(err, registry.ErrAlreadyRegistered):
		return newHTTPError(http.StatusConflict, CodeAlreadyRegistered, err.Error(), err)
	case errors.Is(err, dnsverify.ErrTXTRecordNotFound), errors.Is(err, dnsverify.ErrDomainNotVerified):
		return newHTTPError(http.StatusUnprocessableEntity, CodeNotVerified, err.Error(), err)
	case errors.Is(err, dnsverify.ErrInvalidInput):
		return newHTTPError(http.StatusUnprocessableEntity, CodeConstraintViolation, err.Error(), err)
	case errors.Is(err, dnsverify.ErrDNSLookupFailed):
		return newHTTPError(http.StatusBadGateway, CodeDNSLookupFailed, "dns lookup failed", err)
	default:
		return newHTTPError(http.StatusInternalServerError, CodeInternal, http.StatusText(http.StatusInternalServerError), err)
	}
}
