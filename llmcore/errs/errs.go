package errs

import (
	"errors"
	"fmt"
)

// Code is the closed set of error kinds a provider or the dispatcher
// can raise.
type Code string

const (
	CodeNoAPIKey            Code = "no_api_key"
	CodeTransport           Code = "transport"
	CodeAPI                 Code = "api"
	CodeAborted             Code = "aborted"
	CodeInvalidResponse     Code = "invalid_response"
	CodeInvalidHeader       Code = "invalid_header"
	CodeInvalidJSON         Code = "invalid_json"
	CodeModelNotFound       Code = "model_not_found"
	CodeUnknownProvider     Code = "unknown_provider"
	CodeUnknownAPI          Code = "unknown_api"
	CodeToolValidationFailed Code = "tool_validation_failed"
	CodeToolNotFound        Code = "tool_not_found"
	CodeContextOverflow     Code = "context_overflow"
)

// Error is the concrete error type every package in llmcore returns.
// A caller distinguishes cases by Code, not by unwrapping to a
// per-case type.
type Error struct {
	Code       Code
	Message    string
	HTTPStatus int
	Provider   string
	Cause      error
}

func (e *Error) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("%s: %s: %s", e.Provider, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Retryable reports whether a caller should retry the request that
// produced this error. Connection-phase failures and 5xx/429
// responses are retryable; everything else (bad input, auth, content
// validation) is not.
func (e *Error) Retryable() bool {
	switch e.Code {
	case CodeTransport:
		return true
	case CodeAPI:
		return e.HTTPStatus == 429 || e.HTTPStatus >= 500
	default:
		return false
	}
}

// IsRetryable reports whether err (of any concrete type) should be
// retried, matching the *Error case and defaulting to false for
// anything else so unexpected errors fail closed.
func IsRetryable(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Retryable()
	}
	return false
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func NoAPIKey(provider string) *Error {
	return &Error{Code: CodeNoAPIKey, Provider: provider, Message: fmt.Sprintf("no API key configured for provider %q", provider)}
}

func Transport(provider string, cause error) *Error {
	return &Error{Code: CodeTransport, Provider: provider, Message: cause.Error(), Cause: cause}
}

func API(provider string, status int, message string) *Error {
	return &Error{Code: CodeAPI, Provider: provider, HTTPStatus: status, Message: message}
}

func Aborted(provider string) *Error {
	return &Error{Code: CodeAborted, Provider: provider, Message: "request aborted"}
}

func InvalidResponse(provider, message string) *Error {
	return &Error{Code: CodeInvalidResponse, Provider: provider, Message: message}
}

func InvalidJSON(provider string, cause error) *Error {
	return &Error{Code: CodeInvalidJSON, Provider: provider, Message: cause.Error(), Cause: cause}
}

func ModelNotFound(modelID string) *Error {
	return &Error{Code: CodeModelNotFound, Message: fmt.Sprintf("unknown model %q", modelID)}
}

func UnknownProvider(name string) *Error {
	return &Error{Code: CodeUnknownProvider, Message: fmt.Sprintf("unknown provider %q", name)}
}

func UnknownAPI(name string) *Error {
	return &Error{Code: CodeUnknownAPI, Message: fmt.Sprintf("unknown api %q", name)}
}

func ToolNotFound(name string) *Error {
	return &Error{Code: CodeToolNotFound, Message: fmt.Sprintf("no tool registered with name %q", name)}
}

func ToolValidationFailed(toolName, message string) *Error {
	return &Error{Code: CodeToolValidationFailed, Message: fmt.Sprintf("%s: %s", toolName, message)}
}

func ContextOverflow(provider string, message string) *Error {
	return &Error{Code: CodeContextOverflow, Provider: provider, Message: message}
}
