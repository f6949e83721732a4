package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessageIncludesProvider(t *testing.T) {
	e := API("openai", 500, "internal error")
	assert.Equal(t, "openai: api: internal error", e.Error())
}

func TestErrorMessageWithoutProvider(t *testing.T) {
	e := ModelNotFound("gpt-9")
	assert.Equal(t, `model_not_found: unknown model "gpt-9"`, e.Error())
}

func TestUnwrapReturnsCause(t *testing.T) {
	cause := errors.New("connection reset")
	e := Transport("minimax", cause)
	assert.Equal(t, cause, errors.Unwrap(e))
}

func TestRetryableTransportAlwaysTrue(t *testing.T) {
	assert.True(t, Transport("openai", errors.New("x")).Retryable())
}

func TestRetryableAPIOnlyOn429Or5xx(t *testing.T) {
	assert.True(t, API("openai", 429, "rate limited").Retryable())
	assert.True(t, API("openai", 503, "unavailable").Retryable())
	assert.False(t, API("openai", 400, "bad request").Retryable())
	assert.False(t, API("openai", 401, "unauthorized").Retryable())
}

func TestRetryableDefaultsFalse(t *testing.T) {
	assert.False(t, NoAPIKey("openai").Retryable())
	assert.False(t, ToolNotFound("search").Retryable())
}

func TestIsRetryableUnwrapsWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", Transport("openai", errors.New("x")))
	assert.True(t, IsRetryable(wrapped))
}

func TestIsRetryableFalseForForeignErrors(t *testing.T) {
	assert.False(t, IsRetryable(errors.New("some other error")))
}
