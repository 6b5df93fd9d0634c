package myerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	myErr := fmt.Errorf("my error")

	testCases := []struct {
		name       string
		in         error
		kind       Kind
		httpStatus int
		errorText  string
		publicText string
	}{
		{
			name:       "No domain error",
			in:         myErr,
			kind:       KindInternal,
			httpStatus: 500,
			errorText:  "my error",
			publicText: "internal: internal error",
		},
		{
			name:       "Missing config",
			in:         NewMissingConfigError("SHOPIFY_API_KEY"),
			kind:       KindMissingConfig,
			httpStatus: 500,
			errorText:  "missing_config: required setting SHOPIFY_API_KEY is missing",
			publicText: "missing_config: required setting SHOPIFY_API_KEY is missing",
		},
		{
			name:       "Invalid config",
			in:         NewInvalidConfigError("SESSION_TTL", myErr),
			kind:       KindMissingConfig,
			httpStatus: 500,
			errorText:  "missing_config: setting SESSION_TTL is invalid: my error",
			publicText: "missing_config: setting SESSION_TTL is invalid: my error",
		},
		{
			name:       "Invalid request",
			in:         NewInvalidRequestError("missing code"),
			kind:       KindInvalidRequest,
			httpStatus: 400,
			errorText:  "invalid_request: missing code",
			publicText: "invalid_request: missing code",
		},
		{
			name:       "Invalid requestf",
			in:         NewInvalidRequestErrorf("shop %q is not valid", "abc"),
			kind:       KindInvalidRequest,
			httpStatus: 400,
			errorText:  `invalid_request: shop "abc" is not valid`,
			publicText: `invalid_request: shop "abc" is not valid`,
		},
		{
			name:       "Exchange error",
			in:         NewExchangeError("token endpoint returned status 500", nil),
			kind:       KindExchangeError,
			httpStatus: 400,
			errorText:  "exchange_error: token endpoint returned status 500",
			publicText: "exchange_error: token endpoint returned status 500",
		},
		{
			name:       "Exchange error with cause",
			in:         NewExchangeError("error calling token endpoint", myErr),
			kind:       KindExchangeError,
			httpStatus: 400,
			errorText:  "exchange_error: error calling token endpoint: my error",
			publicText: "exchange_error: error calling token endpoint: my error",
		},
		{
			name:       "Unauthenticated",
			in:         NewUnauthenticatedError("no session"),
			kind:       KindUnauthenticated,
			httpStatus: 302,
			errorText:  "unauthenticated: no session",
			publicText: "unauthenticated: no session",
		},
		{
			name:       "Not found error",
			in:         NewNotFoundError("session not found"),
			kind:       KindNotFound,
			httpStatus: 404,
			errorText:  "not_found: session not found",
			publicText: "not_found: session not found",
		},
		{
			name:       "Internal error",
			in:         NewInternalError(myErr),
			kind:       KindInternal,
			httpStatus: 500,
			errorText:  "internal: internal error: my error",
			publicText: "internal: internal error",
		},
		{
			name:       "Wrapped domain error",
			in:         fmt.Errorf("outer: %w", NewInvalidRequestError("missing shop")),
			kind:       KindInvalidRequest,
			httpStatus: 400,
			errorText:  "outer: invalid_request: missing shop",
			publicText: "outer: invalid_request: missing shop",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.httpStatus, GetHTTPStatus(tc.in))
			assert.Equal(t, tc.kind, KindOf(tc.in))
			assert.Equal(t, tc.errorText, tc.in.Error())
			assert.Equal(t, tc.publicText, PublicMessage(tc.in))
		})
	}

	t.Run("Unwrap exposes cause", func(t *testing.T) {
		err := NewExchangeError("error calling token endpoint", myErr)
		assert.True(t, errors.Is(err, myErr))
	})

	t.Run("Is", func(t *testing.T) {
		assert.True(t, Is(NewNotFoundError("x"), KindNotFound))
		assert.False(t, Is(nil, KindInternal))
		assert.False(t, Is(NewNotFoundError("x"), KindInternal))
	})
}
