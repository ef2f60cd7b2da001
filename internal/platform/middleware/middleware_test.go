// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidora/internal/platform/constants"
	"github.com/taibuivan/vidora/internal/platform/ctxutil"
	"github.com/taibuivan/vidora/internal/platform/middleware"
)

/*
TestRequestID_EchoesClientProvidedID verifies that a caller-supplied
correlation ID is preserved end to end.
*/
func TestRequestID_EchoesClientProvidedID(t *testing.T) {
	// 1. Build a handler that captures the context request ID
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	// 2. Send a request that already carries an ID
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "trace-abc-123")
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	// 3. The same ID must reach both the context and the response header
	assert.Equal(t, "trace-abc-123", seen)
	assert.Equal(t, "trace-abc-123", recorder.Header().Get(constants.HeaderXRequestID))
}

/*
TestRequestID_GeneratesWhenMissing verifies that requests without a
correlation ID still get one assigned.
*/
func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	handler := middleware.RequestID()(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	require.NotEmpty(t, recorder.Header().Get(constants.HeaderXRequestID))
}

/*
TestRealIP_ProxyHeaderPrecedence verifies the client address resolution
order: X-Real-IP, then the first X-Forwarded-For hop, then the socket
address.
*/
func TestRealIP_ProxyHeaderPrecedence(t *testing.T) {
	testCases := []struct {
		name          string
		realIP        string
		forwardedFor  string
		remoteAddr    string
		expectedValue string
	}{
		{
			name:          "real ip wins over forwarded chain",
			realIP:        "203.0.113.7",
			forwardedFor:  "198.51.100.1, 10.0.0.2",
			remoteAddr:    "10.0.0.9:4321",
			expectedValue: "203.0.113.7",
		},
		{
			name:          "first forwarded hop when no real ip",
			forwardedFor:  "198.51.100.1, 10.0.0.2",
			remoteAddr:    "10.0.0.9:4321",
			expectedValue: "198.51.100.1",
		},
		{
			name:          "socket address without proxy headers",
			remoteAddr:    "192.0.2.44:5555",
			expectedValue: "192.0.2.44",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.RemoteAddr = testCase.remoteAddr
			if testCase.realIP != "" {
				request.Header.Set(constants.HeaderXRealIP, testCase.realIP)
			}
			if testCase.forwardedFor != "" {
				request.Header.Set(constants.HeaderXForwardedFor, testCase.forwardedFor)
			}

			assert.Equal(t, testCase.expectedValue, middleware.RealIP(request))
		})
	}
}

type corsConfig struct{ development bool }

func (config corsConfig) IsDevelopment() bool { return config.development }

/*
TestCORS_OriginHandling verifies cross-origin decisions: any origin in
development, the platform domain in production, and no CORS headers when
the Origin header is absent.
*/
func TestCORS_OriginHandling(t *testing.T) {
	run := func(development bool, origin string) *httptest.ResponseRecorder {
		handler := middleware.CORS(corsConfig{development: development})(
			http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {}),
		)

		request := httptest.NewRequest(http.MethodGet, "/", nil)
		if origin != "" {
			request.Header.Set(constants.HeaderOrigin, origin)
		}
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder
	}

	// 1. Development allows any origin
	recorder := run(true, "http://localhost:3000")
	assert.Equal(t, "http://localhost:3000", recorder.Header().Get("Access-Control-Allow-Origin"))

	// 2. Production allows the platform domain
	recorder = run(false, "https://studio.vidora.app")
	assert.Equal(t, "https://studio.vidora.app", recorder.Header().Get("Access-Control-Allow-Origin"))

	// 3. Production rejects foreign origins
	recorder = run(false, "https://evil.example.com")
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))

	// 4. Same-origin requests pass through untouched
	recorder = run(false, "")
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
}
