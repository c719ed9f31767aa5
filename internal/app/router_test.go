package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ecotrack/internal/footprint"
	"ecotrack/internal/handler"
	"ecotrack/internal/service"
	"ecotrack/middleware"

	"github.com/stretchr/testify/require"
)

type generatorStub struct {
	text string
	err  error
}

func (g *generatorStub) Generate(ctx context.Context, prompt string) (string, error) {
	return g.text, g.err
}

func newTestRouter(generator *generatorStub) http.Handler {
	calculate := handler.NewCalculate(footprint.NewTable())
	recommend := handler.NewRecommendation(service.New(generator))
	return newRouter(calculate.Handle, recommend.Handle, "*")
}

func TestRouter(t *testing.T) {
	testCases := []struct {
		name             string
		method           string
		path             string
		body             string
		generator        *generatorStub
		expectedStatus   int
		expectedResponse string
	}{
		{
			name:             "calculate car",
			method:           http.MethodPost,
			path:             "/api/calculate",
			body:             `{"distance": 100, "mode": "car"}`,
			expectedStatus:   http.StatusOK,
			expectedResponse: `{"carbonFootprint":"12.00"}`,
		},
		{
			name:             "calculate plane",
			method:           http.MethodPost,
			path:             "/api/calculate",
			body:             `{"distance": 50, "mode": "plane"}`,
			expectedStatus:   http.StatusOK,
			expectedResponse: `{"carbonFootprint":"12.50"}`,
		},
		{
			name:             "calculate missing distance",
			method:           http.MethodPost,
			path:             "/api/calculate",
			body:             `{"mode": "car"}`,
			expectedStatus:   http.StatusBadRequest,
			expectedResponse: `{"error":"Missing parameters"}`,
		},
		{
			name:             "recommendations missing value",
			method:           http.MethodPost,
			path:             "/api/recommendations",
			body:             `{}`,
			expectedStatus:   http.StatusBadRequest,
			expectedResponse: `{"error":"Carbon footprint value is required."}`,
		},
		{
			name:             "recommendations upstream failure",
			method:           http.MethodPost,
			path:             "/api/recommendations",
			body:             `{"carbonFootprint": 12}`,
			generator:        &generatorStub{err: errors.New("503 from upstream")},
			expectedStatus:   http.StatusInternalServerError,
			expectedResponse: `{"error":"AI request failed."}`,
		},
		{
			name:             "recommendations success",
			method:           http.MethodPost,
			path:             "/api/recommendations",
			body:             `{"carbonFootprint": 12}`,
			generator:        &generatorStub{text: "Use public transit."},
			expectedStatus:   http.StatusOK,
			expectedResponse: `{"recommendation":"Use public transit."}`,
		},
		{
			name:             "wrong method",
			method:           http.MethodGet,
			path:             "/api/calculate",
			expectedStatus:   http.StatusMethodNotAllowed,
			expectedResponse: `{"error":"Invalid request method"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			generator := tc.generator
			if generator == nil {
				generator = &generatorStub{err: errors.New("must not be called")}
			}
			router := newTestRouter(generator)

			rr := httptest.NewRecorder()
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(rr, req)

			require.Equal(t, tc.expectedStatus, rr.Code)
			require.JSONEq(t, tc.expectedResponse, rr.Body.String())
			require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			require.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
			require.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestRouter_Preflight(t *testing.T) {
	router := newTestRouter(&generatorStub{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/api/recommendations", nil))

	require.Equal(t, http.StatusNoContent, rr.Code)
	require.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(&generatorStub{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"status":"healthy"`)
}

func TestRouter_Metrics(t *testing.T) {
	router := newTestRouter(&generatorStub{})

	router.ServeHTTP(httptest.NewRecorder(),
		httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(`{"distance": 1, "mode": "bus"}`)))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "ecotrack_http_requests_total")
	require.Contains(t, rr.Body.String(), `ecotrack_footprint_calculations_total{mode="bus"}`)
}

func TestServe_StopsOnContextCancel(t *testing.T) {
	server := &http.Server{
		Addr:    "127.0.0.1:0",
		Handler: newTestRouter(&generatorStub{}),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, server, time.Second)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve didn't return after cancel")
	}
}
