package mockserver

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	io_prometheus_client "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/marketplace-client/internal/metrics"
)

func TestRequestLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		method        string
		path          string
		handler       echo.HandlerFunc
		providedReqID string
		wantLogFields []string
	}{
		{
			name:   "logs GET request with generated ID",
			method: http.MethodGet,
			path:   "/api/p",
			handler: func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			},
			wantLogFields: []string{
				"method=GET",
				"path=/api/p",
				"status=200",
				"duration_ms=",
				"request_id=",
			},
		},
		{
			name:   "logs handler error status",
			method: http.MethodGet,
			path:   "/node/404/api/p",
			handler: func(_ echo.Context) error {
				return echo.NewHTTPError(http.StatusNotFound, "no node")
			},
			wantLogFields: []string{
				"status=404",
			},
		},
		{
			name:   "uses provided request ID",
			method: http.MethodPost,
			path:   "/install/error/report",
			handler: func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			},
			providedReqID: "custom-req-id-123",
			wantLogFields: []string{
				"method=POST",
				"request_id=custom-req-id-123",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			e := echo.New()
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			if tt.providedReqID != "" {
				req.Header.Set(requestIDHeader, tt.providedReqID)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			require.NoError(t, RequestLog(logger)(tt.handler)(c))

			for _, field := range tt.wantLogFields {
				assert.Contains(t, buf.String(), field)
			}

			respID := rec.Header().Get(requestIDHeader)
			assert.NotEmpty(t, respID)
			if tt.providedReqID != "" {
				assert.Equal(t, tt.providedReqID, respID)
			}
			assert.NotEmpty(t, c.Get("request_id"))
		})
	}
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		handler  echo.HandlerFunc
		wantCode int
		wantLog  []string
	}{
		{
			name: "no panic",
			handler: func(c echo.Context) error {
				return c.String(http.StatusOK, "ok")
			},
			wantCode: http.StatusOK,
		},
		{
			name: "panic with string",
			handler: func(_ echo.Context) error {
				panic("test panic")
			},
			wantCode: http.StatusInternalServerError,
			wantLog:  []string{"panic recovered", "test panic", "path=/panic"},
		},
		{
			name: "panic with non-string value",
			handler: func(_ echo.Context) error {
				panic(42)
			},
			wantCode: http.StatusInternalServerError,
			wantLog:  []string{"42"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/panic", http.NoBody)
			rec := httptest.NewRecorder()

			require.NoError(t, Recovery(logger)(tt.handler)(e.NewContext(req, rec)))
			assert.Equal(t, tt.wantCode, rec.Code)

			if len(tt.wantLog) == 0 {
				assert.Empty(t, buf.String())
			}
			for _, want := range tt.wantLog {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestMetricsMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		route      string
		target     string
		handler    echo.HandlerFunc
		wantStatus int
	}{
		{
			name:   "records by route pattern",
			method: http.MethodGet,
			route:  "/node/:id/api/p",
			target: "/node/1139/api/p",
			handler: func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "records handler errors",
			method: http.MethodGet,
			route:  "/content/:slug/api/p",
			target: "/content/missing/api/p",
			handler: func(_ echo.Context) error {
				return echo.NewHTTPError(http.StatusNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "records plain errors as 500",
			method: http.MethodPost,
			route:  "/install/error/report",
			target: "/install/error/report",
			handler: func(_ echo.Context) error {
				return errors.New("boom")
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.Use(Metrics())
			e.Add(tt.method, tt.route, tt.handler)

			req := httptest.NewRequest(tt.method, tt.target, http.NoBody)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			statusStr := strconv.Itoa(tt.wantStatus)

			counter, err := metrics.HTTPRequestsTotal.GetMetricWithLabelValues(
				tt.method, tt.route, statusStr,
			)
			require.NoError(t, err)

			m := &io_prometheus_client.Metric{}
			require.NoError(t, counter.Write(m))
			assert.Greater(t, m.GetCounter().GetValue(), float64(0))

			observer, err := metrics.HTTPRequestDuration.GetMetricWithLabelValues(
				tt.method, tt.route, statusStr,
			)
			require.NoError(t, err)

			hm := &io_prometheus_client.Metric{}
			require.NoError(t, observer.(prometheus.Metric).Write(hm))
			assert.Positive(t, hm.GetHistogram().GetSampleCount())
		})
	}
}
