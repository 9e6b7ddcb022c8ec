package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var serverTime = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

const skilledWorkerAnswers = `{
	"visaCategory": "skilled-worker",
	"occupationLevel": "RQF6+",
	"currentIncome": 30000,
	"incomeYears": 3,
	"englishLevel": "B2",
	"passedLifeInUK": true,
	"visaStartDate": "2020-01-01"
}`

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	s := New(Config{Now: func() time.Time { return serverTime }})
	return s, s.Routes()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestRequestIDPropagation(t *testing.T) {
	_, h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		body       string
		wantStatus int
		check      func(t *testing.T, body map[string]any)
	}{
		{
			name:       "skilled worker baseline",
			target:     "/v1/outcome",
			body:       skilledWorkerAnswers,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, float64(10), body["mainApplicantYears"])
				assert.Equal(t, "2030-01-01T00:00:00Z", body["ilrDate"])
				assert.Equal(t, false, body["insufficientInput"])
				assert.Equal(t, true, body["allRequirementsMet"])
			},
		},
		{
			name:       "answers given as text",
			target:     "/v1/outcome",
			body:       `{"visaCategory":"skilled-worker","currentIncome":"£30,000","incomeYears":"3","englishLevel":"b2","passedLifeInUK":"yes","visaStartDate":"2020-01-01"}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, float64(10), body["mainApplicantYears"])
				assert.Equal(t, true, body["allRequirementsMet"])
			},
		},
		{
			name:       "no base date",
			target:     "/v1/outcome",
			body:       `{"visaCategory":"skilled-worker"}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, true, body["insufficientInput"])
				assert.NotContains(t, body, "ilrDate")
			},
		},
		{
			name:       "route without settlement",
			target:     "/v1/outcome",
			body:       `{"visaCategory":"student","visaStartDate":"2024-01-01"}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, true, body["hasRouteBlock"])
			},
		},
		{
			name:       "invalid income",
			target:     "/v1/outcome",
			body:       `{"visaCategory":"skilled-worker","currentIncome":"lots"}`,
			wantStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "validation_failed", body["error"])
				assert.Equal(t, "currentIncome", body["field"])
			},
		},
		{
			name:       "unknown entry method",
			target:     "/v1/outcome",
			body:       `{"entryMethod":"boat"}`,
			wantStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "entryMethod", body["field"])
			},
		},
		{
			name:       "malformed body",
			target:     "/v1/outcome",
			body:       `{"visaCategory":`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "bad_request", body["error"])
			},
		},
		{
			name:       "invalid now parameter",
			target:     "/v1/outcome?now=yesterday",
			body:       skilledWorkerAnswers,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body["message"], "YYYY-MM-DD")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, h := newTestServer(t)

			rec := do(t, h, http.MethodPost, tt.target, tt.body)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			tt.check(t, decodeBody(t, rec))
		})
	}
}

func TestOutcome_NowParameterChangesFees(t *testing.T) {
	_, h := newTestServer(t)

	early := decodeBody(t, do(t, h, http.MethodPost, "/v1/outcome?now=2020-06-01", skilledWorkerAnswers))
	late := decodeBody(t, do(t, h, http.MethodPost, "/v1/outcome?now=2029-06-01", skilledWorkerAnswers))

	earlyFees, ok := early["fees"].(map[string]any)
	require.True(t, ok)
	lateFees, ok := late["fees"].(map[string]any)
	require.True(t, ok)

	assert.Equal(t, false, earlyFees["underOneYear"])
	assert.Equal(t, true, lateFees["underOneYear"])
}

func TestRules(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/v1/rules", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body, "timeline")
	assert.Contains(t, body, "fees")
	assert.ElementsMatch(t, []any{"ukraine", "student"}, body["noSettlementRoutes"])
}

func TestMetrics(t *testing.T) {
	_, h := newTestServer(t)

	do(t, h, http.MethodPost, "/v1/outcome", skilledWorkerAnswers)
	do(t, h, http.MethodPost, "/v1/outcome", `{"visaCategory":"skilled-worker"}`)

	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `ilrcalc_outcomes_total{result="settles"} 1`)
	assert.Contains(t, body, `ilrcalc_outcomes_total{result="insufficient_input"} 1`)
	assert.Contains(t, body, `ilrcalc_http_requests_total{method="POST",route="/v1/outcome",status="200"} 2`)
}

func TestNew_Defaults(t *testing.T) {
	s := New(Config{})

	assert.NotNil(t, s.engine)
	assert.NotNil(t, s.logger)
	assert.NotNil(t, s.metrics)
	assert.NotNil(t, s.now)
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("/healthz", http.MethodGet, "200", time.Millisecond)
		m.IncrementOutcome("settles")
	})
}
