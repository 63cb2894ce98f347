package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-parser/internal/analysis"
	"github.com/jonathan/resume-parser/internal/logger"
	"github.com/jonathan/resume-parser/internal/schemas"
	"github.com/jonathan/resume-parser/internal/server/ratelimit"
	"github.com/jonathan/resume-parser/internal/types"
)

func TestMain(m *testing.M) {
	logger.InitWithWriter(logger.Config{Level: "disabled"}, io.Discard)
	os.Exit(m.Run())
}

// newTestServer creates a server with rate limiting disabled.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(Config{
		Port:         0,
		MaxBodyBytes: 4096,
		RateLimit:    &ratelimit.Config{Enabled: false},
	})
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	return s
}

func postJSON(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/parse-resume", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeResult(t *testing.T, w *httptest.ResponseRecorder) types.AnalysisResult {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res types.AnalysisResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestRootEndpoint(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"Resume Parser API is alive!"}`, w.Body.String())
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestUnknownPathAndMethod(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/parse-resume", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestParseResume_StrongResume(t *testing.T) {
	s := newTestServer(t)

	w := postJSON(t, s.Handler(), `{"resumeText":"I have 8 years of experience in Python and SQL. I led a team and tracked key metrics to show impact."}`)
	res := decodeResult(t, w)

	assert.Contains(t, res.Skills, "Python")
	assert.Contains(t, res.Skills, "SQL")
	assert.Empty(t, res.Titles)
	assert.Equal(t, 8, res.YearsExperience)
	assert.Empty(t, res.Gaps)
	assert.Empty(t, res.Recommendations)
}

func TestParseResume_TaskList(t *testing.T) {
	s := newTestServer(t)

	w := postJSON(t, s.Handler(), `{"resumeText":"Worked on various tasks."}`)

	assert.JSONEq(t, `{
		"skills": [],
		"titles": [],
		"yearsExperience": 0,
		"gaps": ["Missing outcome-focused language", "No metrics mentioned", "No leadership evidence"],
		"recommendations": [
			"Rewrite bullets to focus on outcomes, not tasks",
			"Add measurable metrics to your achievements",
			"Show initiatives you owned or led"
		]
	}`, w.Body.String())
}

func TestParseResume_TitlesAndPhoneNumber(t *testing.T) {
	s := newTestServer(t)

	w := postJSON(t, s.Handler(), `{"resumeText":"Senior Product Manager with 5yrs and phone 5551234567."}`)
	res := decodeResult(t, w)

	assert.Equal(t, 5, res.YearsExperience)
	assert.Equal(t, []string{"Product Manager", "Senior Product Manager"}, res.Titles)
}

func TestParseResume_EmptyText(t *testing.T) {
	s := newTestServer(t)

	w := postJSON(t, s.Handler(), `{"resumeText":""}`)
	res := decodeResult(t, w)

	assert.Empty(t, res.Skills)
	assert.Empty(t, res.Titles)
	assert.Equal(t, 0, res.YearsExperience)
	assert.Equal(t, analysis.GapLabels(), res.Gaps)
	assert.Len(t, res.Recommendations, 3)
}

func TestParseResume_WireContract(t *testing.T) {
	s := newTestServer(t)

	for _, text := range []string{"", "Python", "Product Owner 12 yrs impact metric lead"} {
		body, err := json.Marshal(map[string]string{"resumeText": text})
		require.NoError(t, err)

		w := postJSON(t, s.Handler(), string(body))
		require.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, schemas.AnalysisResult().ValidateBytes(w.Body.Bytes()))

		// field order
		raw := w.Body.String()
		order := []string{`"skills"`, `"titles"`, `"yearsExperience"`, `"gaps"`, `"recommendations"`}
		last := -1
		for _, key := range order {
			idx := strings.Index(raw, key)
			require.Greater(t, idx, last, "field %s out of order in %s", key, raw)
			last = idx
		}
	}
}

func TestParseResume_Idempotent(t *testing.T) {
	s := newTestServer(t)
	body := `{"resumeText":"Business Analyst, 3 years, Agile, outcome driven"}`

	first := postJSON(t, s.Handler(), body)
	second := postJSON(t, s.Handler(), body)

	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.Bytes(), second.Body.Bytes())
}

func TestParseResume_IgnoresExtraFields(t *testing.T) {
	s := newTestServer(t)

	w := postJSON(t, s.Handler(), `{"resumeText":"SQL","candidate":"Jane"}`)
	res := decodeResult(t, w)
	assert.Equal(t, []string{"SQL"}, res.Skills)
}

func TestParseResume_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{name: "missing field", body: `{}`, wantField: "resumeText"},
		{name: "wrong type", body: `{"resumeText":123}`, wantField: "resumeText"},
		{name: "null", body: `{"resumeText":null}`, wantField: "resumeText"},
		{name: "not an object", body: `"just text"`, wantField: "(root)"},
		{name: "malformed JSON", body: `{"resumeText":`, wantField: "body"},
		{name: "empty body", body: ``, wantField: "body"},
	}

	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, s.Handler(), tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code)

			var raw map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
			for _, field := range []string{"skills", "titles", "yearsExperience", "gaps", "recommendations"} {
				assert.NotContains(t, raw, field)
			}

			var resp types.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "validation_failed", resp.Error)
			require.NotEmpty(t, resp.Details)
			assert.Equal(t, tt.wantField, resp.Details[0].Field)
		})
	}
}

func TestParseResume_BodyTooLarge(t *testing.T) {
	s := newTestServer(t)

	body := `{"resumeText":"` + strings.Repeat("a", 5000) + `"}`
	w := postJSON(t, s.Handler(), body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "request body too large")
}

func TestParseResume_NonJSONContentType(t *testing.T) {
	s := newTestServer(t)

	for _, ct := range []string{"text/plain", "application/x-www-form-urlencoded", ";;"} {
		req := httptest.NewRequest(http.MethodPost, "/parse-resume", strings.NewReader(`{"resumeText":"x"}`))
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, ct)

		var resp types.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "validation_failed", resp.Error)
		require.Len(t, resp.Details, 1)
		assert.Equal(t, "body", resp.Details[0].Field)
		assert.NotContains(t, w.Body.String(), "skills")
	}

	// charset parameters and missing headers are accepted
	req := httptest.NewRequest(http.MethodPost, "/parse-resume", strings.NewReader(`{"resumeText":"x"}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/parse-resume", strings.NewReader(`{"resumeText":"x"}`))
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestParseResume_CanceledRequest(t *testing.T) {
	s := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/parse-resume", strings.NewReader(`{"resumeText":"x"}`)).WithContext(ctx)
	w := httptest.NewRecorder()
	s.handleParseResume(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCORS(t *testing.T) {
	s, err := New(Config{CORSAllowOrigin: "https://app.example.com", RateLimit: &ratelimit.Config{}})
	require.NoError(t, err)
	defer s.rateLimiter.Stop()

	req := httptest.NewRequest(http.MethodOptions, "/parse-resume", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}

func TestRateLimit(t *testing.T) {
	s, err := New(Config{
		RateLimit: &ratelimit.Config{
			Enabled:       true,
			DefaultLimit:  1000,
			DefaultWindow: time.Minute,
			EndpointConfigs: []ratelimit.EndpointConfig{
				{Path: "/parse-resume", Method: "POST", Limit: 2, Window: time.Hour, Burst: 2},
			},
		},
	})
	require.NoError(t, err)
	defer s.rateLimiter.Stop()

	for i := 0; i < 2; i++ {
		w := postJSON(t, s.Handler(), `{"resumeText":"x"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := postJSON(t, s.Handler(), `{"resumeText":"x"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "rate_limit_exceeded", resp["error"])

	// liveness is never limited
	for i := 0; i < 5; i++ {
		lw := httptest.NewRecorder()
		s.Handler().ServeHTTP(lw, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, lw.Code)
	}
}

func TestWithRecover(t *testing.T) {
	s := newTestServer(t)

	h := s.withRecover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}

func TestStatusRecorder(t *testing.T) {
	w := httptest.NewRecorder()
	rec := &statusRecorder{ResponseWriter: w}

	_, err := rec.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.status)
	assert.Equal(t, 5, rec.bytes)
}

func TestNew_InvalidPort(t *testing.T) {
	_, err := New(Config{Port: 70000, RateLimit: &ratelimit.Config{}})
	assert.Error(t, err)
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	s := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRun_ForcesCloseAfterShutdownTimeout(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	s, err := New(Config{
		Port:            port,
		ShutdownTimeout: 50 * time.Millisecond,
		RateLimit:       &ratelimit.Config{},
	})
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	defer close(release)
	s.httpServer.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	go func() {
		for i := 0; i < 50; i++ {
			resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/", port))
			if err == nil {
				resp.Body.Close()
				return
			}
			select {
			case <-entered:
				return
			case <-time.After(20 * time.Millisecond):
			}
		}
	}()

	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("request never reached the handler")
	}
	cancel()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestIsJSONContentType(t *testing.T) {
	assert.True(t, isJSONContentType("application/json"))
	assert.True(t, isJSONContentType("application/JSON; charset=utf-8"))
	assert.True(t, isJSONContentType("application/vnd.api+json"))
	assert.False(t, isJSONContentType("text/plain"))
	assert.False(t, isJSONContentType(";;"))
}

func TestExtractValidationErrors(t *testing.T) {
	err := extractValidationErrors((&types.AnalysisRequest{}).Validate())

	var verr *ErrValidation
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "resumeText", verr.Fields[0].Field)
	assert.Contains(t, verr.Fields[0].Message, "required")

	var buf bytes.Buffer
	buf.WriteString(err.Error())
	assert.Contains(t, buf.String(), "validation error")
}
