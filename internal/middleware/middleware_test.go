package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
)

func TestNewResponseWriter(t *testing.T) {
	w := httptest.NewRecorder()
	rw := newResponseWriter(w)

	if rw.statusCode != http.StatusOK {
		t.Errorf("Expected default status code 200, got %d", rw.statusCode)
	}
	if rw.bytesWritten != 0 {
		t.Errorf("Expected bytesWritten to be 0, got %d", rw.bytesWritten)
	}
	if rw.wroteHeader {
		t.Error("Expected wroteHeader to be false initially")
	}
}

func TestResponseWriterWriteHeader(t *testing.T) {
	w := httptest.NewRecorder()
	rw := newResponseWriter(w)

	rw.WriteHeader(http.StatusNotFound)
	if rw.statusCode != http.StatusNotFound {
		t.Errorf("Expected status code 404, got %d", rw.statusCode)
	}

	// Write header again - should be ignored
	rw.WriteHeader(http.StatusInternalServerError)
	if rw.statusCode != http.StatusNotFound {
		t.Error("Status code should not change after first WriteHeader")
	}
}

func TestResponseWriterWrite(t *testing.T) {
	w := httptest.NewRecorder()
	rw := newResponseWriter(w)

	data := []byte("test data")
	n, err := rw.Write(data)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if n != len(data) {
		t.Errorf("Expected to write %d bytes, wrote %d", len(data), n)
	}
	if rw.bytesWritten != int64(len(data)) {
		t.Errorf("Expected bytesWritten to be %d, got %d", len(data), rw.bytesWritten)
	}
	if !rw.wroteHeader {
		t.Error("Expected wroteHeader to be true after Write")
	}
}

func TestShouldSkip(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		config LoggingConfig
		want   bool
	}{
		{name: "Logs uploads", path: "/video", config: DefaultLoggingConfig(), want: false},
		{name: "Logs health checks when enabled", path: "/healthz", config: LoggingConfig{LogHealthChecks: true}, want: false},
		{name: "Skips health checks when disabled", path: "/readyz", config: LoggingConfig{LogHealthChecks: false}, want: true},
		{name: "Skips configured prefix", path: "/metrics", config: LoggingConfig{SkipPaths: []string{"/metrics"}, LogHealthChecks: true}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldSkip(tt.path, tt.config); got != tt.want {
				t.Errorf("shouldSkip(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestLoggerMiddlewarePassesThrough(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("ok"))
	})

	req := httptest.NewRequest(http.MethodPost, "/video", http.NoBody)
	w := httptest.NewRecorder()
	Logger(DefaultLoggingConfig())(handler).ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}
	if w.Body.String() != "ok" {
		t.Errorf("Expected body ok, got %q", w.Body.String())
	}
}

func TestFormatW3C(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/video/abc.mp4/cut?x=1", strings.NewReader("[]"))
	req.RemoteAddr = "10.0.0.7:53211"
	req.Header.Set("User-Agent", "curl/8.0 (linux)")

	rw := newResponseWriter(httptest.NewRecorder())
	rw.WriteHeader(http.StatusBadRequest)
	_, _ = rw.Write([]byte(`{"error":"bad"}`))

	now := time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)
	line := formatW3C(now, req, rw, 1500*time.Millisecond)

	want := `2024-03-09 14:05:06 10.0.0.7 POST /video/abc.mp4/cut x=1 400 15 2 1500 "curl/8.0 (linux)" -`
	if line != want {
		t.Errorf("formatW3C() =\n%q\nwant\n%q", line, want)
	}
}

func TestSanitizeLogField(t *testing.T) {
	got := sanitizeLogField("a\nb\r\x00c\x1b[31m")
	if got != "a b c[31m" {
		t.Errorf("sanitizeLogField() = %q", got)
	}
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.RemoteAddr = "192.168.1.2:4000"
	if ip := getClientIP(req); ip != "192.168.1.2" {
		t.Errorf("getClientIP() = %q", ip)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if ip := getClientIP(req); ip != "203.0.113.9" {
		t.Errorf("getClientIP() with XFF = %q", ip)
	}
}

func TestMetricsRouteLabel(t *testing.T) {
	var label string
	router := mux.NewRouter()
	router.HandleFunc("/video/{id}/cut", func(_ http.ResponseWriter, r *http.Request) {
		label = routeLabel(r)
	}).Methods(http.MethodPost)
	router.Use(Metrics(DefaultMetricsConfig()))

	req := httptest.NewRequest(http.MethodPost, "/video/"+strings.Repeat("f", 64)+".mp4/cut", http.NoBody)
	router.ServeHTTP(httptest.NewRecorder(), req)

	if label != "/video/{id}/cut" {
		t.Errorf("routeLabel() = %q, want route template", label)
	}

	if got := routeLabel(httptest.NewRequest(http.MethodGet, "/nope", http.NoBody)); got != "unmatched" {
		t.Errorf("routeLabel() for unrouted request = %q", got)
	}
}

func TestMetricsMiddlewareStatusCode(t *testing.T) {
	handler := Metrics(DefaultMetricsConfig())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/video", http.NoBody))
	if w.Code != http.StatusTeapot {
		t.Errorf("Expected status 418, got %d", w.Code)
	}
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		allowed    []string
		origin     string
		method     string
		preflight  string
		wantOrigin string
		wantStatus int
	}{
		{name: "wildcard", allowed: []string{"*"}, origin: "https://app.example", method: http.MethodPost, wantOrigin: "*", wantStatus: http.StatusOK},
		{name: "exact match", allowed: []string{"https://app.example"}, origin: "https://app.example", method: http.MethodPost, wantOrigin: "https://app.example", wantStatus: http.StatusOK},
		{name: "not allowed", allowed: []string{"https://app.example"}, origin: "https://evil.example", method: http.MethodPost, wantOrigin: "", wantStatus: http.StatusOK},
		{name: "localhost any port", allowed: []string{"http://localhost:*"}, origin: "http://localhost:5173", method: http.MethodPost, wantOrigin: "http://localhost:5173", wantStatus: http.StatusOK},
		{name: "preflight", allowed: nil, origin: "https://app.example", method: http.MethodOptions, preflight: http.MethodPost, wantOrigin: "*", wantStatus: http.StatusNoContent},
		{name: "preflight disallowed method", allowed: nil, origin: "https://app.example", method: http.MethodOptions, preflight: http.MethodDelete, wantOrigin: "", wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/video", http.NoBody)
			req.Header.Set("Origin", tt.origin)
			if tt.preflight != "" {
				req.Header.Set("Access-Control-Request-Method", tt.preflight)
			}
			w := httptest.NewRecorder()

			CORS(tt.allowed)(next).ServeHTTP(w, req)

			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRecover(t *testing.T) {
	handler := Recover(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/video", http.NoBody))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
}

func TestOriginAllowed(t *testing.T) {
	allowed := []string{"https://app.example", "http://localhost:*"}

	tests := []struct {
		origin string
		want   bool
	}{
		{"https://app.example", true},
		{"http://localhost:3000", true},
		{"http://localhost", true},
		{"http://localhost.evil.example", false},
		{"https://other.example", false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			if got := originAllowed(allowed, tt.origin); got != tt.want {
				t.Errorf("originAllowed(%q) = %v, want %v", tt.origin, got, tt.want)
			}
		})
	}
}
