package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JonMunkholm/chartparse/internal/logging"
)

func TestTrustedRealIP(t *testing.T) {
	tests := []struct {
		name    string
		trusted []string
		remote  string
		headers map[string]string
		want    string
	}{
		{
			name:    "no trusted proxies ignores headers",
			trusted: nil,
			remote:  "10.0.0.1:1234",
			headers: map[string]string{"X-Real-IP": "1.2.3.4"},
			want:    "10.0.0.1:1234",
		},
		{
			name:    "trusted proxy with X-Real-IP",
			trusted: []string{"10.0.0.0/8"},
			remote:  "10.0.0.1:1234",
			headers: map[string]string{"X-Real-IP": "1.2.3.4"},
			want:    "1.2.3.4",
		},
		{
			name:    "trusted proxy with X-Forwarded-For chain",
			trusted: []string{"10.0.0.1"},
			remote:  "10.0.0.1:1234",
			headers: map[string]string{"X-Forwarded-For": "5.6.7.8, 10.0.0.1"},
			want:    "5.6.7.8",
		},
		{
			name:    "untrusted source keeps remote addr",
			trusted: []string{"10.0.0.0/8"},
			remote:  "192.168.1.5:999",
			headers: map[string]string{"X-Real-IP": "1.2.3.4"},
			want:    "192.168.1.5:999",
		},
		{
			name:    "invalid header value is ignored",
			trusted: []string{"10.0.0.0/8"},
			remote:  "10.0.0.1:1234",
			headers: map[string]string{"X-Real-IP": "not-an-ip"},
			want:    "10.0.0.1:1234",
		},
		{
			name:    "invalid trusted entry is skipped",
			trusted: []string{"bogus", "10.0.0.0/8"},
			remote:  "10.0.0.1:1234",
			headers: map[string]string{"X-Real-IP": "1.2.3.4"},
			want:    "1.2.3.4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			h := TrustedRealIP(tt.trusted)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.RemoteAddr
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)

			if got != tt.want {
				t.Errorf("RemoteAddr = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(logging.New(&buf, "info", "text"))
	defer slog.SetDefault(prev)

	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(ParseIDHeader, "p-1")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("nope"))
	}))

	req := httptest.NewRequest(http.MethodPost, "/parse", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	out := buf.String()
	for _, want := range []string{"method=POST", "path=/parse", "status=400", "bytes=4", "parse_id=p-1", "level=INFO"} {
		if !strings.Contains(out, want) {
			t.Errorf("log line missing %s: %q", want, out)
		}
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestLogger_ServerErrorsWarn(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(logging.New(&buf, "info", "text"))
	defer slog.SetDefault(prev)

	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if !strings.Contains(buf.String(), "level=WARN") {
		t.Errorf("expected warn level: %q", buf.String())
	}
}
