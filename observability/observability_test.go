package observability

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()

	before := testutil.ToFloat64(artSubmissions.WithLabelValues("set", "ok"))
	RecordSubmission("set", 3, nil)
	RecordSubmission("set", 0, errors.New("rejected"))
	RecordRejection("InvalidColor", "ART-AUTH-001")
	RecordRender("svg", 2*time.Millisecond)
	RecordHTTPRequest("GET", "/health", 200, time.Millisecond)

	if got := testutil.ToFloat64(artSubmissions.WithLabelValues("set", "ok")); got != before+1 {
		t.Fatalf("submissions ok = %v, want %v", got, before+1)
	}
}

func TestNewLogger_LevelAndEnvOverride(t *testing.T) {
	t.Setenv(LevelEnv, "")
	var buf bytes.Buffer
	l := newLogger(&buf, "paintd", "warn")
	if l.GetLevel() != zerolog.WarnLevel {
		t.Fatalf("level = %v, want warn", l.GetLevel())
	}
	l.Warn().Msg("hello")
	if !strings.Contains(buf.String(), "hello") || !strings.Contains(buf.String(), "paintd") {
		t.Fatalf("unexpected log output: %q", buf.String())
	}

	t.Setenv(LevelEnv, "debug")
	if got := newLogger(&buf, "x", "error").GetLevel(); got != zerolog.DebugLevel {
		t.Fatalf("env override ignored: %v", got)
	}

	t.Setenv(LevelEnv, "")
	if got := newLogger(&buf, "x", "loud").GetLevel(); got != zerolog.InfoLevel {
		t.Fatalf("unknown level should fall back to info, got %v", got)
	}
}

func TestMiddleware_LogsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestLogger(zerolog.New(&buf)), RequestMetricsMiddleware())
	r.GET("/tokens/:id/svg", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tokens/12/svg", nil))
	if w.Code != http.StatusTeapot {
		t.Fatalf("status = %d", w.Code)
	}
	out := buf.String()
	if !strings.Contains(out, `"path":"/tokens/:id/svg"`) || !strings.Contains(out, `"level":"warn"`) {
		t.Fatalf("unexpected log line: %s", out)
	}
}
