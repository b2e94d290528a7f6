package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nicenote/internal/httputil"
)

func TestRecovery_LocalizedProblem(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := Locale(Recovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set("Accept-Language", "zh-CN")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var problem map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if problem["detail"] != "服务器内部错误" {
		t.Errorf("detail = %v", problem["detail"])
	}
}

func TestRequestLogger(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	var seenID string
	h := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = httputil.GetRequestID(r)
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("generates id", func(t *testing.T) {
		logs.Reset()
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notes", nil))

		got := rec.Header().Get(RequestIDHeader)
		if got == "" || got != seenID {
			t.Errorf("header id %q, context id %q", got, seenID)
		}
		if !strings.Contains(logs.String(), `"status":418`) {
			t.Errorf("log line missing status: %s", logs.String())
		}
	})

	t.Run("reuses valid incoming id", func(t *testing.T) {
		const id = "7d444840-9dc0-11d1-b245-5ffdce74fad2"
		req := httptest.NewRequest(http.MethodGet, "/notes", nil)
		req.Header.Set(RequestIDHeader, id)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if seenID != id {
			t.Errorf("request id = %q, want %q", seenID, id)
		}
	})

	t.Run("health is not logged", func(t *testing.T) {
		logs.Reset()
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
		if logs.Len() != 0 {
			t.Errorf("unexpected log output: %s", logs.String())
		}
	})
}
