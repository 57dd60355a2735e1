package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cooperage-labs/visionpipe/internal/monitoring"
)

func TestMain(m *testing.M) {
	monitoring.SetLogger(nil)
	m.Run()
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]int{"count": 42})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type = %s, want application/json", ct)
	}
	var resp map[string]int
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["count"] != 42 {
		t.Errorf("count = %d, want 42", resp["count"])
	}
}

func TestErrorHelpers(t *testing.T) {
	cases := []struct {
		name   string
		write  func(w http.ResponseWriter)
		status int
		msg    string
	}{
		{"bad request", func(w http.ResponseWriter) { BadRequest(w, "invalid size") }, http.StatusBadRequest, "invalid size"},
		{"not found", func(w http.ResponseWriter) { NotFound(w, "no runs") }, http.StatusNotFound, "no runs"},
		{"internal", func(w http.ResponseWriter) { InternalServerError(w, "boom") }, http.StatusInternalServerError, "boom"},
		{"method", MethodNotAllowed, http.StatusMethodNotAllowed, "method not allowed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tc.write(rec)
			if rec.Code != tc.status {
				t.Errorf("status = %d, want %d", rec.Code, tc.status)
			}
			var resp map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp["error"] != tc.msg {
				t.Errorf("error = %q, want %q", resp["error"], tc.msg)
			}
		})
	}
}

func TestDecodeJSONBody(t *testing.T) {
	type payload struct {
		Size int `json:"size"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"size":256}`))
	var p payload
	if err := DecodeJSONBody(req, &p); err != nil {
		t.Fatalf("decode valid body: %v", err)
	}
	if p.Size != 256 {
		t.Errorf("size = %d, want 256", p.Size)
	}
}

func TestDecodeJSONBodyEmptyBody(t *testing.T) {
	type payload struct {
		Size int `json:"size"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	p := payload{Size: 128}
	if err := DecodeJSONBody(req, &p); err != nil {
		t.Fatalf("empty body should not error: %v", err)
	}
	if p.Size != 128 {
		t.Errorf("empty body modified dst: size = %d", p.Size)
	}
}

func TestDecodeJSONBodyMalformed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"size":`))
	var p struct{}
	if err := DecodeJSONBody(req, &p); err == nil {
		t.Fatal("malformed JSON accepted")
	}
}
