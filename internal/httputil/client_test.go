package httputil

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
)

func TestGetJSON_DecodesAndSendsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-RapidAPI-Key"); got != "secret" {
			t.Errorf("X-RapidAPI-Key = %q", got)
		}
		if got := r.Header.Get("X-RapidAPI-Host"); got != "example.p.rapidapi.com" {
			t.Errorf("X-RapidAPI-Host = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"OK","count":3}`))
	}))
	defer srv.Close()

	var out struct {
		Status string `json:"status"`
		Count  int    `json:"count"`
	}
	err := GetJSON(context.Background(), srv.Client(), srv.URL, RapidAPIHeaders("secret", "example.p.rapidapi.com"), &out)
	if err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if out.Status != "OK" || out.Count != 3 {
		t.Errorf("decoded %+v", out)
	}
}

func TestGetJSON_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	var out map[string]interface{}
	err := GetJSON(context.Background(), srv.Client(), srv.URL, nil, &out)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status = %d", statusErr.StatusCode)
	}
	if !strings.Contains(statusErr.Body, "quota exceeded") {
		t.Errorf("body = %q", statusErr.Body)
	}
}

func TestGetJSON_Malformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	var out map[string]interface{}
	if err := GetJSON(context.Background(), srv.Client(), srv.URL, nil, &out); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestPostJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"model":"m1"`) {
			t.Errorf("body = %s", body)
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	var out struct {
		OK bool `json:"ok"`
	}
	err := PostJSON(context.Background(), srv.Client(), srv.URL, BearerHeaders("tok"), map[string]string{"model": "m1"}, &out)
	if err != nil {
		t.Fatalf("PostJSON: %v", err)
	}
	if !out.OK {
		t.Error("expected ok=true")
	}
}

func TestReadBody(t *testing.T) {
	payload := `{"hello":"world"}`

	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	gw.Write([]byte(payload))
	gw.Close()

	var br bytes.Buffer
	bw := brotli.NewWriter(&br)
	bw.Write([]byte(payload))
	bw.Close()

	tests := []struct {
		name     string
		encoding string
		body     []byte
	}{
		{"identity", "", []byte(payload)},
		{"gzip", "gzip", gz.Bytes()},
		{"brotli", "br", br.Bytes()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{
				Header: http.Header{},
				Body:   io.NopCloser(bytes.NewReader(tt.body)),
			}
			if tt.encoding != "" {
				resp.Header.Set("Content-Encoding", tt.encoding)
			}
			got, err := ReadBody(resp)
			if err != nil {
				t.Fatalf("ReadBody: %v", err)
			}
			if string(got) != payload {
				t.Errorf("got %q", got)
			}
		})
	}
}

func TestTransport_SetsUserAgentAndLimitsPerHost(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	tr := NewTransport(http.DefaultTransport, 100, 2)
	client := NewHTTPClient(tr)

	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	resp.Body.Close()

	if gotUA != DefaultUserAgent {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if req.Header.Get("User-Agent") != "" {
		t.Error("transport mutated the caller's request")
	}
	if len(tr.limiters) != 1 {
		t.Errorf("expected one limiter, got %d", len(tr.limiters))
	}
}

func TestTransport_CancelledContext(t *testing.T) {
	tr := NewTransport(http.DefaultTransport, 0.001, 1)
	// Drain the single token so the next call has to wait.
	tr.limiter("example.invalid").Allow()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, "http://example.invalid/", nil)
	if _, err := tr.RoundTrip(req); err == nil {
		t.Fatal("expected rate limiter error on cancelled context")
	}
}
