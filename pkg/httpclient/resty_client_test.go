package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRestyClientGetPassesHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("expected GET, got %s", r.Method)
		}
		if got := r.Header.Get("X-Test"); got != "1" {
			t.Fatalf("missing header, got %q", got)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("hello"))
	}))
	defer srv.Close()

	client := NewRestyClient(2 * time.Second)
	resp, err := client.Get(context.Background(), srv.URL, map[string]string{"X-Test": "1"})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode() != http.StatusOK {
		t.Fatalf("StatusCode = %d", resp.StatusCode())
	}
	if string(resp.Body()) != "hello" {
		t.Fatalf("Body = %q", resp.Body())
	}
}

func TestRestyClientPostSendsRawBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != "text/custom" {
			t.Fatalf("Content-Type = %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "payload" {
			t.Fatalf("body = %q", body)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewRestyClient(2 * time.Second)
	resp, err := client.Post(context.Background(), srv.URL, map[string]string{"Content-Type": "text/custom"}, []byte("payload"))
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if resp.StatusCode() != http.StatusCreated {
		t.Fatalf("StatusCode = %d", resp.StatusCode())
	}
}

func TestRestyClientDeleteSendsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Fatalf("expected DELETE, got %s", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"key":"k"}` {
			t.Fatalf("body = %q", body)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"key":"k"}`))
	}))
	defer srv.Close()

	client := NewRestyClient(2 * time.Second)
	resp, err := client.Delete(context.Background(), srv.URL, map[string]string{"Content-Type": "application/json"}, []byte(`{"key":"k"}`))
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if string(resp.Body()) != `{"key":"k"}` {
		t.Fatalf("Body = %q", resp.Body())
	}
}

func TestRestyClientSurfacesTransportErrors(t *testing.T) {
	client := NewRestyClient(500 * time.Millisecond)
	if _, err := client.Get(context.Background(), "http://127.0.0.1:1", nil); err == nil {
		t.Fatalf("expected error dialing closed port")
	}
}
