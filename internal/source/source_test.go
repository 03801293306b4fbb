package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTP_FetchOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["a.com", " b.com ", ""]`))
	}))
	defer srv.Close()

	s := NewHTTP(srv.URL, 2*time.Second)
	got, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 2 || got[0] != "a.com" || got[1] != "b.com" {
		t.Fatalf("unexpected list: %v", got)
	}
}

func TestHTTP_FetchNon200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewHTTP(srv.URL, 2*time.Second)
	if _, err := s.Fetch(context.Background()); err == nil {
		t.Fatalf("expected error on 502")
	}
}

func TestHTTP_FetchMalformedIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"a list"}`))
	}))
	defer srv.Close()

	s := NewHTTP(srv.URL, 2*time.Second)
	if _, err := s.Fetch(context.Background()); err == nil {
		t.Fatalf("expected error on malformed body")
	}
}
