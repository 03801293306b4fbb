package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/hamed0406/domainwatch/internal/domain"
	"github.com/hamed0406/domainwatch/internal/store/memory"
)

type fakeTracker struct{ recs []domain.Record }

func (f *fakeTracker) Snapshot() []domain.Record { return f.recs }

func TestServer_ListDomains(t *testing.T) {
	tr := &fakeTracker{recs: []domain.Record{
		{Hostname: "a.com", Status: domain.StatusUp},
		{Hostname: "b.com", Status: domain.StatusDown, ConsecutiveFailures: 5},
	}}
	s := NewServer(zap.NewNop(), tr, memory.NewIgnoreStore(), nil)
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/domains")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: %s", resp.Status)
	}

	var recs []domain.Record
	if err := json.NewDecoder(resp.Body).Decode(&recs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(recs) != 2 || recs[1].ConsecutiveFailures != 5 {
		t.Fatalf("unexpected records: %+v", recs)
	}
}

func TestServer_ListIgnored(t *testing.T) {
	ig := memory.NewIgnoreStore()
	_ = ig.Add(context.Background(), "b.com")
	s := NewServer(zap.NewNop(), &fakeTracker{}, ig, nil)
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/ignored")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	var hosts []string
	_ = json.NewDecoder(resp.Body).Decode(&hosts)
	if len(hosts) != 1 || hosts[0] != "b.com" {
		t.Fatalf("unexpected hosts: %v", hosts)
	}
}

func TestServer_APIKeyRequired(t *testing.T) {
	s := NewServer(zap.NewNop(), &fakeTracker{}, memory.NewIgnoreStore(), []string{"k1"})
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	resp, _ := http.Get(srv.URL + "/api/domains")
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %s", resp.Status)
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/domains", nil)
	req.Header.Set("X-API-Key", "k1")
	resp2, _ := http.DefaultClient.Do(req)
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with key, got %s", resp2.Status)
	}

	// healthz stays open
	resp3, _ := http.Get(srv.URL + "/healthz")
	resp3.Body.Close()
	if resp3.StatusCode != http.StatusOK {
		t.Fatalf("healthz should not require a key, got %s", resp3.Status)
	}
}
