package probe

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hamed0406/domainwatch/internal/domain"
)

// healthPath is the well-known WordPress health endpoint checked at layer 2.
const healthPath = "/wp-json/wp-health-check/v1/status"

// maxHealthBody bounds how much of the health response we read.
const maxHealthBody = 64 << 10

// WPChecker runs the dual-layer check: first a plain GET against the site
// root to establish reachability, then a GET against the application health
// endpoint on the same host. Layer 2 is only attempted when layer 1 passes.
//
// No per-call retries here: the failure threshold in the tracker is the only
// retry mechanism, otherwise transient glitches would be double-counted.
type WPChecker struct {
	Client *http.Client
	APIKey string // optional pre-shared key for the health endpoint

	// schemes tried in order for the root request; the first that answers
	// with a non-error status wins and is reused for layer 2.
	schemes []string
}

func NewWPChecker(timeout time.Duration, apiKey string, verifyTLS bool) *WPChecker {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if !verifyTLS {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &WPChecker{
		Client:  &http.Client{Timeout: timeout, Transport: tr},
		APIKey:  apiKey,
		schemes: []string{"https", "http"},
	}
}

type healthBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (c *WPChecker) Check(ctx context.Context, hostname string) domain.CheckResult {
	start := time.Now()

	scheme, status, reason := c.reach(ctx, hostname)
	if scheme == "" {
		return domain.CheckResult{
			Hostname:   hostname,
			Outcome:    domain.OutcomeUnreachable,
			Reason:     reason,
			StatusCode: status,
			LatencyMS:  sinceMS(start),
			CheckedAt:  time.Now().UTC(),
		}
	}

	out := domain.CheckResult{
		Hostname:  hostname,
		Outcome:   domain.OutcomeHealthy,
		CheckedAt: time.Now().UTC(),
	}
	if code, reason, ok := c.appHealthy(ctx, scheme, hostname); !ok {
		out.Outcome = domain.OutcomeUnhealthy
		out.Reason = reason
		out.StatusCode = code
	} else {
		out.StatusCode = code
	}
	out.LatencyMS = sinceMS(start)
	return out
}

// reach is layer 1. It tries HTTPS first and falls back to plain HTTP, the
// way many fleet sites still answer only on one of the two. Redirects are
// followed by the client; any status < 400 after following counts as
// reachable. Returns the winning scheme, or "" with the failure reason.
func (c *WPChecker) reach(ctx context.Context, hostname string) (scheme string, status int, reason string) {
	for _, s := range c.schemes {
		url := s + "://" + hostname + "/"
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			reason = err.Error()
			continue
		}
		resp, err := c.Client.Do(req)
		if err != nil {
			reason = shortErr(err)
			continue
		}
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxHealthBody))
		resp.Body.Close()
		if resp.StatusCode < 400 {
			return s, resp.StatusCode, ""
		}
		status = resp.StatusCode
		reason = fmt.Sprintf("root returned %s", resp.Status)
	}
	return "", status, reason
}

// appHealthy is layer 2. Anything other than a 2xx response whose body is
// JSON with status "ok" marks the application unhealthy; this must never be
// downgraded to reachable-therefore-fine.
func (c *WPChecker) appHealthy(ctx context.Context, scheme, hostname string) (code int, reason string, ok bool) {
	url := scheme + "://" + hostname + healthPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err.Error(), false
	}
	if c.APIKey != "" {
		req.Header.Set("X-Api-Key", c.APIKey)
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return 0, "health endpoint: " + shortErr(err), false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Sprintf("health endpoint returned %s", resp.Status), false
	}

	var body healthBody
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxHealthBody)).Decode(&body); err != nil {
		return resp.StatusCode, "health endpoint: malformed body", false
	}
	if body.Status != "ok" {
		return resp.StatusCode, fmt.Sprintf("health status %q", body.Status), false
	}
	return resp.StatusCode, "", true
}

func sinceMS(t time.Time) float64 {
	return time.Since(t).Seconds() * 1000
}
