// Package source fetches the fleet's domain list from the configured
// endpoint. The endpoint returns a JSON array of hostnames; anything else is
// an error and the scheduler skips that cycle.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type Source interface {
	Fetch(ctx context.Context) ([]string, error)
}

type HTTP struct {
	URL    string
	Client *http.Client
}

func NewHTTP(url string, timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTP{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

func (s *HTTP) Fetch(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch domain list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch domain list: %s", resp.Status)
	}

	var raw []string
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("fetch domain list: decode: %w", err)
	}

	out := make([]string, 0, len(raw))
	for _, h := range raw {
		h = strings.TrimSpace(h)
		if h != "" {
			out = append(out, h)
		}
	}
	return out, nil
}
