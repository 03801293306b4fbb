// watchctl prints the watcher's current view of the fleet from the status API.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
)

type record struct {
	Hostname            string `json:"hostname"`
	Status              string `json:"status"`
	ConsecutiveFailures int    `json:"consecutive_failures"`
	LastReason          string `json:"last_reason"`
}

func main() {
	api := os.Getenv("API_BASE")
	if api == "" {
		api = "http://localhost:8080"
	}

	req, _ := http.NewRequest(http.MethodGet, api+"/api/domains", nil)
	if key := os.Getenv("API_KEY"); key != "" {
		req.Header.Set("X-API-Key", key)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error contacting API:", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintln(os.Stderr, "API returned status:", resp.Status)
		os.Exit(1)
	}

	var recs []record
	if err := json.NewDecoder(resp.Body).Decode(&recs); err != nil {
		fmt.Fprintln(os.Stderr, "decode:", err)
		os.Exit(1)
	}

	if len(recs) == 0 {
		fmt.Println("no domains tracked yet")
		return
	}
	for _, r := range recs {
		line := fmt.Sprintf("%-40s %-8s fails=%d", r.Hostname, r.Status, r.ConsecutiveFailures)
		if r.LastReason != "" {
			line += "  (" + r.LastReason + ")"
		}
		fmt.Println(line)
	}
}
