// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strings"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	token := strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))
	api := strings.TrimSpace(os.Getenv("DOMAINS_API"))
	phones := strings.TrimSpace(os.Getenv("ADMIN_PHONE_NUMBERS"))
	psk := strings.TrimSpace(os.Getenv("WP_HEALTH_CHECK_API_KEY"))
	dataDir := strings.TrimSpace(os.Getenv("DATA_DIR"))

	if token == "" {
		fail("TELEGRAM_BOT_TOKEN is empty (bot cannot poll or send alerts).")
	}
	if api == "" {
		fail("DOMAINS_API is empty (no domain list to monitor).")
	}
	if phones == "" {
		fail("ADMIN_PHONE_NUMBERS is empty (nobody can verify, alerts go nowhere).")
	}

	for _, p := range strings.Split(phones, ",") {
		p = strings.TrimSpace(p)
		if p != "" && !strings.HasPrefix(p, "+") {
			warn("phone " + p + " is missing '+'; it will be normalized, but prefer international format in .env")
		}
	}

	if psk == "" {
		warn("WP_HEALTH_CHECK_API_KEY empty — health endpoints that require a key will report unhealthy.")
	} else {
		ok("WP_HEALTH_CHECK_API_KEY present")
	}

	if dataDir == "" {
		warn("DATA_DIR empty — default ./data will be used for the ignore list and admin registry.")
	} else {
		ok("DATA_DIR=" + dataDir)
	}

	ok("preflight passed")
}
