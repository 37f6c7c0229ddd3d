// Command smoke probes the public surface of a running API instance and
// reports any endpoint that fails. Intended for post-deploy checks.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"
)

type probe struct {
	Name       string
	Method     string
	Path       string
	WantStatus int
}

var probes = []probe{
	{Name: "liveness", Method: http.MethodGet, Path: "/health", WantStatus: http.StatusOK},
	{Name: "readiness", Method: http.MethodGet, Path: "/ready", WantStatus: http.StatusOK},
	{Name: "metrics", Method: http.MethodGet, Path: "/metrics", WantStatus: http.StatusOK},
	{Name: "blogs", Method: http.MethodGet, Path: "/api/blogs", WantStatus: http.StatusOK},
	{Name: "gallery", Method: http.MethodGet, Path: "/api/gallery", WantStatus: http.StatusOK},
	{Name: "services", Method: http.MethodGet, Path: "/api/services", WantStatus: http.StatusOK},
	{Name: "team", Method: http.MethodGet, Path: "/api/team", WantStatus: http.StatusOK},
	{Name: "heroes", Method: http.MethodGet, Path: "/api/heroes", WantStatus: http.StatusOK},
	{Name: "auth-guard", Method: http.MethodGet, Path: "/api/dashboard/stats", WantStatus: http.StatusUnauthorized},
}

type envelope struct {
	Success bool `json:"success"`
}

func main() {
	var (
		base    string
		timeout time.Duration
	)
	flag.StringVar(&base, "base", "http://localhost:8080", "API base URL")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	client := &http.Client{Timeout: timeout}

	failed := 0
	for _, p := range probes {
		if err := run(client, base, p); err != nil {
			fmt.Printf("FAIL %-12s %s\n", p.Name, err)
			failed++
			continue
		}
		fmt.Printf("ok   %-12s %s %s\n", p.Name, p.Method, p.Path)
	}

	if failed > 0 {
		fmt.Printf("\n%d of %d probes failed\n", failed, len(probes))
		os.Exit(1)
	}
	fmt.Printf("\nall %d probes passed\n", len(probes))
}

func run(client *http.Client, base string, p probe) error {
	req, err := http.NewRequest(p.Method, base+p.Path, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != p.WantStatus {
		return fmt.Errorf("%s %s: got status %d, want %d", p.Method, p.Path, resp.StatusCode, p.WantStatus)
	}

	// Successful API responses carry the standard envelope.
	if p.WantStatus == http.StatusOK && resp.Header.Get("Content-Type") == "application/json; charset=utf-8" {
		var env envelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			return fmt.Errorf("%s %s: decode body: %w", p.Method, p.Path, err)
		}
		if !env.Success {
			return fmt.Errorf("%s %s: envelope reports failure", p.Method, p.Path)
		}
	}
	return nil
}
