//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"testing"
	"time"
)

var baseURL = getenv("E2E_BASE_URL", "http://localhost:8080")

func TestSystem_E2E(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	code := fmt.Sprintf("E2E%d%04d", time.Now().Unix(), rand.Intn(10000))

	var created map[string]any
	doJSON(t, http.MethodPost, baseURL+"/courses", map[string]any{
		"code":       code,
		"name":       "E2E Course",
		"instructor": "E. Tester",
		"semester":   "Fall 2026",
	}, &created, 201)

	if created["code"] != code {
		t.Fatalf("created=%#v", created)
	}

	var got map[string]any
	doJSON(t, http.MethodGet, baseURL+"/courses/"+code, nil, &got, 200)
	if got["name"] != "E2E Course" || got["instructor"] != "E. Tester" {
		t.Fatalf("got=%#v", got)
	}

	var all []map[string]any
	doJSON(t, http.MethodGet, baseURL+"/courses", nil, &all, 200)

	found := 0
	for _, c := range all {
		if c["code"] == code {
			found++
		}
	}
	if found != 1 {
		t.Fatalf("code %s appears %d times in catalog", code, found)
	}

	doJSON(t, http.MethodPost, baseURL+"/courses", map[string]any{
		"name": "No Code",
	}, nil, 400)
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}

	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := client.Do(req)
		if err == nil && resp != nil && resp.StatusCode == 200 {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("service not ready: %s", url)
}

func doJSON(t *testing.T, method, url string, body any, out any, want int) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		t.Fatalf("%s %s: status=%d want=%d", method, url, resp.StatusCode, want)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
