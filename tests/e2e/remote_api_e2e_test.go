//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

func TestRemoteAPI_NavigationFlow(t *testing.T) {
	baseURL := strings.TrimRight(envOr("E2E_BASE_URL", "http://localhost:8080"), "/")
	client := &http.Client{Timeout: 20 * time.Second}

	t.Run("start and step categories", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/nav/start", nil)
		if status != http.StatusOK {
			t.Fatalf("start status=%d body=%s", status, string(body))
		}
		var resp map[string]any
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal start: %v body=%s", err, string(body))
		}
		if active, _ := asMap(resp["cursor"])["active"].(bool); !active {
			t.Fatalf("expected an active cursor, got %v", resp["cursor"])
		}

		status, body = mustJSON(t, client, http.MethodPost, baseURL+"/api/nav/category/next", nil)
		if status != http.StatusOK {
			t.Fatalf("category/next status=%d body=%s", status, string(body))
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal category step: %v", err)
		}
		name, _ := asMap(resp["cursor"])["category_name"].(string)
		if strings.TrimSpace(name) == "" {
			t.Fatalf("expected a category name, got %v", resp["cursor"])
		}
		announcements, _ := resp["announcements"].([]any)
		if len(announcements) == 0 {
			t.Fatalf("category step produced no announcements: %v", resp)
		}
	})

	t.Run("read and cursor", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/nav/read", nil)
		if status != http.StatusOK {
			t.Fatalf("read status=%d body=%s", status, string(body))
		}

		status, body, err := doRequest(client, http.MethodGet, baseURL+"/api/nav/cursor", nil)
		if err != nil {
			t.Fatalf("cursor request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("cursor status=%d body=%s", status, string(body))
		}
		var cursor map[string]any
		if err := json.Unmarshal(body, &cursor); err != nil {
			t.Fatalf("unmarshal cursor: %v body=%s", err, string(body))
		}
		if _, ok := cursor["category_index"]; !ok {
			t.Fatalf("cursor missing category_index: %v", cursor)
		}
	})

	t.Run("camera and ops", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/camera", map[string]any{
			"x": 2, "y": 3, "facing_mode": true,
		})
		if status != http.StatusOK {
			t.Fatalf("camera status=%d body=%s", status, string(body))
		}

		status, body, err := doRequest(client, http.MethodGet, baseURL+"/ops/metrics", nil)
		if err != nil {
			t.Fatalf("metrics request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("metrics status=%d body=%s", status, string(body))
		}
		var snap map[string]any
		if err := json.Unmarshal(body, &snap); err != nil {
			t.Fatalf("unmarshal metrics: %v body=%s", err, string(body))
		}
		if asMap(snap["commands"]) == nil {
			t.Fatalf("metrics missing command counts: %v", snap)
		}
	})
}

func mustJSON(t *testing.T, client *http.Client, method, url string, payload any) (int, []byte) {
	t.Helper()
	status, body, err := doRequest(client, method, url, payload)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return status, body
}

func doRequest(client *http.Client, method, url string, payload any) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		reqBody = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return 0, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func envOr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
