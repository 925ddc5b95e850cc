package games

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gamescape/gamescape-be/internal/models"
)

func TestSearchPassesThroughUpstreamJSON(t *testing.T) {
	var gotPath, gotQuery string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("search")
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("api key not forwarded, query = %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count":1,"results":[{"id":42,"name":"Game A"}]}`))
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, "test-key")
	raw, err := client.Search(context.Background(), "zelda", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if gotPath != "/games" {
		t.Errorf("upstream path = %q, want /games", gotPath)
	}
	if gotQuery != "zelda" {
		t.Errorf("upstream search param = %q, want zelda", gotQuery)
	}

	var decoded struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("response is not passthrough JSON: %v", err)
	}
	if decoded.Count != 1 {
		t.Errorf("count = %d, want 1", decoded.Count)
	}
}

func TestDetailUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, "test-key")
	if _, err := client.Detail(context.Background(), "42"); !errors.Is(err, models.ErrUpstream) {
		t.Errorf("Detail() error = %v, want ErrUpstream", err)
	}
}

func TestGetRetriesTransientNetworkFailure(t *testing.T) {
	attempts := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			// Kill the first connection mid-flight.
			conn, _, err := w.(http.Hijacker).Hijack()
			if err != nil {
				t.Fatalf("hijack failed: %v", err)
			}
			conn.Close()
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, "test-key")
	if _, err := client.Search(context.Background(), "zelda", 10); err != nil {
		t.Fatalf("Search() after one transient failure error = %v", err)
	}
	if attempts != 2 {
		t.Errorf("upstream saw %d attempts, want 2", attempts)
	}
}

func TestGetUnreachableUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	upstream.Close() // nothing listens anymore

	client := NewClient(upstream.URL, "test-key")
	if _, err := client.Search(context.Background(), "zelda", 10); !errors.Is(err, models.ErrUpstream) {
		t.Errorf("Search() against dead upstream error = %v, want ErrUpstream", err)
	}
}
