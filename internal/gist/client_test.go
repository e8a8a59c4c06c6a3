package gist

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchPrefersCurrentFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/gists/abc" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		io.WriteString(w, `{"files":{"deck_db.json":{"content":"old"},"deck_data.json":{"content":"new"}}}`)
	}))
	defer srv.Close()

	c := NewClient("tok", "abc", srv.URL)
	got, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got != "new" {
		t.Fatalf("payload = %q, want %q", got, "new")
	}
}

func TestFetchLegacyFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"files":{"deck_db.json":{"content":"legacy"}}}`)
	}))
	defer srv.Close()

	got, err := NewClient("tok", "abc", srv.URL).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got != "legacy" {
		t.Fatalf("payload = %q, want %q", got, "legacy")
	}
}

func TestFetchEmptyGist(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"files":{}}`)
	}))
	defer srv.Close()

	if _, err := NewClient("tok", "abc", srv.URL).Fetch(context.Background()); !errors.Is(err, ErrEmpty) {
		t.Fatalf("err = %v, want ErrEmpty", err)
	}
}

func TestUpdatePatchesPayload(t *testing.T) {
	var patched gistBody
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method = %q", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&patched); err != nil {
			t.Errorf("decode body: %v", err)
		}
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	if err := NewClient("tok", "abc", srv.URL).Update(context.Background(), "x1:payload"); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := patched.Files["deck_data.json"].Content; got != "x1:payload" {
		t.Fatalf("patched content = %q", got)
	}
}

func TestStatusErrors(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusBadGateway, ErrUnavailable},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		err := NewClient("tok", "abc", srv.URL).Validate(context.Background())
		srv.Close()
		if !errors.Is(err, tt.want) {
			t.Errorf("status %d: err = %v, want %v", tt.status, err, tt.want)
		}
	}
}
