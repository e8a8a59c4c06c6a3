package prayer

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/timingsByCity/05-01-2024" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("city") != "Paris" || q.Get("country") != "France" || q.Get("method") != "12" {
			t.Errorf("query = %v", q)
		}
		io.WriteString(w, `{"code":200,"data":{"timings":{"Fajr":"06:45","Dhuhr":"12:58","Asr":"14:38","Maghrib":"17:10","Isha":"18:30","Sunset":"17:10"}}}`)
	}))
	defer srv.Close()

	c := NewClient("Paris", "France", srv.URL)
	got, err := c.Fetch(context.Background(), time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got.Fajr != "06:45" || got.Isha != "18:30" {
		t.Fatalf("times = %+v", got)
	}
}

func TestFetchAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"code":400,"data":{}}`)
	}))
	defer srv.Close()

	if _, err := NewClient("X", "Y", srv.URL).Fetch(context.Background(), time.Now()); err == nil {
		t.Fatal("want error on non-200 api code")
	}
}

func TestNext(t *testing.T) {
	times := Times{Fajr: "06:45", Dhuhr: "12:58", Asr: "14:38", Maghrib: "17:10", Isha: "18:30"}
	if e, ok := times.Next("13:00"); !ok || e.Name != "Asr" {
		t.Fatalf("Next(13:00) = %+v, %v", e, ok)
	}
	if _, ok := times.Next("19:00"); ok {
		t.Fatal("Next past Isha should report no prayer")
	}
	if e, ok := times.Next("00:00"); !ok || e.Name != "Fajr" {
		t.Fatalf("Next(00:00) = %+v, %v", e, ok)
	}
}
