// Package prayer fetches the day's prayer times from the AlAdhan API.
package prayer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.aladhan.com"

// calculationMethod 12 is Union Organization islamic de France.
const calculationMethod = "12"

// Times holds one day's prayer schedule, each as a local "HH:MM" string.
type Times struct {
	Fajr    string `json:"Fajr"`
	Dhuhr   string `json:"Dhuhr"`
	Asr     string `json:"Asr"`
	Maghrib string `json:"Maghrib"`
	Isha    string `json:"Isha"`
}

// Entry is one named prayer time.
type Entry struct {
	Name string
	Time string
}

// List returns the day's prayers in chronological order, skipping any the
// API left empty.
func (t Times) List() []Entry {
	all := []Entry{
		{"Fajr", t.Fajr},
		{"Dhuhr", t.Dhuhr},
		{"Asr", t.Asr},
		{"Maghrib", t.Maghrib},
		{"Isha", t.Isha},
	}
	out := all[:0]
	for _, e := range all {
		if e.Time != "" {
			out = append(out, e)
		}
	}
	return out
}

// Next returns the first prayer of the day after the given "HH:MM" clock
// value. ok is false when the day's prayers are all past.
func (t Times) Next(clock string) (Entry, bool) {
	for _, e := range t.List() {
		if e.Time > clock {
			return e, true
		}
	}
	return Entry{}, false
}

// Client fetches prayer times for a fixed city.
type Client struct {
	baseURL string
	city    string
	country string
	http    *http.Client
}

func NewClient(city, country, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		city:    city,
		country: country,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type timingsResponse struct {
	Code int `json:"code"`
	Data struct {
		Timings Times `json:"timings"`
	} `json:"data"`
}

// Fetch returns the prayer times for the given date.
func (c *Client) Fetch(ctx context.Context, date time.Time) (Times, error) {
	q := url.Values{}
	q.Set("city", c.city)
	q.Set("country", c.country)
	q.Set("method", calculationMethod)
	u := fmt.Sprintf("%s/v1/timingsByCity/%s?%s", c.baseURL, date.Format("02-01-2006"), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Times{}, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Times{}, fmt.Errorf("fetch prayer times: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Times{}, fmt.Errorf("fetch prayer times: status %d", resp.StatusCode)
	}

	var body timingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Times{}, fmt.Errorf("decode prayer times: %w", err)
	}
	if body.Code != http.StatusOK {
		return Times{}, fmt.Errorf("fetch prayer times: api code %d", body.Code)
	}
	return body.Data.Timings, nil
}
