// Package model defines the opsdeck application state: the Snapshot that is
// persisted locally and mirrored to the remote blob, plus the pure
// derivations computed from it.
package model

import (
	"sync/atomic"
	"time"
)

// Category partitions tasks by life domain. The four pillars carry hour
// budgets; the asset sub-categories roll up into the assets pillar.
type Category string

const (
	CategoryPro    Category = "pro"
	CategoryDev    Category = "dev"
	CategoryLife   Category = "life"
	CategoryAssets Category = "assets"

	CategoryEstate Category = "estate"
	CategoryRental Category = "rental"
	CategoryHome   Category = "home"
)

// Pillars lists the budgeted categories in display order.
var Pillars = []Category{CategoryPro, CategoryDev, CategoryAssets, CategoryLife}

// AssetCategories are the sub-categories that roll up into CategoryAssets.
var AssetCategories = []Category{CategoryEstate, CategoryRental, CategoryHome}

// Priority is a task's priority tier.
type Priority string

const (
	PriorityHigh   Priority = "H"
	PriorityMedium Priority = "M"
	PriorityLow    Priority = "L"
)

// Task is a unit of work. The label may embed an estimated duration in
// minutes using the inline "(N)" notation.
type Task struct {
	ID        int64    `json:"id"`
	Category  Category `json:"category"`
	Text      string   `json:"text"`
	Done      bool     `json:"done"`
	Priority  Priority `json:"priority"`
	TodayStar bool     `json:"todayStar"`
	CreatedAt string   `json:"createdAt"`
	// CompletedAt is set only when Done flips false to true through the
	// normal toggle path. Tasks imported in bulk arrive without it and are
	// excluded from the day's metrics.
	CompletedAt string `json:"completedAt,omitempty"`
	Column      int    `json:"column,omitempty"`

	RecurrenceDays int    `json:"recurrenceDays,omitempty"`
	NextDate       string `json:"nextDate,omitempty"` // YYYY-MM-DD
	ParentID       int64  `json:"parentId,omitempty"` // recurrence chain root
}

// AgendaEvent is a scheduled point-in-time item.
type AgendaEvent struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	Date           string `json:"date"` // YYYY-MM-DD
	Time           string `json:"time"` // HH:MM
	Duration       int    `json:"duration"` // minutes
	Kind           string `json:"kind,omitempty"`
	Important      bool   `json:"important"`
	PrivateCreated bool   `json:"privateCreated,omitempty"`
}

// Settings is the configuration bag carried inside the Snapshot.
type Settings struct {
	Token  string `json:"token,omitempty"`
	BlobID string `json:"blobId,omitempty"`

	PrivateMode bool `json:"privateMode"`
	EyeCare     bool `json:"eyeCare"`
	CrisisMode  bool `json:"crisisMode"`

	UserName string            `json:"userName,omitempty"`
	Labels   map[string]string `json:"labels,omitempty"`
}

// HasCredentials reports whether the remote store can be reached.
func (s Settings) HasCredentials() bool {
	return s.Token != "" && s.BlobID != ""
}

// JournalEntry is a timestamped free-text note.
type JournalEntry struct {
	Time string `json:"time"`
	Date string `json:"date"`
	Text string `json:"text"`
}

// Review holds the weekly retrospective.
type Review struct {
	Win      string `json:"win"`
	Fail     string `json:"fail"`
	Priority string `json:"priority"`
	Energy   int    `json:"energy,omitempty"` // 1-5
	Focus    int    `json:"focus,omitempty"`  // 1-5
}

// Metrics holds headline numbers shown on the dashboard.
type Metrics struct {
	MRR   string `json:"mrr"`
	Users string `json:"users"`
}

// Blueprint is the long-range operating plan.
type Blueprint struct {
	Phase       int    `json:"phase"`
	Week        int    `json:"week"`
	MRR         string `json:"mrr"`
	Clients     string `json:"clients"`
	Principles  string `json:"principles"`
	WeeklyTheme string `json:"weeklyTheme"`
}

// DayConfig is one weekday's theme and per-pillar hour budgets.
type DayConfig struct {
	Name    string               `json:"name"`
	Label   string               `json:"label"`
	Theme   string               `json:"theme"`
	Office  bool                 `json:"office"`
	Budgets map[Category]float64 `json:"budgets"`
}

// DayScore records one day's completion score.
type DayScore struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
}

// Snapshot is the complete application state at a point in time. LastSynced
// is a wall-clock millisecond timestamp acting as the logical clock for
// last-writer-wins conflict resolution; UpdatedBy identifies the session
// that produced the snapshot.
type Snapshot struct {
	UpdatedBy  string `json:"updatedBy,omitempty"`
	LastSynced int64  `json:"lastSynced"`

	Tasks        []Task            `json:"tasks"`
	Settings     Settings          `json:"settings"`
	Agenda       []AgendaEvent     `json:"agenda"`
	Journal      []JournalEntry    `json:"journal"`
	Review       Review            `json:"review"`
	DailyScores  []DayScore        `json:"dailyScores,omitempty"`
	WeeklyConfig map[int]DayConfig `json:"weeklyConfig"`
	Blueprint    Blueprint         `json:"blueprint"`
	Context      string            `json:"context"`
	Metrics      Metrics           `json:"metrics"`
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	dup := s
	dup.Tasks = append([]Task(nil), s.Tasks...)
	dup.Agenda = append([]AgendaEvent(nil), s.Agenda...)
	dup.Journal = append([]JournalEntry(nil), s.Journal...)
	dup.DailyScores = append([]DayScore(nil), s.DailyScores...)
	if s.Settings.Labels != nil {
		dup.Settings.Labels = make(map[string]string, len(s.Settings.Labels))
		for k, v := range s.Settings.Labels {
			dup.Settings.Labels[k] = v
		}
	}
	if s.WeeklyConfig != nil {
		dup.WeeklyConfig = make(map[int]DayConfig, len(s.WeeklyConfig))
		for day, cfg := range s.WeeklyConfig {
			if cfg.Budgets != nil {
				budgets := make(map[Category]float64, len(cfg.Budgets))
				for cat, hours := range cfg.Budgets {
					budgets[cat] = hours
				}
				cfg.Budgets = budgets
			}
			dup.WeeklyConfig[day] = cfg
		}
	}
	return dup
}

// DayConfigFor returns the configuration for a weekday (time.Weekday
// numbering), falling back to the built-in defaults.
func (s Snapshot) DayConfigFor(day int) DayConfig {
	if cfg, ok := s.WeeklyConfig[day]; ok {
		return cfg
	}
	return DefaultWeek[day]
}

var lastID atomic.Int64

// NewID returns a unique, creation-order-biased task identifier. IDs are
// millisecond timestamps, bumped when two are minted within the same
// millisecond.
func NewID(now time.Time) int64 {
	id := now.UnixMilli()
	for {
		prev := lastID.Load()
		if id <= prev {
			id = prev + 1
		}
		if lastID.CompareAndSwap(prev, id) {
			return id
		}
	}
}

// DateOf formats a time as the YYYY-MM-DD day key used throughout the
// snapshot.
func DateOf(t time.Time) string {
	return t.Format("2006-01-02")
}
