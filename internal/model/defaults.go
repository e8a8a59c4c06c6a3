package model

import "time"

// DefaultWeek is the built-in weekly budget allocation, keyed by
// time.Weekday (0 = Sunday).
var DefaultWeek = map[int]DayConfig{
	1: {Name: "MON", Label: "PHASE 1: ADMIN", Theme: "#D97706", Budgets: map[Category]float64{CategoryPro: 2, CategoryDev: 0, CategoryAssets: 4, CategoryLife: 2}},
	2: {Name: "TUE", Label: "PHASE 2: SITE", Theme: "#6366F1", Office: true, Budgets: map[Category]float64{CategoryPro: 4, CategoryDev: 0, CategoryAssets: 3, CategoryLife: 0}},
	3: {Name: "WED", Label: "PHASE 3: LOGS", Theme: "#0D9488", Budgets: map[Category]float64{CategoryPro: 1, CategoryDev: 2, CategoryAssets: 2, CategoryLife: 3}},
	4: {Name: "THU", Label: "PHASE 4: DEV", Theme: "#E11D48", Office: true, Budgets: map[Category]float64{CategoryPro: 4, CategoryDev: 4, CategoryAssets: 0, CategoryLife: 0}},
	5: {Name: "FRI", Label: "PHASE 5: CLOSE", Theme: "#7C3AED", Budgets: map[Category]float64{CategoryPro: 3, CategoryDev: 0, CategoryAssets: 1, CategoryLife: 2}},
	6: {Name: "SAT", Label: "PHASE 6: DEEP", Theme: "#0891B2", Budgets: map[Category]float64{CategoryPro: 0, CategoryDev: 6, CategoryAssets: 0, CategoryLife: 1}},
	0: {Name: "SUN", Label: "PHASE 7: RESET", Theme: "#CA8A04", Budgets: map[Category]float64{CategoryPro: 0, CategoryDev: 0, CategoryAssets: 0, CategoryLife: 2}},
}

// defaultLabels maps category keys to their display names. User-provided
// Settings.Labels entries override these.
var defaultLabels = map[string]string{
	string(CategoryPro):    "Pro",
	string(CategoryDev):    "Dev",
	string(CategoryLife):   "Life",
	string(CategoryAssets): "Assets",
	string(CategoryEstate): "Estate",
	string(CategoryRental): "Rental",
	string(CategoryHome):   "Home",
}

// Label resolves a category key to its display label using the settings
// override table, then the defaults.
func (s Settings) Label(key string) string {
	if v, ok := s.Labels[key]; ok && v != "" {
		return v
	}
	if v, ok := defaultLabels[key]; ok {
		return v
	}
	return key
}

// InitialSnapshot returns the hard-coded state used when no prior snapshot
// can be loaded.
func InitialSnapshot(now time.Time) Snapshot {
	week := make(map[int]DayConfig, len(DefaultWeek))
	for day, cfg := range DefaultWeek {
		week[day] = cfg
	}
	return Snapshot{
		LastSynced: 0,
		Tasks:      []Task{},
		Settings: Settings{
			EyeCare: true,
		},
		Agenda:       []AgendaEvent{},
		Journal:      []JournalEntry{},
		Review:       Review{},
		WeeklyConfig: week,
		Blueprint: Blueprint{
			Phase:       1,
			Week:        1,
			MRR:         "0",
			Clients:     "0",
			WeeklyTheme: "HYBRID BALANCE",
		},
		Metrics: Metrics{MRR: "0", Users: "0"},
	}
}
