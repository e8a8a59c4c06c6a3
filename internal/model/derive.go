package model

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var durationNote = regexp.MustCompile(`\((\d+)\)`)

const (
	// defaultEstimateMinutes is assumed for tasks without a "(N)" note when
	// summing budgets.
	defaultEstimateMinutes = 30
	// deepWorkMinutes is the estimate threshold for a completed task to
	// count as deep work.
	deepWorkMinutes = 15
)

// TaskMinutes extracts the estimated duration in minutes from a task label's
// inline "(N)" annotation. ok is false when the label carries no annotation.
func TaskMinutes(text string) (minutes int, ok bool) {
	m := durationNote.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// EstimateMinutes returns the task estimate with the 30-minute default
// applied.
func EstimateMinutes(text string) int {
	if n, ok := TaskMinutes(text); ok {
		return n
	}
	return defaultEstimateMinutes
}

// inCategory reports whether a task belongs to the given pillar. Asset
// sub-categories roll up into the assets pillar.
func inCategory(t Task, cat Category) bool {
	if t.Category == cat {
		return true
	}
	if cat == CategoryAssets {
		for _, sub := range AssetCategories {
			if t.Category == sub {
				return true
			}
		}
	}
	return false
}

// completedOn reports whether the task was completed on the given day.
// Tasks without a completion timestamp (bulk import) never match.
func completedOn(t Task, date string) bool {
	return t.Done && t.CompletedAt != "" && strings.HasPrefix(t.CompletedAt, date)
}

// ConsumedBudget sums the estimated hours of tasks in a pillar completed on
// the given day.
func ConsumedBudget(tasks []Task, cat Category, date string) float64 {
	minutes := 0
	for _, t := range tasks {
		if inCategory(t, cat) && completedOn(t, date) {
			minutes += EstimateMinutes(t.Text)
		}
	}
	return float64(minutes) / 60
}

// DailyScore is the percentage of starred tasks completed on the given day,
// rounded to the nearest integer. Zero when nothing is starred.
func DailyScore(tasks []Task, date string) int {
	starred, completed := 0, 0
	for _, t := range tasks {
		if !t.TodayStar {
			continue
		}
		starred++
		if completedOn(t, date) {
			completed++
		}
	}
	if starred == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(starred) * 100))
}

// DeepWorkCount counts tasks completed on the given day with an estimate of
// at least fifteen minutes.
func DeepWorkCount(tasks []Task, date string) int {
	count := 0
	for _, t := range tasks {
		if completedOn(t, date) && EstimateMinutes(t.Text) >= deepWorkMinutes {
			count++
		}
	}
	return count
}

// StreakCount counts the completed occurrences in a recurring task's chain:
// the chain root plus every task referencing it.
func StreakCount(task Task, all []Task) int {
	if task.RecurrenceDays == 0 {
		return 0
	}
	root := task.ParentID
	if root == 0 {
		root = task.ID
	}
	count := 0
	for _, t := range all {
		if (t.ID == root || t.ParentID == root) && t.Done && t.CompletedAt != "" {
			count++
		}
	}
	return count
}
