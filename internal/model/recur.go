package model

import "time"

// ToggleDone flips a task's completion flag in place. Completing stamps
// CompletedAt; un-completing clears it. When a recurring task transitions to
// completed, one new sibling is prepended to the list, carrying forward
// category, label and interval, with its due date advanced by the interval
// from the previous due date (or from now when none was set). The sibling
// always references the chain root so streaks stay countable.
func ToggleDone(tasks []Task, id int64, now time.Time) []Task {
	idx := -1
	for i := range tasks {
		if tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return tasks
	}

	t := &tasks[idx]
	if t.Done {
		t.Done = false
		t.CompletedAt = ""
		return tasks
	}
	t.Done = true
	t.CompletedAt = now.Format(time.RFC3339)

	if t.RecurrenceDays <= 0 {
		return tasks
	}

	next := nextDueDate(t.NextDate, t.RecurrenceDays, now)
	root := t.ParentID
	if root == 0 {
		root = t.ID
	}
	sibling := Task{
		ID:             NewID(now),
		Category:       t.Category,
		Text:           t.Text,
		Priority:       t.Priority,
		CreatedAt:      now.Format(time.RFC3339),
		RecurrenceDays: t.RecurrenceDays,
		NextDate:       next,
		ParentID:       root,
	}
	return append([]Task{sibling}, tasks...)
}

// nextDueDate anchors on the previous due date when one exists; a late
// completion therefore keeps the original cadence rather than sliding.
func nextDueDate(prev string, intervalDays int, now time.Time) string {
	base := now
	if prev != "" {
		if d, err := time.ParseInLocation("2006-01-02", prev, now.Location()); err == nil {
			base = d
		}
	}
	return DateOf(base.AddDate(0, 0, intervalDays))
}
