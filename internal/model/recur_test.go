package model

import (
	"testing"
	"time"
)

func TestToggleDone_StampsCompletion(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	tasks := []Task{{ID: 1, Text: "Ship release"}}

	tasks = ToggleDone(tasks, 1, now)
	if !tasks[0].Done {
		t.Fatal("task not marked done")
	}
	if got, want := tasks[0].CompletedAt, "2024-01-01T10:00:00Z"; got != want {
		t.Fatalf("CompletedAt = %q, want %q", got, want)
	}

	tasks = ToggleDone(tasks, 1, now.Add(time.Minute))
	if tasks[0].Done || tasks[0].CompletedAt != "" {
		t.Fatalf("un-toggle left Done=%v CompletedAt=%q", tasks[0].Done, tasks[0].CompletedAt)
	}
}

func TestToggleDone_SpawnsRecurrenceSibling(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	tasks := []Task{{ID: 1, Category: CategoryLife, Text: "Water plants (10)", RecurrenceDays: 7}}

	tasks = ToggleDone(tasks, 1, now)
	if len(tasks) != 2 {
		t.Fatalf("len(tasks) = %d, want 2", len(tasks))
	}
	next := tasks[0]
	if next.Done {
		t.Fatal("spawned sibling must start open")
	}
	if next.ParentID != 1 {
		t.Fatalf("ParentID = %d, want 1", next.ParentID)
	}
	if next.NextDate != "2024-01-08" {
		t.Fatalf("NextDate = %q, want 2024-01-08", next.NextDate)
	}
	if next.Text != "Water plants (10)" || next.Category != CategoryLife || next.RecurrenceDays != 7 {
		t.Fatalf("sibling lost label/category/interval: %+v", next)
	}
	if !tasks[1].Done {
		t.Fatal("original not marked done")
	}
}

func TestToggleDone_KeepsCadenceOnLateCompletion(t *testing.T) {
	// Completed three days late; the next due date still advances from the
	// scheduled date, not from now.
	now := time.Date(2024, 1, 4, 22, 0, 0, 0, time.UTC)
	tasks := []Task{{ID: 1, Text: "Backup", RecurrenceDays: 7, NextDate: "2024-01-01", ParentID: 42}}

	tasks = ToggleDone(tasks, 1, now)
	if got := tasks[0].NextDate; got != "2024-01-08" {
		t.Fatalf("NextDate = %q, want 2024-01-08", got)
	}
	if got := tasks[0].ParentID; got != 42 {
		t.Fatalf("ParentID = %d, want chain root 42", got)
	}
}

func TestToggleDone_UnknownID(t *testing.T) {
	tasks := []Task{{ID: 1}}
	got := ToggleDone(tasks, 99, time.Now())
	if len(got) != 1 || got[0].Done {
		t.Fatalf("unknown id mutated the list: %+v", got)
	}
}
