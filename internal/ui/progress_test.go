package ui

import (
	"testing"

	"runefmt/internal/driver"
)

func TestStatusLabel(t *testing.T) {
	cases := []struct {
		status driver.EventStatus
		want   string
	}{
		{driver.StatusQueued, "queued"},
		{driver.StatusWorking, "formatting"},
		{driver.StatusDone, "reformatted"},
		{driver.StatusUnchanged, "unchanged"},
		{driver.StatusError, "error"},
	}
	for _, tc := range cases {
		if got := statusLabel(tc.status); got != tc.want {
			t.Errorf("statusLabel(%d) = %q, want %q", tc.status, got, tc.want)
		}
	}
}

func TestTruncateKeepsShortPaths(t *testing.T) {
	if got := truncate("src/main.rn", 40); got != "src/main.rn" {
		t.Errorf("truncate() = %q, want unchanged", got)
	}
}

func TestTruncateAddsEllipsis(t *testing.T) {
	got := truncate("very/long/nested/path/to/module.rn", 12)
	if len(got) > 12 {
		t.Errorf("truncate() = %q, longer than width", got)
	}
	if got[len(got)-3:] != "..." {
		t.Errorf("truncate() = %q, want ... suffix", got)
	}
}

func TestProgressFractionCountsFinishedFiles(t *testing.T) {
	events := make(chan driver.Event)
	model := NewProgressModel("runefmt", []string{"a.rn", "b.rn"}, events).(*progressModel)

	model.applyEvent(driver.Event{File: "a.rn", Status: driver.StatusDone})
	if model.items[0].status != "reformatted" {
		t.Errorf("items[0].status = %q, want reformatted", model.items[0].status)
	}
	if model.items[1].status != "queued" {
		t.Errorf("items[1].status = %q, want queued", model.items[1].status)
	}

	model.applyEvent(driver.Event{File: "b.rn", Status: driver.StatusError})
	if model.items[1].status != "error" {
		t.Errorf("items[1].status = %q, want error", model.items[1].status)
	}

	// события про неизвестные файлы игнорируются
	model.applyEvent(driver.Event{File: "ghost.rn", Status: driver.StatusDone})
	if len(model.items) != 2 {
		t.Fatalf("items grew to %d", len(model.items))
	}
}
