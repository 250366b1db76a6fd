// Package report aggregates per-project outcomes of a batch run and renders
// them as a summary table and a machine-readable JSON file.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/penwyp/vendsync/ui"
)

// Status is one project's final state after a check or update.
type Status string

const (
	StatusUpToDate   Status = "up-to-date"
	StatusNewVersion Status = "new-version"
	StatusUpdated    Status = "updated"
	StatusConflicted Status = "conflicted"
	StatusFailed     Status = "failed"
)

// ProjectResult is one project's row in the report.
type ProjectResult struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Status      Status `json:"status"`
	Current     string `json:"current_version,omitempty"`
	Latest      string `json:"latest_version,omitempty"`
	Alternative string `json:"alternative_version,omitempty"`
	// Reviewer is the quota-drawn reviewer suggested for an updated
	// project's change; empty when no roster is configured.
	Reviewer string `json:"reviewer,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Report collects results across the whole batch.
type Report struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Results     []ProjectResult `json:"results"`
}

func New() *Report {
	return &Report{GeneratedAt: time.Now()}
}

func (r *Report) Add(result ProjectResult) {
	r.Results = append(r.Results, result)
}

// FailureCount returns how many projects failed outright. Conflicts do not
// count: they are terminal but human-actionable, not failures.
func (r *Report) FailureCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == StatusFailed {
			n++
		}
	}
	return n
}

// WriteJSON writes the report to path, creating parent directories.
func (r *Report) WriteJSON(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Render writes the human-readable summary table.
func (r *Report) Render(w io.Writer) {
	styles := ui.DefaultStyles()

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Project", "Status", "Current", "Latest", "Alternative", "Reviewer"})
	for _, res := range r.Results {
		status := string(res.Status)
		switch res.Status {
		case StatusUpdated, StatusUpToDate:
			status = styles.Success.Render(status)
		case StatusNewVersion:
			status = styles.Warning.Render(status)
		case StatusConflicted:
			status = styles.Warning.Render(status)
		case StatusFailed:
			status = styles.Error.Render(status)
		}
		t.AppendRow(table.Row{res.Name, status, res.Current, res.Latest, res.Alternative, res.Reviewer})
	}
	t.Render()

	if failures := r.FailureCount(); failures > 0 {
		fmt.Fprintln(w, styles.Error.Render(fmt.Sprintf("%d project(s) failed", failures)))
	}
}
