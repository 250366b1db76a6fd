package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleReport() *Report {
	r := New()
	r.Add(ProjectResult{Name: "zlib", Path: "/t/zlib", Status: StatusNewVersion, Current: "v1.3", Latest: "v1.3.1"})
	r.Add(ProjectResult{Name: "serde", Path: "/t/serde", Status: StatusUpdated, Current: "1.0.100", Latest: "1.0.200", Reviewer: "alice@example.com"})
	r.Add(ProjectResult{Name: "brotli", Path: "/t/brotli", Status: StatusFailed, Error: "fetch failed"})
	return r
}

func TestReport_WriteJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", "report.json")
	require.NoError(t, sampleReport().WriteJSON(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Results, 3)
	require.Equal(t, "alice@example.com", decoded.Results[1].Reviewer)
	require.Equal(t, StatusFailed, decoded.Results[2].Status)
	require.Equal(t, "fetch failed", decoded.Results[2].Error)
}

func TestReport_Render(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	sampleReport().Render(&buf)
	out := buf.String()
	require.Contains(t, out, "zlib")
	require.Contains(t, out, "v1.3.1")
	require.Contains(t, out, "alice@example.com")
	require.Contains(t, out, "1 project(s) failed")
}

func TestReport_FailureCount(t *testing.T) {
	t.Parallel()

	r := New()
	require.Zero(t, r.FailureCount())
	r.Add(ProjectResult{Status: StatusConflicted})
	require.Zero(t, r.FailureCount())
	r.Add(ProjectResult{Status: StatusFailed})
	require.Equal(t, 1, r.FailureCount())
}
