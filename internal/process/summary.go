package process

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"invoicebatch/internal/common"
)

// ItemSummary is the per-file entry in the run summary.
type ItemSummary struct {
	Path      string `json:"path"`
	Artifact  string `json:"artifact,omitempty"`
	Status    string `json:"status"` // "success", "failed" or "skipped"
	ErrorType string `json:"error_type,omitempty"`
	Error     string `json:"error,omitempty"`
	Language  string `json:"language,omitempty"`
	SizeBytes int64  `json:"size_bytes,omitempty"`
}

// RunSummary aggregates one batch run. It is reported at the end of the run
// (logged, optionally printed as JSON) and never persisted.
type RunSummary struct {
	GeneratedAt    string        `json:"generated_at"`
	TotalFiles     int           `json:"total_files"`
	Successful     int           `json:"successful"`
	Failed         int           `json:"failed"`
	Skipped        int           `json:"skipped"`
	ElapsedSeconds float64       `json:"elapsed_seconds"`
	Results        []ItemSummary `json:"results"`
}

// BuildSummary folds per-item results into the run summary.
func BuildSummary(results []Result, elapsed time.Duration) RunSummary {
	summary := RunSummary{
		GeneratedAt:    time.Now().Format(time.RFC3339),
		TotalFiles:     len(results),
		ElapsedSeconds: elapsed.Seconds(),
	}

	for _, r := range results {
		item := ItemSummary{
			Path:      r.Path,
			Artifact:  r.ArtifactPath,
			Language:  r.Language,
			SizeBytes: r.SizeBytes,
		}
		switch {
		case r.Err != nil:
			summary.Failed++
			item.Status = "failed"
			item.ErrorType = string(r.ErrorType)
			item.Error = r.Err.Error()
		case r.Skipped:
			summary.Skipped++
			item.Status = "skipped"
		default:
			summary.Successful++
			item.Status = "success"
		}
		summary.Results = append(summary.Results, item)
	}
	return summary
}

// Render writes the summary as indented JSON. fields, when non-empty, is a
// comma-separated allowlist applied to each per-file entry.
func (s RunSummary) Render(w io.Writer, fields string) error {
	if fields == "" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}

	filtered := make([]map[string]any, 0, len(s.Results))
	for _, r := range s.Results {
		filtered = append(filtered, common.FilterResultFields(r, fields))
	}
	out := map[string]any{
		"generated_at":    s.GeneratedAt,
		"total_files":     s.TotalFiles,
		"successful":      s.Successful,
		"failed":          s.Failed,
		"skipped":         s.Skipped,
		"elapsed_seconds": s.ElapsedSeconds,
		"results":         filtered,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// Tally is the one-line human report printed after every run.
func (s RunSummary) Tally() string {
	return fmt.Sprintf("processed %d file(s): %d succeeded, %d failed, %d skipped",
		s.TotalFiles, s.Successful, s.Failed, s.Skipped)
}
