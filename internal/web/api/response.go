package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/buemura/reconbox/internal/scanner"
	"github.com/buemura/reconbox/internal/web/jobs"
)

// ErrorResponse is the standard error JSON body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// ScannerInfo describes a catalog entry.
type ScannerInfo struct {
	Name        string `json:"name"`
	Executable  string `json:"executable"`
	Template    string `json:"template"`
	Input       string `json:"input"`
	Description string `json:"description"`
	Homepage    string `json:"homepage"`
	Installed   bool   `json:"installed"`
}

func newScannerInfo(spec scanner.Spec) ScannerInfo {
	_, err := spec.LookPath()
	return ScannerInfo{
		Name:        spec.ID.String(),
		Executable:  spec.Executable,
		Template:    spec.Template(),
		Input:       spec.Input(),
		Description: spec.Description,
		Homepage:    spec.Homepage,
		Installed:   err == nil,
	}
}

// ScanSummary is the list view of a job.
type ScanSummary struct {
	ID        string           `json:"id"`
	Target    string           `json:"target"`
	Status    jobs.JobStatus   `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	Scanners  []string         `json:"scanners"`
	Progress  jobs.JobProgress `json:"progress"`
	LineCount int              `json:"line_count"`
}

func newScanSummary(j jobs.Job) ScanSummary {
	return ScanSummary{
		ID:        j.ID,
		Target:    j.Target.URL,
		Status:    j.Status,
		CreatedAt: j.CreatedAt,
		Scanners:  j.ScannerNames(),
		Progress:  j.Progress,
		LineCount: j.LineCount(),
	}
}

// ScanDetail is the full view of a job.
type ScanDetail struct {
	jobs.Job
	Scanners []string `json:"scanners"`
}

// writeJSON encodes data as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Code: status})
}
