package api

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/buemura/reconbox/internal/output"
	"github.com/buemura/reconbox/internal/scanner"
	"github.com/buemura/reconbox/internal/web/jobs"
	"github.com/buemura/reconbox/pkg/types"
	"github.com/go-chi/chi/v5"
)

// Handlers holds dependencies for the REST API handlers.
type Handlers struct {
	Manager  *jobs.Manager
	Defaults scanner.Options
}

// NewHandlers creates API handlers with the given dependencies. defaults
// seed the options of every scan request.
func NewHandlers(manager *jobs.Manager, defaults scanner.Options) *Handlers {
	return &Handlers{Manager: manager, Defaults: defaults}
}

// ListScanners handles GET /api/v1/scanners.
func (h *Handlers) ListScanners(w http.ResponseWriter, r *http.Request) {
	specs := h.Manager.Runner().Registry().All()
	infos := make([]ScannerInfo, len(specs))
	for i, spec := range specs {
		infos[i] = newScannerInfo(spec)
	}
	writeJSON(w, http.StatusOK, infos)
}

// CreateScan handles POST /api/v1/scans.
func (h *Handlers) CreateScan(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCreateScanRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	target, err := types.ParseTarget(req.Target)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid target: "+err.Error())
		return
	}

	ids, err := req.scannerIDs()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	job := h.Manager.Create(target, ids, req.options(h.Defaults))
	if err := h.Manager.Start(job.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to start scan: "+err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":       job.ID,
		"status":   jobs.StatusRunning,
		"scanners": job.ScannerNames(),
	})
}

// ListScans handles GET /api/v1/scans.
func (h *Handlers) ListScans(w http.ResponseWriter, r *http.Request) {
	jobList := h.Manager.List()
	summaries := make([]ScanSummary, len(jobList))
	for i, j := range jobList {
		summaries[i] = newScanSummary(j)
	}
	writeJSON(w, http.StatusOK, summaries)
}

// GetScan handles GET /api/v1/scans/{id}.
func (h *Handlers) GetScan(w http.ResponseWriter, r *http.Request) {
	job, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ScanDetail{Job: job, Scanners: job.ScannerNames()})
}

// GetScanReport handles GET /api/v1/scans/{id}/report.
func (h *Handlers) GetScanReport(w http.ResponseWriter, r *http.Request) {
	job, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if !job.Status.Done() {
		writeError(w, http.StatusConflict, "scan is not yet finished")
		return
	}

	formatter := &output.HTMLFormatter{}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, job.Invocations); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render report: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// DeleteScan handles DELETE /api/v1/scans/{id}. A running scan is cancelled
// before it is removed.
func (h *Handlers) DeleteScan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Manager.Delete(id); err != nil {
		h.writeLookupError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) lookup(w http.ResponseWriter, r *http.Request) (jobs.Job, bool) {
	job, err := h.Manager.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.writeLookupError(w, err)
		return jobs.Job{}, false
	}
	return job, true
}

func (h *Handlers) writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, jobs.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
