package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/buemura/reconbox/internal/scanner"
)

const maxConcurrency = 64

// CreateScanRequest is the JSON body for POST /api/v1/scans.
type CreateScanRequest struct {
	Target      string   `json:"target"`
	Scanners    []string `json:"scanners"`
	Concurrency int      `json:"concurrency"`
	Timeout     string   `json:"timeout"`
	FailFast    bool     `json:"fail_fast"`
}

// decodeCreateScanRequest reads and validates the request body.
func decodeCreateScanRequest(r *http.Request) (*CreateScanRequest, error) {
	var req CreateScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	req.Target = strings.TrimSpace(req.Target)
	if req.Target == "" {
		return nil, fmt.Errorf("target is required")
	}

	if req.Concurrency < 0 || req.Concurrency > maxConcurrency {
		return nil, fmt.Errorf("concurrency must be between 0 and %d", maxConcurrency)
	}

	if req.Timeout != "" {
		d, err := time.ParseDuration(req.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", req.Timeout, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("timeout must not be negative")
		}
	}

	return &req, nil
}

// scannerIDs resolves the requested scanners. An empty list or ["all"]
// selects the whole catalog.
func (req *CreateScanRequest) scannerIDs() ([]scanner.ID, error) {
	if len(req.Scanners) == 0 || (len(req.Scanners) == 1 && req.Scanners[0] == "all") {
		return scanner.IDs(), nil
	}
	return scanner.ParseIDs(req.Scanners)
}

// options builds runner options on top of the server defaults.
func (req *CreateScanRequest) options(defaults scanner.Options) scanner.Options {
	opts := defaults
	if req.Concurrency > 0 {
		opts.Concurrency = req.Concurrency
	}
	if req.Timeout != "" {
		opts.Timeout, _ = time.ParseDuration(req.Timeout) // already validated
	}
	opts.FailFast = req.FailFast
	return opts
}
