package web

import (
	"encoding/json"
	"net/http"

	"github.com/buemura/reconbox/internal/web/api"
	"github.com/go-chi/chi/v5"
)

// registerRoutes mounts all route groups on the server's router.
func (s *Server) registerRoutes() {
	apiHandlers := api.NewHandlers(s.manager, s.defaults)

	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/scanners", apiHandlers.ListScanners)
		r.Post("/scans", apiHandlers.CreateScan)
		r.Get("/scans", apiHandlers.ListScans)
		r.Get("/scans/{id}", apiHandlers.GetScan)
		r.Get("/scans/{id}/report", apiHandlers.GetScanReport)
		r.Delete("/scans/{id}", apiHandlers.DeleteScan)
	})
}

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
