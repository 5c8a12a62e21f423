package diagramapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/c360studio/sysmlstudio/graph"
	"github.com/c360studio/sysmlstudio/storage"
)

// maxRequestBodySize limits PUT body sizes to prevent DoS.
const maxRequestBodySize = 1 << 20 // 1 MB

// RegisterHTTPHandlers registers all diagram-api HTTP handlers under the
// given prefix. The prefix should be the path segment without a trailing
// slash (e.g. "api/diagram"). Handlers are registered as:
//
//	GET <prefix>/view/{viewpointID}
//	PUT <prefix>/layout/{elementID}
func (c *Component) RegisterHTTPHandlers(prefix string, mux *http.ServeMux) {
	// Normalise: ensure leading slash and trailing slash.
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix = prefix + "/"
	}

	mux.HandleFunc(prefix+"view/", c.handleView(prefix+"view/"))
	mux.HandleFunc(prefix+"layout/", c.handleLayout(prefix+"layout/"))
}

// ----------------------------------------------------------------------------
// GET /api/diagram/view/{viewpointID}
// ----------------------------------------------------------------------------

// handleView returns the renderable subgraph for one viewpoint. Unknown
// viewpoint ids yield an empty result, matching the registry's behavior.
func (c *Component) handleView(route string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		viewpointID := strings.TrimPrefix(r.URL.Path, route)
		if viewpointID == "" || strings.Contains(viewpointID, "/") {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}

		view, err := c.store.Subgraph(r.Context(), viewpointID)
		if err != nil {
			c.logger.Error("Subgraph failed", "viewpoint", viewpointID, "error", err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, view)
	}
}

// ----------------------------------------------------------------------------
// PUT /api/diagram/layout/{elementID}
// ----------------------------------------------------------------------------

// LayoutRequest is the request body for PUT /api/diagram/layout/{elementID}.
type LayoutRequest struct {
	ViewpointID string         `json:"viewpoint_id"`
	Position    graph.Position `json:"position"`
}

// handleLayout persists one element's diagram position in one viewpoint.
func (c *Component) handleLayout(route string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		elementID := strings.TrimPrefix(r.URL.Path, route)
		if elementID == "" || strings.Contains(elementID, "/") {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var req LayoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.ViewpointID == "" {
			http.Error(w, "viewpoint_id is required", http.StatusBadRequest)
			return
		}

		err := c.store.UpdateLayout(r.Context(), elementID, req.ViewpointID, req.Position)
		switch {
		case err == nil:
			w.WriteHeader(http.StatusNoContent)
		case errors.Is(err, storage.ErrUnknownViewpoint):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "Not found", http.StatusNotFound)
		default:
			c.logger.Error("Layout update failed",
				"element_id", elementID,
				"viewpoint", req.ViewpointID,
				"error", err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
		}
	}
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Response is already partially written; nothing useful to do.
		_ = err
	}
}
