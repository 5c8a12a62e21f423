package viewpointapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/c360studio/sysmlstudio/viewpoint"
)

// RegisterHTTPHandlers registers all viewpoint-api HTTP handlers under the
// given prefix. The prefix should be the path segment without a trailing
// slash (e.g. "api/viewpoints"). Handlers are registered as:
//
//	GET <prefix>
//	GET <prefix>/{id}
//	GET <prefix>/{id}/types
func (c *Component) RegisterHTTPHandlers(prefix string, mux *http.ServeMux) {
	// Normalise: ensure leading slash, no trailing slash on the collection.
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	prefix = strings.TrimSuffix(prefix, "/")

	mux.HandleFunc(prefix, c.handleList)
	mux.HandleFunc(prefix+"/", c.handleByID(prefix+"/"))
}

// handleList returns the full viewpoint catalog in declaration order.
func (c *Component) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, viewpoint.All())
}

// TypesResponse is the response body for GET <prefix>/{id}/types.
type TypesResponse struct {
	NodeKinds []string `json:"nodeKinds"`
	EdgeKinds []string `json:"edgeKinds"`
}

// handleByID serves one viewpoint by id, or its available kinds under /types.
// A direct lookup of a missing id is a 404; the /types form mirrors the
// registry and degrades to empty lists.
func (c *Component) handleByID(route string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		id := strings.TrimPrefix(r.URL.Path, route)

		if rest, ok := strings.CutSuffix(id, "/types"); ok {
			nodeKinds, edgeKinds := viewpoint.AvailableTypes(rest)
			writeJSON(w, http.StatusOK, TypesResponse{NodeKinds: nodeKinds, EdgeKinds: edgeKinds})
			return
		}

		vp, ok := viewpoint.ByID(id)
		if !ok {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, vp)
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
