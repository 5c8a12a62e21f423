package modelapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/c360studio/sysmlstudio/graph"
	"github.com/c360studio/sysmlstudio/storage"
)

// maxRequestBodySize limits POST body sizes to prevent DoS.
const maxRequestBodySize = 1 << 20 // 1 MB

// RegisterHTTPHandlers registers all model-api HTTP handlers under the given
// prefix. The prefix should be the path segment without a trailing slash
// (e.g. "api/model"). Handlers are registered as:
//
//	GET    <prefix>/elements
//	POST   <prefix>/elements
//	GET    <prefix>/elements/{id}
//	PATCH  <prefix>/elements/{id}
//	DELETE <prefix>/elements/{id}
//	POST   <prefix>/relationships
//	DELETE <prefix>/relationships/{id}
func (c *Component) RegisterHTTPHandlers(prefix string, mux *http.ServeMux) {
	// Normalise: ensure leading slash and trailing slash.
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix = prefix + "/"
	}

	mux.HandleFunc(prefix+"elements", c.handleElements)
	mux.HandleFunc(prefix+"elements/", c.handleElementByID(prefix+"elements/"))
	mux.HandleFunc(prefix+"relationships", c.handleRelationships)
	mux.HandleFunc(prefix+"relationships/", c.handleRelationshipByID(prefix+"relationships/"))
}

// ----------------------------------------------------------------------------
// GET/POST /api/model/elements
// ----------------------------------------------------------------------------

// CreateElementRequest is the request body for POST /api/model/elements.
type CreateElementRequest struct {
	// Kind is the kebab-case element kind. Must be declared by a viewpoint.
	Kind string `json:"kind"`

	// Spec carries the element fields. A missing id is generated.
	Spec graph.ElementSpec `json:"spec"`
}

func (c *Component) handleElements(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		c.listElements(w, r)
	case http.MethodPost:
		c.createElement(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// listElements returns all elements, optionally filtered to one viewpoint
// via ?viewpoint=<id>.
func (c *Component) listElements(w http.ResponseWriter, r *http.Request) {
	viewpointID := r.URL.Query().Get("viewpoint")

	elements, err := c.store.ListElements(r.Context(), viewpointID)
	if err != nil {
		c.writeStoreError(w, "List elements", err)
		return
	}

	writeJSON(w, http.StatusOK, elements)
}

func (c *Component) createElement(w http.ResponseWriter, r *http.Request) {
	var req CreateElementRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Kind == "" {
		http.Error(w, "kind is required", http.StatusBadRequest)
		return
	}
	if req.Spec.Name == "" {
		http.Error(w, "spec.name is required", http.StatusBadRequest)
		return
	}

	el, err := c.store.CreateElement(r.Context(), req.Kind, req.Spec)
	if err != nil {
		c.writeStoreError(w, "Create element", err)
		return
	}

	writeJSON(w, http.StatusCreated, el)
}

// ----------------------------------------------------------------------------
// GET/PUT/DELETE /api/model/elements/{id}
// ----------------------------------------------------------------------------

func (c *Component) handleElementByID(route string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, route)
		if id == "" || strings.Contains(id, "/") {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}

		switch r.Method {
		case http.MethodGet:
			c.getElement(w, r, id)
		case http.MethodPatch, http.MethodPut:
			c.updateElement(w, r, id)
		case http.MethodDelete:
			c.deleteElement(w, r, id)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (c *Component) getElement(w http.ResponseWriter, r *http.Request, id string) {
	el, err := c.store.GetElement(r.Context(), id)
	if err != nil {
		c.writeStoreError(w, "Get element", err)
		return
	}
	writeJSON(w, http.StatusOK, el)
}

// updateElement applies a partial update. Fields absent from the body leave
// stored values untouched; explicit clears (empty arrays, empty action
// strings) remove them.
func (c *Component) updateElement(w http.ResponseWriter, r *http.Request, id string) {
	var spec graph.ElementSpec
	if !decodeBody(w, r, &spec) {
		return
	}

	el, err := c.store.UpdateElement(r.Context(), id, spec)
	if err != nil {
		c.writeStoreError(w, "Update element", err)
		return
	}
	writeJSON(w, http.StatusOK, el)
}

func (c *Component) deleteElement(w http.ResponseWriter, r *http.Request, id string) {
	if err := c.store.DeleteElement(r.Context(), id); err != nil {
		c.writeStoreError(w, "Delete element", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ----------------------------------------------------------------------------
// POST /api/model/relationships
// ----------------------------------------------------------------------------

func (c *Component) handleRelationships(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var spec graph.RelationshipSpec
	if !decodeBody(w, r, &spec) {
		return
	}
	if spec.Type == "" {
		http.Error(w, "type is required", http.StatusBadRequest)
		return
	}
	if spec.Source == "" || spec.Target == "" {
		http.Error(w, "source and target are required", http.StatusBadRequest)
		return
	}

	created, err := c.store.CreateRelationship(r.Context(), spec)
	if err != nil {
		c.writeStoreError(w, "Create relationship", err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ----------------------------------------------------------------------------
// DELETE /api/model/relationships/{id}
// ----------------------------------------------------------------------------

func (c *Component) handleRelationshipByID(route string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, route)
		if id == "" || strings.Contains(id, "/") {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		if r.Method != http.MethodDelete {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if err := c.store.DeleteRelationship(r.Context(), id); err != nil {
			c.writeStoreError(w, "Delete relationship", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ----------------------------------------------------------------------------
// Helpers
// ----------------------------------------------------------------------------

// writeStoreError maps store errors onto HTTP status codes. Unknown kinds are
// client errors; unexpected failures are logged and masked.
func (c *Component) writeStoreError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, storage.ErrUnknownKind), errors.Is(err, storage.ErrUnknownViewpoint):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		c.logger.Error(op+" failed", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

// decodeBody decodes a size-limited JSON request body. Writes the error
// response itself and reports success.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
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
