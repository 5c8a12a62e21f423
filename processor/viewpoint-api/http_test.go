package viewpointapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/c360studio/sysmlstudio/viewpoint"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c := &Component{
		name:   "viewpoint-api",
		config: DefaultConfig(),
		logger: slog.Default(),
	}
	mux := http.NewServeMux()
	c.RegisterHTTPHandlers("api/viewpoints", mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestListViewpoints(t *testing.T) {
	srv := setupTestServer(t)

	resp, err := http.Get(srv.URL + "/api/viewpoints")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var catalog []viewpoint.Viewpoint
	if err := json.NewDecoder(resp.Body).Decode(&catalog); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(catalog) != len(viewpoint.All()) {
		t.Errorf("catalog size = %d, want %d", len(catalog), len(viewpoint.All()))
	}
	if catalog[0].ID != "sysml.structure" {
		t.Errorf("first viewpoint = %q, want sysml.structure", catalog[0].ID)
	}
}

func TestGetViewpoint(t *testing.T) {
	srv := setupTestServer(t)

	resp, err := http.Get(srv.URL + "/api/viewpoints/sysml.requirement")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var vp viewpoint.Viewpoint
	if err := json.NewDecoder(resp.Body).Decode(&vp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if vp.ID != "sysml.requirement" {
		t.Errorf("id = %q", vp.ID)
	}
	if len(vp.NodeKinds) == 0 || len(vp.EdgeKinds) == 0 {
		t.Errorf("viewpoint kinds missing: %+v", vp)
	}
}

func TestGetViewpointTypes(t *testing.T) {
	srv := setupTestServer(t)

	t.Run("pinned requirement kinds", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/viewpoints/sysml.requirement/types")
		if err != nil {
			t.Fatalf("GET: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		var types TypesResponse
		if err := json.NewDecoder(resp.Body).Decode(&types); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		wantNodes := []string{"requirement-definition", "requirement-usage"}
		wantEdges := []string{"satisfy", "refine", "verify", "dependency"}
		if !equalStrings(types.NodeKinds, wantNodes) {
			t.Errorf("nodeKinds = %v, want %v", types.NodeKinds, wantNodes)
		}
		if !equalStrings(types.EdgeKinds, wantEdges) {
			t.Errorf("edgeKinds = %v, want %v", types.EdgeKinds, wantEdges)
		}
	})

	t.Run("unknown id degrades to empty lists", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/viewpoints/sysml.bogus/types")
		if err != nil {
			t.Fatalf("GET: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		var types TypesResponse
		if err := json.NewDecoder(resp.Body).Decode(&types); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if types.NodeKinds == nil || types.EdgeKinds == nil {
			t.Error("empty kinds should serialize as [], not null")
		}
		if len(types.NodeKinds) != 0 || len(types.EdgeKinds) != 0 {
			t.Errorf("types = %+v, want empty", types)
		}
	})
}

func equalStrings(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestGetViewpointNotFound(t *testing.T) {
	srv := setupTestServer(t)

	resp, err := http.Get(srv.URL + "/api/viewpoints/sysml.bogus")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := setupTestServer(t)

	resp, err := http.Post(srv.URL+"/api/viewpoints", "application/json", nil)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", resp.StatusCode)
	}
}
