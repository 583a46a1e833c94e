package httpapi

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"testing"

	"github.com/dmitrijs2005/fittrack/internal/logging"
	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"
)

type openAPIDoc struct {
	Paths map[string]map[string]any `yaml:"paths"`
}

// TestOpenAPIDrift compares the routes registered on the router with the
// paths documented in the embedded openapi.yaml (which are relative to /api).
func TestOpenAPIDrift(t *testing.T) {
	var doc openAPIDoc
	if err := yaml.Unmarshal(openapiSpec, &doc); err != nil {
		t.Fatalf("failed to parse openapi.yaml: %v", err)
	}

	specRoutes := make(map[string]bool)
	for path, methods := range doc.Paths {
		for method := range methods {
			method = strings.ToUpper(method)
			if strings.HasPrefix(method, "X-") || method == "PARAMETERS" {
				continue
			}
			specRoutes[method+" /api"+path] = true
		}
	}

	// Router only registers routes, so nil services are fine.
	s := NewServer(Options{}, logging.Nop(), nil, nil, nil, nil)

	chiRoutes := make(map[string]bool)
	err := chi.Walk(s.Router(), func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		route = strings.TrimRight(route, "/")
		switch {
		case route == "", route == "/metrics", route == "/api/openapi.yaml", strings.HasPrefix(route, "/api/docs"):
			return nil
		}
		chiRoutes[method+" "+route] = true
		return nil
	})
	if err != nil {
		t.Fatalf("chi.Walk failed: %v", err)
	}

	var undocumented, stale []string
	for route := range chiRoutes {
		if !specRoutes[route] {
			undocumented = append(undocumented, route)
		}
	}
	for route := range specRoutes {
		if !chiRoutes[route] {
			stale = append(stale, route)
		}
	}
	sort.Strings(undocumented)
	sort.Strings(stale)

	if len(undocumented) > 0 {
		t.Errorf("routes registered but missing from openapi.yaml:\n%s", formatRouteList(undocumented))
	}
	if len(stale) > 0 {
		t.Errorf("routes in openapi.yaml but not registered:\n%s", formatRouteList(stale))
	}
}

func formatRouteList(routes []string) string {
	var b strings.Builder
	for _, r := range routes {
		fmt.Fprintf(&b, "  - %s\n", r)
	}
	return b.String()
}
