package directory

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	source "github.com/goliatone/go-fiche/pkg/directory"
)

// Routes lists the served backend routes, relative to the mount point.
var Routes = []string{
	source.RouteEtablissements,
	source.RouteEncadreurs,
	source.RouteSpecialites,
	source.RouteParcours,
	source.RouteInscriptions,
}

// MountPath joins basePath and a backend route.
func MountPath(basePath, route string) string {
	basePath = strings.TrimSpace(basePath)
	route = strings.TrimSpace(route)
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	if basePath == "" || basePath == "/" {
		return route
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return strings.TrimRight(basePath, "/") + route
}

// RegisterRoutes registers every directory route under basePath.
func RegisterRoutes(router *mux.Router, basePath string, fns ...OptionFn) ([]string, error) {
	return RegisterRoutesWithOptions(router, basePath, NewOptions(fns...))
}

// RegisterRoutesWithOptions registers the routes using a pre-built Options
// value and returns the mounted patterns.
func RegisterRoutesWithOptions(router *mux.Router, basePath string, opts Options) ([]string, error) {
	if router == nil {
		return nil, fmt.Errorf("directory: missing router")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	if opts.Source == nil {
		static, err := source.DefaultStatic()
		if err != nil {
			return nil, fmt.Errorf("directory: default source: %w", err)
		}
		opts.Source = static
	}
	h := &handlers{opts: opts}
	routes := map[string]http.HandlerFunc{
		source.RouteEtablissements: h.etablissements,
		source.RouteEncadreurs:     h.encadreurs,
		source.RouteSpecialites:    h.specialites,
		source.RouteParcours:       h.parcours,
		source.RouteInscriptions:   h.inscriptions,
	}
	patterns := make([]string, 0, len(Routes))
	for _, route := range Routes {
		pattern := MountPath(basePath, route)
		router.Handle(pattern, h.guarded(routes[route])).Methods(http.MethodGet, http.MethodHead)
		patterns = append(patterns, pattern)
	}
	return patterns, nil
}
