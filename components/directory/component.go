package directory

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Component bundles the directory handlers with their configuration.
type Component struct {
	opts Options
}

// New constructs a component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	return &Component{opts: NewOptions(fns...)}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return NewOptions()
	}
	return c.opts
}

// Handler returns a router serving every directory route at the root.
func (c *Component) Handler() http.Handler {
	router := mux.NewRouter()
	if _, err := c.RegisterRoutes(router, ""); err != nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusInternalServerError, err.Error())
		})
	}
	return router
}

// RegisterRoutes mounts the directory routes under basePath.
func (c *Component) RegisterRoutes(router *mux.Router, basePath string) ([]string, error) {
	return RegisterRoutesWithOptions(router, basePath, c.Options())
}
