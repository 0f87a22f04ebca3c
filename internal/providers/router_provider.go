package providers

import (
	"goalboard/internal/structures"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Middleware func(http.Handler) http.Handler

type RouterProviderInterface interface {
	Get(url string, handler http.Handler)
	Post(url string, handler http.Handler)
	GetRoutes() []structures.Route
	Handler() http.Handler
}

// RouterProvider registers routes on a chi mux, which answers 405 for a
// known path requested with the wrong method.
type RouterProvider struct {
	mux    chi.Router
	routes []structures.Route
}

func (rp *RouterProvider) add(method, url string, handler http.Handler) {
	rp.mux.Method(method, url, handler)
	rp.routes = append(rp.routes, structures.Route{Method: method, Url: url})
}

func (rp *RouterProvider) Get(url string, handler http.Handler) {
	rp.add(http.MethodGet, url, handler)
}

func (rp *RouterProvider) Post(url string, handler http.Handler) {
	rp.add(http.MethodPost, url, handler)
}

func (rp *RouterProvider) GetRoutes() []structures.Route {
	return rp.routes
}

func (rp *RouterProvider) Handler() http.Handler {
	return rp.mux
}

// NewRouterProvider applies middlewares to every route registered afterwards.
func NewRouterProvider(middlewares ...Middleware) RouterProviderInterface {
	mux := chi.NewRouter()
	for _, mw := range middlewares {
		mux.Use(mw)
	}
	return &RouterProvider{mux: mux}
}
