// Package router is a thin naming-and-grouping layer over chi. Routes are
// registered with a stable name so the CLI can print a route table and
// handlers can build URLs without hard-coding paths.
package router

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

type Middleware func(http.Handler) http.Handler

// RouteInfo describes one registered route for introspection (route:list).
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

type Router struct {
	mux    chi.Router
	mu     sync.RWMutex
	routes map[string]string
	infos  []RouteInfo
}

type Group struct {
	router      *Router
	prefix      string
	middlewares []Middleware
}

func New() *Router {
	return &Router{
		mux:    chi.NewRouter(),
		routes: make(map[string]string),
	}
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

func (r *Router) Use(middlewares ...Middleware) {
	for _, mw := range middlewares {
		r.mux.Use(mw)
	}
}

func (r *Router) Group(prefix string, middlewares ...Middleware) *Group {
	return &Group{
		router:      r,
		prefix:      normalizePath(prefix),
		middlewares: append([]Middleware(nil), middlewares...),
	}
}

func (r *Router) Get(path, name string, handler http.HandlerFunc, mws ...Middleware) {
	r.mount(http.MethodGet, path, name, handler, mws...)
}

func (r *Router) Post(path, name string, handler http.HandlerFunc, mws ...Middleware) {
	r.mount(http.MethodPost, path, name, handler, mws...)
}

func (r *Router) Put(path, name string, handler http.HandlerFunc, mws ...Middleware) {
	r.mount(http.MethodPut, path, name, handler, mws...)
}

func (r *Router) Delete(path, name string, handler http.HandlerFunc, mws ...Middleware) {
	r.mount(http.MethodDelete, path, name, handler, mws...)
}

// HandleFunc mounts an unnamed handler for all methods (metrics, swagger UI).
func (r *Router) HandleFunc(path string, handler http.HandlerFunc) {
	r.mux.HandleFunc(path, handler)
}

// Static serves the files under dir at the given URL prefix.
// Static("/uploads", "public/uploads") maps /uploads/x.png → public/uploads/x.png.
func (r *Router) Static(prefix, dir string) {
	prefix = normalizePath(prefix)
	fs := http.StripPrefix(prefix+"/", http.FileServer(http.Dir(dir)))
	r.mux.Handle(prefix+"/*", fs)
}

// Param reads a chi URL parameter from the request.
func Param(req *http.Request, name string) string {
	return chi.URLParam(req, name)
}

// Path returns the registered path for a route name.
func (r *Router) Path(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	path, ok := r.routes[name]
	return path, ok
}

// URL builds a concrete URL for a named route by substituting params.
func (r *Router) URL(name string, params map[string]string) (string, error) {
	path, ok := r.Path(name)
	if !ok {
		return "", fmt.Errorf("route %q not found", name)
	}

	for key, value := range params {
		path = strings.ReplaceAll(path, "{"+key+"}", value)
	}

	if strings.Contains(path, "{") {
		return "", fmt.Errorf("missing parameters for route %q", name)
	}

	return path, nil
}

// Routes returns every named route registered so far.
func (r *Router) Routes() []RouteInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]RouteInfo(nil), r.infos...)
}

func (r *Router) mount(method, path, name string, handler http.HandlerFunc, mws ...Middleware) {
	fullPath := normalizePath(path)
	r.mux.Method(method, fullPath, chain(handler, mws...))
	r.record(method, fullPath, name)
}

func (r *Router) record(method, path, name string) {
	if name == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[name] = path
	r.infos = append(r.infos, RouteInfo{Method: method, Path: path, Name: name})
}

func (g *Group) Group(prefix string, middlewares ...Middleware) *Group {
	combined := append(append([]Middleware(nil), g.middlewares...), middlewares...)
	return &Group{
		router:      g.router,
		prefix:      joinPath(g.prefix, prefix),
		middlewares: combined,
	}
}

func (g *Group) Get(path, name string, handler http.HandlerFunc, mws ...Middleware) {
	g.mount(http.MethodGet, path, name, handler, mws...)
}

func (g *Group) Post(path, name string, handler http.HandlerFunc, mws ...Middleware) {
	g.mount(http.MethodPost, path, name, handler, mws...)
}

func (g *Group) Put(path, name string, handler http.HandlerFunc, mws ...Middleware) {
	g.mount(http.MethodPut, path, name, handler, mws...)
}

func (g *Group) Delete(path, name string, handler http.HandlerFunc, mws ...Middleware) {
	g.mount(http.MethodDelete, path, name, handler, mws...)
}

func (g *Group) mount(method, path, name string, handler http.HandlerFunc, mws ...Middleware) {
	fullPath := joinPath(g.prefix, path)
	combined := append(append([]Middleware(nil), g.middlewares...), mws...)

	g.router.mux.Method(method, fullPath, chain(handler, combined...))
	g.router.record(method, fullPath, name)
}

func chain(handler http.Handler, middlewares ...Middleware) http.Handler {
	wrapped := handler
	for i := len(middlewares) - 1; i >= 0; i-- {
		wrapped = middlewares[i](wrapped)
	}
	return wrapped
}

func joinPath(parts ...string) string {
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.Trim(part, "/"); trimmed != "" {
			segments = append(segments, trimmed)
		}
	}

	if len(segments) == 0 {
		return "/"
	}

	return "/" + strings.Join(segments, "/")
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	return joinPath(path)
}
