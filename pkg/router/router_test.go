package router_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/huseynesedov/portfolio-backend/pkg/router"
)

func echoParam(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(router.Param(r, name)))
	}
}

func TestNamedRoutes(t *testing.T) {
	r := router.New()
	r.Get("/api/works", "works.list", func(w http.ResponseWriter, _ *http.Request) {})
	r.Get("/api/works/{worksID}", "works.show", echoParam("worksID"))

	path, ok := r.Path("works.show")
	if !ok {
		t.Fatal("works.show not registered")
	}
	if path != "/api/works/{worksID}" {
		t.Fatalf("path = %q", path)
	}

	url, err := r.URL("works.show", map[string]string{"worksID": "abc123"})
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if url != "/api/works/abc123" {
		t.Fatalf("url = %q", url)
	}

	if _, err := r.URL("works.show", nil); err == nil {
		t.Fatal("expected error for missing params")
	}
	if _, err := r.URL("nope", nil); err == nil {
		t.Fatal("expected error for unknown route")
	}
}

func TestParamRouting(t *testing.T) {
	r := router.New()
	r.Get("/api/works/{worksID}", "works.show", echoParam("worksID"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/works/65b1", nil))

	if rec.Body.String() != "65b1" {
		t.Fatalf("param = %q, want 65b1", rec.Body.String())
	}
}

func TestGroupPrefixAndMiddleware(t *testing.T) {
	var order []string
	mw := func(tag string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	api := r.Group("/api", mw("group"))
	nested := api.Group("/works")
	nested.Post("/create", "works.create", func(w http.ResponseWriter, _ *http.Request) {
		order = append(order, "handler")
	}, mw("route"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/works/create", nil))

	if len(order) != 3 || order[0] != "group" || order[1] != "route" || order[2] != "handler" {
		t.Fatalf("execution order = %v", order)
	}
}

func TestRoutesListing(t *testing.T) {
	r := router.New()
	r.Get("/api/works", "works.list", func(w http.ResponseWriter, _ *http.Request) {})
	r.Post("/api/works/create", "works.create", func(w http.ResponseWriter, _ *http.Request) {})

	infos := r.Routes()
	if len(infos) != 2 {
		t.Fatalf("got %d routes, want 2", len(infos))
	}
}

func TestStatic(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "images")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "x.png"), []byte("png!"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := router.New()
	r.Static("/uploads", dir)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/images/x.png", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != "png!" {
		t.Fatalf("body = %q", rec.Body.String())
	}
}
