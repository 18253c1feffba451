package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/animales/animal/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Handle("/metrics", m.Handler())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/animales/animal/7", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	m.CacheLookup("hit")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	out := string(body)

	want := `http_requests_total{method="GET",route="/animales/animal/{id}",status="404"} 1`
	if !strings.Contains(out, want) {
		t.Fatalf("metrics output missing %q\n%s", want, out)
	}
	if !strings.Contains(out, `animal_cache_lookups_total{result="hit"} 1`) {
		t.Fatalf("metrics output missing cache counter\n%s", out)
	}
}
