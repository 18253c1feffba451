package listing

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"animal-adoption/internal/domain/animals"
	"animal-adoption/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Searcher es lo único que la página necesita del servicio de animales.
type Searcher interface {
	Search(ctx context.Context, q animals.Query) (animals.PageResult, error)
}

func RegisterRoutes(r chi.Router, s Searcher, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}
	r.Get("/peluditos", listPageHandler(s, log))
	r.Get("/peluditos/demo", demoPageHandler(log))
}

func listPageHandler(s Searcher, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := s.Search(r.Context(), queryFrom(r))
		if err != nil {
			if errors.Is(err, animals.ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			log.Error("listing search failed", map[string]any{"error": err.Error()})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writePage(w, NewPage(res), log)
	}
}

func demoPageHandler(log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writePage(w, PlaceholderPage(), log)
	}
}

func writePage(w http.ResponseWriter, p Page, log logger.Logger) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := Render(w, p); err != nil {
		log.Error("render listing page", map[string]any{"error": err.Error()})
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func queryFrom(r *http.Request) animals.Query {
	v := r.URL.Query()
	page, _ := strconv.Atoi(v.Get("page"))
	perPage, _ := strconv.Atoi(v.Get("per_page"))
	return animals.Query{
		Type:    animals.Type(v.Get("type")),
		Gender:  animals.Gender(v.Get("gender")),
		Size:    animals.Size(v.Get("size")),
		Status:  animals.Status(v.Get("status")),
		Sort:    animals.Sort(v.Get("sort")),
		Page:    page,
		PerPage: perPage,
	}
}
