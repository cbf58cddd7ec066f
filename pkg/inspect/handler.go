package inspect

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/dotrender/internal/errors"
	"github.com/vango-dev/dotrender/pkg/render"
)

// RootInfo describes a tracked root in the /roots listing.
type RootInfo struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	ETag  string       `json:"etag"`
	Size  int          `json:"size"`
	Stats render.Stats `json:"stats"`
}

// Handler returns the inspector's HTTP routes.
func (in *Inspector) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/roots", in.handleList)
	r.Get("/roots/{id}", in.handleHTML)
	r.Get("/roots/{id}/stats", in.handleStats)
	r.Get("/ws", in.handleWS)
	if in.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(in.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (in *Inspector) handleList(w http.ResponseWriter, r *http.Request) {
	ids := in.Roots()

	in.mu.RLock()
	list := make([]RootInfo, 0, len(ids))
	for _, id := range ids {
		e, ok := in.roots[id]
		if !ok {
			continue
		}
		list = append(list, RootInfo{
			ID:    id.String(),
			Name:  e.name,
			ETag:  e.snap.ETag(),
			Size:  e.snap.Size(),
			Stats: e.stats,
		})
	}
	in.mu.RUnlock()

	writeJSON(w, http.StatusOK, list)
}

func (in *Inspector) handleHTML(w http.ResponseWriter, r *http.Request) {
	e, ok := in.lookup(w, r)
	if !ok {
		return
	}

	etag := e.snap.ETag()
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(e.snap.HTML))
}

func (in *Inspector) handleStats(w http.ResponseWriter, r *http.Request) {
	e, ok := in.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, e.stats)
}

// lookup resolves the {id} parameter to a copy of its cache entry, writing
// an error response when it does not name a tracked root.
func (in *Inspector) lookup(w http.ResponseWriter, r *http.Request) (entry, bool) {
	raw := chi.URLParam(r, "id")
	id, err := ulid.ParseStrict(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest,
			errors.New("I002").WithDetailf("%q is not a root id", raw).Wrap(err))
		return entry{}, false
	}

	in.mu.RLock()
	e, ok := in.roots[id]
	var out entry
	if ok {
		out = *e
	}
	in.mu.RUnlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, errors.New("I002").WithDetailf("root %s", id))
		return entry{}, false
	}
	return out, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
