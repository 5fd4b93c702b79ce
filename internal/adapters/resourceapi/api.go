// Package resourceapi serves the generic REST resource contract the web
// application consumes: collection listing with query-string filters, POST
// create with server-assigned ids, PATCH field merge, and DELETE. It holds
// no business rules — capacity and duplicate checks belong to the caller.
package resourceapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"eventdesk/internal/adapters/storage/collection"
)

// API exposes a collection store over HTTP.
type API struct {
	store       collection.Store
	collections map[string]bool

	// mu serializes PATCH read-merge-write cycles within this process.
	// The contract has no compare-and-swap, so concurrent writers from
	// other processes can still interleave.
	mu sync.Mutex
}

// New creates an API limited to the named collections.
func New(store collection.Store, collections ...string) *API {
	allowed := make(map[string]bool, len(collections))
	for _, c := range collections {
		allowed[c] = true
	}
	return &API{store: store, collections: allowed}
}

// Router builds the chi router for the API.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(accessLog)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/{collection}", func(r chi.Router) {
		r.Use(a.requireCollection)
		r.Get("/", a.handleList)
		r.Post("/", a.handleCreate)
		r.Get("/{id}", a.handleGet)
		r.Patch("/{id}", a.handlePatch)
		r.Delete("/{id}", a.handleDelete)
	})

	return r
}

// requireCollection rejects requests for collections the API does not serve.
func (a *API) requireCollection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.collections[chi.URLParam(r, "collection")] {
			writeError(w, http.StatusNotFound, "unknown collection")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *API) handleList(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "collection")

	filters := make(map[string]string)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			filters[key] = values[0]
		}
	}

	records, err := a.store.List(r.Context(), name, filters)
	if err != nil {
		internalError(w, err)
		return
	}
	if records == nil {
		records = []collection.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (a *API) handleCreate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "collection")

	var rec collection.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if rec.ID() == "" {
		rec["id"] = uuid.New().String()
	}

	if err := a.store.Save(r.Context(), name, rec); err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (a *API) handleGet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "collection")
	id := chi.URLParam(r, "id")

	rec, err := a.store.GetByID(r.Context(), name, id)
	if errors.Is(err, collection.ErrNotFound) {
		writeError(w, http.StatusNotFound, "record not found")
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handlePatch merges only the provided top-level fields into the stored
// record. The id field is immutable.
func (a *API) handlePatch(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "collection")
	id := chi.URLParam(r, "id")

	var partial collection.Record
	if err := json.NewDecoder(r.Body).Decode(&partial); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	delete(partial, "id")

	a.mu.Lock()
	defer a.mu.Unlock()

	rec, err := a.store.GetByID(r.Context(), name, id)
	if errors.Is(err, collection.ErrNotFound) {
		writeError(w, http.StatusNotFound, "record not found")
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}

	for field, value := range partial {
		rec[field] = value
	}
	if err := a.store.Save(r.Context(), name, rec); err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (a *API) handleDelete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "collection")
	id := chi.URLParam(r, "id")

	deleted, err := a.store.Delete(r.Context(), name, id)
	if err != nil {
		internalError(w, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "record not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// accessLog emits one structured line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Info("resource_request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// internalError logs the real error and returns a generic message.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("resource_internal_error", "error", err.Error())
	writeError(w, http.StatusInternalServerError, "internal server error")
}
