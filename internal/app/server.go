package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vk/codeapi/internal/ctxlog"
	"github.com/vk/codeapi/internal/export"
)

// requestIDHeader carries the per-request correlation id.
const requestIDHeader = "X-Request-ID"

// Handler returns the HTTP handler serving lookups, export, health and
// metrics.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(a.config.Path, lookupMethods(a.lookupHandler))
	mux.HandleFunc(a.config.Path+"/export", lookupMethods(a.exportHandler))
	mux.HandleFunc(a.config.Path+"/mapping", lookupMethods(a.mappingHandler))
	mux.HandleFunc("GET /health", a.healthHandler)
	mux.Handle("GET /metrics", promhttp.HandlerFor(a.metrics, promhttp.HandlerOpts{}))
	return a.withRequestID(mux)
}

// withRequestID tags every request with an id, echoes it back to the client
// and attaches a logger carrying it to the request context.
func (a *App) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		ctx := ctxlog.With(ctxlog.WithLogger(r.Context(), a.logger), "request_id", id)
		ctxlog.FromContext(ctx).Debug("Request received.", "method", r.Method, "path", r.URL.Path, "remote_addr", r.RemoteAddr)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// lookupMethods restricts a handler to GET and POST.
func lookupMethods(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodPost {
			w.Header().Set("Allow", "GET, POST")
			writeJSONError(w, r, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h(w, r)
	}
}

// lookupHandler answers `?value=` searches, or lists every group when no
// value is given.
func (a *App) lookupHandler(w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.FromContext(r.Context())
	value := r.FormValue("value")
	if value == "" {
		logger.Debug("Listing code groups.")
		writeJSON(w, r, http.StatusOK, a.catalog.Groups())
		return
	}

	codes := a.catalog.Search(value)
	logger.Debug("Search answered.", "query", value, "results", len(codes))
	writeJSON(w, r, http.StatusOK, codes)
}

func (a *App) mappingHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, a.catalog.SerializedIndex())
}

// exportHandler streams the exported document as an attachment.
func (a *App) exportHandler(w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.FromContext(r.Context())

	var body bytes.Buffer
	if err := a.Export(&body); err != nil {
		if errors.Is(err, export.ErrExportDisabled) {
			logger.Warn("Export requested while disabled.")
			writeJSONError(w, r, http.StatusForbidden, err.Error())
			return
		}
		logger.Error("Export failed.", "error", err)
		writeJSONError(w, r, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", "attachment;fileName="+url.QueryEscape(a.ExportFileName()))
	w.WriteHeader(http.StatusOK)
	if _, err := body.WriteTo(w); err != nil {
		logger.Error("Writing export response failed.", "error", err)
	}
}

// healthHandler reports that the server is up.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	ctxlog.FromContext(r.Context()).Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.FromContext(r.Context()).Error("Writing JSON response failed.", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}
