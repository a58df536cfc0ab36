// Package api exposes the comparison engine over HTTP as plain structured
// JSON, plus HTML chart pages rendered by the charts package. Handlers are
// thin: parse identifiers, load the session through the repository, run the
// engine, encode the result.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/paddock-data/lapdelta/internal/session"
	"github.com/paddock-data/lapdelta/internal/telemetry"
	"github.com/paddock-data/lapdelta/internal/units"
)

// ANSI escape codes for request log coloring
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

type Server struct {
	repo  session.Repository
	units string
}

// NewServer creates an API server over the given session repository.
// displayUnits selects the unit for speed values (see internal/units).
func NewServer(repo session.Repository, displayUnits string) *Server {
	if !units.IsValid(displayUnits) {
		displayUnits = units.KPH
	}
	return &Server{repo: repo, units: displayUnits}
}

// Router builds the full route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware)

	api := r.PathPrefix("/api/sessions/{season:[0-9]+}/{event}/{kind}").Subrouter()
	api.HandleFunc("/drivers", s.listDrivers).Methods(http.MethodGet)
	api.HandleFunc("/compare", s.compareTelemetry).Methods(http.MethodGet)
	api.HandleFunc("/laptimes", s.lapTimes).Methods(http.MethodGet)
	api.HandleFunc("/summary", s.summarize).Methods(http.MethodGet)
	api.HandleFunc("/sectors", s.sectorSplits).Methods(http.MethodGet)

	ch := r.PathPrefix("/charts/sessions/{season:[0-9]+}/{event}/{kind}").Subrouter()
	ch.HandleFunc("/telemetry", s.telemetryChart).Methods(http.MethodGet)
	ch.HandleFunc("/laptimes", s.lapTimeChart).Methods(http.MethodGet)

	return r
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// writeEngineError maps the engine error taxonomy onto HTTP statuses.
// Structural errors already carry the driver / lap / metric context needed
// for a user-facing message, so the error text passes through unchanged.
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	var badParam *badParamError
	var notFound *telemetry.ParticipantNotFoundError
	var noLap *telemetry.NoValidLapError
	var missingSpeed *telemetry.MissingSpeedDataError
	switch {
	case errors.As(err, &badParam):
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &notFound), errors.As(err, &noLap):
		s.writeJSONError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &missingSpeed):
		s.writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.writeJSONError(w, http.StatusBadGateway, err.Error())
	}
}
