package api

import (
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/trace"

	"stockdata/pkg/logger"
)

// NewRouter wires the price endpoints, health check and swagger UI.
func NewRouter(h *Handler, log *logger.Logger, tracer trace.Tracer) *mux.Router {
	r := mux.NewRouter()
	chain := []mux.MiddlewareFunc{
		requestIDMiddleware,
		traceMiddleware(tracer),
		loggingMiddleware(log),
		recoveryMiddleware(log),
	}
	r.Use(chain...)

	// mux skips middleware for unmatched routes, so wrap these explicitly.
	r.NotFoundHandler = wrap(http.HandlerFunc(notFound), chain)
	r.MethodNotAllowedHandler = wrap(http.HandlerFunc(methodNotAllowed), chain)

	r.HandleFunc("/health", health).Methods(http.MethodGet)

	r.HandleFunc("/getData", h.listData).Methods(http.MethodGet)
	r.HandleFunc("/getData", h.getRange).Methods(http.MethodPost)
	r.HandleFunc("/getData/{date}", h.getByDate).Methods(http.MethodGet)
	r.HandleFunc("/calculate10DayAverage", h.average).Methods(http.MethodGet)
	r.HandleFunc("/addData", h.addData).Methods(http.MethodPost)
	r.HandleFunc("/updateData", h.updateData).Methods(http.MethodPut)
	r.HandleFunc("/deleteData", h.deleteData).Methods(http.MethodDelete)
	r.HandleFunc("/deleteAll", h.deleteAll).Methods(http.MethodDelete)

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	return r
}

func wrap(h http.Handler, chain []mux.MiddlewareFunc) http.Handler {
	for i := len(chain) - 1; i >= 0; i-- {
		h = chain[i](h)
	}
	return h
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "not found")
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
