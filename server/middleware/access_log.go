package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"pageviews-server/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// AccessLog logs each request and reports it to sink under its route template.
func AccessLog(sink metrics.Sink) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			route := routeTemplate(r)
			sink.HTTPRequest(route, rec.status, elapsed)
			log.Printf("[HTTP] request_id=%s method=%s path=%s status=%d duration=%s",
				RequestIDFromContext(r.Context()), r.Method, r.URL.RequestURI(), rec.status, elapsed)
		})
	}
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}
