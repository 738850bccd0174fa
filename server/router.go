package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"pageviews-server/metrics"
	"pageviews-server/server/middleware"
)

// PageviewsRoutes is the set of handlers served by the router.
type PageviewsRoutes interface {
	Root(w http.ResponseWriter, r *http.Request)
	MostViewedArticles(w http.ResponseWriter, r *http.Request)
	ArticleViewCount(w http.ResponseWriter, r *http.Request)
	ArticleViewCountTopDay(w http.ResponseWriter, r *http.Request)
	ArticleViewsChart(w http.ResponseWriter, r *http.Request)
	QueryStats(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	pageviewsHandler PageviewsRoutes
	router           *mux.Router
	sink             metrics.Sink
	metricsPath      string
	metricsHandler   http.Handler
}

// NewRouter creates a router with the app's routes. A nil metricsHandler
// leaves the metrics path unregistered.
func NewRouter(
	pageviewsHandler PageviewsRoutes,
	router *mux.Router,
	sink metrics.Sink,
	metricsPath string,
	metricsHandler http.Handler) *Router {
	if sink == nil {
		sink = metrics.NoopSink{}
	}
	return &Router{
		pageviewsHandler: pageviewsHandler,
		router:           router,
		sink:             sink,
		metricsPath:      metricsPath,
		metricsHandler:   metricsHandler,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.Use(middleware.RequestID, middleware.AccessLog(r.sink))

	r.router.HandleFunc("/", r.pageviewsHandler.Root).Methods("GET")

	// expects ?year={int}&month={int}[&optionalweekstartday={int}]
	r.router.HandleFunc("/most-viewed-articles", r.pageviewsHandler.MostViewedArticles).Methods("GET")

	// expects ?article={title}&year={int}&month={int}[&optionalweekstartday={int}]
	r.router.HandleFunc("/article-view-count", r.pageviewsHandler.ArticleViewCount).Methods("GET")
	r.router.HandleFunc("/article-view-count-top-day", r.pageviewsHandler.ArticleViewCountTopDay).Methods("GET")
	r.router.HandleFunc("/article-views-chart", r.pageviewsHandler.ArticleViewsChart).Methods("GET")

	r.router.HandleFunc("/query-stats", r.pageviewsHandler.QueryStats).Methods("GET")
	r.router.HandleFunc("/ping", r.pageviewsHandler.Ping).Methods("GET")

	if r.metricsHandler != nil && r.metricsPath != "" {
		r.router.Handle(r.metricsPath, r.metricsHandler).Methods("GET")
	}
}
