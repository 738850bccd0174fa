package di

import (
	"context"
	"fmt"
	"log"
	"net/http"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pageviews-server/api"
	"pageviews-server/api/wikimedia"
	"pageviews-server/config"
	"pageviews-server/dao/redis"
	"pageviews-server/db"
	"pageviews-server/metrics"
	"pageviews-server/server"
	"pageviews-server/server/handlers"
	services "pageviews-server/service"
)

// Container holds all application dependencies.
type Container struct {
	Config              *config.Config
	RedisClient         db.RedisClient
	QueryStatsDao       *redis.RedisQueryStatsDAO
	MetricsSink         metrics.Sink
	WikimediaAPI        wikimedia.WikimediaAPI
	PageviewsService    *services.PageviewsService
	QueryStatsService   *services.QueryStatsService
	PageviewsHandler    *handlers.PageviewsHandler
	MuxRouter           *mux.Router
	Router              *server.Router
	PageviewsHttpServer *server.PageviewsHttpServer
	closers             []func() error
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Printf("initializing container - env: %s", cfg.Env)
	c := &Container{Config: cfg}

	// Metrics
	var metricsHandler http.Handler
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		c.MetricsSink = metrics.NewPrometheusSink(reg)
		metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	} else {
		c.MetricsSink = metrics.NoopSink{}
	}

	// Query stats are recorded only when Redis is configured
	var statsStore services.QueryStatsStore
	if cfg.RedisAddr != "" {
		redisInternalClient := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		redisClient, err := db.NewGoRedisClient(ctx, redisInternalClient)
		if err != nil {
			redisInternalClient.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		c.closers = append(c.closers, redisClient.Close)
		c.RedisClient = redisClient
		c.QueryStatsDao = redis.NewRedisQueryStatsDAO(redisClient)
		statsStore = c.QueryStatsDao
	} else {
		log.Printf("No redis address configured, query stats disabled")
	}
	c.QueryStatsService = services.NewQueryStatsService(statsStore)

	// Initialize WikimediaAPI - fixtures outside prod
	if cfg.Env != config.ENV_PROD {
		c.WikimediaAPI = wikimedia.NewWikimediaApiClientMock()
		log.Printf("Using mock wikimedia api")
	} else {
		log.Printf("Using prod wikimedia api")
		httpClient := api.NewHTTPClient(cfg.UserAgent, cfg.UpstreamTimeout)
		c.WikimediaAPI = wikimedia.NewWikimediaApiClient(httpClient, c.MetricsSink)
	}

	c.PageviewsService = services.NewPageviewsService(
		c.WikimediaAPI, cfg.MostViewedBaseURL, cfg.ArticleViewsBaseURL, c.MetricsSink)

	c.PageviewsHandler = handlers.NewPageviewsHandler(
		c.PageviewsService, c.QueryStatsService, cfg.LegacyDoubleEncoding)

	c.MuxRouter = mux.NewRouter()
	c.Router = server.NewRouter(c.PageviewsHandler, c.MuxRouter, c.MetricsSink, cfg.MetricsPath, metricsHandler)
	c.PageviewsHttpServer = server.NewPageviewsHttpServer(c.Router, c.MuxRouter, cfg.HTTPAddr, cfg.ShutdownTimeout)

	return c, nil
}

// Close releases external connections.
func (c *Container) Close() error {
	var firstErr error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
