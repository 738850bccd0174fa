package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"pageviews-server/aggregator"
	"pageviews-server/models"
	"pageviews-server/planner"
	services "pageviews-server/service"
	"pageviews-server/util"
)

const (
	ARTICLE_QUERY_ARG         = "article"
	YEAR_QUERY_ARG            = "year"
	MONTH_QUERY_ARG           = "month"
	WEEK_START_DAY_QUERY_ARG  = "optionalweekstartday"
	NOT_PROVIDED_SENTINEL_ARG = "-1"
)

const (
	ROOT_MESSAGE              = "Add an API endpoint to the url: a) /most-viewed-articles b) /article-view-count or c) /article-view-count-top-day"
	INVALID_WINDOW_MESSAGE    = "Must supply valid week or month"
	INVALID_ARTICLE_MESSAGE   = "Must supply valid article string"
	INVALID_WEEK_DAY_MESSAGE  = "Must supply valid week start day"
	QUERY_STATS_ERROR_MESSAGE = "Query stats are unavailable"
)

// Query stats counter names, one per endpoint.
const (
	STATS_MOST_VIEWED      = "most-viewed-articles"
	STATS_VIEW_COUNT       = "article-view-count"
	STATS_VIEW_COUNT_TOP   = "article-view-count-top-day"
	STATS_ARTICLE_VIEWS_CH = "article-views-chart"
)

type PageviewsHandler struct {
	pageviewsService  *services.PageviewsService
	queryStatsService *services.QueryStatsService
	doubleEncode      bool
}

// NewPageviewsHandler builds the handler. doubleEncode wraps aggregation
// results in a JSON string literal for legacy clients.
func NewPageviewsHandler(
	pageviewsService *services.PageviewsService,
	queryStatsService *services.QueryStatsService,
	doubleEncode bool) *PageviewsHandler {
	return &PageviewsHandler{
		pageviewsService:  pageviewsService,
		queryStatsService: queryStatsService,
		doubleEncode:      doubleEncode,
	}
}

// Root handles GET /
func (h *PageviewsHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, models.MessageResponse{Message: ROOT_MESSAGE})
}

// MostViewedArticles handles GET /most-viewed-articles
func (h *PageviewsHandler) MostViewedArticles(w http.ResponseWriter, r *http.Request) {
	h.queryStatsService.Record(STATS_MOST_VIEWED)

	window, msg := parseWindowArgs(r.URL.Query())
	if msg != "" {
		writeJSON(w, models.ErrorResponse{Error: msg})
		return
	}

	result, err := h.pageviewsService.MostViewedArticles(r.Context(), window)
	if err != nil {
		writeJSON(w, errorResponseFor(err))
		return
	}
	h.writeResult(w, result)
}

// ArticleViewCount handles GET /article-view-count
func (h *PageviewsHandler) ArticleViewCount(w http.ResponseWriter, r *http.Request) {
	h.queryStatsService.Record(STATS_VIEW_COUNT)
	h.articleViews(w, r, aggregator.Sum)
}

// ArticleViewCountTopDay handles GET /article-view-count-top-day
func (h *PageviewsHandler) ArticleViewCountTopDay(w http.ResponseWriter, r *http.Request) {
	h.queryStatsService.Record(STATS_VIEW_COUNT_TOP)
	h.articleViews(w, r, aggregator.TopDay)
}

func (h *PageviewsHandler) articleViews(w http.ResponseWriter, r *http.Request, aggType aggregator.AggregationType) {
	article, window, msg := parseArticleArgs(r.URL.Query())
	if msg != "" {
		writeJSON(w, models.ErrorResponse{Error: msg})
		return
	}

	result, err := h.pageviewsService.ArticleViews(r.Context(), article, window, aggType)
	if err != nil {
		if errors.Is(err, aggregator.ErrArticleNotFound) {
			// Not-found is part of the aggregation result, so it is encoded like one.
			h.writeResult(w, models.ErrorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, errorResponseFor(err))
		return
	}
	h.writeResult(w, result)
}

// ArticleViewsChart handles GET /article-views-chart
func (h *PageviewsHandler) ArticleViewsChart(w http.ResponseWriter, r *http.Request) {
	h.queryStatsService.Record(STATS_ARTICLE_VIEWS_CH)

	article, window, msg := parseArticleArgs(r.URL.Query())
	if msg != "" {
		writeJSON(w, models.ErrorResponse{Error: msg})
		return
	}

	series, aw, err := h.pageviewsService.ArticleDailySeries(r.Context(), article, window)
	if err != nil {
		writeJSON(w, errorResponseFor(err))
		return
	}

	var buf bytes.Buffer
	if err := util.RenderArticleViewsChart(&buf, article, aw.DateRange(), series); err != nil {
		log.Println("Error rendering chart:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// QueryStats handles GET /query-stats
func (h *PageviewsHandler) QueryStats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.queryStatsService.Counts()
	if err != nil {
		log.Println("Error loading query stats:", err)
		writeJSON(w, models.ErrorResponse{Error: QUERY_STATS_ERROR_MESSAGE})
		return
	}
	writeJSON(w, models.QueryStatsResponse{Queries: counts})
}

// Ping handles GET /ping
func (h *PageviewsHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "pong"})
}

func (h *PageviewsHandler) writeResult(w http.ResponseWriter, v interface{}) {
	if !h.doubleEncode {
		writeJSON(w, v)
		return
	}
	inner, err := json.Marshal(v)
	if err != nil {
		log.Println("Error encoding response:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, string(inner))
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		log.Println("Error encoding response:", err)
	}
}

func errorResponseFor(err error) models.ErrorResponse {
	var dateErr *planner.InvalidDateError
	if errors.As(err, &dateErr) {
		return models.ErrorResponse{
			Error: fmt.Sprintf("Invalid date: %04d-%02d-%02d", dateErr.Year, dateErr.Month, dateErr.Day),
		}
	}
	if errors.Is(err, aggregator.ErrArticleNotFound) {
		return models.ErrorResponse{Error: err.Error()}
	}
	log.Println("Unexpected error:", err)
	return models.ErrorResponse{Error: "Internal error"}
}

func parseArticleArgs(vals url.Values) (article string, window planner.DateWindow, msg string) {
	article = strings.TrimSpace(vals.Get(ARTICLE_QUERY_ARG))
	if article == "" {
		return "", planner.DateWindow{}, INVALID_ARTICLE_MESSAGE
	}
	window, msg = parseWindowArgs(vals)
	return article, window, msg
}

// parseWindowArgs returns the requested window, or a client error message.
func parseWindowArgs(vals url.Values) (planner.DateWindow, string) {
	year, yearErr := parseOptionalInt(vals, YEAR_QUERY_ARG)
	month, monthErr := parseOptionalInt(vals, MONTH_QUERY_ARG)
	if yearErr != nil || monthErr != nil || year == nil || month == nil {
		return planner.DateWindow{}, INVALID_WINDOW_MESSAGE
	}

	weekStartDay, err := parseOptionalInt(vals, WEEK_START_DAY_QUERY_ARG)
	if err != nil {
		return planner.DateWindow{}, INVALID_WEEK_DAY_MESSAGE
	}

	window, err := planner.NewDateWindow(*year, *month, weekStartDay)
	if err != nil {
		return planner.DateWindow{}, errorResponseFor(err).Error
	}
	return window, ""
}

// parseOptionalInt returns nil when the argument is absent, empty or "-1".
func parseOptionalInt(vals url.Values, name string) (*int, error) {
	s := strings.TrimSpace(vals.Get(name))
	if s == "" || s == NOT_PROVIDED_SENTINEL_ARG {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
