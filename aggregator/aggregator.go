// Package aggregator folds upstream pageview responses into summarized
// results. Every function is pure and performs no I/O.
package aggregator

import (
	"errors"
	"fmt"

	"pageviews-server/models"
	"pageviews-server/planner"
)

// ErrArticleNotFound is returned when an article response carries no items.
var ErrArticleNotFound = errors.New("An article of that type was not found.")

// AggregationType selects the reduction applied to an article's daily series.
type AggregationType int

const (
	Sum AggregationType = iota
	TopDay
)

func (t AggregationType) String() string {
	switch t {
	case Sum:
		return "sum"
	case TopDay:
		return "top_day"
	default:
		return "unknown"
	}
}

// TopArticlesResult maps article titles to views accumulated over the window.
type TopArticlesResult struct {
	TopArticles map[string]int64 `json:"top_articles"`
}

// ArticleViewsResult is implemented by ViewCountResult and TopDayResult.
type ArticleViewsResult interface {
	articleViewsResult()
}

// ViewCountResult is the Sum aggregation output.
type ViewCountResult struct {
	ViewCount   int64  `json:"view_count"`
	ArticleName string `json:"article_name"`
	DateRange   string `json:"date_range"`
}

// TopDayResult is the TopDay aggregation output. Date is the upstream
// timestamp, passed through verbatim.
type TopDayResult struct {
	ViewCount   int64  `json:"view_count"`
	ArticleName string `json:"article_name"`
	Date        string `json:"date"`
}

func (ViewCountResult) articleViewsResult() {}
func (TopDayResult) articleViewsResult()    {}

// DailyViews is one point of an article's daily series.
type DailyViews struct {
	Timestamp string
	Views     int64
}

// AggregateTopArticles sums views per article across all responses.
// Responses without articles and articles with zero views contribute nothing.
func AggregateTopArticles(responses []models.PageviewResponse) TopArticlesResult {
	counts := make(map[string]int64)
	for _, resp := range responses {
		if !resp.HasItems() {
			continue
		}
		for _, a := range resp.Items[0].Articles {
			if a.Views == 0 {
				continue
			}
			counts[a.Article] += a.Views
		}
	}
	return TopArticlesResult{TopArticles: counts}
}

// AggregateArticleViews reduces an article's daily series according to
// aggType. It returns ErrArticleNotFound when the response has no items.
func AggregateArticleViews(
	resp models.PageviewResponse,
	aggType AggregationType,
	article string,
	window planner.ArticleWindow,
) (ArticleViewsResult, error) {
	if !resp.HasItems() {
		return nil, ErrArticleNotFound
	}

	switch aggType {
	case Sum:
		var total int64
		for _, item := range resp.Items {
			total += item.Views
		}
		return ViewCountResult{
			ViewCount:   total,
			ArticleName: article,
			DateRange:   window.DateRange(),
		}, nil
	case TopDay:
		// Strict comparison keeps the earliest item on ties.
		var top int64 = -1
		var topDate string
		for _, item := range resp.Items {
			if item.Views > top {
				top = item.Views
				topDate = item.Timestamp
			}
		}
		return TopDayResult{
			ViewCount:   top,
			ArticleName: article,
			Date:        topDate,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported aggregation type %d", int(aggType))
	}
}

// DailySeries returns the per-day views of an article response in upstream order.
func DailySeries(resp models.PageviewResponse) []DailyViews {
	series := make([]DailyViews, 0, len(resp.Items))
	for _, item := range resp.Items {
		series = append(series, DailyViews{Timestamp: item.Timestamp, Views: item.Views})
	}
	return series
}
