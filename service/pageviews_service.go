package services

import (
	"context"
	"log"

	"pageviews-server/aggregator"
	"pageviews-server/api/wikimedia"
	"pageviews-server/metrics"
	"pageviews-server/models"
	"pageviews-server/planner"
)

// PageviewsService plans upstream calls, fetches them and aggregates the result.
type PageviewsService struct {
	wikimediaApi        wikimedia.WikimediaAPI
	mostViewedBaseURL   string
	articleViewsBaseURL string
	metrics             metrics.Sink
}

// NewPageviewsService constructs a new PageviewsService.
func NewPageviewsService(
	wikimediaApi wikimedia.WikimediaAPI,
	mostViewedBaseURL string,
	articleViewsBaseURL string,
	sink metrics.Sink) *PageviewsService {

	if sink == nil {
		sink = metrics.NoopSink{}
	}
	return &PageviewsService{
		wikimediaApi:        wikimediaApi,
		mostViewedBaseURL:   mostViewedBaseURL,
		articleViewsBaseURL: articleViewsBaseURL,
		metrics:             sink,
	}
}

// MostViewedArticles tallies the top articles over the window. Weekly
// windows issue one request per day, strictly one after another.
func (ps *PageviewsService) MostViewedArticles(ctx context.Context, window planner.DateWindow) (aggregator.TopArticlesResult, error) {
	targets, err := planner.PlanTopArticlesTargets(ps.mostViewedBaseURL, window)
	if err != nil {
		return aggregator.TopArticlesResult{}, err
	}

	responses := make([]models.PageviewResponse, 0, len(targets))
	for _, target := range targets {
		resp := ps.wikimediaApi.GetTopArticles(ctx, target)
		if resp.Error != "" {
			log.Printf("[PageviewsService] No data for %s: %s", target, resp.Error)
		}
		responses = append(responses, resp)
	}

	ps.metrics.Aggregation("top_articles", len(responses))
	return aggregator.AggregateTopArticles(responses), nil
}

// ArticleViews fetches an article's daily series over the window and reduces
// it according to aggType. It returns aggregator.ErrArticleNotFound when
// upstream has no items for the article.
func (ps *PageviewsService) ArticleViews(
	ctx context.Context,
	article string,
	window planner.DateWindow,
	aggType aggregator.AggregationType,
) (aggregator.ArticleViewsResult, error) {
	resp, aw, err := ps.fetchArticleViews(ctx, article, window)
	if err != nil {
		return nil, err
	}

	ps.metrics.Aggregation(aggType.String(), 1)
	return aggregator.AggregateArticleViews(resp, aggType, article, aw)
}

// ArticleDailySeries returns an article's per-day views over the window.
func (ps *PageviewsService) ArticleDailySeries(
	ctx context.Context,
	article string,
	window planner.DateWindow,
) ([]aggregator.DailyViews, planner.ArticleWindow, error) {
	resp, aw, err := ps.fetchArticleViews(ctx, article, window)
	if err != nil {
		return nil, planner.ArticleWindow{}, err
	}
	if !resp.HasItems() {
		return nil, aw, aggregator.ErrArticleNotFound
	}
	return aggregator.DailySeries(resp), aw, nil
}

func (ps *PageviewsService) fetchArticleViews(
	ctx context.Context,
	article string,
	window planner.DateWindow,
) (models.PageviewResponse, planner.ArticleWindow, error) {
	aw, err := planner.PlanArticleWindow(window)
	if err != nil {
		return models.PageviewResponse{}, planner.ArticleWindow{}, err
	}

	target := planner.ArticleViewsURL(ps.articleViewsBaseURL, article, aw)
	resp := ps.wikimediaApi.GetArticleViews(ctx, target)
	if resp.Error != "" {
		log.Printf("[PageviewsService] No data for article %q: %s", article, resp.Error)
	}
	return resp, aw, nil
}
