package wikimedia

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"pageviews-server/api"
	"pageviews-server/metrics"
	"pageviews-server/models"
)

// WikimediaApiClient embeds the common HTTPClient
type WikimediaApiClient struct {
	*api.HTTPClient
	metrics metrics.Sink
}

// NewWikimediaApiClient creates a new instance of WikimediaApiClient
func NewWikimediaApiClient(httpClient *api.HTTPClient, sink metrics.Sink) *WikimediaApiClient {
	if sink == nil {
		sink = metrics.NoopSink{}
	}
	return &WikimediaApiClient{
		HTTPClient: httpClient,
		metrics:    sink,
	}
}

// GetTopArticles fetches one top-articles day or month.
func (c *WikimediaApiClient) GetTopArticles(ctx context.Context, url string) models.PageviewResponse {
	return c.fetch(ctx, EndpointTopArticles, url)
}

// GetArticleViews fetches the daily series of one article.
func (c *WikimediaApiClient) GetArticleViews(ctx context.Context, url string) models.PageviewResponse {
	return c.fetch(ctx, EndpointArticleViews, url)
}

func (c *WikimediaApiClient) fetch(ctx context.Context, endpoint, url string) models.PageviewResponse {
	start := time.Now()
	body, err := c.Get(ctx, url)
	elapsed := time.Since(start)

	if err != nil {
		var statusErr *api.StatusError
		if errors.As(err, &statusErr) {
			c.metrics.UpstreamRequest(endpoint, metrics.StatusClass(statusErr.StatusCode), elapsed)
			log.Printf("[WikimediaApiClient] %s returned status %d", url, statusErr.StatusCode)
			return models.PageviewResponse{
				Error: fmt.Sprintf("Failed to fetch data, status code: %d", statusErr.StatusCode),
			}
		}
		c.metrics.UpstreamRequest(endpoint, "error", elapsed)
		log.Printf("[WikimediaApiClient] Request to %s failed: %v", url, err)
		return models.PageviewResponse{Error: fmt.Sprintf("Failed to fetch data: %v", err)}
	}
	c.metrics.UpstreamRequest(endpoint, "2xx", elapsed)

	resp, err := models.ParsePageviewResponse(body)
	if err != nil {
		log.Printf("[WikimediaApiClient] Ignoring malformed payload from %s: %v", url, err)
		return models.PageviewResponse{Error: "Malformed upstream payload"}
	}
	return resp
}

var _ WikimediaAPI = (*WikimediaApiClient)(nil)
