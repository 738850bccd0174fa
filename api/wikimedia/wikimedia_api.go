package wikimedia

import (
	"context"

	"pageviews-server/models"
)

const (
	EndpointTopArticles  = "top"
	EndpointArticleViews = "per_article"
)

// WikimediaAPI fetches raw pageview responses from the Wikimedia metrics API.
// Implementations never return errors: failures are reported through
// PageviewResponse.Error and carry no items.
type WikimediaAPI interface {
	GetTopArticles(ctx context.Context, url string) models.PageviewResponse
	GetArticleViews(ctx context.Context, url string) models.PageviewResponse
}
