package wikimedia

import (
	"context"
	"log"

	"pageviews-server/config"
	"pageviews-server/models"
	"pageviews-server/util"
)

// WikimediaApiClientMock serves canned responses read from JSON fixtures.
type WikimediaApiClientMock struct {
	topArticlesPath  string
	articleViewsPath string
}

// NewWikimediaApiClientMock creates a mock backed by the fixtures under resources/.
func NewWikimediaApiClientMock() *WikimediaApiClientMock {
	return &WikimediaApiClientMock{
		topArticlesPath:  config.GetResourcePath(config.TOP_ARTICLES_RESPONSE_RESOURCE),
		articleViewsPath: config.GetResourcePath(config.ARTICLE_VIEWS_RESPONSE_RESOURCE),
	}
}

// GetTopArticles returns the top-articles fixture regardless of url.
func (c *WikimediaApiClientMock) GetTopArticles(ctx context.Context, url string) models.PageviewResponse {
	return c.read(c.topArticlesPath)
}

// GetArticleViews returns the article-views fixture regardless of url.
func (c *WikimediaApiClientMock) GetArticleViews(ctx context.Context, url string) models.PageviewResponse {
	return c.read(c.articleViewsPath)
}

func (c *WikimediaApiClientMock) read(path string) models.PageviewResponse {
	resp, err := util.ReadPageviewResponseFromJSON(path)
	if err != nil {
		log.Printf("[WikimediaApiClientMock] Could not read fixture %s: %v", path, err)
		return models.PageviewResponse{Error: "Failed to read fixture"}
	}
	return *resp
}

var _ WikimediaAPI = (*WikimediaApiClientMock)(nil)
